// Package session tracks the per-tracker state the fake aggregation
// server keeps between datagrams.
package session

import (
	"sync"
	"time"
)

// Store holds sessions keyed by the tracker's remote address.
type Store interface {
	New(addr string) error
	Get(addr string) (Session, error)
	Observe(addr string, seq uint64, now time.Time) error
	All() []Session
	Clear(addr string) error
}

// Session is what the server knows about one tracker.
type Session struct {
	Addr     string
	LastSeq  uint64
	Packets  uint64
	Gaps     uint64 // sequence jumps larger than one, across reconnects
	LastSeen time.Time
}

// MemoryStore is an in-memory Store safe for concurrent use.
type MemoryStore struct {
	sessions map[string]Session
	mu       sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
	}
}

func (p *MemoryStore) New(addr string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.sessions[addr]; ok {
		return ErrSessionAlreadyExists
	}
	p.sessions[addr] = Session{Addr: addr}
	return nil
}

func (p *MemoryStore) Get(addr string) (Session, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if sess, ok := p.sessions[addr]; ok {
		return sess, nil
	}
	return Session{}, ErrSessionNotFound
}

// Observe records one datagram from the tracker. Handshakes carry
// sequence 0 and do not advance the counter.
func (p *MemoryStore) Observe(addr string, seq uint64, now time.Time) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	cpy, ok := p.sessions[addr]
	if !ok {
		return ErrSessionNotFound
	}
	cpy.Packets++
	cpy.LastSeen = now
	if seq > 0 {
		if cpy.LastSeq > 0 && seq > cpy.LastSeq+1 {
			cpy.Gaps++
		}
		if seq > cpy.LastSeq {
			cpy.LastSeq = seq
		}
	}
	p.sessions[addr] = cpy
	return nil
}

func (p *MemoryStore) All() []Session {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Session, 0, len(p.sessions))
	for _, sess := range p.sessions {
		out = append(out, sess)
	}
	return out
}

func (p *MemoryStore) Clear(addr string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.sessions[addr]; !ok {
		return ErrSessionNotFound
	}
	delete(p.sessions, addr)
	return nil
}
