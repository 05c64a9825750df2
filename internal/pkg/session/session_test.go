package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.New("127.0.0.1:5000"))
	require.ErrorIs(t, s.New("127.0.0.1:5000"), ErrSessionAlreadyExists)

	sess, err := s.Get("127.0.0.1:5000")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:5000", sess.Addr)

	_, err = s.Get("127.0.0.1:5001")
	require.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, s.Clear("127.0.0.1:5000"))
	require.ErrorIs(t, s.Clear("127.0.0.1:5000"), ErrSessionNotFound)
}

func TestObserveTracksSequenceAndGaps(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.New("a"))
	now := time.Unix(1700000000, 0)

	require.NoError(t, s.Observe("a", 0, now)) // handshake
	require.NoError(t, s.Observe("a", 1, now.Add(time.Second)))
	require.NoError(t, s.Observe("a", 2, now.Add(2*time.Second)))
	require.NoError(t, s.Observe("a", 5, now.Add(3*time.Second))) // gap

	sess, err := s.Get("a")
	require.NoError(t, err)
	require.Equal(t, uint64(5), sess.LastSeq)
	require.Equal(t, uint64(4), sess.Packets)
	require.Equal(t, uint64(1), sess.Gaps)
	require.Equal(t, now.Add(3*time.Second), sess.LastSeen)

	require.ErrorIs(t, s.Observe("b", 1, now), ErrSessionNotFound)
}

func TestAllReturnsSnapshot(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.New("a"))
	require.NoError(t, s.New("b"))
	require.Len(t, s.All(), 2)
}
