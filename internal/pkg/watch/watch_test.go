package watch

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLatestAfterSet(t *testing.T) {
	v := NewValue("a")
	require.Equal(t, "a", v.Latest())
	v.Set("b")
	require.Equal(t, "b", v.Latest())
}

func TestSubscribeStartsWithoutNotification(t *testing.T) {
	v := NewValue(1)
	r := v.Subscribe()
	defer r.Close()

	select {
	case <-r.Changed():
		t.Fatal("unexpected notification on fresh receiver")
	default:
	}
	require.Equal(t, 1, r.Latest())
}

func TestCoalescingKeepsTerminalValue(t *testing.T) {
	v := NewValue(0)
	r := v.Subscribe()
	defer r.Close()

	// A burst of sets while the receiver is not draining must collapse to
	// one pending notification carrying the final value.
	for i := 1; i <= 100; i++ {
		v.Set(i)
	}

	select {
	case <-r.Changed():
	case <-time.After(time.Second):
		t.Fatal("no notification after set burst")
	}
	require.Equal(t, 100, r.Latest())

	select {
	case <-r.Changed():
		t.Fatal("more than one pending notification")
	default:
	}
}

func TestMultipleReceivers(t *testing.T) {
	v := NewValue("start")
	a := v.Subscribe()
	b := v.Subscribe()
	defer a.Close()
	defer b.Close()

	v.Set("next")
	for _, r := range []*Receiver[string]{a, b} {
		select {
		case <-r.Changed():
		case <-time.After(time.Second):
			t.Fatal("receiver missed notification")
		}
		require.Equal(t, "next", r.Latest())
	}
}

func TestClosedReceiverNotNotified(t *testing.T) {
	v := NewValue(0)
	r := v.Subscribe()
	r.Close()

	v.Set(1)
	select {
	case <-r.Changed():
		t.Fatal("closed receiver received notification")
	default:
	}
}

func TestConcurrentSetAndLatest(t *testing.T) {
	v := NewValue(0)
	r := v.Subscribe()
	defer r.Close()

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				v.Set(base*1000 + i)
			}
		}(g)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-r.Changed():
				_ = r.Latest()
			case <-time.After(100 * time.Millisecond):
				return
			}
		}
	}()
	wg.Wait()
	<-done
}
