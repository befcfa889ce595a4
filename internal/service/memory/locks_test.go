package memory

import (
	"sync"
	"testing"
)

func TestUserLocks_ReleaseWhenIdle(t *testing.T) {
	t.Parallel()

	l := newUserLocks()
	unlockA := l.lock("a")
	unlockB := l.lock("b")
	if l.len() != 2 {
		t.Fatalf("expected 2 locks, got %d", l.len())
	}

	unlockA()
	unlockB()
	if l.len() != 0 {
		t.Errorf("expected locks to be released, got %d", l.len())
	}
}

func TestUserLocks_Exclusive(t *testing.T) {
	t.Parallel()

	l := newUserLocks()
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.lock("u1")
			defer unlock()
			v := counter
			v++
			counter = v
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Errorf("counter = %d, want 100", counter)
	}
}
