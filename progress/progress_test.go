package progress

import (
	"sync"
	"testing"
)

func TestNewWord(t *testing.T) {
	w := NewWord(42)
	stage, processed, total := w.Snapshot()
	if stage != Undefined || processed != 0 || total != 42 {
		t.Fatalf("got (%v, %d, %d), want (Undefined, 0, 42)", stage, processed, total)
	}
}

func TestSetStageResetsProcessed(t *testing.T) {
	w := NewWord(10)
	for i := 0; i < 5; i++ {
		w.IncrementProcessed()
	}
	w.SetStage(Map)
	stage, processed, total := w.Snapshot()
	if stage != Map || processed != 0 || total != 10 {
		t.Fatalf("got (%v, %d, %d), want (Map, 0, 10)", stage, processed, total)
	}
}

func TestSetTotalResetsProcessed(t *testing.T) {
	w := NewWord(10)
	w.SetStage(Shuffle)
	w.IncrementProcessed()
	w.SetTotal(99)
	stage, processed, total := w.Snapshot()
	if stage != Shuffle || processed != 0 || total != 99 {
		t.Fatalf("got (%v, %d, %d), want (Shuffle, 0, 99)", stage, processed, total)
	}
}

func TestSetAll(t *testing.T) {
	w := NewWord(1)
	w.SetAll(Reduce, 7, 7)
	stage, processed, total := w.Snapshot()
	if stage != Reduce || processed != 7 || total != 7 {
		t.Fatalf("got (%v, %d, %d), want (Reduce, 7, 7)", stage, processed, total)
	}
}

func TestConcurrentIncrementProcessed(t *testing.T) {
	const n = 5000
	w := NewWord(n)
	w.SetStage(Map)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			w.IncrementProcessed()
		}()
	}
	wg.Wait()

	_, processed, total := w.Snapshot()
	if processed != n {
		t.Fatalf("processed = %d, want %d", processed, n)
	}
	if total != n {
		t.Fatalf("total = %d, want %d", total, n)
	}
}

func TestNoTearing(t *testing.T) {
	// Every observed snapshot must have processed <= total for a fixed
	// total under concurrent increments (steady phase, no resets).
	const n = 2000
	w := NewWord(n)
	w.SetStage(Map)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < n; i++ {
			w.IncrementProcessed()
		}
	}()

	for {
		select {
		case <-done:
			return
		default:
			_, processed, total := w.Snapshot()
			if processed > total {
				t.Fatalf("torn read: processed=%d > total=%d", processed, total)
			}
		}
	}
}
