// Package barrier implements a reusable generation barrier for a fixed
// number of participants.
package barrier

import "sync"

// Barrier is a rendez-vous point for exactly n goroutines. Unlike a
// one-shot sync.WaitGroup, a Barrier can be waited on repeatedly: a
// generation counter distinguishes epochs so a thread arriving at the
// next round never gets woken by the previous round's broadcast.
type Barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	count      int
	generation uint64
	n          int
}

// New creates a Barrier for n participants. n must be at least 1.
func New(n int) *Barrier {
	b := &Barrier{n: n}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks the calling goroutine until all n participants have called
// Wait for the current generation, then releases all of them together.
func (b *Barrier) Wait() {
	b.mu.Lock()
	gen := b.generation
	b.count++
	if b.count < b.n {
		for gen == b.generation {
			b.cond.Wait()
		}
		b.mu.Unlock()
		return
	}
	b.count = 0
	b.generation++
	b.cond.Broadcast()
	b.mu.Unlock()
}
