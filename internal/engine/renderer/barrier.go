package renderer

import "sync"

// Barrier is a reusable rendezvous for a fixed number of goroutines.
// Each Wait blocks until n calls of the current generation have arrived.
type Barrier struct {
	mu   sync.Mutex
	cond *sync.Cond

	n     int
	count int
	gen   uint64
}

// NewBarrier creates a barrier for n parties. It panics if n < 1.
func NewBarrier(n int) *Barrier {
	if n < 1 {
		panic("renderer: barrier needs at least one party")
	}
	b := &Barrier{n: n}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until all parties have called Wait for this generation.
func (b *Barrier) Wait() {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.gen
	b.count++
	if b.count == b.n {
		b.count = 0
		b.gen++
		b.cond.Broadcast()
		return
	}

	for gen == b.gen {
		b.cond.Wait()
	}
}

// Parties returns the number of goroutines the barrier waits for.
func (b *Barrier) Parties() int {
	return b.n
}
