package systems

// Pool recycles particle records. Acquire never zeroes a record; callers
// reset every field they rely on. Release runs the teardown hook before the
// record becomes available again, so the hook may still acquire new records
// without receiving the one being released.
type Pool[T any] struct {
	free      []*T
	teardown  func(*T)
	allocated int
}

// NewPool creates a pool. teardown may be nil.
func NewPool[T any](teardown func(*T)) *Pool[T] {
	return &Pool[T]{
		free:     make([]*T, 0, 256),
		teardown: teardown,
	}
}

// Acquire returns a recycled record or allocates a new one.
func (p *Pool[T]) Acquire() *T {
	if n := len(p.free); n > 0 {
		item := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return item
	}
	p.allocated++
	return new(T)
}

// Release runs the teardown hook and returns item to the free list. The
// caller must hold no other reference to item.
func (p *Pool[T]) Release(item *T) {
	if p.teardown != nil {
		p.teardown(item)
	}
	p.free = append(p.free, item)
}

// Free returns the number of idle records.
func (p *Pool[T]) Free() int {
	return len(p.free)
}

// Allocated returns the number of records ever allocated by the pool.
func (p *Pool[T]) Allocated() int {
	return p.allocated
}
