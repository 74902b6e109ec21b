package game

// Handle identifies a slot in a Pool. It is the entry's fixed slot index.
type Handle int32

// NoHandle is returned by Acquire when the pool is exhausted.
const NoHandle Handle = -1

// Pool is a fixed-capacity recycler for spawned entities.
// Entries are built once by the factory and never reallocated. Each slot is
// either free or active; the active set is kept dense so iteration touches
// only live entries and Release is O(1).
type Pool[T any] struct {
	entries   []T
	live      []Handle // dense list of active slots
	index     []int    // slot -> position in live, -1 while free
	free      []Handle // stack of free slots
	onRelease func(*T)
}

// NewPool creates a pool of capacity entries. newFn builds the entry for a
// slot; onRelease (optional) clears transient state when an entry goes back
// to the free set.
func NewPool[T any](capacity int, newFn func(slot int) T, onRelease func(*T)) *Pool[T] {
	if capacity < 0 {
		capacity = 0
	}
	p := &Pool[T]{
		entries:   make([]T, capacity),
		live:      make([]Handle, 0, capacity),
		index:     make([]int, capacity),
		free:      make([]Handle, 0, capacity),
		onRelease: onRelease,
	}
	for i := range p.entries {
		if newFn != nil {
			p.entries[i] = newFn(i)
		}
		p.index[i] = -1
	}
	// Push in reverse so slot 0 is handed out first.
	for i := capacity - 1; i >= 0; i-- {
		p.free = append(p.free, Handle(i))
	}
	return p
}

// Cap returns the fixed capacity.
func (p *Pool[T]) Cap() int { return len(p.entries) }

// Len returns the number of active entries.
func (p *Pool[T]) Len() int { return len(p.live) }

// Free returns the number of entries available to Acquire.
func (p *Pool[T]) Free() int { return len(p.free) }

// Acquire takes a free entry and marks it active.
// When the pool is exhausted it returns NoHandle, nil, false; callers drop the spawn.
func (p *Pool[T]) Acquire() (Handle, *T, bool) {
	n := len(p.free)
	if n == 0 {
		return NoHandle, nil, false
	}
	h := p.free[n-1]
	p.free = p.free[:n-1]
	p.index[h] = len(p.live)
	p.live = append(p.live, h)
	return h, &p.entries[h], true
}

// Active reports whether h is a currently active slot.
func (p *Pool[T]) Active(h Handle) bool {
	return h >= 0 && int(h) < len(p.entries) && p.index[h] >= 0
}

// Release returns h to the free set. Releasing a free or unknown handle is a no-op.
func (p *Pool[T]) Release(h Handle) {
	if !p.Active(h) {
		return
	}
	pos := p.index[h]
	last := len(p.live) - 1
	moved := p.live[last]
	p.live[pos] = moved
	p.index[moved] = pos
	p.live = p.live[:last]
	p.index[h] = -1

	if p.onRelease != nil {
		p.onRelease(&p.entries[h])
	}
	p.free = append(p.free, h)
}

// ResetAll releases every active entry.
func (p *Pool[T]) ResetAll() {
	for len(p.live) > 0 {
		p.Release(p.live[len(p.live)-1])
	}
}

// ForEach visits every active entry. Returning true from fn releases that
// entry; entries are visited from the back of the live list so a release
// never skips an unvisited entry.
func (p *Pool[T]) ForEach(fn func(h Handle, e *T) (release bool)) {
	for i := len(p.live) - 1; i >= 0; i-- {
		if i >= len(p.live) {
			continue
		}
		h := p.live[i]
		if fn(h, &p.entries[h]) {
			p.Release(h)
		}
	}
}

// Each visits every active entry read-only, in live-list order.
func (p *Pool[T]) Each(fn func(h Handle, e *T)) {
	for _, h := range p.live {
		fn(h, &p.entries[h])
	}
}
