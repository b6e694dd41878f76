// Package reactive provides the observable cells the calendar state is built
// on. Writes are synchronous: subscribers run before Set returns, and derived
// values are recomputed when they are read.
//
// Cells are not safe for concurrent use; the model assumes a single UI
// thread mutates them.
package reactive

// Cell is a mutable observable value.
type Cell[T comparable] struct {
	value   T
	version uint64
	nextID  int
	subs    []subscriber[T]
}

type subscriber[T comparable] struct {
	id int
	fn func(T)
}

func NewCell[T comparable](value T) *Cell[T] {
	return &Cell[T]{value: value}
}

func (c *Cell[T]) Get() T {
	return c.value
}

// Set stores value and notifies subscribers when it differs from the
// current one. A subscriber writing the cell again supersedes the pending
// notification round, so later subscribers only ever see the latest value.
func (c *Cell[T]) Set(value T) {
	if c.value == value {
		return
	}
	c.value = value
	c.version++
	version := c.version

	subs := make([]subscriber[T], len(c.subs))
	copy(subs, c.subs)
	for _, s := range subs {
		if c.version != version {
			return
		}
		s.fn(value)
	}
}

// Update applies fn to the current value and stores the result.
func (c *Cell[T]) Update(fn func(T) T) {
	c.Set(fn(c.value))
}

// Subscribe registers fn to run after every change and returns a function
// removing it.
func (c *Cell[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscriber[T]{id: id, fn: fn})

	return func() {
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// Computed is a read-only view derived from other cells. It holds no cache:
// every Get reflects the latest writes.
type Computed[T any] struct {
	fn func() T
}

func NewComputed[T any](fn func() T) *Computed[T] {
	return &Computed[T]{fn: fn}
}

func (c *Computed[T]) Get() T {
	return c.fn()
}
