package internal

import "slices"

// Listener is a zero-argument change callback.
type Listener func()

// Unsubscribe detaches a listener. Calling it more than once is a no-op.
type Unsubscribe func()

type listenerEntry struct {
	fn Listener
}

// ListenerCollection holds listeners with copy-on-write snapshots.
//
// notify captures `next` as `current` and iterates that slice. Any
// subscribe/unsubscribe during the iteration clones `next` first, so the
// in-flight notification keeps its snapshot and the change is seen by the
// following one.
type ListenerCollection struct {
	current []*listenerEntry
	next    []*listenerEntry

	// next and current share backing storage until the next mutation
	shared  bool
	cleared bool
}

func NewListenerCollection() *ListenerCollection {
	return &ListenerCollection{
		current: make([]*listenerEntry, 0),
		next:    make([]*listenerEntry, 0),
	}
}

func (c *ListenerCollection) ensureCanMutateNext() {
	if c.shared {
		c.next = slices.Clone(c.next)
		c.shared = false
	}
}

// Subscribe registers fn for the next notification.
func (c *ListenerCollection) Subscribe(fn Listener) Unsubscribe {
	if c.cleared {
		return func() {}
	}

	entry := &listenerEntry{fn: fn}

	c.ensureCanMutateNext()
	c.next = append(c.next, entry)

	subscribed := true
	return func() {
		if !subscribed || c.cleared {
			return
		}
		subscribed = false

		c.ensureCanMutateNext()
		if i := slices.Index(c.next, entry); i >= 0 {
			c.next = slices.Delete(c.next, i, i+1)
		}
	}
}

// Notify calls every listener registered when it starts, in registration
// order. Iteration stops early if the collection is cleared by a listener.
func (c *ListenerCollection) Notify() {
	if c.cleared {
		return
	}

	listeners := c.next
	c.current = listeners
	c.shared = true

	for _, entry := range listeners {
		if c.cleared {
			return
		}
		entry.fn()
	}
}

// Listeners returns the listeners the next notification will call.
func (c *ListenerCollection) Listeners() []Listener {
	listeners := make([]Listener, len(c.next))
	for i, entry := range c.next {
		listeners[i] = entry.fn
	}
	return listeners
}

// Len is the number of listeners the next notification will call.
func (c *ListenerCollection) Len() int {
	return len(c.next)
}

// Clear drops every listener; later subscriptions are ignored.
func (c *ListenerCollection) Clear() {
	c.current = nil
	c.next = nil
	c.shared = false
	c.cleared = true
}
