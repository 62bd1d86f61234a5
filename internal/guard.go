package internal

import (
	"sync"
	"sync/atomic"
)

// guard serializes store access across goroutines while letting the goroutine
// that holds it re-enter: a listener may dispatch, subscribe or unsubscribe
// during a notification without deadlocking.
type guard struct {
	mu sync.Mutex

	// goroutine currently holding mu, 0 when free
	owner atomic.Int64
	depth int
}

// enter acquires the guard and reports whether the call re-entered it.
func (g *guard) enter() bool {
	gid := getGID()
	if g.owner.Load() == gid {
		g.depth++
		return true
	}

	g.mu.Lock()
	g.owner.Store(gid)
	g.depth = 1
	return false
}

func (g *guard) exit() {
	g.depth--
	if g.depth == 0 {
		g.owner.Store(0)
		g.mu.Unlock()
	}
}

// run holds the guard for the duration of fn.
func (g *guard) run(fn func()) {
	g.enter()
	defer g.exit()

	fn()
}
