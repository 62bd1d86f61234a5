package internal

// StateObserver receives every state the store settles on.
type StateObserver interface {
	Next(state any)
}

// ObserverFunc adapts a function to StateObserver.
type ObserverFunc func(state any)

func (f ObserverFunc) Next(state any) { f(state) }

// Observable is a minimal reactive-stream view of a store, for consumers that
// speak the observer pattern rather than the listener API.
type Observable struct {
	store Store
}

// Subscribe pushes the current state to observer right away, then after every
// notification until the returned function is called.
func (o *Observable) Subscribe(observer StateObserver) (Unsubscribe, error) {
	if observer == nil {
		return nil, typeErrorf("expected the observer to be non-nil")
	}

	observeState := func() {
		observer.Next(o.store.GetState())
	}

	observeState()
	return o.store.Subscribe(observeState)
}
