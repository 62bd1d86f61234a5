package internal

// Reducer is a pure state transition. A nil state input means there is no
// state yet; returning nil with no error means "undefined" and is rejected
// where it matters (combined reducers, probes).
type Reducer func(state any, action any) (any, error)

// Dispatch sends an action through the store and returns it, possibly
// transformed by middleware.
type Dispatch func(action any) (any, error)

// Store owns the state, the active reducer and the listener registry.
type Store interface {
	// Dispatch runs the reducer against the action and notifies every
	// listener registered when the notification starts.
	Dispatch(action any) (any, error)

	// Subscribe registers a listener called after every dispatch.
	Subscribe(listener Listener) (Unsubscribe, error)

	// GetState returns the current state.
	GetState() any

	// ReplaceReducer swaps the reducer and re-initializes the state through it.
	ReplaceReducer(next Reducer) error

	// Batch holds listener notifications until fn returns, then notifies once
	// if anything was dispatched.
	Batch(fn func())

	// Observable exposes the state as an observer-pattern stream.
	Observable() *Observable
}

// StoreCreator builds a store. CreateStore is the base creator; enhancers wrap it.
type StoreCreator func(reducer Reducer, preloadedState any) (Store, error)

// Enhancer wraps a StoreCreator to return a more capable store.
type Enhancer func(next StoreCreator) StoreCreator

type store struct {
	guard guard

	reducer Reducer
	state   any

	listeners *ListenerCollection
	batcher   *Batcher

	// a reducer is running
	dispatching bool
}

// CreateStore builds a store and initializes its state with the private init
// action. When enhancer is non-nil, creation is delegated entirely to it.
func CreateStore(reducer Reducer, preloadedState any, enhancer Enhancer) (Store, error) {
	if enhancer != nil {
		return enhancer(baseCreator)(reducer, preloadedState)
	}

	return baseCreator(reducer, preloadedState)
}

func baseCreator(reducer Reducer, preloadedState any) (Store, error) {
	if reducer == nil {
		return nil, typeErrorf("expected the reducer to be a function")
	}

	s := &store{
		reducer:   reducer,
		state:     preloadedState,
		listeners: NewListenerCollection(),
		batcher:   NewBatcher(),
	}

	if _, err := s.Dispatch(Action{"type": ActionTypeInit}); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *store) Dispatch(action any) (any, error) {
	if err := validateAction(action); err != nil {
		return nil, err
	}

	s.guard.enter()
	defer s.guard.exit()

	if s.dispatching {
		return nil, illegalStatef("reducers may not dispatch actions")
	}

	if err := s.reduce(action); err != nil {
		return nil, err
	}

	if s.batcher.IsBatching() {
		s.batcher.Defer()
		return action, nil
	}

	s.listeners.Notify()

	return action, nil
}

func (s *store) reduce(action any) error {
	s.dispatching = true
	defer func() { s.dispatching = false }()

	next, err := s.reducer(s.state, action)
	if err != nil {
		return err
	}

	s.state = next
	return nil
}

func (s *store) Subscribe(listener Listener) (Unsubscribe, error) {
	if listener == nil {
		return nil, typeErrorf("expected the listener to be a function")
	}

	var unsubscribe Unsubscribe
	s.guard.run(func() {
		unsubscribe = s.listeners.Subscribe(listener)
	})

	return func() {
		s.guard.run(unsubscribe)
	}, nil
}

func (s *store) GetState() any {
	s.guard.enter()
	defer s.guard.exit()

	return s.state
}

func (s *store) ReplaceReducer(next Reducer) error {
	if next == nil {
		return typeErrorf("expected the next reducer to be a function")
	}

	s.guard.enter()
	defer s.guard.exit()

	if s.dispatching {
		return illegalStatef("reducers may not replace the reducer")
	}

	s.reducer = next

	_, err := s.Dispatch(Action{"type": ActionTypeInit})
	return err
}

func (s *store) Batch(fn func()) {
	s.guard.enter()
	defer s.guard.exit()

	s.batcher.Batch(fn, s.listeners.Notify)
}

func (s *store) Observable() *Observable {
	return &Observable{store: s}
}
