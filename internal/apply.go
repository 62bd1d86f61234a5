package internal

// MiddlewareAPI is what a middleware sees of the store.
type MiddlewareAPI interface {
	GetState() any

	// Dispatch always goes through the full middleware chain, even when the
	// middleware captured it before the chain was assembled.
	Dispatch(action any) (any, error)
}

// Middleware wraps dispatch: given the API it returns a function turning the
// next dispatch in the chain into its own.
type Middleware func(api MiddlewareAPI) func(next Dispatch) Dispatch

type middlewareAPI struct {
	getState func() any
	dispatch *Dispatch
}

func (a *middlewareAPI) GetState() any { return a.getState() }

func (a *middlewareAPI) Dispatch(action any) (any, error) { return (*a.dispatch)(action) }

// enhancedStore is the base store with its dispatch replaced.
type enhancedStore struct {
	Store
	dispatch Dispatch
}

func (s *enhancedStore) Dispatch(action any) (any, error) { return s.dispatch(action) }

// ApplyMiddleware returns an enhancer wrapping the store's dispatch with the
// middlewares, the first one outermost. It must be the first enhancer
// applied: enhancers built on top of it only see the composed dispatch.
func ApplyMiddleware(middlewares ...Middleware) Enhancer {
	return func(next StoreCreator) StoreCreator {
		return func(reducer Reducer, preloadedState any) (Store, error) {
			base, err := next(reducer, preloadedState)
			if err != nil {
				return nil, err
			}

			dispatch := Dispatch(base.Dispatch)
			api := &middlewareAPI{
				getState: base.GetState,
				dispatch: &dispatch,
			}

			chain := make([]func(Dispatch) Dispatch, 0, len(middlewares))
			for _, middleware := range middlewares {
				if middleware == nil {
					continue
				}
				chain = append(chain, middleware(api))
			}

			dispatch = Compose(chain...)(base.Dispatch)

			return &enhancedStore{Store: base, dispatch: dispatch}, nil
		}
	}
}
