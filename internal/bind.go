package internal

// ActionCreator builds an action from arguments.
type ActionCreator func(args ...any) any

// BoundActionCreator creates an action and dispatches it.
type BoundActionCreator func(args ...any) (any, error)

// BindActionCreator wraps one creator so that calling it dispatches.
func BindActionCreator(creator ActionCreator, dispatch Dispatch) BoundActionCreator {
	return func(args ...any) (any, error) {
		return dispatch(creator(args...))
	}
}

// BindActionCreators wraps every non-nil creator of the map.
func BindActionCreators(creators map[string]ActionCreator, dispatch Dispatch) map[string]BoundActionCreator {
	bound := make(map[string]BoundActionCreator, len(creators))
	for key, creator := range creators {
		if creator == nil {
			continue
		}
		bound[key] = BindActionCreator(creator, dispatch)
	}

	return bound
}

// DispatchObject is a dispatch stage that binds every creator once per
// container and exposes the bound creators as props.
func DispatchObject(creators map[string]ActionCreator) MapToProps[Dispatch] {
	return constant(func(dispatch Dispatch) any {
		props := make(Props, len(creators))
		for key, bound := range BindActionCreators(creators, dispatch) {
			props[key] = bound
		}
		return props
	})
}
