package internal

// Compose chains single-argument functions right to left:
// Compose(f, g, h)(x) == f(g(h(x))). With no functions it is the identity,
// with one it is that function.
func Compose[T any](fns ...func(T) T) func(T) T {
	switch len(fns) {
	case 0:
		return func(v T) T { return v }
	case 1:
		return fns[0]
	}

	return func(v T) T {
		for i := len(fns) - 1; i >= 0; i-- {
			v = fns[i](v)
		}
		return v
	}
}

// ComposeEnhancers chains store enhancers; the leftmost is outermost.
func ComposeEnhancers(enhancers ...Enhancer) Enhancer {
	fns := make([]func(StoreCreator) StoreCreator, len(enhancers))
	for i, e := range enhancers {
		fns[i] = e
	}

	return Enhancer(Compose(fns...))
}
