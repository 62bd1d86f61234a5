// Package dux is a unidirectional state container with a hierarchical
// container binding layer.
//
// A single state value is replaced through pure reducers invoked by Dispatch.
// Containers derive their props from the state with memoized selectors and
// subscribe through a tree of Subscription nodes, so a child always recomputes
// after its parent and only when its own derived props changed.
package dux

import "github.com/AnatoleLucet/dux/internal"

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

type (
	Action        = internal.Action
	Typed         = internal.Typed
	Reducer       = internal.Reducer
	Dispatch      = internal.Dispatch
	Listener      = internal.Listener
	Unsubscribe   = internal.Unsubscribe
	Store         = internal.Store
	StoreCreator  = internal.StoreCreator
	Enhancer      = internal.Enhancer
	Middleware    = internal.Middleware
	MiddlewareAPI = internal.MiddlewareAPI

	ActionCreator      = internal.ActionCreator
	BoundActionCreator = internal.BoundActionCreator

	Observable    = internal.Observable
	StateObserver = internal.StateObserver
	ObserverFunc  = internal.ObserverFunc

	Props     = internal.Props
	MergeFunc = internal.MergeFunc
	EqualFunc = internal.EqualFunc

	Host          = internal.Host
	ErrorReporter = internal.ErrorReporter
	Binding       = internal.Binding
	Connector     = internal.Connector
	Container     = internal.Container
	ConnectOption = internal.ConnectOption
	ErrorMode     = internal.ErrorMode
	Subscription  = internal.Subscription

	Warning    = internal.Warning
	Warner     = internal.Warner
	WarnerFunc = internal.WarnerFunc
	Config     = internal.Config

	UndefinedStateError = internal.UndefinedStateError
	ReducerShapeError   = internal.ReducerShapeError
	KeyedReducerError   = internal.KeyedReducerError
	SelectorError       = internal.SelectorError
)

// Selector is a resolved selector stage over In (the state, or Dispatch).
type Selector[In any] = internal.Selector[In]

// MapToProps is a stage definition: Direct or Factory.
type MapToProps[In any] = internal.MapToProps[In]

// ActionTypeInit is dispatched privately when a store is created or its
// reducer replaced. Reducers must treat it like any unknown action.
const ActionTypeInit = internal.ActionTypeInit

const (
	ErrorDeferred  = internal.ErrorDeferred
	ErrorImmediate = internal.ErrorImmediate
)

var (
	ErrType           = internal.ErrType
	ErrIllegalState   = internal.ErrIllegalState
	ErrUndefinedState = internal.ErrUndefinedState
)

// Null is the state a reducer returns when it holds no value on purpose.
var Null = internal.Null

type storeOptions struct {
	preloadedState any
	enhancer       Enhancer
}

// Option configures CreateStore.
type Option func(*storeOptions)

// WithPreloadedState seeds the state before the init action runs.
func WithPreloadedState(state any) Option {
	return func(o *storeOptions) { o.preloadedState = state }
}

// WithEnhancer delegates store creation to the enhancer. Several calls
// compose, the first one outermost.
func WithEnhancer(enhancer Enhancer) Option {
	return func(o *storeOptions) {
		if o.enhancer == nil {
			o.enhancer = enhancer
			return
		}
		o.enhancer = internal.ComposeEnhancers(o.enhancer, enhancer)
	}
}

// CreateStore creates a store holding the state produced by reducer.
func CreateStore(reducer Reducer, opts ...Option) (Store, error) {
	options := &storeOptions{}
	for _, opt := range opts {
		opt(options)
	}

	return internal.CreateStore(reducer, options.preloadedState, options.enhancer)
}

// State returns the store's state as T, the zero value when the state is nil.
func State[T any](s Store) T {
	return as[T](s.GetState())
}

// TypeOf returns the type of an action, nil when it has none.
func TypeOf(action any) any { return internal.TypeOf(action) }

// IsPlainRecord reports whether v is a map with string keys or a struct value.
func IsPlainRecord(v any) bool { return internal.IsPlainRecord(v) }

// CombineReducers merges keyed reducers into one reducer over a map[string]any.
func CombineReducers(reducers map[string]Reducer) Reducer {
	return internal.CombineReducers(reducers)
}

// CombineReducersWithWarner is CombineReducers with shape warnings sent to w.
func CombineReducersWithWarner(reducers map[string]Reducer, w Warner) Reducer {
	return internal.CombineReducers(reducers, internal.WithCombineWarner(w))
}

// Compose chains functions right to left.
func Compose[T any](fns ...func(T) T) func(T) T {
	return internal.Compose(fns...)
}

// ComposeEnhancers chains enhancers right to left.
func ComposeEnhancers(enhancers ...Enhancer) Enhancer {
	return internal.ComposeEnhancers(enhancers...)
}

// ApplyMiddleware wraps dispatch with the middlewares, the first outermost.
func ApplyMiddleware(middlewares ...Middleware) Enhancer {
	return internal.ApplyMiddleware(middlewares...)
}

// BindActionCreator makes calling creator dispatch its action.
func BindActionCreator(creator ActionCreator, dispatch Dispatch) BoundActionCreator {
	return internal.BindActionCreator(creator, dispatch)
}

// BindActionCreators binds every creator of the map.
func BindActionCreators(creators map[string]ActionCreator, dispatch Dispatch) map[string]BoundActionCreator {
	return internal.BindActionCreators(creators, dispatch)
}

// NewSubscription creates an idle subscription node attached under parent, or
// to the store when parent is nil.
func NewSubscription(store Store, parent *Subscription, onStateChange Listener) *Subscription {
	return internal.NewSubscription(store, parent, onStateChange)
}

// MapState is a state stage that reads only the state.
func MapState(fn func(state any) any) MapToProps[any] {
	return internal.Direct(internal.StateOnly(fn))
}

// MapStateWithProps is a state stage that also reads own props.
func MapStateWithProps(fn func(state any, ownProps Props) any) MapToProps[any] {
	return internal.Direct(internal.WithOwnProps(fn))
}

// MapStateFactory runs build once per container and uses the selector it
// returns from then on.
func MapStateFactory(build func(state any, ownProps Props) Selector[any]) MapToProps[any] {
	return internal.Factory(build)
}

// MapDispatch is a dispatch stage that ignores own props.
func MapDispatch(fn func(dispatch Dispatch) any) MapToProps[Dispatch] {
	return internal.Direct(internal.StateOnly(fn))
}

// MapDispatchWithProps is a dispatch stage that reads own props.
func MapDispatchWithProps(fn func(dispatch Dispatch, ownProps Props) any) MapToProps[Dispatch] {
	return internal.Direct(internal.WithOwnProps(fn))
}

// MapDispatchFactory runs build once per container.
func MapDispatchFactory(build func(dispatch Dispatch, ownProps Props) Selector[Dispatch]) MapToProps[Dispatch] {
	return internal.Factory(build)
}

// MapDispatchObject exposes the creators, bound to dispatch, as props.
func MapDispatchObject(creators map[string]ActionCreator) MapToProps[Dispatch] {
	return internal.DispatchObject(creators)
}

// StateOnly builds a selector that ignores own props.
func StateOnly[In any](fn func(in In) any) Selector[In] {
	return internal.StateOnly(fn)
}

// WithOwnProps builds a selector that reads own props.
func WithOwnProps[In any](fn func(in In, ownProps Props) any) Selector[In] {
	return internal.WithOwnProps(fn)
}

// NoState omits the state stage: containers do not subscribe.
func NoState() MapToProps[any] { return MapToProps[any]{} }

// NoDispatch omits the dispatch stage: containers receive "dispatch".
func NoDispatch() MapToProps[Dispatch] { return MapToProps[Dispatch]{} }

// Connect builds a Connector from the three stages. A nil merge uses
// DefaultMerge.
func Connect(mapState MapToProps[any], mapDispatch MapToProps[Dispatch], merge MergeFunc, opts ...ConnectOption) *Connector {
	return internal.Connect(mapState, mapDispatch, merge, opts...)
}

// DefaultMerge layers own props, state props and dispatch props.
func DefaultMerge(stateProps, dispatchProps any, ownProps Props) any {
	return internal.DefaultMerge(stateProps, dispatchProps, ownProps)
}

// WithName labels the containers in errors, warnings and Subscription.Tree.
func WithName(name string) ConnectOption { return internal.WithName(name) }

// WithPure toggles memoization. Impure containers recompute every stage on
// every run.
func WithPure(pure bool) ConnectOption { return internal.WithPure(pure) }

// WithErrorMode overrides the DUX_SELECTOR_ERRORS default for these containers.
func WithErrorMode(mode ErrorMode) ConnectOption { return internal.WithErrorMode(mode) }

// WithWarner sends the containers' developer warnings to w.
func WithWarner(w Warner) ConnectOption { return internal.WithWarner(w) }

// WithAreStatesEqual decides when the store state counts as unchanged.
// Defaults to StrictEqual.
func WithAreStatesEqual(fn EqualFunc) ConnectOption { return internal.WithAreStatesEqual(fn) }

// WithAreOwnPropsEqual decides when own props count as unchanged. Defaults to
// ShallowEqual.
func WithAreOwnPropsEqual(fn EqualFunc) ConnectOption { return internal.WithAreOwnPropsEqual(fn) }

// WithAreStatePropsEqual decides when the state stage result counts as
// unchanged. Defaults to ShallowEqual.
func WithAreStatePropsEqual(fn EqualFunc) ConnectOption { return internal.WithAreStatePropsEqual(fn) }

// WithAreMergedPropsEqual decides when a custom merge result counts as
// unchanged. Defaults to ShallowEqual.
func WithAreMergedPropsEqual(fn EqualFunc) ConnectOption { return internal.WithAreMergedPropsEqual(fn) }

// StrictEqual is reference identity.
func StrictEqual(a, b any) bool { return internal.StrictEqual(a, b) }

// ShallowEqual compares records key by key with StrictEqual.
func ShallowEqual(a, b any) bool { return internal.ShallowEqual(a, b) }

// SetDefaultWarner replaces the process-wide warning channel. nil restores
// the slog default.
func SetDefaultWarner(w Warner) { internal.SetDefaultWarner(w) }

// LoadConfig reads the DUX_* environment variables.
func LoadConfig() (Config, error) { return internal.LoadConfig() }
