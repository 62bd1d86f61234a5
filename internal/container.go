package internal

import (
	"sync"
)

// Host is the capability the view tree lends to a container. After
// RequestUpdate the host recomputes the container the way it would for new own
// props: ShouldUpdate, then Render, then DidUpdate.
type Host interface {
	RequestUpdate()
}

// ErrorReporter is implemented by hosts that want selector failures as soon as
// they happen. It is only used in ErrorImmediate mode.
type ErrorReporter interface {
	ReportError(err error)
}

// Binding is what a container receives from its nearest bound ancestor: the
// store and the subscription node to attach under (nil: attach to the store).
type Binding struct {
	Store        Store
	Subscription *Subscription
}

// ConnectOption configures a Connector.
type ConnectOption func(*connectConfig)

type connectConfig struct {
	name string
	pure bool

	areStatesEqual      EqualFunc
	areOwnPropsEqual    EqualFunc
	areStatePropsEqual  EqualFunc
	areMergedPropsEqual EqualFunc

	errorMode ErrorMode
	warner    Warner
}

type connectDefinition struct {
	mapState    MapToProps[any]
	mapDispatch MapToProps[Dispatch]
	merge       MergeFunc
}

func WithName(name string) ConnectOption {
	return func(c *connectConfig) { c.name = name }
}

// WithPure toggles pure mode. Impure containers recompute every stage on
// every run.
func WithPure(pure bool) ConnectOption {
	return func(c *connectConfig) { c.pure = pure }
}

func WithAreStatesEqual(fn EqualFunc) ConnectOption {
	return func(c *connectConfig) { c.areStatesEqual = fn }
}

func WithAreOwnPropsEqual(fn EqualFunc) ConnectOption {
	return func(c *connectConfig) { c.areOwnPropsEqual = fn }
}

func WithAreStatePropsEqual(fn EqualFunc) ConnectOption {
	return func(c *connectConfig) { c.areStatePropsEqual = fn }
}

func WithAreMergedPropsEqual(fn EqualFunc) ConnectOption {
	return func(c *connectConfig) { c.areMergedPropsEqual = fn }
}

func WithErrorMode(mode ErrorMode) ConnectOption {
	return func(c *connectConfig) { c.errorMode = mode }
}

func WithWarner(w Warner) ConnectOption {
	return func(c *connectConfig) { c.warner = w }
}

// Connector holds the selector definition shared by every container instance
// it creates. Replacing the definition bumps a version that live containers
// pick up on their next recompute.
type Connector struct {
	mu      sync.RWMutex
	def     connectDefinition
	version uint64

	config connectConfig
}

// Connect builds a Connector. A zero mapState means the containers do not
// subscribe to the store; a zero mapDispatch injects the dispatch function
// under "dispatch"; a nil merge uses DefaultMerge.
func Connect(mapState MapToProps[any], mapDispatch MapToProps[Dispatch], merge MergeFunc, opts ...ConnectOption) *Connector {
	cfg := connectConfig{
		name:                "Connect",
		pure:                true,
		areStatesEqual:      StrictEqual,
		areOwnPropsEqual:    ShallowEqual,
		areStatePropsEqual:  ShallowEqual,
		areMergedPropsEqual: ShallowEqual,
		errorMode:           CurrentConfig().SelectorErrors,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.areStatesEqual == nil {
		cfg.areStatesEqual = StrictEqual
	}
	if cfg.areOwnPropsEqual == nil {
		cfg.areOwnPropsEqual = ShallowEqual
	}
	if cfg.areStatePropsEqual == nil {
		cfg.areStatePropsEqual = ShallowEqual
	}
	if cfg.areMergedPropsEqual == nil {
		cfg.areMergedPropsEqual = ShallowEqual
	}

	return &Connector{
		def: connectDefinition{
			mapState:    mapState,
			mapDispatch: mapDispatch,
			merge:       merge,
		},
		config: cfg,
	}
}

// Replace swaps the selector definition of every container of this connector.
// Containers keep their subscription node and attached descendants.
func (c *Connector) Replace(mapState MapToProps[any], mapDispatch MapToProps[Dispatch], merge MergeFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.def = connectDefinition{
		mapState:    mapState,
		mapDispatch: mapDispatch,
		merge:       merge,
	}
	c.version++
}

func (c *Connector) snapshot() (connectDefinition, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.def, c.version
}

func (c *Connector) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.version
}

// Container binds one view-tree node to the store.
type Container struct {
	connector *Connector
	version   uint64

	store     Store
	parentSub *Subscription
	host      Host

	ownProps Props
	selector *statefulSelector

	// nil when the container has no state stage
	subscription *Subscription

	// set when a state notification requested the pending update
	notifyOnDidUpdate bool
	handlesState      bool
	unmounted         bool
}

// New creates a container instance under binding and computes its first props.
// It does not subscribe until DidMount.
func (c *Connector) New(binding Binding, host Host, ownProps Props) (*Container, error) {
	if binding.Store == nil {
		return nil, typeErrorf("could not find the store for %s; pass it in the Binding", c.config.name)
	}
	if host == nil {
		return nil, typeErrorf("%s needs a host", c.config.name)
	}

	def, version := c.snapshot()

	container := &Container{
		connector:    c,
		version:      version,
		store:        binding.Store,
		parentSub:    binding.Subscription,
		host:         host,
		ownProps:     ownProps,
		handlesState: !def.mapState.omitted(),
	}

	container.initSelector(def)
	container.selector.run(ownProps)

	if container.handlesState {
		container.subscription = NewSubscription(container.store, container.parentSub, container.onStateChange)
		container.subscription.SetName(c.config.name)
	}

	return container, nil
}

func (c *Container) initSelector(def connectDefinition) {
	cfg := &c.connector.config
	tracker := &stageTracker{}

	stages := newSelectorStages(def, cfg, tracker)

	var source finalPropsSelector
	if cfg.pure {
		source = newPureSelector(stages, c.store.Dispatch, cfg)
	} else {
		source = impureSelector(stages, c.store.Dispatch)
	}

	c.selector = newStatefulSelector(cfg.name, source, c.store, tracker)
}

// run recomputes, rebuilding the selector first if the connector's definition
// was replaced.
func (c *Container) run(ownProps Props) {
	if def, version := c.connector.snapshot(); version != c.version {
		c.version = version
		c.initSelector(def)
	}

	c.selector.run(ownProps)

	if err := c.selector.memo.err; err != nil && c.connector.config.errorMode == ErrorImmediate {
		if reporter, ok := c.host.(ErrorReporter); ok {
			reporter.ReportError(err)
		}
	}
}

// DidMount attaches the subscription and catches up with any state change
// that happened between construction and mount.
func (c *Container) DidMount() {
	if c.unmounted || !c.handlesState {
		return
	}

	c.subscription.TrySubscribe()
	c.run(c.ownProps)

	if c.selector.memo.shouldUpdate {
		c.host.RequestUpdate()
	}
}

// WillReceiveProps recomputes against new own props.
func (c *Container) WillReceiveProps(next Props) {
	if c.unmounted {
		return
	}

	c.ownProps = next
	c.run(next)
}

// ShouldUpdate reports whether the last computation changed the props.
func (c *Container) ShouldUpdate() bool {
	if c.unmounted {
		return false
	}

	if c.connector.Version() != c.version {
		c.run(c.ownProps)
	}

	return c.selector.memo.shouldUpdate
}

// Render returns the props to render with, or re-raises the error captured by
// the last computation.
func (c *Container) Render() (any, error) {
	return c.selector.consume()
}

// DidUpdate notifies the nested subscriptions once the update triggered by a
// state notification is done.
func (c *Container) DidUpdate() {
	if !c.notifyOnDidUpdate {
		return
	}

	c.notifyOnDidUpdate = false
	c.notifyNestedSubs()
}

// WillUnmount detaches the container for good. Every later call is a no-op.
func (c *Container) WillUnmount() {
	if c.unmounted {
		return
	}

	if c.subscription != nil {
		c.subscription.TryUnsubscribe()
	}

	c.unmounted = true
	c.notifyOnDidUpdate = false
	c.selector.memo = memo{props: c.selector.memo.props}
}

// ChildBinding is the Binding to hand to containers below this one.
func (c *Container) ChildBinding() Binding {
	sub := c.subscription
	if sub == nil {
		sub = c.parentSub
	}

	return Binding{Store: c.store, Subscription: sub}
}

// Subscription is the container's node, nil when it does not subscribe.
func (c *Container) Subscription() *Subscription {
	return c.subscription
}

func (c *Container) Name() string {
	return c.connector.config.name
}

func (c *Container) IsSubscribed() bool {
	return c.subscription != nil && c.subscription.IsSubscribed()
}

func (c *Container) onStateChange() {
	if c.unmounted {
		return
	}

	c.run(c.ownProps)

	if !c.selector.memo.shouldUpdate {
		c.notifyNestedSubs()
		return
	}

	c.notifyOnDidUpdate = true
	c.host.RequestUpdate()
}

func (c *Container) notifyNestedSubs() {
	if c.subscription != nil {
		c.subscription.NotifyNestedSubs()
	}
}
