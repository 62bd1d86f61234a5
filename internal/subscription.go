package internal

import (
	"fmt"
	"slices"

	"github.com/m1gwings/treedrawer/tree"
)

type subscriptionState int

const (
	subscriptionIdle subscriptionState = iota
	subscriptionActive
	subscriptionClosed
)

func (s subscriptionState) String() string {
	switch s {
	case subscriptionIdle:
		return "idle"
	case subscriptionActive:
		return "subscribed"
	default:
		return "closed"
	}
}

// Subscription is one node of the notification tree mirroring the container
// hierarchy. A node attaches to its parent node, or to the store when it has
// none, and relays notifications to its own children only when its owner says
// so. Nodes are not safe for concurrent use; they are driven by the host tree
// and by the store's notification, which must run on the same goroutine.
type Subscription struct {
	name string

	store  Store
	parent *Subscription

	// called on every notification from the parent or the store
	onStateChange Listener

	unsubscribe Unsubscribe
	listeners   *ListenerCollection

	// child nodes attached through this node, in attachment order
	children []*Subscription

	state subscriptionState
}

// NewSubscription creates an idle node. A nil onStateChange relays every
// notification straight to the node's children.
func NewSubscription(store Store, parent *Subscription, onStateChange Listener) *Subscription {
	s := &Subscription{
		store:         store,
		parent:        parent,
		onStateChange: onStateChange,
		state:         subscriptionIdle,
	}

	if s.onStateChange == nil {
		s.onStateChange = s.NotifyNestedSubs
	}

	return s
}

// Name labels the node in Tree output.
func (s *Subscription) Name() string {
	if s.name == "" {
		return "subscription"
	}
	return s.name
}

func (s *Subscription) SetName(name string) { s.name = name }

// Parent is the node this one attaches to, nil when it attaches to the store.
func (s *Subscription) Parent() *Subscription { return s.parent }

// AddNestedSub registers a listener notified by NotifyNestedSubs. The node
// subscribes itself first if it has not yet.
func (s *Subscription) AddNestedSub(listener Listener) Unsubscribe {
	s.TrySubscribe()

	if s.state != subscriptionActive {
		return func() {}
	}

	return s.listeners.Subscribe(listener)
}

func (s *Subscription) addChild(child *Subscription) Unsubscribe {
	unsubscribe := s.AddNestedSub(child.handleChange)
	if s.state == subscriptionActive {
		s.children = append(s.children, child)
	}

	return func() {
		unsubscribe()
		if i := slices.Index(s.children, child); i >= 0 {
			s.children = slices.Delete(s.children, i, i+1)
		}
	}
}

// NotifyNestedSubs notifies this node's children in attachment order.
func (s *Subscription) NotifyNestedSubs() {
	if s.state != subscriptionActive {
		return
	}

	s.listeners.Notify()
}

// IsSubscribed reports whether the node is attached.
func (s *Subscription) IsSubscribed() bool {
	return s.state == subscriptionActive
}

// TrySubscribe attaches the node to its parent or to the store. It is a no-op
// once attached and after TryUnsubscribe.
func (s *Subscription) TrySubscribe() {
	if s.state != subscriptionIdle {
		return
	}

	s.listeners = NewListenerCollection()
	s.state = subscriptionActive

	if s.parent != nil {
		s.unsubscribe = s.parent.addChild(s)
		return
	}

	unsubscribe, err := s.store.Subscribe(s.handleChange)
	if err != nil {
		// handleChange is never nil
		panic(err)
	}
	s.unsubscribe = unsubscribe
}

// TryUnsubscribe detaches the node for good and drops its children. Later
// notifications are ignored.
func (s *Subscription) TryUnsubscribe() {
	if s.state == subscriptionActive {
		s.unsubscribe()
		s.unsubscribe = nil
		s.listeners.Clear()
		s.children = nil
	}

	s.state = subscriptionClosed
}

func (s *Subscription) handleChange() {
	if s.state != subscriptionActive {
		return
	}

	s.onStateChange()
}

// Tree renders the node and its attached descendants.
func (s *Subscription) Tree() string {
	t := tree.NewTree(tree.NodeString(s.label()))
	s.drawChildren(t)

	return t.String()
}

func (s *Subscription) drawChildren(t *tree.Tree) {
	for _, child := range s.children {
		child.drawChildren(t.AddChild(tree.NodeString(child.label())))
	}
}

func (s *Subscription) label() string {
	if s.state != subscriptionActive {
		return fmt.Sprintf("%s (%s)", s.Name(), s.state)
	}

	// listeners that are not child nodes
	extra := s.listeners.Len() - len(s.children)
	if extra > 0 {
		return fmt.Sprintf("%s +%d", s.Name(), extra)
	}
	return s.Name()
}
