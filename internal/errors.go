package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrType is the class of contract violations on argument shape: non-record
	// actions, undefined action types, nil listeners, reducers or observers.
	ErrType = errors.New("type error")

	// ErrIllegalState is the class of calls made at a point where they are not
	// allowed, such as dispatching from inside a reducer.
	ErrIllegalState = errors.New("illegal state")

	// ErrUndefinedState is wrapped by every error reporting a reducer that
	// returned undefined (nil) state.
	ErrUndefinedState = errors.New("reducer returned undefined")
)

func typeErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrType}, args...)...)
}

func illegalStatef(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrIllegalState}, args...)...)
}

// UndefinedStateError is returned by a combined reducer when one of its
// sub-reducers returned undefined for a dispatched action.
type UndefinedStateError struct {
	Key        string
	ActionType any
}

func (e *UndefinedStateError) Error() string {
	name := "an action"
	if e.ActionType != nil {
		name = fmt.Sprintf("%q", fmt.Sprint(e.ActionType))
	}

	return fmt.Sprintf(
		"given action %s, reducer %q returned undefined; to ignore an action you must explicitly return the previous state, to hold no value return Null",
		name, e.Key,
	)
}

func (e *UndefinedStateError) Unwrap() error { return ErrUndefinedState }

// ReducerShapeError is captured when a combined reducer is built and a
// sub-reducer fails the initialization or unknown-action probe. It surfaces on
// the first invocation of the combined reducer.
type ReducerShapeError struct {
	Key   string
	Probe string
	Cause error
}

func (e *ReducerShapeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("reducer %q failed when probed with %s: %v", e.Key, e.Probe, e.Cause)
	}

	if e.Probe == ActionTypeInit {
		return fmt.Sprintf(
			"reducer %q returned undefined during initialization; if the state passed to the reducer is undefined, you must explicitly return the initial state, which may be Null but not undefined",
			e.Key,
		)
	}

	return fmt.Sprintf(
		"reducer %q returned undefined when probed with a random type; don't try to handle %s or other actions in the %q namespace, return the current state for any unknown action",
		e.Key, ActionTypeInit, privatePrefix,
	)
}

func (e *ReducerShapeError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return ErrUndefinedState
}

// KeyedReducerError wraps an error returned by one sub-reducer of a combined
// reducer.
type KeyedReducerError struct {
	Key   string
	Cause error
}

func (e *KeyedReducerError) Error() string {
	return fmt.Sprintf("reducer %q: %v", e.Key, e.Cause)
}

func (e *KeyedReducerError) Unwrap() error { return e.Cause }

// SelectorError records a panic raised by one stage of a container's selector.
type SelectorError struct {
	Container  string
	Stage      string
	Recovered  any
	StackTrace []byte
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("selector %s of %s panicked: %v", e.Stage, e.Container, e.Recovered)
}

func (e *SelectorError) Unwrap() error {
	if err, ok := e.Recovered.(error); ok {
		return err
	}
	return nil
}
