package internal

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// CombineOption configures CombineReducers.
type CombineOption func(*combineOptions)

type combineOptions struct {
	warner Warner
}

// WithCombineWarner routes shape warnings to w instead of the default warner.
func WithCombineWarner(w Warner) CombineOption {
	return func(o *combineOptions) { o.warner = w }
}

// CombineReducers merges keyed sub-reducers into one reducer over a
// map[string]any state. Every sub-reducer is probed once here; a failing probe
// is reported by the first call of the returned reducer rather than now.
func CombineReducers(reducers map[string]Reducer, opts ...CombineOption) Reducer {
	options := &combineOptions{}
	for _, opt := range opts {
		opt(options)
	}
	warner := warnerOr(options.warner)

	finalReducers := make(map[string]Reducer, len(reducers))
	for _, key := range slices.Sorted(maps.Keys(reducers)) {
		if reducers[key] == nil {
			warner.Warn(Warning{
				Source:  "combine",
				Message: fmt.Sprintf("no reducer provided for key %q", key),
				Data:    map[string]any{"key": key},
			})
			continue
		}
		finalReducers[key] = reducers[key]
	}
	keys := slices.Sorted(maps.Keys(finalReducers))

	shapeErr := assertReducerShape(keys, finalReducers)
	unexpectedKeyCache := make(map[string]bool)

	return func(state any, action any) (any, error) {
		if shapeErr != nil {
			return nil, shapeErr
		}

		if msg := unexpectedStateShape(state, keys, finalReducers, action, unexpectedKeyCache); msg != "" {
			warner.Warn(Warning{
				Source:  "combine",
				Message: msg,
				Data:    map[string]any{"action": TypeOf(action)},
			})
		}

		prev, _ := state.(map[string]any)

		hasChanged := false
		next := make(map[string]any, len(keys))
		for _, key := range keys {
			prevForKey := prev[key]

			nextForKey, err := finalReducers[key](prevForKey, action)
			if err != nil {
				return nil, &KeyedReducerError{Key: key, Cause: err}
			}
			if nextForKey == nil {
				return nil, &UndefinedStateError{Key: key, ActionType: TypeOf(action)}
			}

			next[key] = nextForKey
			hasChanged = hasChanged || !StrictEqual(nextForKey, prevForKey)
		}

		if !hasChanged && prev != nil {
			return state, nil
		}
		return next, nil
	}
}

func assertReducerShape(keys []string, reducers map[string]Reducer) error {
	for _, key := range keys {
		reducer := reducers[key]

		if err := probeReducer(key, reducer, ActionTypeInit); err != nil {
			return err
		}

		probe := actionTypeProbe + strings.ReplaceAll(uuid.NewString(), "-", ".")
		if err := probeReducer(key, reducer, probe); err != nil {
			return err
		}
	}

	return nil
}

// probeReducer runs reducer on a nil state. A panic is captured like an
// error so that it surfaces from the first call of the combined reducer.
func probeReducer(key string, reducer Reducer, actionType string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("panic: %v", r)
			}
			err = &ReducerShapeError{Key: key, Probe: actionType, Cause: cause}
		}
	}()

	state, err := reducer(nil, Action{"type": actionType})
	if err != nil || state == nil {
		return &ReducerShapeError{Key: key, Probe: actionType, Cause: err}
	}

	return nil
}

func unexpectedStateShape(state any, keys []string, reducers map[string]Reducer, action any, cache map[string]bool) string {
	argument := "previous state received by the reducer"
	if TypeOf(action) == ActionTypeInit {
		argument = "preloaded state passed to the store"
	}

	if len(keys) == 0 {
		return "store does not have a valid reducer; make sure the map passed to CombineReducers holds reducers"
	}

	if state == nil {
		return ""
	}

	record, ok := state.(map[string]any)
	if !ok {
		return fmt.Sprintf(
			"the %s has unexpected type %T; expected a map[string]any with the following keys: %q",
			argument, state, keys,
		)
	}

	var unexpected []string
	for _, key := range slices.Sorted(maps.Keys(record)) {
		if _, known := reducers[key]; !known && !cache[key] {
			unexpected = append(unexpected, key)
		}
	}

	for _, key := range unexpected {
		cache[key] = true
	}

	if len(unexpected) == 0 {
		return ""
	}

	noun := "key"
	if len(unexpected) > 1 {
		noun = "keys"
	}

	return fmt.Sprintf(
		"unexpected %s %q found in %s; expected to find one of the known reducer keys instead: %q; unexpected keys will be ignored",
		noun, unexpected, argument, keys,
	)
}
