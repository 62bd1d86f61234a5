package internal

import (
	"runtime/debug"
)

// finalPropsSelector computes a container's props from the state and its own props.
type finalPropsSelector func(state any, ownProps Props) any

type selectorStages struct {
	mapState    *stageProxy[any]
	mapDispatch *stageProxy[Dispatch]
	merge       func(stateProps, dispatchProps any, ownProps Props) any
}

func newSelectorStages(def connectDefinition, cfg *connectConfig, tracker *stageTracker) selectorStages {
	warner := warnerOr(cfg.warner)

	mapState := def.mapState
	if mapState.omitted() {
		mapState = constant(func(any) any { return Props{} })
	}

	mapDispatch := def.mapDispatch
	if mapDispatch.omitted() {
		mapDispatch = constant(func(d Dispatch) any { return Props{"dispatch": d} })
	}

	stages := selectorStages{
		mapState:    newStageProxy("mapStateToProps", cfg.name, mapState, tracker, warner),
		mapDispatch: newStageProxy("mapDispatchToProps", cfg.name, mapDispatch, tracker, warner),
		merge:       DefaultMerge,
	}

	if def.merge != nil {
		proxy := &mergeProxy{
			container: cfg.name,
			merge:     def.merge,
			pure:      cfg.pure,
			equal:     cfg.areMergedPropsEqual,
			tracker:   tracker,
			warner:    warner,
		}
		stages.merge = proxy.run
	}

	return stages
}

// impureSelector recomputes every stage on every call.
func impureSelector(stages selectorStages, dispatch Dispatch) finalPropsSelector {
	return func(state any, ownProps Props) any {
		return stages.merge(
			stages.mapState.run(state, ownProps),
			stages.mapDispatch.run(dispatch, ownProps),
			ownProps,
		)
	}
}

// pureSelector re-runs only the stages whose inputs changed and keeps the
// previous merged props otherwise.
type pureSelector struct {
	stages   selectorStages
	dispatch Dispatch

	areStatesEqual     EqualFunc
	areOwnPropsEqual   EqualFunc
	areStatePropsEqual EqualFunc

	hasRunAtLeastOnce bool
	state             any
	ownProps          Props
	stateProps        any
	dispatchProps     any
	mergedProps       any
}

func newPureSelector(stages selectorStages, dispatch Dispatch, cfg *connectConfig) finalPropsSelector {
	s := &pureSelector{
		stages:             stages,
		dispatch:           dispatch,
		areStatesEqual:     cfg.areStatesEqual,
		areOwnPropsEqual:   cfg.areOwnPropsEqual,
		areStatePropsEqual: cfg.areStatePropsEqual,
	}

	return s.run
}

func (s *pureSelector) run(state any, ownProps Props) any {
	if s.hasRunAtLeastOnce {
		return s.handleSubsequentCalls(state, ownProps)
	}
	return s.handleFirstCall(state, ownProps)
}

func (s *pureSelector) handleFirstCall(state any, ownProps Props) any {
	s.state = state
	s.ownProps = ownProps
	s.stateProps = s.stages.mapState.run(state, ownProps)
	s.dispatchProps = s.stages.mapDispatch.run(s.dispatch, ownProps)
	s.mergedProps = s.stages.merge(s.stateProps, s.dispatchProps, ownProps)
	s.hasRunAtLeastOnce = true

	return s.mergedProps
}

func (s *pureSelector) handleNewPropsAndNewState() any {
	s.stateProps = s.stages.mapState.run(s.state, s.ownProps)

	if s.stages.mapDispatch.dependsOnOwnProps() {
		s.dispatchProps = s.stages.mapDispatch.run(s.dispatch, s.ownProps)
	}

	s.mergedProps = s.stages.merge(s.stateProps, s.dispatchProps, s.ownProps)
	return s.mergedProps
}

func (s *pureSelector) handleNewProps() any {
	if s.stages.mapState.dependsOnOwnProps() {
		s.stateProps = s.stages.mapState.run(s.state, s.ownProps)
	}

	if s.stages.mapDispatch.dependsOnOwnProps() {
		s.dispatchProps = s.stages.mapDispatch.run(s.dispatch, s.ownProps)
	}

	s.mergedProps = s.stages.merge(s.stateProps, s.dispatchProps, s.ownProps)
	return s.mergedProps
}

func (s *pureSelector) handleNewState() any {
	nextStateProps := s.stages.mapState.run(s.state, s.ownProps)
	statePropsChanged := !s.areStatePropsEqual(nextStateProps, s.stateProps)
	s.stateProps = nextStateProps

	if statePropsChanged {
		s.mergedProps = s.stages.merge(s.stateProps, s.dispatchProps, s.ownProps)
	}

	return s.mergedProps
}

func (s *pureSelector) handleSubsequentCalls(nextState any, nextOwnProps Props) any {
	propsChanged := !s.areOwnPropsEqual(nextOwnProps, s.ownProps)
	stateChanged := !s.areStatesEqual(nextState, s.state)
	s.state = nextState
	s.ownProps = nextOwnProps

	switch {
	case propsChanged && stateChanged:
		return s.handleNewPropsAndNewState()
	case propsChanged:
		return s.handleNewProps()
	case stateChanged:
		return s.handleNewState()
	default:
		return s.mergedProps
	}
}

// memo is the per-container result of the last selector run. It is replaced
// as a whole on every run.
type memo struct {
	props        any
	err          error
	shouldUpdate bool
}

// statefulSelector runs the final props selector against the store's current
// state and records whether the container must recompute.
type statefulSelector struct {
	name    string
	source  finalPropsSelector
	store   Store
	tracker *stageTracker

	memo memo
}

func newStatefulSelector(name string, source finalPropsSelector, store Store, tracker *stageTracker) *statefulSelector {
	return &statefulSelector{
		name:    name,
		source:  source,
		store:   store,
		tracker: tracker,
	}
}

func (s *statefulSelector) run(ownProps Props) {
	next, err := s.compute(ownProps)

	prev := s.memo
	switch {
	case err != nil:
		s.memo = memo{props: prev.props, err: err, shouldUpdate: true}
	case !StrictEqual(next, prev.props) || prev.err != nil:
		s.memo = memo{props: next, shouldUpdate: true}
	default:
		s.memo = memo{props: prev.props, shouldUpdate: prev.shouldUpdate}
	}
}

func (s *statefulSelector) compute(ownProps Props) (props any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &SelectorError{
				Container:  s.name,
				Stage:      s.tracker.current(),
				Recovered:  r,
				StackTrace: debug.Stack(),
			}
			s.tracker.reset()
		}
	}()

	return s.source(s.store.GetState(), ownProps), nil
}

// consume clears the change flag and returns the last result.
func (s *statefulSelector) consume() (any, error) {
	m := s.memo
	s.memo = memo{props: m.props, err: m.err}

	return m.props, m.err
}
