package internal

import (
	"fmt"
	"reflect"
)

// Props is the record a parent hands to a container, and the usual shape of
// what a container derives.
type Props = map[string]any

// Selector is a resolved selector stage. Whether it reads the container's own
// props is fixed when it is built.
type Selector[In any] struct {
	fn                func(in In, ownProps Props) any
	dependsOnOwnProps bool
}

// StateOnly builds a selector that ignores own props. It is not re-run when
// only own props change.
func StateOnly[In any](fn func(in In) any) Selector[In] {
	return Selector[In]{
		fn:                func(in In, _ Props) any { return fn(in) },
		dependsOnOwnProps: false,
	}
}

// WithOwnProps builds a selector that reads own props.
func WithOwnProps[In any](fn func(in In, ownProps Props) any) Selector[In] {
	return Selector[In]{
		fn:                fn,
		dependsOnOwnProps: true,
	}
}

func (s Selector[In]) DependsOnOwnProps() bool { return s.dependsOnOwnProps }

func (s Selector[In]) call(in In, ownProps Props) any {
	if s.fn == nil {
		panic(fmt.Errorf("%w: selector has no function", ErrType))
	}
	if !s.dependsOnOwnProps {
		ownProps = nil
	}
	return s.fn(in, ownProps)
}

type mapKind int

const (
	mapOmitted mapKind = iota
	mapDirect
	mapFactory
)

// MapToProps describes one stage of a container: either a selector used
// as is (Direct) or a builder run once per container instance that returns the
// selector to use from then on (Factory).
type MapToProps[In any] struct {
	kind     mapKind
	selector Selector[In]
	build    func(in In, ownProps Props) Selector[In]
}

// Direct uses s for every container instance.
func Direct[In any](s Selector[In]) MapToProps[In] {
	return MapToProps[In]{kind: mapDirect, selector: s}
}

// Factory runs build on the first computation of each container instance. The
// selector it returns, and that selector's own-props dependency, replace the
// stage for the lifetime of the instance.
func Factory[In any](build func(in In, ownProps Props) Selector[In]) MapToProps[In] {
	return MapToProps[In]{kind: mapFactory, build: build}
}

func (m MapToProps[In]) omitted() bool { return m.kind == mapOmitted }

// constant is a stage whose value is computed once from the stage input.
func constant[In any](compute func(in In) any) MapToProps[In] {
	return Factory(func(in In, _ Props) Selector[In] {
		value := compute(in)
		return StateOnly(func(In) any { return value })
	})
}

// stageProxy resolves a MapToProps for one container instance.
type stageProxy[In any] struct {
	stage     string
	container string
	def       MapToProps[In]
	tracker   *stageTracker
	warner    Warner

	resolved bool
	selector Selector[In]
}

func newStageProxy[In any](stage, container string, def MapToProps[In], tracker *stageTracker, warner Warner) *stageProxy[In] {
	return &stageProxy[In]{
		stage:     stage,
		container: container,
		def:       def,
		tracker:   tracker,
		warner:    warner,
	}
}

// dependsOnOwnProps is conservatively true until the stage is resolved.
func (p *stageProxy[In]) dependsOnOwnProps() bool {
	if !p.resolved {
		return true
	}
	return p.selector.dependsOnOwnProps
}

func (p *stageProxy[In]) run(in In, ownProps Props) any {
	// not deferred: after a panic the tracker must still name this stage
	p.tracker.enter(p.stage)

	if p.resolved {
		props := p.selector.call(in, ownProps)
		p.tracker.exit()
		return props
	}

	switch p.def.kind {
	case mapFactory:
		p.selector = p.def.build(in, ownProps)
	default:
		p.selector = p.def.selector
	}
	p.resolved = true

	props := p.selector.call(in, ownProps)
	p.tracker.exit()

	verifyPlainRecord(p.warner, props, p.container, p.stage)
	return props
}

// MergeFunc combines the state props, dispatch props and own props into the
// props a container renders with.
type MergeFunc func(stateProps, dispatchProps any, ownProps Props) any

// DefaultMerge layers own props, then state props, then dispatch props.
func DefaultMerge(stateProps, dispatchProps any, ownProps Props) any {
	merged := make(Props, len(ownProps))
	spread(merged, ownProps)
	spread(merged, stateProps)
	spread(merged, dispatchProps)
	return merged
}

// spread copies the keys of a map or the exported fields of a struct.
func spread(dst Props, src any) {
	if src == nil {
		return
	}

	if m, ok := src.(Props); ok {
		for k, v := range m {
			dst[k] = v
		}
		return
	}

	rv := reflect.ValueOf(src)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return
		}
		iter := rv.MapRange()
		for iter.Next() {
			dst[iter.Key().String()] = iter.Value().Interface()
		}
	case reflect.Struct:
		t := rv.Type()
		for i := range t.NumField() {
			if f := t.Field(i); f.IsExported() {
				dst[f.Name] = rv.Field(i).Interface()
			}
		}
	}
}

// mergeProxy keeps the previous merged value while, in pure mode, the new one
// is equal to it.
type mergeProxy struct {
	container string
	merge     MergeFunc
	pure      bool
	equal     EqualFunc
	tracker   *stageTracker
	warner    Warner

	hasRunOnce bool
	merged     any
}

func (m *mergeProxy) run(stateProps, dispatchProps any, ownProps Props) any {
	m.tracker.enter("mergeProps")
	next := m.merge(stateProps, dispatchProps, ownProps)
	m.tracker.exit()

	if m.hasRunOnce {
		if !m.pure || !m.equal(next, m.merged) {
			m.merged = next
		}
		return m.merged
	}

	m.hasRunOnce = true
	m.merged = next
	verifyPlainRecord(m.warner, next, m.container, "mergeProps")

	return m.merged
}

func verifyPlainRecord(w Warner, value any, container, stage string) {
	if IsPlainRecord(value) {
		return
	}

	w.Warn(Warning{
		Source:  "connect",
		Message: fmt.Sprintf("%s() in %s must return a plain record, instead received %T", stage, container, value),
		Data: map[string]any{
			"container": container,
			"stage":     stage,
		},
	})
}

// stageTracker remembers which stage is running so a recovered panic can be
// attributed to it.
type stageTracker struct {
	stack []string
}

func (t *stageTracker) enter(stage string) { t.stack = append(t.stack, stage) }

func (t *stageTracker) exit() { t.stack = t.stack[:len(t.stack)-1] }

func (t *stageTracker) current() string {
	if len(t.stack) == 0 {
		return "selector"
	}
	return t.stack[len(t.stack)-1]
}

func (t *stageTracker) reset() { t.stack = t.stack[:0] }
