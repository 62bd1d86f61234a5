package internal

import (
	"context"
	"log/slog"
	"sync"
)

// Warning is a non-fatal developer diagnostic: a likely bug, not an
// impossible state.
type Warning struct {
	Source  string
	Message string
	Data    map[string]any
}

// Warner receives developer warnings.
type Warner interface {
	Warn(w Warning)
}

// WarnerFunc adapts a function to Warner.
type WarnerFunc func(w Warning)

func (f WarnerFunc) Warn(w Warning) { f(w) }

// SlogWarner emits warnings to a slog.Logger at warn level. The source is an
// attribute and Data keys are flattened as top-level attributes.
type SlogWarner struct {
	logger *slog.Logger
}

func NewSlogWarner(logger *slog.Logger) *SlogWarner {
	return &SlogWarner{logger: logger}
}

func (w *SlogWarner) Warn(warning Warning) {
	attrs := make([]slog.Attr, 0, len(warning.Data)+1)
	attrs = append(attrs, slog.String("source", warning.Source))
	for k, v := range warning.Data {
		attrs = append(attrs, slog.Any(k, v))
	}

	w.logger.LogAttrs(context.Background(), slog.LevelWarn, warning.Message, attrs...)
}

// NoopWarner discards every warning.
type NoopWarner struct{}

func (NoopWarner) Warn(Warning) {}

// MultiWarner fans warnings out to several warners.
type MultiWarner struct {
	warners []Warner
}

func NewMultiWarner(warners ...Warner) *MultiWarner {
	filtered := make([]Warner, 0, len(warners))
	for _, w := range warners {
		if w != nil {
			filtered = append(filtered, w)
		}
	}
	return &MultiWarner{warners: filtered}
}

func (m *MultiWarner) Warn(w Warning) {
	for _, warner := range m.warners {
		warner.Warn(w)
	}
}

var (
	warnerMu      sync.RWMutex
	defaultWarner Warner
)

// DefaultWarner is used by components built without an explicit warner. It
// logs through slog.Default, or discards everything in production.
func DefaultWarner() Warner {
	warnerMu.RLock()
	w := defaultWarner
	warnerMu.RUnlock()

	if w != nil {
		return w
	}

	if CurrentConfig().Production() {
		return NoopWarner{}
	}
	return NewSlogWarner(slog.Default())
}

// SetDefaultWarner replaces the process-wide warner. nil restores the default.
func SetDefaultWarner(w Warner) {
	warnerMu.Lock()
	defer warnerMu.Unlock()

	defaultWarner = w
}

func warnerOr(w Warner) Warner {
	if w != nil {
		return w
	}
	return DefaultWarner()
}
