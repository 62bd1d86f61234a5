package internal

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlogWarner(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	NewSlogWarner(logger).Warn(Warning{
		Source:  "combine",
		Message: "unexpected key",
		Data:    map[string]any{"key": "extra"},
	})

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `msg="unexpected key"`)
	assert.Contains(t, out, "source=combine")
	assert.Contains(t, out, "key=extra")
}

func TestMultiWarner(t *testing.T) {
	log := []string{}
	record := func(name string) Warner {
		return WarnerFunc(func(w Warning) { log = append(log, name+" "+w.Message) })
	}

	NewMultiWarner(record("a"), nil, NoopWarner{}, record("b")).Warn(Warning{Message: "hi"})

	assert.Equal(t, []string{"a hi", "b hi"}, log)
}

func TestDefaultWarner(t *testing.T) {
	log := []string{}
	SetDefaultWarner(WarnerFunc(func(w Warning) { log = append(log, w.Message) }))
	t.Cleanup(func() { SetDefaultWarner(nil) })

	warnerOr(nil).Warn(Warning{Message: "default"})
	warnerOr(NoopWarner{}).Warn(Warning{Message: "dropped"})

	assert.Equal(t, []string{"default"}, log)
}
