package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AnatoleLucet/dux"
)

func counter(state, action any) (any, error) {
	count, _ := state.(int)

	switch dux.TypeOf(action) {
	case "INC":
		return count + 1, nil
	case "FAIL":
		return nil, errors.New("boom")
	default:
		return count, nil
	}
}

func TestLogger(t *testing.T) {
	t.Run("logs actions with states", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))

		store, err := dux.CreateStore(counter, dux.WithEnhancer(dux.ApplyMiddleware(Logger(logger))))
		require.NoError(t, err)

		_, err = store.Dispatch(dux.Action{"type": "INC"})
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "msg=dispatch")
		assert.Contains(t, out, "action=INC")
		assert.Contains(t, out, "prev=0")
		assert.Contains(t, out, "next=1")
	})

	t.Run("logs failures at error level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))

		store, err := dux.CreateStore(counter, dux.WithEnhancer(dux.ApplyMiddleware(Logger(logger))))
		require.NoError(t, err)

		_, err = store.Dispatch(dux.Action{"type": "INC"})
		require.NoError(t, err)
		assert.Empty(t, buf.String())

		_, err = store.Dispatch(dux.Action{"type": "FAIL"})
		assert.EqualError(t, err, "boom")
		assert.Contains(t, buf.String(), `msg="dispatch failed"`)
		assert.Contains(t, buf.String(), "error=boom")
	})
}

func TestTrace(t *testing.T) {
	t.Run("one span per dispatch", func(t *testing.T) {
		recorder := tracetest.NewSpanRecorder()
		provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

		store, err := dux.CreateStore(counter, dux.WithEnhancer(dux.ApplyMiddleware(Trace(provider.Tracer("dux")))))
		require.NoError(t, err)

		_, err = store.Dispatch(dux.Action{"type": "INC"})
		require.NoError(t, err)
		_, err = store.Dispatch(dux.Action{"type": "INC"})
		require.NoError(t, err)

		spans := recorder.Ended()
		require.Len(t, spans, 2)
		for _, span := range spans {
			assert.Equal(t, SpanDispatch, span.Name())
			assert.Contains(t, span.Attributes(), attribute.String(AttributeActionType, "INC"))
			assert.Equal(t, codes.Unset, span.Status().Code)
		}
	})

	t.Run("records errors", func(t *testing.T) {
		recorder := tracetest.NewSpanRecorder()
		provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

		store, err := dux.CreateStore(counter, dux.WithEnhancer(dux.ApplyMiddleware(Trace(provider.Tracer("dux")))))
		require.NoError(t, err)

		_, err = store.Dispatch(dux.Action{"type": "FAIL"})
		assert.Error(t, err)
		assert.Equal(t, 0, dux.State[int](store))

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status().Code)
		assert.Equal(t, "boom", spans[0].Status().Description)
		require.Len(t, spans[0].Events(), 1)
		assert.Equal(t, "exception", spans[0].Events()[0].Name)
	})

	t.Run("composes with the logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		recorder := tracetest.NewSpanRecorder()
		provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

		store, err := dux.CreateStore(counter, dux.WithEnhancer(dux.ApplyMiddleware(
			Trace(provider.Tracer("dux")),
			Logger(logger),
		)))
		require.NoError(t, err)

		_, err = store.Dispatch(dux.Action{"type": "INC"})
		require.NoError(t, err)

		assert.Len(t, recorder.Ended(), 1)
		assert.Contains(t, buf.String(), "next=1")
	})
}
