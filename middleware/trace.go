package middleware

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AnatoleLucet/dux"
)

const (
	SpanDispatch        = "dux.dispatch"
	AttributeActionType = "dux.action.type"
)

// Trace records one span per dispatch. Dispatches triggered by listeners
// while the span is open get their own root span.
func Trace(tracer trace.Tracer) dux.Middleware {
	return func(api dux.MiddlewareAPI) func(next dux.Dispatch) dux.Dispatch {
		return func(next dux.Dispatch) dux.Dispatch {
			return func(action any) (any, error) {
				_, span := tracer.Start(context.Background(), SpanDispatch,
					trace.WithAttributes(attribute.String(AttributeActionType, fmt.Sprint(dux.TypeOf(action)))),
				)
				defer span.End()

				result, err := next(action)
				if err != nil {
					span.RecordError(err)
					span.SetStatus(codes.Error, err.Error())
				}

				return result, err
			}
		}
	}
}
