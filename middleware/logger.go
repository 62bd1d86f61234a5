// Package middleware holds dispatch middlewares for dux stores.
package middleware

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AnatoleLucet/dux"
)

// Logger logs every dispatched action with the state before and after it at
// debug level, and failed dispatches at error level. A nil logger uses
// slog.Default.
func Logger(logger *slog.Logger) dux.Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return func(api dux.MiddlewareAPI) func(next dux.Dispatch) dux.Dispatch {
		return func(next dux.Dispatch) dux.Dispatch {
			return func(action any) (any, error) {
				ctx := context.Background()
				actionType := fmt.Sprint(dux.TypeOf(action))
				prev := api.GetState()

				result, err := next(action)
				if err != nil {
					logger.LogAttrs(ctx, slog.LevelError, "dispatch failed",
						slog.String("action", actionType),
						slog.Any("error", err),
					)
					return result, err
				}

				logger.LogAttrs(ctx, slog.LevelDebug, "dispatch",
					slog.String("action", actionType),
					slog.Any("prev", prev),
					slog.Any("next", api.GetState()),
				)

				return result, nil
			}
		}
	}
}
