package middleware

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/cantineo/internal/metrics"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// and records its latency in m. m may be nil.
func LoggingInterceptor(m *metrics.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			elapsed := time.Since(start)
			duration := elapsed.Milliseconds()
			if err == nil {
				m.ObserveRequest(procedure, "ok", elapsed)
				slog.Info("RPC ok",
					"procedure", procedure,
					"duration_ms", duration,
				)
				return resp, nil
			}

			code := connect.CodeOf(err)
			m.ObserveRequest(procedure, code.String(), elapsed)
			attrs := []any{
				"procedure", procedure,
				"code", code,
				"error", err,
				"duration_ms", duration,
			}
			switch code {
			case connect.CodeInternal, connect.CodeUnknown, connect.CodeUnavailable, connect.CodeDeadlineExceeded:
				slog.Error("RPC error", attrs...)
			default:
				slog.Warn("RPC error", attrs...)
			}

			return resp, err
		}
	}
}
