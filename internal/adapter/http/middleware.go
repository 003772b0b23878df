package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

func requestLogMiddleware(logger *slog.Logger) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		reqID := string(ctx.GetHeader(requestIDHeader))
		if reqID == "" {
			reqID = uuid.NewString()
		}
		ctx.Response.Header.Set(requestIDHeader, reqID)

		start := time.Now()
		ctx.Next(c)

		logger.Info("http request",
			"request_id", reqID,
			"method", string(ctx.Method()),
			"path", string(ctx.Path()),
			"status", ctx.Response.StatusCode(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
