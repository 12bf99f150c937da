package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"github.com/dlwlehd/geultto-challenge-bot/config"
	"github.com/dlwlehd/geultto-challenge-bot/pkg/logger"
	"github.com/dlwlehd/geultto-challenge-bot/pkg/response"
)

// RecoverMiddleware 는 핸들러의 panic 을 500 응답으로 바꾸고 요청 맥락과
// 함께 기록한다. 운영 환경에서는 상세 내용을 응답에 싣지 않는다.
func RecoverMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				handlePanic(ctx, c, err)
			}
		}()

		c.Next(ctx)
	}
}

func handlePanic(ctx context.Context, c *app.RequestContext, err interface{}) {
	logger.Logger.Error("[PANIC RECOVERED]",
		zap.String("panic", fmt.Sprintf("%v", err)),
		zap.String("path", string(c.Path())),
		zap.String("method", string(c.Method())),
		zap.String("client_ip", c.ClientIP()),
		zap.String("request_id", string(c.Response.Header.Get(RequestIDHeader))),
		zap.ByteString("stack", debug.Stack()),
	)

	if config.Cfg.IsProduction() {
		response.Error(ctx, c, fmt.Errorf("internal server error"))
		return
	}

	response.ErrorWithDetails(ctx, c, fmt.Errorf("internal server error"), map[string]interface{}{
		"panic": fmt.Sprintf("%v", err),
	})
}
