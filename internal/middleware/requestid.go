package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware 는 요청마다 ID 를 부여해 응답 헤더로 돌려준다.
// 업스트림(명령 처리 계층)이 이미 ID 를 보냈다면 그대로 쓴다.
func RequestIDMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		requestID := string(c.Request.Header.Get(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Response.Header.Set(RequestIDHeader, requestID)
		c.Next(ctx)
	}
}
