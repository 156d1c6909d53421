package middleware

import (
	"github.com/notepadie/notepad-local-service/pkg/app"
	"github.com/notepadie/notepad-local-service/pkg/code"
	"github.com/notepadie/notepad-local-service/pkg/limiter"

	"github.com/gin-gonic/gin"
)

// RateLimiter 令牌桶限流
// 未配置桶的路径直接放行
func RateLimiter(l limiter.Face) gin.HandlerFunc {
	return func(c *gin.Context) {
		bucket, ok := l.GetBucket(l.Key(c))
		if ok && bucket.TakeAvailable(1) == 0 {
			app.NewResponse(c).ToResponse(code.ErrorTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}
