package middleware

import (
	"github.com/notepadie/notepad-local-service/pkg/app"
	"github.com/notepadie/notepad-local-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// NoFound 未匹配路由的兜底处理
func NoFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		app.NewResponse(c).ToResponse(code.ErrorNotFoundAPI)
		c.Abort()
	}
}
