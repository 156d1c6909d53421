package middleware

import (
	"github.com/notepadie/notepad-local-service/pkg/app"

	"github.com/gin-gonic/gin"
)

// AppInfoWithConfig 把应用名、版本号与访问主机写入请求上下文
func AppInfoWithConfig(name string, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("app_name", name)
		c.Set("app_version", version)
		c.Set("access_host", app.GetAccessHost(c))

		c.Next()
	}
}
