// Package routers 组装 gin 路由与中间件链
package routers

import (
	"time"

	"github.com/notepadie/notepad-local-service/internal/app"
	"github.com/notepadie/notepad-local-service/internal/middleware"
	"github.com/notepadie/notepad-local-service/internal/routers/api_router"
	"github.com/notepadie/notepad-local-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/archive",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
)

// NewRouter 创建路由引擎, 注入应用容器与翻译器
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header))
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		noteHandler := api_router.NewNoteHandler(appContainer)
		folderHandler := api_router.NewFolderHandler(appContainer)
		stateHandler := api_router.NewStateHandler(appContainer)
		archiveHandler := api_router.NewArchiveHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)

		api.GET("/health", healthHandler.Check)
		api.GET("/version", versionHandler.ServerVersion)

		// 状态快照与界面状态
		api.GET("/state", stateHandler.State)
		api.PUT("/sidebar/toggle", stateHandler.ToggleSidebar)
		api.PUT("/theme/toggle", stateHandler.ToggleTheme)

		// 笔记
		api.GET("/notes", noteHandler.List)
		api.POST("/note", noteHandler.Create)
		api.PUT("/active-note", noteHandler.SetActive)
		api.POST("/note/preview", noteHandler.Preview)
		api.PUT("/note/:id", noteHandler.Update)
		api.DELETE("/note/:id", noteHandler.Delete)
		api.PUT("/note/:id/move", noteHandler.Move)

		// 文件夹
		api.GET("/folders", folderHandler.List)
		api.GET("/folder/options", folderHandler.Options)
		api.POST("/folder", folderHandler.Create)
		api.PUT("/folder/:id", folderHandler.Rename)
		api.DELETE("/folder/:id", folderHandler.Delete)

		// 归档
		api.GET("/archive/export", archiveHandler.Export)
		api.POST("/archive/import", archiveHandler.Import)
	}

	r.NoRoute(middleware.NoFound())

	return r
}
