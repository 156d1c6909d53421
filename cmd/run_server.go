package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/notepadie/notepad-local-service/global"
	"github.com/notepadie/notepad-local-service/internal/app"
	"github.com/notepadie/notepad-local-service/internal/dao"
	"github.com/notepadie/notepad-local-service/internal/routers"
	"github.com/notepadie/notepad-local-service/internal/task"
	"github.com/notepadie/notepad-local-service/pkg/logger"
	"github.com/notepadie/notepad-local-service/pkg/safe_close"
	"github.com/notepadie/notepad-local-service/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultShutdownTimeout App 容器优雅关闭的等待上限
const DefaultShutdownTimeout = 30 * time.Second

// Server 服务实例，持有一次启动周期内的全部依赖
type Server struct {
	logger *zap.Logger
	config *app.AppConfig
	db     *gorm.DB
	ut     *ut.UniversalTranslator

	httpServer *http.Server
	sc         *safe_close.SafeClose
	app        *app.App
}

// NewServer 根据启动参数构建并启动服务
func NewServer(runEnv *runFlags) (*Server, error) {

	cfg, realpath, err := app.LoadConfig(runEnv.config)
	if err != nil {
		return nil, errors.Wrap(err, "load config failed")
	}

	// 命令行参数优先于配置文件
	if len(runEnv.listen) > 0 {
		cfg.Server.HttpListen = runEnv.listen
	}
	if len(runEnv.runMode) > 0 {
		cfg.Server.RunMode = runEnv.runMode
	}
	gin.SetMode(cfg.Server.RunMode)
	if gin.IsDebugging() {
		global.Dump(cfg)
	}

	s := &Server{
		config: cfg,
		sc:     safe_close.NewSafeClose(),
	}

	if err := s.initLoggerWithConfig(); err != nil {
		return nil, errors.Wrap(err, "init logger failed")
	}
	s.logger.Info("config loaded", zap.String("file", realpath))

	if err := s.initStorageWithConfig(); err != nil {
		return nil, errors.Wrap(err, "init storage failed")
	}

	if err := s.initDatabaseWithConfig(); err != nil {
		return nil, errors.Wrap(err, "init database failed")
	}

	appContainer, err := app.NewApp(cfg, s.logger, s.db)
	if err != nil {
		return nil, errors.Wrap(err, "init app container failed")
	}
	s.app = appContainer

	if err := s.initValidatorWithLogger(); err != nil {
		return nil, errors.Wrap(err, "init validator failed")
	}

	s.initScheduler()

	version := s.app.Version()
	fmt.Printf("%s\n", strings.Repeat("=", 46))
	fmt.Printf("  %s\n", app.Name)
	fmt.Printf("  Version: %s  Listen: %s\n", version.Version, cfg.Server.HttpListen)
	fmt.Printf("%s\n", strings.Repeat("=", 46))
	s.logger.Info("service starting",
		zap.String("version", version.Version),
		zap.String("listen", cfg.Server.HttpListen),
		zap.String("run-mode", cfg.Server.RunMode),
	)

	router := routers.NewRouter(s.app, s.ut)
	s.httpServer = &http.Server{
		Addr:           cfg.Server.HttpListen,
		Handler:        router,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()

		errChan := make(chan error, 1)
		go func() {
			errChan <- s.httpServer.ListenAndServe()
		}()

		select {
		case err := <-errChan:
			if err != nil && err != http.ErrServerClosed {
				s.logger.Error("http server error", zap.Error(err))
				s.sc.SendCloseSignal(err)
			}
		case <-closeSignal:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.httpServer.Shutdown(ctx); err != nil {
				s.logger.Error("http server shutdown error", zap.Error(err))
			}
		}
	})

	// App 容器最后关闭，保证持久化写入在 HTTP 停止之后仍可完成
	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal

		ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		if err := s.app.Shutdown(ctx); err != nil {
			s.logger.Error("app container shutdown error", zap.Error(err))
		}
	})

	return s, nil
}

// initLoggerWithConfig 构建 zap 日志器
func (s *Server) initLoggerWithConfig() error {
	lg, err := logger.NewLogger(logger.Config{
		Level:      s.config.Log.Level,
		File:       s.config.Log.File,
		Production: s.config.Log.Production,
	})
	if err != nil {
		return err
	}
	s.logger = lg
	global.Logger = lg
	return nil
}

// initStorageWithConfig 创建日志/数据库/备份目录
func (s *Server) initStorageWithConfig() error {
	dirs := []string{
		filepath.Dir(s.config.Log.File),
		filepath.Dir(s.config.Database.Path),
	}
	if s.config.Backup.Enable {
		dirs = append(dirs, s.config.Backup.Dir)
	}
	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}
	return nil
}

// initDatabaseWithConfig 初始化 SQLite 数据库
func (s *Server) initDatabaseWithConfig() error {
	db, err := dao.NewDBEngine(dao.DatabaseConfig{
		Path:         s.config.Database.Path,
		TablePrefix:  s.config.Database.TablePrefix,
		AutoMigrate:  s.config.Database.AutoMigrate,
		MaxIdleConns: s.config.Database.MaxIdleConns,
		MaxOpenConns: s.config.Database.MaxOpenConns,
		RunMode:      s.config.Server.RunMode,
		Tracing:      s.config.Tracer.Enabled,
	})
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

// initValidatorWithLogger 初始化请求参数校验器和多语言翻译器
func (s *Server) initValidatorWithLogger() error {
	custom := validator.NewCustomValidator()
	binding.Validator = custom

	uni := ut.New(en.New(), en.New(), zh.New())
	s.ut = uni

	v, ok := binding.Validator.Engine().(*val.Validate)
	if !ok {
		return errors.New("validator engine type mismatch")
	}

	// 错误提示使用 json tag 中的字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if trans, found := uni.GetTranslator("en"); found {
		if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
			return err
		}
	}
	if trans, found := uni.GetTranslator("zh"); found {
		if err := zh_translations.RegisterDefaultTranslations(v, trans); err != nil {
			return err
		}
	}
	return nil
}

// initScheduler 注册定时任务
func (s *Server) initScheduler() {
	manager := task.NewManager(s.logger, s.sc)
	manager.RegisterBackupTask(s.app.BackupService)
	manager.Start()
}
