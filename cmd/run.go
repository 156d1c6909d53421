package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/notepadie/notepad-local-service/pkg/fileurl"

	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type runFlags struct {
	dir     string // 工作目录
	listen  string // 监听地址
	runMode string // 启动模式
	config  string // 配置文件路径
}

// resolveConfigFile 按优先级探测配置文件, 都不存在时写出内嵌默认配置
func resolveConfigFile() (string, error) {
	for _, candidate := range []string{
		"config/config-dev.yaml",
		"config.yaml",
		"config/config.yaml",
	} {
		if fileurl.IsExist(candidate) {
			return candidate, nil
		}
	}

	bootstrapLogger.Warn("config file not found, creating default config")
	target := "config/config.yaml"
	if err := fileurl.CreatePath(target, os.ModePerm); err != nil {
		return "", err
	}
	if err := os.WriteFile(target, []byte(configDefault), 0666); err != nil {
		return "", err
	}
	bootstrapLogger.Info("default config created", zap.String("path", target))
	return target, nil
}

// watchConfig 监视配置文件写入, 变更时重建 Server
func watchConfig(runEnv *runFlags, s **Server) {
	w := watcher.New()
	// 每个轮询周期至多上报一个事件, 只关心写入
	w.SetMaxEvents(1)
	w.FilterOps(watcher.Write)

	go func() {
		for {
			select {
			case event := <-w.Event:
				(*s).logger.Info("config changed, reloading",
					zap.String("event", event.Op.String()),
					zap.String("file", event.Path))
				(*s).sc.SendCloseSignal(nil)

				next, err := NewServer(runEnv)
				if err != nil {
					bootstrapLogger.Error("service restart err", zap.Error(err))
					continue
				}
				*s = next
			case err := <-w.Error:
				(*s).logger.Error("config watcher error", zap.Error(err))
			case <-w.Closed:
				bootstrapLogger.Info("config watcher closed")
				return
			}
		}
	}()

	if err := w.Add(runEnv.config); err != nil {
		(*s).logger.Error("config watcher add error", zap.Error(err))
		return
	}
	if err := w.Start(time.Second * 5); err != nil {
		(*s).logger.Error("config watcher start error", zap.Error(err))
	}
}

func init() {
	runEnv := new(runFlags)

	runCommand := &cobra.Command{
		Use:   "run [-c config_file] [-d working_dir] [-l listen_addr]",
		Short: "Run service",
		Run: func(cmd *cobra.Command, args []string) {
			if runEnv.dir != "" {
				if err := os.Chdir(runEnv.dir); err != nil {
					bootstrapLogger.Error("failed to change working directory", zap.Error(err))
					return
				}
				bootstrapLogger.Info("working directory changed", zap.String("dir", runEnv.dir))
			}

			if runEnv.config == "" {
				cfgFile, err := resolveConfigFile()
				if err != nil {
					bootstrapLogger.Error("config file auto create error", zap.Error(err))
					return
				}
				runEnv.config = cfgFile
			}

			s, err := NewServer(runEnv)
			if err != nil {
				bootstrapLogger.Error("api service start err", zap.Error(err))
				return
			}

			go watchConfig(runEnv, &s)

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			s.logger.Info("received shutdown signal, closing")
			s.sc.SendCloseSignal(nil)
			if err := s.sc.WaitClosed(); err != nil {
				s.logger.Error("shutdown completed with error", zap.Error(err))
			} else {
				s.logger.Info("service has been shut down gracefully")
			}
		},
	}

	rootCmd.AddCommand(runCommand)
	fs := runCommand.Flags()
	fs.StringVarP(&runEnv.dir, "dir", "d", "", "run dir")
	fs.StringVarP(&runEnv.listen, "listen", "l", "", "listen address")
	fs.StringVarP(&runEnv.runMode, "mode", "m", "", "run mode")
	fs.StringVarP(&runEnv.config, "config", "c", "", "config file")
}
