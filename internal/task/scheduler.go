// Package task 提供后台任务的注册与调度
package task

import (
	"context"
	"time"

	"github.com/notepadie/notepad-local-service/pkg/safe_close"

	"go.uber.org/zap"
)

// Task 一个周期执行的后台任务
type Task interface {
	// Name 任务名称, 用于日志
	Name() string
	// Run 执行一次
	Run(ctx context.Context) error
	// LoopInterval 轮询间隔, 不大于 0 时只按 IsStartupRun 执行
	LoopInterval() time.Duration
	// IsStartupRun 启动时是否先执行一次
	IsStartupRun() bool
}

// Scheduler 任务调度器, 每个任务独占一个 ticker 循环
type Scheduler struct {
	logger *zap.Logger
	tasks  []Task
	sc     *safe_close.SafeClose
}

func NewScheduler(logger *zap.Logger, sc *safe_close.SafeClose) *Scheduler {
	return &Scheduler{logger: logger, sc: sc}
}

func (s *Scheduler) AddTask(task Task) {
	s.tasks = append(s.tasks, task)
}

// Start 为每个已注册任务启动循环, 挂接到关闭信号
func (s *Scheduler) Start() {
	if len(s.tasks) == 0 {
		s.logger.Info("no tasks to schedule")
		return
	}
	s.logger.Info("tasks starting", zap.Int("count", len(s.tasks)))

	for _, t := range s.tasks {
		s.loop(t)
	}
}

// runGuarded 执行一次任务, 吞掉 panic 只记日志
func (s *Scheduler) runGuarded(t Task) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task panic",
				zap.String("name", t.Name()),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()
	if err := t.Run(context.Background()); err != nil {
		s.logger.Error("task run error", zap.String("name", t.Name()), zap.Error(err))
	}
}

func (s *Scheduler) loop(t Task) {
	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()

		if t.IsStartupRun() {
			s.runGuarded(t)
		}

		if t.LoopInterval() <= 0 {
			return
		}

		ticker := time.NewTicker(t.LoopInterval())
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runGuarded(t)
			case <-closeSignal:
				s.logger.Info("task stopped", zap.String("name", t.Name()))
				return
			}
		}
	})
}
