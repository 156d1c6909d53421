// Package safe_close provides coordinated graceful shutdown
// Package safe_close 提供协调的优雅关闭
package safe_close

import "sync"

// SafeClose coordinates multiple shutdown handlers
// SafeClose 协调多个关闭处理器
// Each handler attaches itself and waits for the close signal
// 每个处理器注册自身并等待关闭信号
type SafeClose struct {
	mu          sync.Mutex
	wg          sync.WaitGroup
	closeSignal chan struct{}
	closed      bool
	err         error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach registers a shutdown handler
// Attach 注册一个关闭处理器
// The handler must call done() when it has fully stopped
// 处理器完全停止后必须调用 done()
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	go f(s.wg.Done, s.closeSignal)
}

// SendCloseSignal broadcasts the close signal once
// SendCloseSignal 广播一次关闭信号
// The first non-nil error is retained and returned by WaitClosed
// 第一个非 nil 错误会被保留并由 WaitClosed 返回
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.closeSignal)
}

// WaitClosed blocks until every attached handler has finished
// WaitClosed 阻塞直到所有注册的处理器完成
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
