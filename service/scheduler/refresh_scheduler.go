/**
 * @module RefreshScheduler
 * @description 数据刷新调度器，按Cron表达式定时重新加载预测数据
 * @architecture 基于 robfig/cron 的调度器模式
 * @stateFlow 创建(校验表达式) -> Start -> 定时触发加载 -> Stop
 * @rules 支持秒级Cron表达式与描述符(@every 1h)；上一次刷新未结束时跳过本次触发
 * @dependencies github.com/robfig/cron/v3
 * @refs ../loader/session.go
 */

package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ReloadFunc 刷新函数
type ReloadFunc func(ctx context.Context) error

// RefreshScheduler 数据刷新调度器
type RefreshScheduler struct {
	cron    *cron.Cron
	entryID cron.EntryID
	expr    string
	reload  ReloadFunc
	ctx     context.Context
	cancel  context.CancelFunc

	mu      sync.Mutex
	lastRun time.Time
	lastErr error
	runs    int
}

// NewRefreshScheduler 创建刷新调度器，表达式无效时返回错误
func NewRefreshScheduler(expr string, reload ReloadFunc) (*RefreshScheduler, error) {
	if reload == nil {
		return nil, fmt.Errorf("刷新函数不能为空")
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &RefreshScheduler{
		cron:   cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		expr:   expr,
		reload: reload,
		ctx:    ctx,
		cancel: cancel,
	}

	id, err := s.cron.AddFunc(expr, s.run)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("添加刷新任务失败 [%s]: %w", expr, err)
	}
	s.entryID = id
	return s, nil
}

// Start 启动调度器
func (s *RefreshScheduler) Start() {
	slog.Info("启动数据刷新调度器", "cron", s.expr)
	s.cron.Start()
}

// Stop 停止调度器并等待正在执行的刷新结束
func (s *RefreshScheduler) Stop() {
	slog.Info("停止数据刷新调度器")
	s.cancel()
	<-s.cron.Stop().Done()
}

// Next 下一次触发时间，未启动时为零值
func (s *RefreshScheduler) Next() time.Time {
	return s.cron.Entry(s.entryID).Next
}

// RunInfo 执行情况
type RunInfo struct {
	LastRun time.Time
	LastErr error
	Runs    int
}

// Info 返回最近一次执行情况
func (s *RefreshScheduler) Info() RunInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return RunInfo{LastRun: s.lastRun, LastErr: s.lastErr, Runs: s.runs}
}

func (s *RefreshScheduler) run() {
	start := time.Now()
	err := s.reload(s.ctx)
	if err != nil {
		slog.Error("定时刷新失败", "error", err, "duration", time.Since(start))
	} else {
		slog.Info("定时刷新完成", "duration", time.Since(start))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRun = start
	s.lastErr = err
	s.runs++
}
