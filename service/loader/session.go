/*
 * @module service/loader/session
 * @description 数据集会话，持有当前数据集快照并串行化加载过程
 * @architecture 单槽位状态 + 加载防重（singleflight + 分布式锁）
 * @stateFlow 获取文本 -> 解析 -> 统计 -> 原子替换快照；失败时保留旧快照
 * @rules 同一时刻只有一个加载在进行；空数据集与网络失败需可区分；
 *        快照创建后只读
 * @dependencies golang.org/x/sync/singleflight, service/distributed_lock
 * @refs fetcher.go, service/csvcodec, service/statistics
 */

package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"predictions-hub/service/csvcodec"
	"predictions-hub/service/distributed_lock"
	"predictions-hub/service/statistics"
)

// 锁的有效期至少为 defaultLockTTL，并覆盖来源的请求超时加 lockTTLMargin
const (
	defaultLockTTL = 2 * time.Minute
	lockTTLMargin  = 30 * time.Second
)

// timeoutSource 声明单次获取最长耗时的数据来源
type timeoutSource interface {
	Timeout() time.Duration
}

// Snapshot 一次成功加载的结果
type Snapshot struct {
	Dataset    *csvcodec.Dataset     `json:"-"`
	Statistics statistics.Statistics `json:"statistics"`
	Source     string                `json:"source"`
	LoadedAt   time.Time             `json:"loaded_at"`
	Duration   time.Duration         `json:"duration"`
}

// Status 会话状态
type Status struct {
	Loaded      bool       `json:"loaded"`
	Loading     bool       `json:"loading"`
	Source      string     `json:"source"`
	Rows        int        `json:"rows"`
	LoadedAt    *time.Time `json:"loaded_at,omitempty"`
	LastAttempt *time.Time `json:"last_attempt,omitempty"`
	LastError   string     `json:"last_error,omitempty"`
}

// Session 数据集会话
type Session struct {
	mu          sync.RWMutex
	current     *Snapshot
	lastErr     error
	lastAttempt time.Time

	source   Source
	group    singleflight.Group
	executor *distributed_lock.LockExecutor
	lockTTL  time.Duration
}

// NewSession 创建会话，lock 为 nil 时使用进程内锁
func NewSession(source Source, lock distributed_lock.DistributedLock) *Session {
	if lock == nil {
		lock = distributed_lock.NewMemoryLock()
	}
	return &Session{
		source:   source,
		executor: distributed_lock.NewLockExecutor(lock),
		lockTTL:  lockTTLFor(source),
	}
}

// lockTTLFor 计算加载锁有效期，保证获取完成前锁不会过期
func lockTTLFor(source Source) time.Duration {
	ts, ok := source.(timeoutSource)
	if !ok {
		return defaultLockTTL
	}
	if ttl := ts.Timeout() + lockTTLMargin; ttl > defaultLockTTL {
		return ttl
	}
	return defaultLockTTL
}

// Source 返回数据来源
func (s *Session) Source() string {
	return s.source.Location()
}

// Load 获取并解析CSV，成功后替换当前快照。
// 并发调用共享同一次加载结果；加载不随调用方上下文取消。
func (s *Session) Load(ctx context.Context) (*Snapshot, error) {
	ctx = context.WithoutCancel(ctx)
	v, err, shared := s.group.Do("load", func() (interface{}, error) {
		return s.load(ctx)
	})
	if shared {
		slog.Debug("Session.Load - 复用进行中的加载结果", "source", s.source.Location())
	}
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

func (s *Session) load(ctx context.Context) (*Snapshot, error) {
	startTime := time.Now()
	location := s.source.Location()
	slog.Info("开始加载预测数据", "source", location)

	var snapshot *Snapshot
	err := s.executor.ExecuteWithLock(ctx, "csv:"+location, s.lockTTL, func() error {
		text, err := s.source.Fetch(ctx)
		if err != nil {
			return err
		}

		ds := csvcodec.Parse(text)
		if ds.IsEmpty() {
			return fmt.Errorf("%w: %s", ErrEmptyDataset, location)
		}

		snapshot = &Snapshot{
			Dataset:    ds,
			Statistics: statistics.Aggregate(ds),
			Source:     location,
			LoadedAt:   time.Now(),
			Duration:   time.Since(startTime),
		}
		return nil
	})
	if errors.Is(err, distributed_lock.ErrLockNotAcquired) {
		err = fmt.Errorf("%w: %s", ErrLoadInProgress, location)
	}

	loadDuration.Observe(time.Since(startTime).Seconds())
	loadsTotal.WithLabelValues(resultLabel(err)).Inc()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAttempt = startTime
	s.lastErr = err
	if err != nil {
		slog.Error("加载预测数据失败", "source", location, "error", err)
		return nil, err
	}

	s.current = snapshot
	datasetRows.Set(float64(snapshot.Dataset.Len()))
	slog.Info("加载预测数据完成",
		"source", location,
		"rows", snapshot.Dataset.Len(),
		"avg_confidence", snapshot.Statistics.AvgConfidence,
		"duration", snapshot.Duration)
	return snapshot, nil
}

// Snapshot 返回当前快照
func (s *Session) Snapshot() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNoDataset
	}
	return s.current, nil
}

// Status 返回会话状态
func (s *Session) Status(ctx context.Context) Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := Status{Source: s.source.Location()}
	if s.current != nil {
		loadedAt := s.current.LoadedAt
		status.Loaded = true
		status.Rows = s.current.Dataset.Len()
		status.LoadedAt = &loadedAt
	}
	if !s.lastAttempt.IsZero() {
		attempt := s.lastAttempt
		status.LastAttempt = &attempt
	}
	if s.lastErr != nil {
		status.LastError = s.lastErr.Error()
	}
	if locked, err := s.executor.Lock().IsLocked(ctx, "csv:"+status.Source); err == nil {
		status.Loading = locked
	}
	return status
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return resultSuccess
	case errors.Is(err, ErrNetwork):
		return resultNetwork
	case errors.Is(err, ErrEmptyDataset):
		return resultEmpty
	case errors.Is(err, ErrLoadInProgress):
		return resultInProgress
	default:
		return resultError
	}
}
