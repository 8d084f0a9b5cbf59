/*
 * @module service/distributed_lock/memory_lock
 * @description 进程内锁，未配置Redis时替代分布式锁
 * @rules 过期的锁视为未持有；接口与 RedisLock 一致
 * @refs redis_lock.go
 */

package distributed_lock

import (
	"context"
	"sync"
	"time"
)

// MemoryLock 进程内锁实现，单实例部署或测试时使用
type MemoryLock struct {
	mu      sync.Mutex
	entries map[string]time.Time // key -> 过期时间
	now     func() time.Time
}

// NewMemoryLock 创建进程内锁
func NewMemoryLock() *MemoryLock {
	return &MemoryLock{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// TryLock 尝试获取锁，已过期的锁视为不存在
func (m *MemoryLock) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if expiry, ok := m.entries[key]; ok && m.now().Before(expiry) {
		return false, nil
	}
	m.entries[key] = m.now().Add(ttl)
	return true, nil
}

// Unlock 释放锁
func (m *MemoryLock) Unlock(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// IsLocked 检查锁是否存在
func (m *MemoryLock) IsLocked(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, ok := m.entries[key]
	return ok && m.now().Before(expiry), nil
}
