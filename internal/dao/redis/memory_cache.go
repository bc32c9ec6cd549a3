package redis

import (
	"context"
	"path"
	"sync"
	"time"

	"go.uber.org/zap"

	"pet_adoption_server/pkg/errorx"
)

type memoryEntry struct {
	value    string
	expireAt time.Time // 零值表示不过期
}

// MemoryCache 进程内缓存，Redis 未启用时使用
// 模式匹配沿用 Redis 的 glob 语义（* 与 ?）
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	now  func() time.Time
}

// NewMemoryCache 创建进程内缓存
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string]memoryEntry), now: time.Now}
}

func (m *MemoryCache) lookup(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.data[key]
	if !ok {
		return "", false
	}
	if !e.expireAt.IsZero() && !m.now().Before(e.expireAt) {
		return "", false
	}
	return e.value, true
}

// Set ttl 为 0 表示不过期
func (m *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expireAt = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.data[key] = e
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, error) {
	v, _ := m.lookup(key)
	return v, nil
}

func (m *MemoryCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.lookup(key)
	return ok, nil
}

func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.data {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return errorx.Wrapf(err, errorx.CodeCacheError, "bad pattern %s", pattern)
		}
		if matched {
			delete(m.data, key)
		}
	}
	return nil
}

// SubmitTask 进程内缓存没有网络开销，直接同步执行
func (m *MemoryCache) SubmitTask(action func()) {
	defer func() {
		if rec := recover(); rec != nil {
			zap.L().Error("memory cache task panic", zap.Any("recover", rec))
		}
	}()
	if action != nil {
		action()
	}
}

var _ AsyncCacheService = (*MemoryCache)(nil)
