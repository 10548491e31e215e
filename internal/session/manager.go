package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vibetorch/backend/go-services/pkg/logger"
	"github.com/vibetorch/backend/go-services/pkg/metrics"
)

// Manager wraps the selected backend with the degrade-on-failure policy:
// no operation ever surfaces a backend error to its caller. When Redis is
// unavailable, writes fall through to the in-memory table and reads degrade
// to "no session". A broken session cache looks like an expired session,
// not a 500.
//
// Records written to the memory tier during a Redis outage stay there until
// re-written; there is no reconciliation once Redis recovers.
type Manager struct {
	redis  *RedisStore // nil when Redis is not configured or unreachable at startup
	memory *MemoryStore
	ttl    time.Duration
}

// NewManager selects the backend once at startup. A nil client means
// memory-only for the process lifetime.
func NewManager(client *redis.Client, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{memory: NewMemoryStore(), ttl: ttl}
	if client != nil {
		m.redis = NewRedisStore(client, "")
	}
	return m
}

// RedisConnected reports whether the durable backend was selected at startup.
func (m *Manager) RedisConnected() bool {
	return m.redis != nil
}

// Get resolves a session identifier. A Redis error degrades to the memory
// table so that writes accepted during an outage stay readable while the
// outage lasts.
func (m *Manager) Get(ctx context.Context, id string) *Session {
	if m.redis != nil {
		s, err := m.redis.Get(ctx, id)
		if err != nil {
			logger.Errorf("session get failed on redis (id=%s): %v", id, err)
			metrics.SessionStoreOps.WithLabelValues("redis", "get", "error").Inc()
			s, _ := m.memory.Get(ctx, id)
			return s
		}
		metrics.SessionStoreOps.WithLabelValues("redis", "get", "ok").Inc()
		return s
	}
	s, _ := m.memory.Get(ctx, id)
	metrics.SessionStoreOps.WithLabelValues("memory", "get", "ok").Inc()
	return s
}

// Set persists a session with the default TTL. A Redis failure falls
// through to the memory table rather than dropping the write.
func (m *Manager) Set(ctx context.Context, id string, s *Session) {
	if m.redis != nil {
		if err := m.redis.Set(ctx, id, s, m.ttl); err != nil {
			logger.Errorf("session set failed on redis (id=%s): %v", id, err)
			metrics.SessionStoreOps.WithLabelValues("redis", "set", "fallback").Inc()
			_ = m.memory.Set(ctx, id, s, 0)
			return
		}
		metrics.SessionStoreOps.WithLabelValues("redis", "set", "ok").Inc()
		return
	}
	_ = m.memory.Set(ctx, id, s, 0)
	metrics.SessionStoreOps.WithLabelValues("memory", "set", "ok").Inc()
}

// Delete removes a session from both tiers. Failures are best-effort.
func (m *Manager) Delete(ctx context.Context, id string) {
	if m.redis != nil {
		if err := m.redis.Delete(ctx, id); err != nil {
			logger.Errorf("session delete failed on redis (id=%s): %v", id, err)
			metrics.SessionStoreOps.WithLabelValues("redis", "delete", "error").Inc()
		} else {
			metrics.SessionStoreOps.WithLabelValues("redis", "delete", "ok").Inc()
		}
	}
	_ = m.memory.Delete(ctx, id)
}

// Count reports how many sessions the active backend holds. On a Redis
// failure it reports the memory table size instead.
func (m *Manager) Count(ctx context.Context) int {
	if m.redis != nil {
		n, err := m.redis.Count(ctx)
		if err == nil {
			return n
		}
		logger.Errorf("session count failed on redis: %v", err)
	}
	n, _ := m.memory.Count(ctx)
	return n
}
