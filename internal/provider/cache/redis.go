// Package cache provides a Redis read-through cache for provider lookups.
//
// The cache never fails a request. Redis errors are logged and counted by a
// circuit breaker; while the breaker is open, lookups still reach Redis but
// report a miss so reads fall through to the store.
//
// Reads fill missing keys with SET NX. Writers store committed records
// through a version check, so a reader holding a record loaded before a
// commit cannot put it back over the writer's entry.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"provider-registry/internal/provider/models"
	id "provider-registry/pkg/domain"
	"provider-registry/pkg/platform/circuit"
)

const (
	providerKeyPrefix  = "provider-registry:provider:"
	principalKeyPrefix = "provider-registry:principal:"

	// DefaultTTL bounds how long an entry may outlive a failed write-through.
	DefaultTTL = 5 * time.Minute
)

// RedisCache caches provider records and the principal index in Redis.
type RedisCache struct {
	client  redis.UniversalClient
	ttl     time.Duration
	breaker *circuit.Breaker
	logger  *slog.Logger
}

type Option func(*RedisCache)

func WithTTL(ttl time.Duration) Option {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *RedisCache) {
		c.logger = logger
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(c *RedisCache) {
		c.breaker = b
	}
}

func New(client redis.UniversalClient, opts ...Option) *RedisCache {
	c := &RedisCache{
		client:  client,
		ttl:     DefaultTTL,
		breaker: circuit.New("provider-cache"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func providerKey(providerID id.ProviderID) string {
	return providerKeyPrefix + providerID.String()
}

func principalKey(principal id.Principal) string {
	return principalKeyPrefix + principal.String()
}

// entry is the stored value. V orders writes for the same key: provider
// entries carry UpdatedAt, principal entries the CreatedAt of the indexed
// provider, and read fills of the principal index carry zero.
type entry struct {
	V          int64            `json:"v"`
	Provider   *models.Provider `json:"provider,omitempty"`
	ProviderID id.ProviderID    `json:"provider_id,omitempty"`
}

// storeScript writes ARGV[1] unless the current value carries a newer version.
var storeScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if current then
  local ok, decoded = pcall(cjson.decode, current)
  if ok and type(decoded) == 'table' then
    local v = tonumber(decoded['v'])
    if v and v > tonumber(ARGV[2]) then
      return 0
    end
  end
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`)

func (c *RedisCache) GetProvider(ctx context.Context, providerID id.ProviderID) (*models.Provider, bool) {
	e, ok := c.getEntry(ctx, providerKey(providerID))
	if !ok || e.Provider == nil {
		return nil, false
	}
	return e.Provider, true
}

// FillProvider caches a record read from the store. It never replaces an
// existing entry: a concurrent writer's entry is always at least as new.
func (c *RedisCache) FillProvider(ctx context.Context, provider *models.Provider) {
	if provider == nil || c.breaker.IsOpen() {
		return
	}
	c.fill(ctx, providerKey(provider.ID), entry{V: provider.UpdatedAt, Provider: provider})
}

// StoreProvider writes a committed record through to the cache unless a newer
// version is already there. It is attempted even when the breaker is open.
func (c *RedisCache) StoreProvider(ctx context.Context, provider *models.Provider) {
	if provider == nil {
		return
	}
	c.store(ctx, providerKey(provider.ID), entry{V: provider.UpdatedAt, Provider: provider})
}

func (c *RedisCache) GetProviderID(ctx context.Context, principal id.Principal) (id.ProviderID, bool) {
	e, ok := c.getEntry(ctx, principalKey(principal))
	if !ok || e.ProviderID.IsZero() {
		return "", false
	}
	return e.ProviderID, true
}

func (c *RedisCache) FillProviderID(ctx context.Context, principal id.Principal, providerID id.ProviderID) {
	if c.breaker.IsOpen() {
		return
	}
	c.fill(ctx, principalKey(principal), entry{ProviderID: providerID})
}

// StoreProviderID points the principal index at providerID. version is the
// provider's CreatedAt, so a later registration always wins.
func (c *RedisCache) StoreProviderID(ctx context.Context, principal id.Principal, providerID id.ProviderID, version int64) {
	c.store(ctx, principalKey(principal), entry{V: version, ProviderID: providerID})
}

func (c *RedisCache) getEntry(ctx context.Context, key string) (entry, bool) {
	raw, ok := c.get(ctx, key)
	if !ok {
		return entry{}, false
	}
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		c.logger.WarnContext(ctx, "discarding undecodable cache entry",
			"key", key,
			"error", err,
		)
		return entry{}, false
	}
	return e, true
}

func (c *RedisCache) fill(ctx context.Context, key string, e entry) {
	raw, err := json.Marshal(e)
	if err != nil {
		return
	}
	c.record(ctx, c.client.SetNX(ctx, key, raw, c.ttl).Err())
}

func (c *RedisCache) store(ctx context.Context, key string, e entry) {
	raw, err := json.Marshal(e)
	if err != nil {
		return
	}
	err = storeScript.Run(ctx, c.client, []string{key}, raw, e.V, c.ttl.Milliseconds()).Err()
	if err != nil {
		c.logger.ErrorContext(ctx, "cache write-through failed",
			"key", key,
			"version", e.V,
			"error", err,
		)
	}
	c.record(ctx, err)
}

// get returns the raw value when Redis answered and the breaker is closed.
func (c *RedisCache) get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.record(ctx, nil)
		return nil, false
	}
	if err != nil {
		c.record(ctx, err)
		return nil, false
	}
	if !c.record(ctx, nil) {
		return nil, false
	}
	return raw, true
}

// record feeds the breaker and reports whether Redis results may be trusted.
func (c *RedisCache) record(ctx context.Context, err error) bool {
	if err != nil {
		_, change := c.breaker.RecordFailure()
		if change.Opened {
			c.logger.WarnContext(ctx, "cache circuit opened",
				"breaker", c.breaker.Name(),
				"error", err,
			)
		}
		return false
	}
	trusted, change := c.breaker.RecordSuccess()
	if change.Closed {
		c.logger.InfoContext(ctx, "cache circuit closed", "breaker", c.breaker.Name())
	}
	return trusted
}
