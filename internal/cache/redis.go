package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// redisKeyPrefix namespaces all cache keys in Redis to avoid collisions
	// with other applications sharing the instance.
	redisKeyPrefix = "subres:"

	// redisOpTimeout bounds individual cache operations. The cache sits on
	// the search hot path, so a hung Redis must degrade into misses quickly.
	redisOpTimeout = 2 * time.Second
)

func init() {
	Register("redis", newRedisCache)
}

// redisCache implements the Cache interface on Redis/Valkey with
// application-level LRU semantics, for deployments where several resolver
// processes should share one search cache.
//
// Requires Redis 7.4+ or Valkey 8+ for per-field hash TTL (HPEXPIRE).
// On an older server Set stores values that never expire automatically.
//
// The whole cache lives in two Redis keys, independent of the entry count:
//
//   - {prefix}data — a Hash holding the cached values (field = user key).
//     Per-field TTL via HPEXPIRE lets Redis expire entries without any
//     application-side sweeper.
//   - {prefix}lru  — a Sorted Set tracking access order (member = user key,
//     score = last-access µs timestamp).
//
// Lua scripts make Get (touch) and Set (write + evict) each atomic. Stale
// sorted-set members whose hash field already expired are lazily cleaned
// during eviction.
type redisCache struct {
	client  *redis.Client
	ttl     time.Duration
	maxSize int
	onEvict EvictCallback
	logger  Logger
	dataKey string // hash key, e.g. "subres:data"
	lruKey  string // sorted set key, e.g. "subres:lru"
}

// lookupScript atomically reads a value from the hash and refreshes its LRU
// score when the entry exists.
//
// KEYS[1] = data hash, KEYS[2] = LRU sorted set
// ARGV[1] = current µs timestamp, ARGV[2] = member (user key)
//
// Returns the value on hit, nil on miss (including expired fields).
var lookupScript = redis.NewScript(`
local val = redis.call('HGET', KEYS[1], ARGV[2])
if val then
    redis.call('ZADD', KEYS[2], ARGV[1], ARGV[2])
end
return val
`)

// storeScript atomically writes a value, sets its per-field TTL, updates the
// LRU ordering, and pops least-recently-used entries while the cache is over
// capacity. An HDEL against an already-expired field is a harmless no-op and
// still cleans the stale sorted-set member.
//
// KEYS[1] = data hash, KEYS[2] = LRU sorted set
// ARGV[1] = value, ARGV[2] = current µs timestamp, ARGV[3] = member,
// ARGV[4] = maxSize, ARGV[5] = TTL in milliseconds
//
// Returns the list of evicted member names (possibly empty).
var storeScript = redis.NewScript(`
local member  = ARGV[3]
local maxSize = tonumber(ARGV[4])
local ttlMs   = tonumber(ARGV[5])

redis.call('HSET', KEYS[1], member, ARGV[1])
redis.call('HPEXPIRE', KEYS[1], ttlMs, 'FIELDS', 1, member)
redis.call('ZADD', KEYS[2], ARGV[2], member)

local size = redis.call('ZCARD', KEYS[2])
local evicted = {}
while size > maxSize do
    local oldest = redis.call('ZPOPMIN', KEYS[2], 1)
    if #oldest == 0 then break end
    local oldMember = oldest[1]
    redis.call('HDEL', KEYS[1], oldMember)
    table.insert(evicted, oldMember)
    size = size - 1
end

return evicted
`)

func newRedisCache(cfg ProviderConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Fail at construction rather than on the first search.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &redisCache{
		client:  client,
		ttl:     cfg.TTL,
		maxSize: cfg.Size,
		onEvict: cfg.OnEvict,
		logger:  cfg.Logger,
		dataKey: redisKeyPrefix + "data",
		lruKey:  redisKeyPrefix + "lru",
	}, nil
}

func (r *redisCache) scriptKeys() []string {
	return []string{r.dataKey, r.lruKey}
}

func (r *redisCache) logError(msg string, err error) {
	if r.logger != nil {
		r.logger.Error(msg, err)
	}
}

func (r *redisCache) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	now := strconv.FormatInt(time.Now().UnixMicro(), 10)
	result, err := lookupScript.Run(ctx, r.client, r.scriptKeys(), now, key).Text()
	if err != nil {
		// redis.Nil is a normal cache miss.
		if !errors.Is(err, redis.Nil) {
			r.logError("redis cache Get failed", err)
		}
		return nil, false
	}
	return []byte(result), true
}

func (r *redisCache) Set(key string, value []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	now := strconv.FormatInt(time.Now().UnixMicro(), 10)
	maxSize := strconv.Itoa(r.maxSize)
	ttlMs := strconv.FormatInt(r.ttl.Milliseconds(), 10)

	evicted, err := storeScript.Run(ctx, r.client, r.scriptKeys(),
		value, now, key, maxSize, ttlMs,
	).StringSlice()
	if err != nil {
		r.logError("redis cache Set failed", err)
		return
	}

	if r.onEvict != nil {
		// The evicted values are gone from Redis by now, so the callback only
		// gets the key.
		for _, evictedKey := range evicted {
			r.onEvict(evictedKey, nil)
		}
	}
}

func (r *redisCache) Contains(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	ok, err := r.client.HExists(ctx, r.dataKey, key).Result()
	if err != nil {
		r.logError("redis cache Contains failed", err)
		return false
	}
	return ok
}

func (r *redisCache) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	n, err := r.client.HLen(ctx, r.dataKey).Result()
	if err != nil {
		r.logError("redis cache Len failed", err)
		return 0
	}
	return int(n)
}

func (r *redisCache) Close() error {
	return r.client.Close()
}
