package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"trustguard/internal/config"
	"trustguard/internal/domain/models"
	"trustguard/pkg/logger"
)

// RedisCache wraps the Redis client with typed operations
type RedisCache struct {
	client    *redis.Client
	keyPrefix string
	logger    *logger.Logger
}

// NewRedis creates a new Redis client
func NewRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*RedisCache, error) {
	log = log.WithComponent("redis")
	log.Info().Str("host", cfg.Host).Int("port", cfg.Port).Msg("connecting to Redis")

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	log.Info().Msg("connected to Redis successfully")

	return &RedisCache{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		logger:    log,
	}, nil
}

// Client returns the underlying Redis client
func (c *RedisCache) Client() *redis.Client {
	return c.client
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	c.logger.Info().Msg("closing Redis connection")
	return c.client.Close()
}

// key prepends the namespace prefix to a key
func (c *RedisCache) key(k string) string {
	return c.keyPrefix + k
}

// Get retrieves a value from cache
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, c.key(key)).Result()
}

// GetJSON retrieves and unmarshals a JSON value from cache
func (c *RedisCache) GetJSON(ctx context.Context, key string, dest any) error {
	data, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

// Set stores a value in cache with optional TTL
func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.client.Set(ctx, c.key(key), value, ttl).Err()
}

// SetJSON marshals and stores a value in cache
func (c *RedisCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return c.Set(ctx, key, string(data), ttl)
}

// Delete removes a key from cache
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	prefixedKeys := make([]string, len(keys))
	for i, k := range keys {
		prefixedKeys[i] = c.key(k)
	}
	return c.client.Del(ctx, prefixedKeys...).Err()
}

// Exists checks if a key exists
func (c *RedisCache) Exists(ctx context.Context, keys ...string) (int64, error) {
	prefixedKeys := make([]string, len(keys))
	for i, k := range keys {
		prefixedKeys[i] = c.key(k)
	}
	return c.client.Exists(ctx, prefixedKeys...).Result()
}

// Incr increments an integer value
func (c *RedisCache) Incr(ctx context.Context, key string) (int64, error) {
	return c.client.Incr(ctx, c.key(key)).Result()
}

// Pipeline returns a Redis pipeline for batch operations
func (c *RedisCache) Pipeline() redis.Pipeliner {
	return c.client.Pipeline()
}

// Cache key constants for TrustGuard
const (
	// Advisory judgment cache keys
	KeyAdvisoryPrefix = "cache:advisory:"

	// Rate limiting keys
	KeyRateLimitPrefix = "rate_limit:"

	// Usage counters
	KeyStatsAnalyzed      = "stats:analyzed_total"
	KeyStatsAdvisories    = "stats:advisories_total"
	KeyStatsReports       = "stats:reports_total"
	KeyStatsVerdictPrefix = "stats:verdict:"
)

// AdvisoryFingerprint derives the cache key hash for one advisory
// request. Identical text, sender, and allowlist share a judgment.
func AdvisoryFingerprint(text, sender string, allowlist []string) string {
	h := sha256.New()
	h.Write([]byte(text))
	h.Write([]byte{0})
	h.Write([]byte(sender))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(allowlist, ",")))
	return hex.EncodeToString(h.Sum(nil))
}

// CacheAdvisory stores a judgment under its request fingerprint
func (c *RedisCache) CacheAdvisory(ctx context.Context, fingerprint string, judgment *models.Judgment, ttl time.Duration) error {
	return c.SetJSON(ctx, KeyAdvisoryPrefix+fingerprint, judgment, ttl)
}

// GetCachedAdvisory retrieves a cached judgment, or nil on a miss
func (c *RedisCache) GetCachedAdvisory(ctx context.Context, fingerprint string) (*models.Judgment, error) {
	var judgment models.Judgment
	err := c.GetJSON(ctx, KeyAdvisoryPrefix+fingerprint, &judgment)
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &judgment, nil
}

// CountAnalysis bumps the analyzed total and the per-verdict counter
func (c *RedisCache) CountAnalysis(ctx context.Context, verdict models.Verdict) error {
	pipe := c.Pipeline()
	pipe.Incr(ctx, c.key(KeyStatsAnalyzed))
	pipe.Incr(ctx, c.key(KeyStatsVerdictPrefix+verdict.Slug()))
	_, err := pipe.Exec(ctx)
	return err
}

// CountAdvisory bumps the advisory call counter
func (c *RedisCache) CountAdvisory(ctx context.Context) error {
	_, err := c.Incr(ctx, KeyStatsAdvisories)
	return err
}

// CountReport bumps the generated report counter
func (c *RedisCache) CountReport(ctx context.Context) error {
	_, err := c.Incr(ctx, KeyStatsReports)
	return err
}

// GetStats reads all usage counters in one round trip. Missing keys
// read as zero.
func (c *RedisCache) GetStats(ctx context.Context) (*models.UsageStats, error) {
	verdicts := []models.Verdict{
		models.VerdictHighRisk,
		models.VerdictCaution,
		models.VerdictLikelySafe,
	}

	pipe := c.Pipeline()
	analyzed := pipe.Get(ctx, c.key(KeyStatsAnalyzed))
	advisories := pipe.Get(ctx, c.key(KeyStatsAdvisories))
	reports := pipe.Get(ctx, c.key(KeyStatsReports))
	perVerdict := make([]*redis.StringCmd, len(verdicts))
	for i, v := range verdicts {
		perVerdict[i] = pipe.Get(ctx, c.key(KeyStatsVerdictPrefix+v.Slug()))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, err
	}

	stats := &models.UsageStats{
		Analyzed:   counterValue(analyzed),
		Advisories: counterValue(advisories),
		Reports:    counterValue(reports),
		Verdicts:   make(map[string]int64, len(verdicts)),
	}
	for i, v := range verdicts {
		stats.Verdicts[v.Slug()] = counterValue(perVerdict[i])
	}
	return stats, nil
}

// ResetStats deletes all usage counters
func (c *RedisCache) ResetStats(ctx context.Context) error {
	keys := []string{
		KeyStatsAnalyzed,
		KeyStatsAdvisories,
		KeyStatsReports,
		KeyStatsVerdictPrefix + models.VerdictHighRisk.Slug(),
		KeyStatsVerdictPrefix + models.VerdictCaution.Slug(),
		KeyStatsVerdictPrefix + models.VerdictLikelySafe.Slug(),
	}
	return c.Delete(ctx, keys...)
}

func counterValue(cmd *redis.StringCmd) int64 {
	val, err := cmd.Result()
	if err != nil {
		return 0
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// CheckRateLimit checks and increments the rate limit counter
// Returns (allowed, remaining, resetTime, error)
func (c *RedisCache) CheckRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, time.Time, error) {
	now := time.Now()
	windowKey := fmt.Sprintf("%s%s:%d", KeyRateLimitPrefix, key, now.Unix()/int64(window.Seconds()))

	pipe := c.Pipeline()
	incr := pipe.Incr(ctx, c.key(windowKey))
	pipe.Expire(ctx, c.key(windowKey), window)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return false, 0, time.Time{}, err
	}

	count := incr.Val()
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	resetTime := now.Add(window)

	return count <= limit, remaining, resetTime, nil
}
