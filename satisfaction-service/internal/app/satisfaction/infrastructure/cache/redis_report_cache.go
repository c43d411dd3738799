package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"customersatisfaction/pkg/metrics"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/entity"

	"github.com/redis/go-redis/v9"
)

const (
	metricsService   = "satisfaction-service"
	reportKeyPrefix  = "report"
	reportVersionKey = "report:version"
)

// RedisReportCache кеширует отчёты по ключу фильтра
// Ключ записи включает поколение report:version, новый отзыв увеличивает поколение
type RedisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

func NewRedisReportCache(client *redis.Client, ttl time.Duration) *RedisReportCache {
	return &RedisReportCache{client: client, ttl: ttl}
}

func entryKey(version int64, key string) string {
	return fmt.Sprintf("%s:v%d:%s", reportKeyPrefix, version, key)
}

func (c *RedisReportCache) version(ctx context.Context) (int64, error) {
	version, err := c.client.Get(ctx, reportVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return version, err
}

// Lookup возвращает отчёт и текущее поколение; при промахе отчёт nil
func (c *RedisReportCache) Lookup(ctx context.Context, key string) (*entity.ReportSummary, int64, error) {
	timer := metrics.NewRedisTimer(metricsService, metrics.RedisOpGet)
	defer timer.ObserveDuration()

	version, err := c.version(ctx)
	if err != nil {
		metrics.RecordRedisError(metricsService, metrics.RedisOpGet)
		return nil, 0, fmt.Errorf("failed to read report version: %w", err)
	}

	data, err := c.client.Get(ctx, entryKey(version, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordCacheMiss(metricsService, reportKeyPrefix)
		return nil, version, nil
	}
	if err != nil {
		metrics.RecordRedisError(metricsService, metrics.RedisOpGet)
		return nil, version, fmt.Errorf("failed to get report from cache: %w", err)
	}

	var summary entity.ReportSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, version, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	metrics.RecordCacheHit(metricsService, reportKeyPrefix)
	return &summary, version, nil
}

func (c *RedisReportCache) Store(ctx context.Context, key string, version int64, summary entity.ReportSummary) error {
	timer := metrics.NewRedisTimer(metricsService, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := c.client.Set(ctx, entryKey(version, key), data, c.ttl).Err(); err != nil {
		metrics.RecordRedisError(metricsService, metrics.RedisOpSet)
		return fmt.Errorf("failed to set report in cache: %w", err)
	}

	return nil
}

// Invalidate начинает новое поколение, старые записи истекут по TTL
func (c *RedisReportCache) Invalidate(ctx context.Context) error {
	timer := metrics.NewRedisTimer(metricsService, metrics.RedisOpIncr)
	defer timer.ObserveDuration()

	if err := c.client.Incr(ctx, reportVersionKey).Err(); err != nil {
		metrics.RecordRedisError(metricsService, metrics.RedisOpIncr)
		return fmt.Errorf("failed to bump report version: %w", err)
	}
	return nil
}

func (c *RedisReportCache) Close() error {
	return c.client.Close()
}
