package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/attendance-backend/internal/config"
	"github.com/stemsi/attendance-backend/internal/report"
)

// overdueSnapshotTTL outlives a daily scan so the snapshot never expires between runs.
const overdueSnapshotTTL = 25 * time.Hour

// ReportCache stores computed reports tagged with the data version they were computed at.
type ReportCache interface {
	Version(ctx context.Context) (int64, error)
	GetSummary(ctx context.Context, version int64, r report.DateRange) (*SummaryReport, bool)
	SetSummary(ctx context.Context, version int64, r report.DateRange, s *SummaryReport)
	GetOverdue(ctx context.Context) (*OverdueSnapshot, bool)
	SetOverdue(ctx context.Context, snap *OverdueSnapshot)
}

// OverdueSnapshot is the stored result of a scheduled overdue scan.
type OverdueSnapshot struct {
	Version int64          `json:"version"`
	Report  *OverdueReport `json:"report"`
}

// RedisReportCache is a ReportCache backed by Redis. A nil client always misses.
type RedisReportCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisReportCache creates a cache whose summary entries live for ttl.
func NewRedisReportCache(rdb *redis.Client, ttl time.Duration) *RedisReportCache {
	return &RedisReportCache{rdb: rdb, ttl: ttl}
}

func (c *RedisReportCache) Version(ctx context.Context) (int64, error) {
	if c.rdb == nil {
		return 0, nil
	}
	v, err := c.rdb.Get(ctx, config.CacheKey.ReportVersionKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *RedisReportCache) GetSummary(ctx context.Context, version int64, r report.DateRange) (*SummaryReport, bool) {
	var s SummaryReport
	if !c.getJSON(ctx, config.CacheKey.SummaryReportKey(version, r.From, r.To), &s) {
		return nil, false
	}
	return &s, true
}

func (c *RedisReportCache) SetSummary(ctx context.Context, version int64, r report.DateRange, s *SummaryReport) {
	if c.ttl <= 0 {
		return
	}
	c.setJSON(ctx, config.CacheKey.SummaryReportKey(version, r.From, r.To), s, c.ttl)
}

func (c *RedisReportCache) GetOverdue(ctx context.Context) (*OverdueSnapshot, bool) {
	var snap OverdueSnapshot
	if !c.getJSON(ctx, config.CacheKey.OverdueSnapshotKey(), &snap) || snap.Report == nil {
		return nil, false
	}
	return &snap, true
}

func (c *RedisReportCache) SetOverdue(ctx context.Context, snap *OverdueSnapshot) {
	c.setJSON(ctx, config.CacheKey.OverdueSnapshotKey(), snap, overdueSnapshotTTL)
}

func (c *RedisReportCache) getJSON(ctx context.Context, key string, dst interface{}) bool {
	if c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func (c *RedisReportCache) setJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if c.rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, key, raw, ttl).Err()
}
