package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ReportVersionKey returns the counter bumped on every write that affects reports.
func (r *CacheKeyStruct) ReportVersionKey() string {
	return "report:version"
}

// SummaryReportKey returns the cache key for a summary computed at a given data version.
func (r *CacheKeyStruct) SummaryReportKey(version int64, from, to string) string {
	if from == "" {
		from = "*"
	}
	if to == "" {
		to = "*"
	}
	return fmt.Sprintf("report:summary:v%d:%s:%s", version, from, to)
}

// OverdueSnapshotKey returns the cache key for the scheduled overdue-session scan.
func (r *CacheKeyStruct) OverdueSnapshotKey() string {
	return "report:overdue"
}

// DashboardEventsChannel returns the Redis PubSub channel for live dashboard updates.
func (r *CacheKeyStruct) DashboardEventsChannel() string {
	return "dashboard:events"
}

var CacheKey = NewCacheKeyStruct()
