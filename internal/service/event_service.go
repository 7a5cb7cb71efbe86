package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/attendance-backend/internal/config"
	"github.com/stemsi/attendance-backend/internal/model"
)

// EventService broadcasts data changes over Redis Pub/Sub and bumps the report
// version so cached reports are not served after a write. With no Redis client
// every method is a no-op.
type EventService struct {
	rdb *redis.Client
	log zerolog.Logger
	now func() time.Time
}

// NewEventService creates a new EventService. rdb may be nil.
func NewEventService(rdb *redis.Client, log zerolog.Logger) *EventService {
	return &EventService{
		rdb: rdb,
		log: log.With().Str("component", "event_service").Logger(),
		now: time.Now,
	}
}

// Enabled reports whether live events are available.
func (s *EventService) Enabled() bool {
	return s.rdb != nil
}

// Publish bumps the report version and sends evt to the dashboard channel.
// Failures are logged and never returned: the write that triggered the event already succeeded.
func (s *EventService) Publish(ctx context.Context, evt model.DashboardEvent) {
	if s.rdb == nil {
		return
	}
	evt = s.stamp(evt)

	if err := s.rdb.Incr(ctx, config.CacheKey.ReportVersionKey()).Err(); err != nil {
		s.log.Warn().Err(err).Str("event", string(evt.Type)).Msg("Failed to bump report version")
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to encode dashboard event")
		return
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.DashboardEventsChannel(), payload).Err(); err != nil {
		s.log.Warn().Err(err).Str("event", string(evt.Type)).Msg("Failed to publish dashboard event")
	}
}

// stamp sets the publish time on events the writer left unstamped.
func (s *EventService) stamp(evt model.DashboardEvent) model.DashboardEvent {
	if evt.At.IsZero() {
		evt.At = s.now().UTC()
	}
	return evt
}

// Subscribe opens a subscription to the dashboard channel. Returns nil when Redis is disabled.
func (s *EventService) Subscribe(ctx context.Context) *redis.PubSub {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Subscribe(ctx, config.CacheKey.DashboardEventsChannel())
}

// EventStats describes the live-update channel at one point in time.
type EventStats struct {
	Enabled       bool  `json:"enabled"`
	ReportVersion int64 `json:"report_version"`
	Subscribers   int64 `json:"subscribers"`
}

// Stats reads the report version and the number of open dashboard subscriptions in one round trip.
func (s *EventService) Stats(ctx context.Context) (EventStats, error) {
	if s.rdb == nil {
		return EventStats{}, nil
	}

	channel := config.CacheKey.DashboardEventsChannel()
	pipe := s.rdb.Pipeline()
	versionCmd := pipe.Get(ctx, config.CacheKey.ReportVersionKey())
	subsCmd := pipe.PubSubNumSub(ctx, channel)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return EventStats{Enabled: true}, err
	}

	stats := EventStats{Enabled: true}
	stats.ReportVersion, _ = versionCmd.Int64()
	if subs, err := subsCmd.Result(); err == nil {
		stats.Subscribers = subs[channel]
	}
	return stats, nil
}
