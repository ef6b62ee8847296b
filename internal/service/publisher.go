package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/retro-quiz/internal/config"
	"github.com/stemsi/retro-quiz/internal/model"
)

// ResultPublisher announces completed sessions to interested consumers.
type ResultPublisher interface {
	PublishResult(ctx context.Context, s *model.SessionResult) error
}

// NopPublisher discards results. Used when Redis is not configured.
type NopPublisher struct{}

func (NopPublisher) PublishResult(context.Context, *model.SessionResult) error { return nil }

// ResultEvent is the payload published for each completed session.
type ResultEvent struct {
	Type        string    `json:"type"`
	SessionID   string    `json:"session_id"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	Percentage  float64   `json:"percentage"`
	CompletedAt time.Time `json:"completed_at"`
}

// NewResultEvent builds the published summary for a session.
func NewResultEvent(s *model.SessionResult) ResultEvent {
	return ResultEvent{
		Type:        "session_completed",
		SessionID:   s.SessionID,
		Score:       s.Score,
		Total:       s.Total,
		Percentage:  s.Percentage,
		CompletedAt: s.CompletedAt,
	}
}

// DefaultPublishTimeout bounds how long a submit waits on Redis.
const DefaultPublishTimeout = 250 * time.Millisecond

// RedisPublisher publishes session summaries on a Redis Pub/Sub channel.
type RedisPublisher struct {
	rdb     redis.UniversalClient
	channel string
	timeout time.Duration
}

// NewRedisPublisher creates a publisher on the configured results channel.
func NewRedisPublisher(rdb redis.UniversalClient) *RedisPublisher {
	return &RedisPublisher{
		rdb:     rdb,
		channel: config.CacheKey.ResultsChannel(),
		timeout: DefaultPublishTimeout,
	}
}

// PublishResult implements ResultPublisher.
func (p *RedisPublisher) PublishResult(ctx context.Context, s *model.SessionResult) error {
	payload, err := json.Marshal(NewResultEvent(s))
	if err != nil {
		return fmt.Errorf("marshal result event: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", p.channel, err)
	}
	return nil
}
