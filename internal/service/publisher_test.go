package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/retro-quiz/internal/model"
)

// fakeRedis records Publish calls. Any other command panics on the nil
// embedded client.
type fakeRedis struct {
	redis.UniversalClient
	channel  string
	message  []byte
	deadline bool
	block    bool
	err      error
}

func (f *fakeRedis) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "publish", channel, message)
	f.channel = channel
	f.message, _ = message.([]byte)
	_, f.deadline = ctx.Deadline()

	if f.block {
		<-ctx.Done()
		cmd.SetErr(ctx.Err())
		return cmd
	}
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	cmd.SetVal(1)
	return cmd
}

func TestNewResultEvent(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	ev := NewResultEvent(&model.SessionResult{SessionID: "abc", Score: 3, Total: 10, Percentage: 30, CompletedAt: at})

	raw, err := json.Marshal(ev)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["type"] != "session_completed" || decoded["session_id"] != "abc" || decoded["percentage"] != 30.0 {
		t.Fatalf("event = %s", raw)
	}
}

func TestNopPublisher(t *testing.T) {
	var p ResultPublisher = NopPublisher{}
	if err := p.PublishResult(context.Background(), &model.SessionResult{}); err != nil {
		t.Fatal(err)
	}
}

func TestRedisPublisherPublishesEvent(t *testing.T) {
	rdb := &fakeRedis{}
	p := NewRedisPublisher(rdb)

	err := p.PublishResult(context.Background(), &model.SessionResult{SessionID: "s-1", Score: 2, Total: 10, Percentage: 20})
	if err != nil {
		t.Fatal(err)
	}
	if rdb.channel != "quiz:results" {
		t.Fatalf("channel = %q", rdb.channel)
	}
	if !rdb.deadline {
		t.Fatal("publish ran without a deadline")
	}

	var ev ResultEvent
	if err := json.Unmarshal(rdb.message, &ev); err != nil {
		t.Fatalf("decode %q: %v", rdb.message, err)
	}
	if ev.Type != "session_completed" || ev.SessionID != "s-1" || ev.Score != 2 || ev.Total != 10 {
		t.Fatalf("event = %+v", ev)
	}
}

func TestRedisPublisherWrapsErrors(t *testing.T) {
	p := NewRedisPublisher(&fakeRedis{err: errors.New("connection refused")})

	err := p.PublishResult(context.Background(), &model.SessionResult{SessionID: "s-2"})
	if err == nil || !strings.Contains(err.Error(), "publish quiz:results") || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("err = %v", err)
	}
}

func TestRedisPublisherTimesOut(t *testing.T) {
	p := NewRedisPublisher(&fakeRedis{block: true})
	p.timeout = 20 * time.Millisecond

	start := time.Now()
	err := p.PublishResult(context.Background(), &model.SessionResult{SessionID: "s-3"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("publish blocked for %s", elapsed)
	}
}
