package activity

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bventy/platform/internal/models"
)

type fakeChannel struct {
	published []amqp.Publishing
	keys      []string
	err       error
}

func (f *fakeChannel) Publish(_, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	f.keys = append(f.keys, key)
	return nil
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func TestTrack(t *testing.T) {
	ch := &fakeChannel{}
	svc := New(ch, slog.New(discardHandler{}))
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	svc.Track(context.Background(), "vendor", "42", "profile_view", "user-1")

	require.Len(t, ch.published, 1)
	assert.Equal(t, RoutingKey, ch.keys[0])

	var event models.ActivityEvent
	require.NoError(t, json.Unmarshal(ch.published[0].Body, &event))
	assert.Equal(t, "vendor", event.EntityType)
	assert.Equal(t, "42", event.EntityID)
	assert.Equal(t, "profile_view", event.Action)
	assert.Equal(t, at, event.OccurredAt)
}

func TestTrack_BrokerFailureIsSwallowed(t *testing.T) {
	ch := &fakeChannel{err: errors.New("broker gone")}
	svc := New(ch, slog.New(discardHandler{}))

	// must not panic or return anything
	svc.Track(context.Background(), "vendor", "42", "profile_view", "user-1")
	assert.Empty(t, ch.published)
}
