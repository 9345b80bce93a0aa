// Package activity publishes telemetry events (profile views, searches,
// quote actions) to the activity exchange. Publishing is fire and
// forget: a broker failure is logged and never surfaces to the caller.
package activity

import (
	"context"
	"log/slog"
	"time"

	"github.com/bventy/platform/internal/lib/rabbitmq"
	"github.com/bventy/platform/internal/lib/sl"
	"github.com/bventy/platform/internal/models"
)

// RoutingKey routes activity events to the analytics consumer queue.
const RoutingKey = "activity.events"

// Service publishes activity events.
type Service struct {
	ch  rabbitmq.Publisher
	log *slog.Logger
	now func() time.Time
}

// New creates an activity Service over an open channel.
func New(ch rabbitmq.Publisher, log *slog.Logger) *Service {
	return &Service{ch: ch, log: log, now: time.Now}
}

// Track publishes one event. Errors are swallowed after logging so a
// broker outage never breaks a user request.
func (s *Service) Track(_ context.Context, entityType, entityID, action, userUID string) {
	event := models.ActivityEvent{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		UserUID:    userUID,
		OccurredAt: s.now().UTC(),
	}
	if err := rabbitmq.PublishMessage(s.ch, rabbitmq.ActivityExchange, RoutingKey, event); err != nil {
		s.log.Warn("failed to publish activity event",
			slog.String("action", action), sl.Err(err))
	}
}
