package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jabaapp/user-service/pkg/helpers"
)

// Aggregate change events published to the broker after a successful write.
// Consumers (the notifier worker) key off Type.
const (
	EventUserCreated     = "user.created"
	EventUserUpdated     = "user.updated"
	EventUserDeleted     = "user.deleted"
	EventPasswordChanged = "user.password.changed"
)

type UserEvent struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	Login      string    `json:"login,omitempty"`
	Email      string    `json:"email,omitempty"`
	Name       string    `json:"name,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// publishEvent is fire-and-forget: the write already committed, so a broker
// failure is logged and swallowed rather than failing the operation.
func publishEvent(ctx context.Context, pub *helpers.RabbitPublisher, logger *logrus.Logger, ev UserEvent) {
	if pub == nil {
		return
	}
	ev.OccurredAt = time.Now().UTC()
	if err := pub.PublishJSON(ctx, ev); err != nil && logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"event":   ev.Type,
			"user_id": ev.UserID,
		}).Warn("event publish failed")
	}
}
