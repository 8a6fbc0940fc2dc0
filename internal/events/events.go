// Package events publishes change notifications for travel map resources.
// A change is published after the database statement succeeded; delivery is
// best effort and never fails the request that caused it.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Resource names used in subjects.
const (
	ResourceTravelPoint = "travelpoint"
	ResourceTravelRoute = "travelroute"
	ResourceMember      = "member"
)

// Actions used in subjects.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// SubjectPrefix is the root of every subject this service publishes on.
const SubjectPrefix = "travelmap"

// Event is the JSON envelope sent for each change.
type Event struct {
	Resource   string    `json:"resource"`
	Action     string    `json:"action"`
	ID         int64     `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

// Subject returns the subject the event is published on,
// e.g. "travelmap.travelpoint.created".
func (e Event) Subject() string {
	return fmt.Sprintf("%s.%s.%s", SubjectPrefix, e.Resource, e.Action)
}

// Publisher delivers events to a broker.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }

// Emit stamps e, publishes it and logs a failure instead of returning it.
func Emit(ctx context.Context, p Publisher, e Event) {
	if p == nil {
		return
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	if err := p.Publish(ctx, e); err != nil {
		slog.WarnContext(ctx, "publish change event failed",
			"subject", e.Subject(),
			"id", e.ID,
			"error", err,
		)
	}
}

func encode(e Event) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("events: encode %s: %w", e.Subject(), err)
	}
	return data, nil
}
