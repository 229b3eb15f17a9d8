package subscribers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/eventbus"
)

// DefaultActivityCapacity is the number of entries an ActivityFeed keeps.
const DefaultActivityCapacity = 100

// Activity is one human-readable line about a task change.
type Activity struct {
	EventID    string    `json:"event_id"`
	RoutingKey string    `json:"routing_key"`
	TaskID     string    `json:"task_id"`
	CategoryID string    `json:"category_id"`
	Actor      string    `json:"actor"`
	Summary    string    `json:"summary"`
	OccurredAt time.Time `json:"occurred_at"`
}

// taskEventPayload is the union of the task event payloads.
type taskEventPayload struct {
	CategoryID     string `json:"category_id"`
	Title          string `json:"title"`
	ProgressBefore int    `json:"progress_before"`
	ProgressAfter  int    `json:"progress_after"`
	Status         string `json:"status"`
	From           string `json:"from"`
	To             string `json:"to"`
}

// ActivityFeed keeps the most recent task events, newest first.
type ActivityFeed struct {
	mu       sync.RWMutex
	entries  []Activity
	capacity int
	listener func(Activity)
	logger   *slog.Logger
}

// NewActivityFeed creates a feed holding at most capacity entries.
func NewActivityFeed(capacity int, logger *slog.Logger) *ActivityFeed {
	if capacity <= 0 {
		capacity = DefaultActivityCapacity
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityFeed{capacity: capacity, logger: logger}
}

// OnActivity registers fn to be called for every new entry.
func (f *ActivityFeed) OnActivity(fn func(Activity)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listener = fn
}

// EventTypes binds the feed to every task event.
func (f *ActivityFeed) EventTypes() []string {
	return []string{domain.RoutingPatternTask}
}

// Handle records the event. Undecodable payloads are logged and skipped.
func (f *ActivityFeed) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	var payload taskEventPayload
	if len(event.Payload) > 0 {
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			f.logger.ErrorContext(ctx, "failed to unmarshal task event payload",
				"routing_key", event.RoutingKey,
				"error", err,
			)
			return nil
		}
	}

	entry := Activity{
		EventID:    event.EventID.String(),
		RoutingKey: event.RoutingKey,
		TaskID:     event.AggregateID,
		CategoryID: payload.CategoryID,
		Actor:      event.Metadata.Actor,
		Summary:    summarize(event.RoutingKey, payload),
		OccurredAt: event.OccurredAt,
	}

	f.mu.Lock()
	f.entries = append([]Activity{entry}, f.entries...)
	if len(f.entries) > f.capacity {
		f.entries = f.entries[:f.capacity]
	}
	listener := f.listener
	f.mu.Unlock()

	if listener != nil {
		listener(entry)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A limit of zero or less
// returns everything.
func (f *ActivityFeed) Recent(limit int) []Activity {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if limit <= 0 || limit > len(f.entries) {
		limit = len(f.entries)
	}
	return append([]Activity(nil), f.entries[:limit]...)
}

func summarize(routingKey string, p taskEventPayload) string {
	switch routingKey {
	case domain.RoutingKeyTaskCreated:
		return fmt.Sprintf("created %q", p.Title)
	case domain.RoutingKeyTaskProgressed:
		return fmt.Sprintf("progress %d%% -> %d%% (%s)", p.ProgressBefore, p.ProgressAfter, p.Status)
	case domain.RoutingKeyTaskStatusChanged:
		return fmt.Sprintf("status %s -> %s", p.From, p.To)
	case domain.RoutingKeyTaskEdited:
		return fmt.Sprintf("edited %q", p.Title)
	case domain.RoutingKeyTaskDeleted:
		return "deleted"
	default:
		return routingKey
	}
}
