package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/eventboard/internal/shared/domain"
)

const (
	AggregateTypeTask = "Task"

	RoutingKeyTaskCreated       = "dashboard.task.created"
	RoutingKeyTaskProgressed    = "dashboard.task.progressed"
	RoutingKeyTaskStatusChanged = "dashboard.task.status_changed"
	RoutingKeyTaskEdited        = "dashboard.task.edited"
	RoutingKeyTaskDeleted       = "dashboard.task.deleted"

	// RoutingPatternTask matches every task routing key.
	RoutingPatternTask = "dashboard.task.*"
)

// TaskCreated is emitted when a task is added to a category.
type TaskCreated struct {
	sharedDomain.BaseEvent
	CategoryID string `json:"category_id"`
	Title      string `json:"title"`
}

// NewTaskCreated creates a TaskCreated event.
func NewTaskCreated(t Task, at time.Time) TaskCreated {
	return TaskCreated{
		BaseEvent:  sharedDomain.NewBaseEvent(t.ID, AggregateTypeTask, RoutingKeyTaskCreated, at),
		CategoryID: t.CategoryID,
		Title:      t.Title,
	}
}

// TaskProgressed is emitted when a quick update advances a task.
type TaskProgressed struct {
	sharedDomain.BaseEvent
	CategoryID     string `json:"category_id"`
	ProgressBefore int    `json:"progress_before"`
	ProgressAfter  int    `json:"progress_after"`
	Status         string `json:"status"`
}

// NewTaskProgressed creates a TaskProgressed event from the updated task.
func NewTaskProgressed(t Task, at time.Time) TaskProgressed {
	e := TaskProgressed{
		BaseEvent:  sharedDomain.NewBaseEvent(t.ID, AggregateTypeTask, RoutingKeyTaskProgressed, at),
		CategoryID: t.CategoryID,
		Status:     t.Status.String(),
	}
	if latest, ok := t.LatestUpdate(); ok {
		e.ProgressBefore = latest.ProgressBefore
		e.ProgressAfter = latest.ProgressAfter
	}
	return e
}

// TaskStatusChanged is emitted when a task's status is set by hand.
type TaskStatusChanged struct {
	sharedDomain.BaseEvent
	CategoryID string `json:"category_id"`
	From       string `json:"from"`
	To         string `json:"to"`
}

// NewTaskStatusChanged creates a TaskStatusChanged event.
func NewTaskStatusChanged(t Task, from Status, at time.Time) TaskStatusChanged {
	return TaskStatusChanged{
		BaseEvent:  sharedDomain.NewBaseEvent(t.ID, AggregateTypeTask, RoutingKeyTaskStatusChanged, at),
		CategoryID: t.CategoryID,
		From:       from.String(),
		To:         t.Status.String(),
	}
}

// TaskEdited is emitted when a task's descriptive fields change.
type TaskEdited struct {
	sharedDomain.BaseEvent
	CategoryID string `json:"category_id"`
	Title      string `json:"title"`
}

// NewTaskEdited creates a TaskEdited event.
func NewTaskEdited(t Task, at time.Time) TaskEdited {
	return TaskEdited{
		BaseEvent:  sharedDomain.NewBaseEvent(t.ID, AggregateTypeTask, RoutingKeyTaskEdited, at),
		CategoryID: t.CategoryID,
		Title:      t.Title,
	}
}

// TaskDeleted is emitted when a super-admin removes a task.
type TaskDeleted struct {
	sharedDomain.BaseEvent
	CategoryID string `json:"category_id"`
}

// NewTaskDeleted creates a TaskDeleted event.
func NewTaskDeleted(t Task, at time.Time) TaskDeleted {
	return TaskDeleted{
		BaseEvent:  sharedDomain.NewBaseEvent(t.ID, AggregateTypeTask, RoutingKeyTaskDeleted, at),
		CategoryID: t.CategoryID,
	}
}
