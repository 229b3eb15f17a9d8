package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// QuickProgressStep is the fixed increment applied by a quick update.
	QuickProgressStep = 10
	// MaxProgress is the progress of a finished task.
	MaxProgress = 100
	// DefaultTaskTitle replaces a blank title on creation.
	DefaultTaskTitle = "New Task"
)

// TaskUpdate is one immutable audit entry describing a progress change.
type TaskUpdate struct {
	Timestamp      time.Time `json:"timestamp"`
	User           string    `json:"user"`
	Message        string    `json:"message"`
	ProgressBefore int       `json:"progress_before"`
	ProgressAfter  int       `json:"progress_after"`
}

// Task is one unit of work inside a category.
//
// Tasks are values: lifecycle operations return a new Task and never modify
// the receiver, its assignees or its update history.
type Task struct {
	ID          string       `json:"id"`
	CategoryID  string       `json:"category_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	AssignedTo  []string     `json:"assigned_to"`
	Status      Status       `json:"status"`
	Progress    int          `json:"progress"`
	DueDate     time.Time    `json:"due_date"`
	Updates     []TaskUpdate `json:"updates"`
}

// TaskFields holds the caller-supplied values for a new or edited task.
type TaskFields struct {
	Title       string
	Description string
	AssignedTo  []string
	DueDate     *time.Time
}

// NewTask creates a not-started task in the given category.
// The category must already be known to exist; only emptiness is checked here.
func NewTask(categoryID string, fields TaskFields, actingUser string, now time.Time) (Task, error) {
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return Task{}, ErrMissingCategory
	}

	t := Task{
		ID:          uuid.NewString(),
		CategoryID:  categoryID,
		Status:      StatusNotStarted,
		Progress:    0,
		Updates:     []TaskUpdate{},
		Description: strings.TrimSpace(fields.Description),
	}
	t.Title = titleOrDefault(fields.Title)
	t.AssignedTo = assigneesOrDefault(fields.AssignedTo, actingUser)
	t.DueDate = dueDateOrDefault(fields.DueDate, now)

	return t, nil
}

// IsCompleted reports whether the task is finished.
func (t Task) IsCompleted() bool { return t.Status == StatusCompleted }

// IsBlocked reports whether the task is blocked.
func (t Task) IsBlocked() bool { return t.Status == StatusBlocked }

// LatestUpdate returns the newest audit entry, if any.
func (t Task) LatestUpdate() (TaskUpdate, bool) {
	if len(t.Updates) == 0 {
		return TaskUpdate{}, false
	}
	return t.Updates[0], true
}

// ApplyQuickProgressUpdate advances the task by QuickProgressStep, capped at
// MaxProgress, and records the change. The result is always in-progress or
// completed, whatever the prior status. A task already at 100% still gets a
// 100 -> 100 entry.
func (t Task) ApplyQuickProgressUpdate(actingUser string, now time.Time) Task {
	newProgress := min(t.Progress+QuickProgressStep, MaxProgress)

	newStatus := StatusInProgress
	if newProgress == MaxProgress {
		newStatus = StatusCompleted
	}

	entry := TaskUpdate{
		Timestamp:      now.UTC(),
		User:           actingUser,
		Message:        progressMessage(t.Progress, newProgress),
		ProgressBefore: t.Progress,
		ProgressAfter:  newProgress,
	}

	next := t.Clone()
	next.Progress = newProgress
	next.Status = newStatus
	next.Updates = prepend(entry, t.Updates)
	return next
}

// ChangeStatus sets the status by hand. Completing forces progress to 100;
// any other status on a task at 100% is rejected so that completed and 100%
// keep implying each other.
func (t Task) ChangeStatus(status Status, actingUser string, now time.Time) (Task, error) {
	if !status.IsValid() {
		return Task{}, ErrInvalidStatus
	}

	newProgress := t.Progress
	if status == StatusCompleted {
		newProgress = MaxProgress
	} else if t.Progress >= MaxProgress {
		return Task{}, ErrCompletedProgress
	}

	entry := TaskUpdate{
		Timestamp:      now.UTC(),
		User:           actingUser,
		Message:        fmt.Sprintf("Status changed from %s to %s", t.Status, status),
		ProgressBefore: t.Progress,
		ProgressAfter:  newProgress,
	}

	next := t.Clone()
	next.Status = status
	next.Progress = newProgress
	next.Updates = prepend(entry, t.Updates)
	return next, nil
}

// Edit replaces the descriptive fields, applying the same defaults as NewTask.
// Progress, status and history are untouched.
func (t Task) Edit(fields TaskFields, actingUser string, now time.Time) Task {
	next := t.Clone()
	next.Title = titleOrDefault(fields.Title)
	next.Description = strings.TrimSpace(fields.Description)
	next.AssignedTo = assigneesOrDefault(fields.AssignedTo, actingUser)
	if fields.DueDate != nil {
		next.DueDate = DateOf(*fields.DueDate)
	} else if t.DueDate.IsZero() {
		next.DueDate = DateOf(now)
	}
	return next
}

// Clone returns a copy sharing no slices with t.
func (t Task) Clone() Task {
	next := t
	next.AssignedTo = append([]string(nil), t.AssignedTo...)
	next.Updates = append([]TaskUpdate(nil), t.Updates...)
	return next
}

// prepend returns a new history with entry in front; history is not modified.
func prepend(entry TaskUpdate, history []TaskUpdate) []TaskUpdate {
	out := make([]TaskUpdate, 0, len(history)+1)
	out = append(out, entry)
	return append(out, history...)
}

func progressMessage(before, after int) string {
	return fmt.Sprintf("Progress updated from %d%% to %d%%", before, after)
}

func titleOrDefault(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultTaskTitle
	}
	return title
}

func assigneesOrDefault(assignees []string, actingUser string) []string {
	seen := make(map[string]struct{}, len(assignees))
	out := make([]string, 0, len(assignees))
	for _, name := range assignees {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	if len(out) == 0 && actingUser != "" {
		out = append(out, actingUser)
	}
	return out
}

func dueDateOrDefault(due *time.Time, now time.Time) time.Time {
	if due != nil {
		return DateOf(*due)
	}
	return DateOf(now)
}
