package domain

// Status represents the lifecycle status of a task or category.
type Status string

const (
	// StatusNotStarted indicates no work has been recorded yet.
	StatusNotStarted Status = "not-started"
	// StatusInProgress indicates work has been recorded but is unfinished.
	StatusInProgress Status = "in-progress"
	// StatusCompleted indicates the work is finished.
	StatusCompleted Status = "completed"
	// StatusBlocked indicates the work cannot proceed.
	StatusBlocked Status = "blocked"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusBlocked:
		return true
	default:
		return false
	}
}

// ParseStatus parses a string into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Phase is the part of the event timeline a category belongs to.
type Phase string

const (
	PhasePreEvent    Phase = "pre-event"
	PhaseDuringEvent Phase = "during-event"
	PhasePostEvent   Phase = "post-event"
)

// Phases lists every phase in timeline order.
func Phases() []Phase {
	return []Phase{PhasePreEvent, PhaseDuringEvent, PhasePostEvent}
}

func (p Phase) String() string {
	return string(p)
}

// IsValid returns true if the phase is a known value.
func (p Phase) IsValid() bool {
	switch p {
	case PhasePreEvent, PhaseDuringEvent, PhasePostEvent:
		return true
	default:
		return false
	}
}

// ParsePhase parses a string into a Phase.
func ParsePhase(s string) (Phase, error) {
	phase := Phase(s)
	if !phase.IsValid() {
		return "", ErrInvalidPhase
	}
	return phase, nil
}

// Priority ranks categories against each other.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) String() string {
	return string(p)
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// ParsePriority parses a string into a Priority.
func ParsePriority(s string) (Priority, error) {
	priority := Priority(s)
	if !priority.IsValid() {
		return "", ErrInvalidPriority
	}
	return priority, nil
}
