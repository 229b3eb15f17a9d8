package persistence

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/database"
)

// Dates are stored as YYYY-MM-DD text, instants as RFC 3339 text in UTC, and
// lists as JSON text so that one schema serves both drivers.

var (
	taskColumns     = []string{"id", "category_id", "title", "description", "assigned_to", "status", "progress", "due_date", "updates"}
	categoryColumns = []string{"id", "name", "description", "phase", "responsible_persons", "progress", "status", "due_date", "priority"}
	userColumns     = []string{"id", "name", "email", "role", "access_code"}
	sessionColumns  = []string{"id", "title", "speaker", "location", "description", "starts_at", "ends_at"}
	attendeeColumns = []string{"id", "name", "email", "organization", "rsvp", "checked_in"}
	photoColumns    = []string{"id", "url", "caption", "uploaded_by", "uploaded_at"}
)

func taskValues(t domain.Task) ([]any, error) {
	assigned, err := encodeJSON(t.AssignedTo, "[]")
	if err != nil {
		return nil, err
	}
	updates, err := encodeJSON(t.Updates, "[]")
	if err != nil {
		return nil, err
	}
	return []any{
		t.ID, t.CategoryID, t.Title, t.Description, assigned,
		string(t.Status), t.Progress, formatDate(t.DueDate), updates,
	}, nil
}

func scanTask(row scanner) (domain.Task, error) {
	var (
		t                 domain.Task
		status, due       string
		assigned, updates string
	)
	if err := row.Scan(&t.ID, &t.CategoryID, &t.Title, &t.Description, &assigned,
		&status, &t.Progress, &due, &updates); err != nil {
		return domain.Task{}, err
	}
	t.Status = domain.Status(status)

	var err error
	if t.DueDate, err = parseDate(due); err != nil {
		return domain.Task{}, err
	}
	if err := decodeJSON(assigned, &t.AssignedTo); err != nil {
		return domain.Task{}, fmt.Errorf("assigned_to: %w", err)
	}
	if err := decodeJSON(updates, &t.Updates); err != nil {
		return domain.Task{}, fmt.Errorf("updates: %w", err)
	}
	return t, nil
}

func categoryValues(c domain.Category) ([]any, error) {
	people, err := encodeJSON(c.ResponsiblePersons, "[]")
	if err != nil {
		return nil, err
	}
	return []any{
		c.ID, c.Name, c.Description, string(c.Phase), people,
		c.Progress, string(c.Status), formatDate(c.DueDate), string(c.Priority),
	}, nil
}

func scanCategory(row scanner) (domain.Category, error) {
	var (
		c                            domain.Category
		phase, status, due, priority string
		people                       string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &phase, &people,
		&c.Progress, &status, &due, &priority); err != nil {
		return domain.Category{}, err
	}
	c.Phase = domain.Phase(phase)
	c.Status = domain.Status(status)
	c.Priority = domain.Priority(priority)

	var err error
	if c.DueDate, err = parseDate(due); err != nil {
		return domain.Category{}, err
	}
	if err := decodeJSON(people, &c.ResponsiblePersons); err != nil {
		return domain.Category{}, fmt.Errorf("responsible_persons: %w", err)
	}
	return c, nil
}

func userValues(u domain.User) ([]any, error) {
	return []any{u.ID, u.Name, u.Email, string(u.Role), u.AccessCode}, nil
}

func scanUser(row scanner) (domain.User, error) {
	var (
		u    domain.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &role, &u.AccessCode); err != nil {
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	return u, nil
}

func sessionValues(s domain.Session) ([]any, error) {
	return []any{
		s.ID, s.Title, s.Speaker, s.Location, s.Description,
		formatInstant(s.StartsAt), formatInstant(s.EndsAt),
	}, nil
}

func scanSession(row scanner) (domain.Session, error) {
	var (
		s            domain.Session
		starts, ends string
	)
	if err := row.Scan(&s.ID, &s.Title, &s.Speaker, &s.Location, &s.Description, &starts, &ends); err != nil {
		return domain.Session{}, err
	}
	var err error
	if s.StartsAt, err = parseInstant(starts); err != nil {
		return domain.Session{}, err
	}
	if s.EndsAt, err = parseInstant(ends); err != nil {
		return domain.Session{}, err
	}
	return s, nil
}

// attendeeValues stores checked_in as a native BOOLEAN on PostgreSQL and as
// 0/1 on SQLite.
func attendeeValues(driver database.Driver) func(domain.Attendee) ([]any, error) {
	return func(a domain.Attendee) ([]any, error) {
		var checkedIn any = a.CheckedIn
		if driver == database.DriverSQLite {
			checkedIn = boolToInt64(a.CheckedIn)
		}
		return []any{a.ID, a.Name, a.Email, a.Organization, string(a.RSVP), checkedIn}, nil
	}
}

func scanAttendee(row scanner) (domain.Attendee, error) {
	var (
		a    domain.Attendee
		rsvp string
	)
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Organization, &rsvp, &a.CheckedIn); err != nil {
		return domain.Attendee{}, err
	}
	a.RSVP = domain.RSVP(rsvp)
	return a, nil
}

func photoValues(p domain.Photo) ([]any, error) {
	return []any{p.ID, p.URL, p.Caption, p.UploadedBy, formatInstant(p.UploadedAt)}, nil
}

func scanPhoto(row scanner) (domain.Photo, error) {
	var (
		p        domain.Photo
		uploaded string
	)
	if err := row.Scan(&p.ID, &p.URL, &p.Caption, &p.UploadedBy, &uploaded); err != nil {
		return domain.Photo{}, err
	}
	var err error
	if p.UploadedAt, err = parseInstant(uploaded); err != nil {
		return domain.Photo{}, err
	}
	return p, nil
}

func encodeJSON(v any, empty string) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(b) == "null" {
		return empty, nil
	}
	return string(b), nil
}

func decodeJSON[T any](s string, dest *[]T) error {
	if s == "" {
		*dest = []T{}
		return nil
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return err
	}
	if *dest == nil {
		*dest = []T{}
	}
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func formatInstant(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseInstant(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
