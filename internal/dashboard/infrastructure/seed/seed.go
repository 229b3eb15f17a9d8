// Package seed provides the built-in dataset and writes it into a store.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/security"
)

//go:embed seed.yaml
var builtin []byte

// ErrInvalidSeed is returned when a dataset file cannot be used.
var ErrInvalidSeed = errors.New("invalid seed data")

type document struct {
	Users      []userDoc     `yaml:"users"`
	Categories []categoryDoc `yaml:"categories"`
	Tasks      []taskDoc     `yaml:"tasks"`
	Sessions   []sessionDoc  `yaml:"sessions"`
	Attendees  []attendeeDoc `yaml:"attendees"`
	Photos     []photoDoc    `yaml:"photos"`
}

type userDoc struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
	Role       string `yaml:"role"`
	AccessCode string `yaml:"access_code"`
}

type categoryDoc struct {
	ID                 string   `yaml:"id"`
	Name               string   `yaml:"name"`
	Description        string   `yaml:"description"`
	Phase              string   `yaml:"phase"`
	ResponsiblePersons []string `yaml:"responsible_persons"`
	Progress           int      `yaml:"progress"`
	Status             string   `yaml:"status"`
	DueDate            string   `yaml:"due_date"`
	Priority           string   `yaml:"priority"`
}

type taskDoc struct {
	ID          string   `yaml:"id"`
	CategoryID  string   `yaml:"category_id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	AssignedTo  []string `yaml:"assigned_to"`
	Status      string   `yaml:"status"`
	Progress    int      `yaml:"progress"`
	DueDate     string   `yaml:"due_date"`
}

type sessionDoc struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Speaker     string    `yaml:"speaker"`
	Location    string    `yaml:"location"`
	Description string    `yaml:"description"`
	StartsAt    time.Time `yaml:"starts_at"`
	EndsAt      time.Time `yaml:"ends_at"`
}

type attendeeDoc struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Email        string `yaml:"email"`
	Organization string `yaml:"organization"`
	RSVP         string `yaml:"rsvp"`
	CheckedIn    bool   `yaml:"checked_in"`
}

type photoDoc struct {
	ID         string    `yaml:"id"`
	URL        string    `yaml:"url"`
	Caption    string    `yaml:"caption"`
	UploadedBy string    `yaml:"uploaded_by"`
	UploadedAt time.Time `yaml:"uploaded_at"`
}

// Default returns the built-in dataset.
func Default() (domain.Dataset, error) {
	return Parse(builtin)
}

// MustDefault is Default for process start-up, where a broken embedded file
// is a build defect.
func MustDefault() domain.Dataset {
	ds, err := Default()
	if err != nil {
		panic(err)
	}
	return ds
}

// LoadFile reads a dataset from a YAML file.
func LoadFile(path string) (domain.Dataset, error) {
	data, err := security.SafeReadFile(path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML dataset. Unknown keys are rejected so
// that typos do not silently drop fields.
func Parse(data []byte) (domain.Dataset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return domain.Dataset{}, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	return doc.dataset()
}

func (d document) dataset() (domain.Dataset, error) {
	ds := domain.Dataset{
		Users:      make([]domain.User, 0, len(d.Users)),
		Categories: make([]domain.Category, 0, len(d.Categories)),
		Tasks:      make([]domain.Task, 0, len(d.Tasks)),
		Sessions:   make([]domain.Session, 0, len(d.Sessions)),
		Attendees:  make([]domain.Attendee, 0, len(d.Attendees)),
		Photos:     make([]domain.Photo, 0, len(d.Photos)),
	}

	for _, u := range d.Users {
		role, err := domain.ParseRole(u.Role)
		if err != nil {
			return domain.Dataset{}, invalid("user", u.ID, err)
		}
		ds.Users = append(ds.Users, domain.User{ID: u.ID, Name: u.Name, Email: u.Email, Role: role, AccessCode: u.AccessCode})
	}

	categories := make(map[string]struct{}, len(d.Categories))
	for _, c := range d.Categories {
		cat, err := c.category()
		if err != nil {
			return domain.Dataset{}, invalid("category", c.ID, err)
		}
		categories[cat.ID] = struct{}{}
		ds.Categories = append(ds.Categories, cat)
	}

	for _, t := range d.Tasks {
		if _, ok := categories[t.CategoryID]; !ok {
			return domain.Dataset{}, invalid("task", t.ID, fmt.Errorf("unknown category %q", t.CategoryID))
		}
		task, err := t.task()
		if err != nil {
			return domain.Dataset{}, invalid("task", t.ID, err)
		}
		ds.Tasks = append(ds.Tasks, task)
	}

	for _, s := range d.Sessions {
		ds.Sessions = append(ds.Sessions, domain.Session{
			ID: s.ID, Title: s.Title, Speaker: s.Speaker, Location: s.Location,
			Description: s.Description, StartsAt: s.StartsAt.UTC(), EndsAt: s.EndsAt.UTC(),
		})
	}

	for _, a := range d.Attendees {
		rsvp := domain.RSVPPending
		if a.RSVP != "" {
			var err error
			if rsvp, err = domain.ParseRSVP(a.RSVP); err != nil {
				return domain.Dataset{}, invalid("attendee", a.ID, err)
			}
		}
		ds.Attendees = append(ds.Attendees, domain.Attendee{
			ID: a.ID, Name: a.Name, Email: a.Email, Organization: a.Organization, RSVP: rsvp, CheckedIn: a.CheckedIn,
		})
	}

	for _, p := range d.Photos {
		ds.Photos = append(ds.Photos, domain.Photo{
			ID: p.ID, URL: p.URL, Caption: p.Caption, UploadedBy: p.UploadedBy, UploadedAt: p.UploadedAt.UTC(),
		})
	}

	return ds, nil
}

func (c categoryDoc) category() (domain.Category, error) {
	phase, err := domain.ParsePhase(c.Phase)
	if err != nil {
		return domain.Category{}, err
	}
	status, err := domain.ParseStatus(c.Status)
	if err != nil {
		return domain.Category{}, err
	}
	priority, err := domain.ParsePriority(c.Priority)
	if err != nil {
		return domain.Category{}, err
	}
	due, err := domain.ParseDate(c.DueDate)
	if err != nil {
		return domain.Category{}, err
	}
	return domain.Category{
		ID: c.ID, Name: c.Name, Description: c.Description, Phase: phase,
		ResponsiblePersons: nonNil(c.ResponsiblePersons), Progress: c.Progress,
		Status: status, DueDate: due, Priority: priority,
	}, nil
}

func (t taskDoc) task() (domain.Task, error) {
	status, err := domain.ParseStatus(t.Status)
	if err != nil {
		return domain.Task{}, err
	}
	due, err := domain.ParseDate(t.DueDate)
	if err != nil {
		return domain.Task{}, err
	}
	if t.Progress < 0 || t.Progress > domain.MaxProgress {
		return domain.Task{}, fmt.Errorf("progress %d out of range", t.Progress)
	}
	if (status == domain.StatusCompleted) != (t.Progress == domain.MaxProgress) {
		return domain.Task{}, fmt.Errorf("status %s does not match progress %d", status, t.Progress)
	}
	return domain.Task{
		ID: t.ID, CategoryID: t.CategoryID, Title: t.Title, Description: t.Description,
		AssignedTo: nonNil(t.AssignedTo), Status: status, Progress: t.Progress,
		DueDate: due, Updates: []domain.TaskUpdate{},
	}, nil
}

func invalid(kind, id string, err error) error {
	return fmt.Errorf("%w: %s %q: %v", ErrInvalidSeed, kind, id, err)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// UnitOfWork scopes a group of writes to one transaction carried in the
// context.
type UnitOfWork interface {
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Counts reports how many records of each collection were written.
type Counts map[string]int

// Apply upserts every record of ds through gw inside one transaction, so
// running it twice leaves the same rows.
func Apply(ctx context.Context, uow UnitOfWork, gw domain.Gateway, ds domain.Dataset, logger *slog.Logger) (Counts, error) {
	if logger == nil {
		logger = slog.Default()
	}

	txCtx, err := uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin seed transaction: %w", err)
	}

	counts := Counts{}
	steps := []func() error{
		func() error { return upsertAll(txCtx, "users", gw.Users(), ds.Users, counts) },
		func() error { return upsertAll(txCtx, "categories", gw.Categories(), ds.Categories, counts) },
		func() error { return upsertAll(txCtx, "tasks", gw.Tasks(), ds.Tasks, counts) },
		func() error { return upsertAll(txCtx, "sessions", gw.Sessions(), ds.Sessions, counts) },
		func() error { return upsertAll(txCtx, "attendees", gw.Attendees(), ds.Attendees, counts) },
		func() error { return upsertAll(txCtx, "photos", gw.Photos(), ds.Photos, counts) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			if rbErr := uow.Rollback(txCtx); rbErr != nil {
				logger.Warn("seed rollback failed", "error", rbErr)
			}
			return nil, err
		}
	}

	if err := uow.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("commit seed transaction: %w", err)
	}

	logger.Info("seed data applied",
		"users", counts["users"],
		"categories", counts["categories"],
		"tasks", counts["tasks"],
	)
	return counts, nil
}

func upsertAll[T any](ctx context.Context, name string, col domain.Collection[T], values []T, counts Counts) error {
	for _, v := range values {
		if err := col.Upsert(ctx, v); err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
	}
	counts[name] = len(values)
	return nil
}
