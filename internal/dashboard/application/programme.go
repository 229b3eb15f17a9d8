package application

import (
	"context"
	"sort"
	"time"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
)

// SessionInput holds the fields of a new schedule session.
type SessionInput struct {
	Title       string
	Speaker     string
	Location    string
	Description string
	StartsAt    time.Time
	EndsAt      time.Time
}

// Schedule returns the sessions ordered by start time.
func (c *Coordinator) Schedule() []domain.Session {
	c.mu.RLock()
	sessions := c.sessions.All()
	c.mu.RUnlock()

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartsAt.Before(sessions[j].StartsAt)
	})
	return sessions
}

// AddSession adds a session to the schedule.
func (c *Coordinator) AddSession(ctx context.Context, actor domain.User, in SessionInput) (domain.Session, error) {
	if err := requireActor(actor); err != nil {
		return domain.Session{}, err
	}
	s, err := domain.NewSession(in.Title, in.Speaker, in.Location, in.Description, in.StartsAt, in.EndsAt)
	if err != nil {
		return domain.Session{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.sessions.Put(s)
	c.enqueueWrite("insert", "sessions", s.ID, func(ctx context.Context) error {
		return c.gateway.Sessions().Insert(ctx, s)
	})

	c.logger.InfoContext(ctx, "session added", "session_id", s.ID, "actor", actor.Name)
	return s, nil
}

// DeleteSession removes a session. Only a super-admin may delete.
func (c *Coordinator) DeleteSession(ctx context.Context, actor domain.User, id string) error {
	if err := domain.RequireSuperAdmin(actor); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.sessions.Remove(id); !ok {
		return domain.ErrSessionNotFound
	}
	c.enqueueWrite("delete", "sessions", id, func(ctx context.Context) error {
		return c.gateway.Sessions().Delete(ctx, id)
	})

	c.logger.InfoContext(ctx, "session deleted", "session_id", id, "actor", actor.Name)
	return nil
}

// AttendanceSummary counts the guest list by reply and arrival.
type AttendanceSummary struct {
	Total     int `json:"total"`
	Confirmed int `json:"confirmed"`
	Pending   int `json:"pending"`
	Declined  int `json:"declined"`
	CheckedIn int `json:"checked_in"`
}

// Attendees returns the guest list.
func (c *Coordinator) Attendees() []domain.Attendee {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.attendees.All()
}

// Attendance summarizes the guest list.
func (c *Coordinator) Attendance() AttendanceSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var s AttendanceSummary
	for _, a := range c.attendees.All() {
		s.Total++
		switch a.RSVP {
		case domain.RSVPConfirmed:
			s.Confirmed++
		case domain.RSVPDeclined:
			s.Declined++
		default:
			s.Pending++
		}
		if a.CheckedIn {
			s.CheckedIn++
		}
	}
	return s
}

// AddAttendee adds a guest with a pending reply.
func (c *Coordinator) AddAttendee(ctx context.Context, actor domain.User, name, email, organization string) (domain.Attendee, error) {
	if err := requireActor(actor); err != nil {
		return domain.Attendee{}, err
	}
	a, err := domain.NewAttendee(name, email, organization)
	if err != nil {
		return domain.Attendee{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.attendees.Put(a)
	c.enqueueWrite("insert", "attendees", a.ID, func(ctx context.Context) error {
		return c.gateway.Attendees().Insert(ctx, a)
	})

	c.logger.InfoContext(ctx, "attendee added", "attendee_id", a.ID, "actor", actor.Name)
	return a, nil
}

// SetRSVP records a guest's reply.
func (c *Coordinator) SetRSVP(ctx context.Context, actor domain.User, id string, rsvp domain.RSVP) (domain.Attendee, error) {
	if _, err := domain.ParseRSVP(string(rsvp)); err != nil {
		return domain.Attendee{}, err
	}
	return c.updateAttendee(ctx, actor, id, func(a domain.Attendee) domain.Attendee {
		a.RSVP = rsvp
		return a
	})
}

// CheckInAttendee marks a guest as arrived.
func (c *Coordinator) CheckInAttendee(ctx context.Context, actor domain.User, id string) (domain.Attendee, error) {
	return c.updateAttendee(ctx, actor, id, domain.Attendee.CheckIn)
}

func (c *Coordinator) updateAttendee(ctx context.Context, actor domain.User, id string, change func(domain.Attendee) domain.Attendee) (domain.Attendee, error) {
	if err := requireActor(actor); err != nil {
		return domain.Attendee{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.attendees.Get(id)
	if !ok {
		return domain.Attendee{}, domain.ErrAttendeeNotFound
	}
	next := change(current)
	c.attendees.Put(next)
	c.enqueueWrite("upsert", "attendees", id, func(ctx context.Context) error {
		return c.gateway.Attendees().Upsert(ctx, next)
	})

	c.logger.InfoContext(ctx, "attendee updated",
		"attendee_id", id,
		"rsvp", next.RSVP,
		"checked_in", next.CheckedIn,
		"actor", actor.Name,
	)
	return next, nil
}

// DeleteAttendee removes a guest. Only a super-admin may delete.
func (c *Coordinator) DeleteAttendee(ctx context.Context, actor domain.User, id string) error {
	if err := domain.RequireSuperAdmin(actor); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.attendees.Remove(id); !ok {
		return domain.ErrAttendeeNotFound
	}
	c.enqueueWrite("delete", "attendees", id, func(ctx context.Context) error {
		return c.gateway.Attendees().Delete(ctx, id)
	})

	c.logger.InfoContext(ctx, "attendee deleted", "attendee_id", id, "actor", actor.Name)
	return nil
}

// Gallery returns the photos, newest first.
func (c *Coordinator) Gallery() []domain.Photo {
	c.mu.RLock()
	photos := c.photos.All()
	c.mu.RUnlock()

	sort.SliceStable(photos, func(i, j int) bool {
		return photos[i].UploadedAt.After(photos[j].UploadedAt)
	})
	return photos
}

// AddPhoto adds a gallery entry uploaded by the actor.
func (c *Coordinator) AddPhoto(ctx context.Context, actor domain.User, url, caption string) (domain.Photo, error) {
	if err := requireActor(actor); err != nil {
		return domain.Photo{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := domain.NewPhoto(url, caption, actor.Name, c.now())
	if err != nil {
		return domain.Photo{}, err
	}
	c.photos.Put(p)
	c.enqueueWrite("insert", "photos", p.ID, func(ctx context.Context) error {
		return c.gateway.Photos().Insert(ctx, p)
	})

	c.logger.InfoContext(ctx, "photo added", "photo_id", p.ID, "actor", actor.Name)
	return p, nil
}

// DeletePhoto removes a gallery entry. Only a super-admin may delete.
func (c *Coordinator) DeletePhoto(ctx context.Context, actor domain.User, id string) error {
	if err := domain.RequireSuperAdmin(actor); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.photos.Remove(id); !ok {
		return domain.ErrPhotoNotFound
	}
	c.enqueueWrite("delete", "photos", id, func(ctx context.Context) error {
		return c.gateway.Photos().Delete(ctx, id)
	})

	c.logger.InfoContext(ctx, "photo deleted", "photo_id", id, "actor", actor.Name)
	return nil
}

// enqueueWrite queues a write that has no event. Callers hold c.mu.
func (c *Coordinator) enqueueWrite(operation, collection, id string, write func(context.Context) error) {
	c.writer.enqueue(writeJob{
		operation:  operation,
		collection: collection,
		id:         id,
		write:      c.gatewayWrite(write),
	})
}
