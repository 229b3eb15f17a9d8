package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Session is one slot in the event schedule.
type Session struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Speaker     string    `json:"speaker"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

// NewSession validates and creates a schedule session.
func NewSession(title, speaker, location, description string, startsAt, endsAt time.Time) (Session, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Session{}, ErrEmptyTitle
	}
	if !endsAt.After(startsAt) {
		return Session{}, ErrInvalidTimeRange
	}
	return Session{
		ID:          uuid.NewString(),
		Title:       title,
		Speaker:     strings.TrimSpace(speaker),
		Location:    strings.TrimSpace(location),
		Description: strings.TrimSpace(description),
		StartsAt:    startsAt.UTC(),
		EndsAt:      endsAt.UTC(),
	}, nil
}

// Duration returns the length of the session.
func (s Session) Duration() time.Duration {
	return s.EndsAt.Sub(s.StartsAt)
}

// RSVP is an attendee's reply to the invitation.
type RSVP string

const (
	RSVPPending   RSVP = "pending"
	RSVPConfirmed RSVP = "confirmed"
	RSVPDeclined  RSVP = "declined"
)

// ParseRSVP parses a string into an RSVP state.
func ParseRSVP(s string) (RSVP, error) {
	switch r := RSVP(s); r {
	case RSVPPending, RSVPConfirmed, RSVPDeclined:
		return r, nil
	default:
		return "", ErrInvalidRSVP
	}
}

// Attendee is one entry on the guest list.
type Attendee struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Organization string `json:"organization"`
	RSVP         RSVP   `json:"rsvp"`
	CheckedIn    bool   `json:"checked_in"`
}

// NewAttendee creates a guest with a pending RSVP.
func NewAttendee(name, email, organization string) (Attendee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Attendee{}, ErrEmptyName
	}
	return Attendee{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        strings.TrimSpace(email),
		Organization: strings.TrimSpace(organization),
		RSVP:         RSVPPending,
	}, nil
}

// CheckIn marks the attendee as arrived. Arriving implies a confirmed RSVP.
func (a Attendee) CheckIn() Attendee {
	a.CheckedIn = true
	a.RSVP = RSVPConfirmed
	return a
}

// Photo is one gallery image.
type Photo struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Caption    string    `json:"caption"`
	UploadedBy string    `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// NewPhoto creates a gallery entry.
func NewPhoto(url, caption, uploadedBy string, now time.Time) (Photo, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return Photo{}, ErrMissingURL
	}
	return Photo{
		ID:         uuid.NewString(),
		URL:        url,
		Caption:    strings.TrimSpace(caption),
		UploadedBy: uploadedBy,
		UploadedAt: now.UTC(),
	}, nil
}
