// Package caldav publishes the event programme to a CalDAV calendar such as
// Nextcloud, Fastmail or iCloud.
package caldav

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/caldav"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/application"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
)

// PropXEventboard marks calendar objects this exporter owns.
const PropXEventboard = "X-EVENTBOARD"

const productID = "-//Eventboard//Programme Export//EN"

// calendarClient is the subset of *caldav.Client the exporter uses.
type calendarClient interface {
	FindCurrentUserPrincipal(ctx context.Context) (string, error)
	FindCalendarHomeSet(ctx context.Context, principal string) (string, error)
	FindCalendars(ctx context.Context, calendarHomeSet string) ([]caldav.Calendar, error)
	GetCalendarObject(ctx context.Context, path string) (*caldav.CalendarObject, error)
	PutCalendarObject(ctx context.Context, path string, cal *ical.Calendar) (*caldav.CalendarObject, error)
	QueryCalendar(ctx context.Context, calendar string, query *caldav.CalendarQuery) ([]caldav.CalendarObject, error)
	RemoveAll(ctx context.Context, name string) error
}

// Exporter writes each session as one VEVENT named after the session id.
type Exporter struct {
	client        calendarClient
	calendarPath  string
	deleteMissing bool
	now           func() time.Time
	logger        *slog.Logger
}

var _ application.ScheduleExporter = (*Exporter)(nil)

// Config holds server credentials.
type Config struct {
	URL      string
	Username string
	// Password is usually an app-specific password.
	Password string
	// CalendarPath selects a calendar; empty uses the first one found.
	CalendarPath string
	Timeout      time.Duration
}

// NewExporter connects a client for cfg.
func NewExporter(cfg Config, logger *slog.Logger) (*Exporter, error) {
	if cfg.URL == "" {
		return nil, errors.New("caldav URL is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := webdav.HTTPClientWithBasicAuth(&http.Client{Timeout: timeout}, cfg.Username, cfg.Password)
	client, err := caldav.NewClient(httpClient, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create caldav client: %w", err)
	}
	return newExporter(client, cfg.CalendarPath, logger), nil
}

func newExporter(client calendarClient, calendarPath string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		client:       client,
		calendarPath: calendarPath,
		now:          time.Now,
		logger:       logger,
	}
}

// WithDeleteMissing removes exported events whose session no longer exists.
func (e *Exporter) WithDeleteMissing(enabled bool) *Exporter {
	e.deleteMissing = enabled
	return e
}

// Export creates or replaces one calendar object per session. Individual
// failures are counted and logged; only failing to locate the calendar
// aborts the export.
func (e *Exporter) Export(ctx context.Context, sessions []domain.Session) (application.ExportResult, error) {
	var result application.ExportResult

	calPath, err := e.findCalendarPath(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to find calendar: %w", err)
	}

	keep := make(map[string]struct{}, len(sessions))
	for _, s := range sessions {
		path := objectPath(calPath, s.ID)
		keep[path] = struct{}{}

		_, getErr := e.client.GetCalendarObject(ctx, path)
		exists := getErr == nil

		if _, err := e.client.PutCalendarObject(ctx, path, toICalendar(s, e.now())); err != nil {
			e.logger.WarnContext(ctx, "caldav export failed", "session_id", s.ID, "error", err)
			result.Failed++
			continue
		}
		if exists {
			result.Updated++
		} else {
			result.Created++
		}
	}

	if e.deleteMissing {
		deleted, err := e.deleteMissingEvents(ctx, calPath, keep)
		if err != nil {
			e.logger.WarnContext(ctx, "caldav delete missing failed", "error", err)
		}
		result.Deleted = deleted
	}
	return result, nil
}

func (e *Exporter) findCalendarPath(ctx context.Context) (string, error) {
	if e.calendarPath != "" {
		return ensureTrailingSlash(e.calendarPath), nil
	}

	principal, err := e.client.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to find principal: %w", err)
	}
	homeSet, err := e.client.FindCalendarHomeSet(ctx, principal)
	if err != nil {
		return "", fmt.Errorf("failed to find calendar home set: %w", err)
	}
	cals, err := e.client.FindCalendars(ctx, homeSet)
	if err != nil {
		return "", fmt.Errorf("failed to find calendars: %w", err)
	}
	if len(cals) == 0 {
		return "", errors.New("no calendars found")
	}
	return ensureTrailingSlash(cals[0].Path), nil
}

func (e *Exporter) deleteMissingEvents(ctx context.Context, calPath string, keep map[string]struct{}) (int, error) {
	query := &caldav.CalendarQuery{
		CompRequest: caldav.CalendarCompRequest{
			Name: ical.CompCalendar,
			Comps: []caldav.CalendarCompRequest{{
				Name:  ical.CompEvent,
				Props: []string{ical.PropUID, PropXEventboard},
			}},
		},
		CompFilter: caldav.CompFilter{
			Name:  ical.CompCalendar,
			Comps: []caldav.CompFilter{{Name: ical.CompEvent}},
		},
	}

	objects, err := e.client.QueryCalendar(ctx, calPath, query)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for i := range objects {
		obj := &objects[i]
		if !isExported(obj) {
			continue
		}
		if _, ok := keep[obj.Path]; ok {
			continue
		}
		if err := e.client.RemoveAll(ctx, obj.Path); err != nil {
			e.logger.WarnContext(ctx, "failed to delete caldav event", "path", obj.Path, "error", err)
			continue
		}
		deleted++
	}
	return deleted, nil
}

func objectPath(calPath, sessionID string) string {
	return calPath + sessionID + ".ics"
}

func ensureTrailingSlash(p string) string {
	if strings.HasSuffix(p, "/") {
		return p
	}
	return p + "/"
}

func isExported(obj *caldav.CalendarObject) bool {
	if obj == nil || obj.Data == nil {
		return false
	}
	for _, child := range obj.Data.Children {
		if child.Name != ical.CompEvent {
			continue
		}
		if props := child.Props[PropXEventboard]; len(props) > 0 && props[0].Value == "1" {
			return true
		}
	}
	return false
}

func toICalendar(s domain.Session, now time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, s.ID)
	event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, s.StartsAt.UTC())
	event.Props.SetDateTime(ical.PropDateTimeEnd, s.EndsAt.UTC())
	event.Props.SetText(ical.PropSummary, s.Title)
	if s.Location != "" {
		event.Props.SetText(ical.PropLocation, s.Location)
	}

	var desc []string
	if s.Speaker != "" {
		desc = append(desc, "Speaker: "+s.Speaker)
	}
	if s.Description != "" {
		desc = append(desc, s.Description)
	}
	if len(desc) > 0 {
		event.Props.SetText(ical.PropDescription, strings.Join(desc, "\n\n"))
	}

	marker := ical.NewProp(PropXEventboard)
	marker.Value = "1"
	event.Props[PropXEventboard] = []ical.Prop{*marker}

	cal.Children = append(cal.Children, event.Component)
	return cal
}
