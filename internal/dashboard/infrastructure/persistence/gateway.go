// Package persistence stores the dashboard collections in SQLite or
// PostgreSQL.
package persistence

import (
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/database"
)

// Gateway implements domain.Gateway over a database connection.
type Gateway struct {
	tasks      *table[domain.Task]
	categories *table[domain.Category]
	users      *table[domain.User]
	sessions   *table[domain.Session]
	attendees  *table[domain.Attendee]
	photos     *table[domain.Photo]
}

var _ domain.Gateway = (*Gateway)(nil)

// NewGateway builds the gateway. The schema must already be migrated.
func NewGateway(conn database.Connection) *Gateway {
	return &Gateway{
		tasks:      newTable(conn, "tasks", taskColumns, []string{"due_date", "id"}, taskValues, scanTask),
		categories: newTable(conn, "categories", categoryColumns, []string{"id"}, categoryValues, scanCategory),
		users:      newTable(conn, "users", userColumns, []string{"id"}, userValues, scanUser),
		sessions:   newTable(conn, "sessions", sessionColumns, []string{"starts_at", "id"}, sessionValues, scanSession),
		attendees:  newTable(conn, "attendees", attendeeColumns, []string{"name", "id"}, attendeeValues(conn.Driver()), scanAttendee),
		photos:     newTable(conn, "photos", photoColumns, []string{"uploaded_at", "id"}, photoValues, scanPhoto),
	}
}

func (g *Gateway) Tasks() domain.Collection[domain.Task]          { return g.tasks }
func (g *Gateway) Categories() domain.Collection[domain.Category] { return g.categories }
func (g *Gateway) Users() domain.Collection[domain.User]          { return g.users }
func (g *Gateway) Sessions() domain.Collection[domain.Session]    { return g.sessions }
func (g *Gateway) Attendees() domain.Collection[domain.Attendee]  { return g.attendees }
func (g *Gateway) Photos() domain.Collection[domain.Photo]        { return g.photos }
