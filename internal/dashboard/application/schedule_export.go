package application

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
	sharedDomain "github.com/felixgeelhaar/eventboard/internal/shared/domain"
)

// ExportResult counts what an export did with each session.
type ExportResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
	Deleted int `json:"deleted"`
}

// ScheduleExporter pushes the schedule to an external calendar.
type ScheduleExporter interface {
	Export(ctx context.Context, sessions []domain.Session) (ExportResult, error)
}

// ExportSchedule sends the current schedule to exporter.
func (c *Coordinator) ExportSchedule(ctx context.Context, exporter ScheduleExporter) (ExportResult, error) {
	sessions := c.Schedule()
	result, err := exporter.Export(ctx, sessions)
	if err != nil {
		return result, fmt.Errorf("%w: schedule export: %w", sharedDomain.ErrUpstreamService, err)
	}

	c.logger.InfoContext(ctx, "schedule exported",
		"sessions", len(sessions),
		"created", result.Created,
		"updated", result.Updated,
		"failed", result.Failed,
		"deleted", result.Deleted,
	)
	return result, nil
}
