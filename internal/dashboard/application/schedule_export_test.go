package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/application"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
	sharedDomain "github.com/felixgeelhaar/eventboard/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exporterFunc func(ctx context.Context, sessions []domain.Session) (application.ExportResult, error)

func (f exporterFunc) Export(ctx context.Context, sessions []domain.Session) (application.ExportResult, error) {
	return f(ctx, sessions)
}

func TestExportSchedule(t *testing.T) {
	f := newFixture(t, false)
	start := time.Date(2026, 6, 12, 9, 0, 0, 0, time.UTC)
	_, err := f.coordinator.AddSession(context.Background(), admin, application.SessionInput{
		Title: "Keynote", StartsAt: start, EndsAt: start.Add(time.Hour),
	})
	require.NoError(t, err)

	var exported []domain.Session
	result, err := f.coordinator.ExportSchedule(context.Background(), exporterFunc(func(_ context.Context, s []domain.Session) (application.ExportResult, error) {
		exported = s
		return application.ExportResult{Created: len(s)}, nil
	}))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	require.Len(t, exported, 1)
	assert.Equal(t, "Keynote", exported[0].Title)

	_, err = f.coordinator.ExportSchedule(context.Background(), exporterFunc(func(context.Context, []domain.Session) (application.ExportResult, error) {
		return application.ExportResult{}, errors.New("401")
	}))
	assert.ErrorIs(t, err, sharedDomain.ErrUpstreamService)
}
