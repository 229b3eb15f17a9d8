package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
	sharedDomain "github.com/felixgeelhaar/eventboard/internal/shared/domain"
)

// InsightsUnavailable is shown whenever text generation fails.
const InsightsUnavailable = "AI insights are currently unavailable."

// TextGenerator turns dashboard data into free text. The text is shown to
// people and never interpreted by the program.
type TextGenerator interface {
	GenerateInsights(ctx context.Context, categories []domain.Category, tasks []domain.Task) (string, error)
	GenerateWeeklyReport(ctx context.Context, categories []domain.Category, overallProgress int) (string, error)
}

// InsightsService asks the text generator about the current derived state.
type InsightsService struct {
	coordinator *Coordinator
	generator   TextGenerator
	logger      *slog.Logger
}

// NewInsightsService creates the service. A nil generator always yields the
// fallback text.
func NewInsightsService(coordinator *Coordinator, generator TextGenerator, logger *slog.Logger) *InsightsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InsightsService{coordinator: coordinator, generator: generator, logger: logger}
}

// Insights returns generated observations about categories and tasks.
func (s *InsightsService) Insights(ctx context.Context) string {
	if s.generator == nil {
		return InsightsUnavailable
	}

	categories, tasks := s.coordinator.Snapshot()
	text, err := s.generator.GenerateInsights(ctx, categories, tasks)
	return s.textOrFallback(ctx, "insights", text, err)
}

// WeeklyReport returns a generated status report for the whole event.
func (s *InsightsService) WeeklyReport(ctx context.Context) string {
	if s.generator == nil {
		return InsightsUnavailable
	}

	state := s.coordinator.DerivedState()
	text, err := s.generator.GenerateWeeklyReport(ctx, state.Categories, state.OverallProgress)
	return s.textOrFallback(ctx, "weekly_report", text, err)
}

func (s *InsightsService) textOrFallback(ctx context.Context, kind, text string, err error) string {
	if err != nil {
		s.logger.WarnContext(ctx, "text generation failed",
			"kind", kind,
			"error", fmt.Errorf("%w: %w", sharedDomain.ErrUpstreamService, err),
		)
		return InsightsUnavailable
	}
	if text == "" {
		return InsightsUnavailable
	}
	return text
}
