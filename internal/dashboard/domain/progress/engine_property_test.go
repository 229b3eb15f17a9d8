package progress_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain/progress"
	"pgregory.net/rapid"
)

var statuses = []domain.Status{
	domain.StatusNotStarted,
	domain.StatusInProgress,
	domain.StatusCompleted,
	domain.StatusBlocked,
}

func drawTasks(rt *rapid.T, categoryID string) []domain.Task {
	n := rapid.IntRange(0, 12).Draw(rt, "numTasks")
	tasks := make([]domain.Task, n)
	for i := range tasks {
		tasks[i] = domain.Task{
			ID:         fmt.Sprintf("%s-%d", categoryID, i),
			CategoryID: categoryID,
			Progress:   rapid.IntRange(0, 100).Draw(rt, fmt.Sprintf("progress_%d", i)),
			Status:     rapid.SampledFrom(statuses).Draw(rt, fmt.Sprintf("status_%d", i)),
		}
	}
	return tasks
}

func drawCategories(rt *rapid.T) []domain.Category {
	n := rapid.IntRange(0, 8).Draw(rt, "numCategories")
	cats := make([]domain.Category, n)
	for i := range cats {
		cats[i] = domain.Category{
			ID:       fmt.Sprintf("cat-%03d", i),
			Phase:    rapid.SampledFrom(domain.Phases()).Draw(rt, fmt.Sprintf("phase_%d", i)),
			Progress: rapid.IntRange(0, 100).Draw(rt, fmt.Sprintf("catProgress_%d", i)),
			Status:   rapid.SampledFrom(statuses).Draw(rt, fmt.Sprintf("catStatus_%d", i)),
		}
	}
	return cats
}

// Deriving twice from the same input yields the same category.
func TestProperty_DeriveCategoryIsDeterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := domain.Category{ID: "cat-001", Phase: domain.PhasePreEvent}
		tasks := drawTasks(rt, c.ID)

		first := progress.DeriveCategory(c, tasks)
		second := progress.DeriveCategory(c, tasks)

		if !reflect.DeepEqual(first, second) {
			rt.Fatalf("derive not deterministic: %+v vs %+v", first, second)
		}
	})
}

// Derived progress stays between the lowest and highest task progress.
func TestProperty_DerivedProgressWithinTaskRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tasks := drawTasks(rt, "cat-001")
		if len(tasks) == 0 {
			return
		}
		lo, hi := 100, 0
		for _, tsk := range tasks {
			lo = min(lo, tsk.Progress)
			hi = max(hi, tsk.Progress)
		}

		derived := progress.DeriveCategory(domain.Category{ID: "cat-001"}, tasks)

		if derived.Progress < lo || derived.Progress > hi {
			rt.Fatalf("progress %d outside [%d, %d]", derived.Progress, lo, hi)
		}
	})
}

// Any blocked task makes the category blocked; with tasks it is never not-started.
func TestProperty_DerivedStatusRules(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tasks := drawTasks(rt, "cat-001")
		if len(tasks) == 0 {
			return
		}
		anyBlocked, allDone := false, true
		for _, tsk := range tasks {
			anyBlocked = anyBlocked || tsk.Status == domain.StatusBlocked
			allDone = allDone && tsk.Status == domain.StatusCompleted
		}

		derived := progress.DeriveCategory(domain.Category{ID: "cat-001"}, tasks)

		switch {
		case anyBlocked && derived.Status != domain.StatusBlocked:
			rt.Fatalf("expected blocked, got %s", derived.Status)
		case !anyBlocked && allDone && derived.Status != domain.StatusCompleted:
			rt.Fatalf("expected completed, got %s", derived.Status)
		case derived.Status == domain.StatusNotStarted:
			rt.Fatalf("category with tasks reported not-started")
		}
	})
}

// Overall progress is always a valid percentage and is deterministic.
func TestProperty_OverallProgressBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cats := drawCategories(rt)
		weights := progress.DefaultPhaseWeights()

		first := progress.OverallProgress(cats, weights)
		second := progress.OverallProgress(cats, weights)

		if first != second {
			rt.Fatalf("overall not deterministic: %d vs %d", first, second)
		}
		if first < 0 || first > 100 {
			rt.Fatalf("overall %d out of range", first)
		}
	})
}
