// Package progress derives category and event progress from task state.
//
// Every function here is pure: the same input always yields the same output
// and nothing is cached, so callers recompute on every read.
package progress

import (
	"math"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
)

// DeriveCategory projects a category's progress and status from its tasks.
// With no tasks the category is returned as given.
//
// Progress is the mean task progress rounded half up, each task clamped to
// [0,100] first since hydrated data is not validated. Status is blocked if any
// task is blocked, completed if every task is completed, and in-progress
// otherwise; a category with tasks is never reported as not-started.
func DeriveCategory(category domain.Category, tasks []domain.Task) domain.Category {
	derived := category.Clone()
	if len(tasks) == 0 {
		return derived
	}

	sum := 0
	blocked := false
	allCompleted := true
	for _, t := range tasks {
		sum += max(0, min(t.Progress, domain.MaxProgress))
		if t.Status == domain.StatusBlocked {
			blocked = true
		}
		if t.Status != domain.StatusCompleted {
			allCompleted = false
		}
	}

	derived.Progress = roundedMean(sum, len(tasks))
	switch {
	case blocked:
		derived.Status = domain.StatusBlocked
	case allCompleted:
		derived.Status = domain.StatusCompleted
	default:
		derived.Status = domain.StatusInProgress
	}
	return derived
}

// DeriveCategories derives every category against the tasks that reference
// it, preserving the order of categories.
func DeriveCategories(categories []domain.Category, tasks []domain.Task) []domain.Category {
	byCategory := GroupByCategory(tasks)
	derived := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		derived = append(derived, DeriveCategory(c, byCategory[c.ID]))
	}
	return derived
}

// GroupByCategory indexes tasks by category id, keeping their relative order.
func GroupByCategory(tasks []domain.Task) map[string][]domain.Task {
	grouped := make(map[string][]domain.Task)
	for _, t := range tasks {
		grouped[t.CategoryID] = append(grouped[t.CategoryID], t)
	}
	return grouped
}

// PhaseProgress returns the unrounded mean progress of each phase's
// categories. A phase without categories maps to 0.
func PhaseProgress(categories []domain.Category) map[domain.Phase]float64 {
	sums := make(map[domain.Phase]int)
	counts := make(map[domain.Phase]int)
	for _, c := range categories {
		sums[c.Phase] += c.Progress
		counts[c.Phase]++
	}

	out := make(map[domain.Phase]float64, len(domain.Phases()))
	for _, phase := range domain.Phases() {
		if counts[phase] == 0 {
			out[phase] = 0
			continue
		}
		out[phase] = float64(sums[phase]) / float64(counts[phase])
	}
	return out
}

// OverallProgress weights each phase's mean category progress and rounds the
// sum half up. Categories should already be derived. The result is clamped to
// [0, 100].
func OverallProgress(categories []domain.Category, weights PhaseWeights) int {
	phases := PhaseProgress(categories)

	var total float64
	for _, phase := range domain.Phases() {
		total += phases[phase] * weights[phase]
	}

	overall := int(math.Floor(total + 0.5 + roundingSlack))
	return max(0, min(overall, domain.MaxProgress))
}

// roundingSlack keeps exact .5 sums from rounding down when float weights
// land a hair below the midpoint (0.6 is not representable).
const roundingSlack = 1e-9

// roundedMean is round-half-up of sum/n in integers. sum must be
// non-negative; callers clamp their inputs.
func roundedMean(sum, n int) int {
	return (2*sum + n) / (2 * n)
}
