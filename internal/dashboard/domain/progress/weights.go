package progress

import (
	"fmt"
	"math"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
	sharedDomain "github.com/felixgeelhaar/eventboard/internal/shared/domain"
)

// weightTolerance absorbs float error when checking that weights sum to 1.
const weightTolerance = 1e-9

// PhaseWeights is the share each phase contributes to overall progress.
type PhaseWeights map[domain.Phase]float64

// DefaultPhaseWeights returns the 60/20/20 split: most of the organizing work
// happens before the event.
func DefaultPhaseWeights() PhaseWeights {
	return PhaseWeights{
		domain.PhasePreEvent:    0.6,
		domain.PhaseDuringEvent: 0.2,
		domain.PhasePostEvent:   0.2,
	}
}

// Validate checks that every phase has a non-negative weight and that the
// weights sum to 1.
func (w PhaseWeights) Validate() error {
	var sum float64
	for _, phase := range domain.Phases() {
		weight, ok := w[phase]
		if !ok {
			return fmt.Errorf("%w: missing weight for phase %s", sharedDomain.ErrValidation, phase)
		}
		if weight < 0 || math.IsNaN(weight) {
			return fmt.Errorf("%w: weight for phase %s must be non-negative", sharedDomain.ErrValidation, phase)
		}
		sum += weight
	}
	if math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("%w: phase weights sum to %.4f, want 1", sharedDomain.ErrValidation, sum)
	}
	return nil
}
