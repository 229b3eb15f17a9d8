package domain_test

import (
	"testing"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"not-started", "in-progress", "completed", "blocked"} {
		status, err := domain.ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, status.String())
	}

	_, err := domain.ParseStatus("in_progress")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestParsePhase(t *testing.T) {
	for _, p := range domain.Phases() {
		parsed, err := domain.ParsePhase(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}

	_, err := domain.ParsePhase("after-party")
	assert.ErrorIs(t, err, domain.ErrInvalidPhase)
}

func TestParsePriority(t *testing.T) {
	p, err := domain.ParsePriority("high")
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, p)

	_, err = domain.ParsePriority("urgent")
	assert.ErrorIs(t, err, domain.ErrInvalidPriority)
}
