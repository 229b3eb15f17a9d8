package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryMetrics(t *testing.T) {
	t.Run("counter with tags", func(t *testing.T) {
		m := NewInMemoryMetrics()

		m.Counter("writes", 1, T("collection", "tasks"), T("operation", "insert"))
		m.Counter("writes", 1, T("operation", "insert"), T("collection", "tasks"))
		m.Counter("writes", 1, T("collection", "photos"))

		assert.Equal(t, int64(2), m.GetCounter("writes", T("collection", "tasks"), T("operation", "insert")))
		assert.Equal(t, int64(1), m.GetCounter("writes", T("collection", "photos")))
	})

	t.Run("snapshot", func(t *testing.T) {
		m := NewInMemoryMetrics()
		m.Counter("writes", 3)
		m.Gauge("queue.depth", 7)

		snap := m.Snapshot()

		assert.Equal(t, 3.0, snap["writes"])
		assert.Equal(t, 7.0, snap["queue.depth"])
	})
}

func TestTimer(t *testing.T) {
	m := NewInMemoryMetrics()

	StartTimer("persist").WithMetrics(m).WithTags(T("collection", "tasks")).Stop()
	StartTimer("persist").WithMetrics(m).WithTags(T("collection", "tasks")).StopWithError(errors.New("boom"))

	tags := []Tag{T("collection", "tasks"), T("operation", "persist")}
	assert.Equal(t, int64(2), m.GetCounter(MetricOperationTotal, tags...))
	assert.Equal(t, int64(1), m.GetCounter(MetricOperationErrors, tags...))
	assert.Len(t, m.GetTimings(MetricOperationDuration, tags...), 2)
}

func TestTimerWithoutMetrics(t *testing.T) {
	assert.GreaterOrEqual(t, StartTimer("noop").Stop(), time.Duration(0))
	NoopMetrics{}.Counter("x", 1)
}
