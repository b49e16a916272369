package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Observe(t *testing.T) {
	c := NewCollector(Namespace)

	c.Observe(nil, 20*time.Millisecond, 4, 3, 5)
	c.Observe(nil, 30*time.Millisecond, 2, 1, 2)
	c.Observe(errors.New("boom"), time.Millisecond, 9, 9, 9)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Invocations.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Invocations.WithLabelValues(OutcomeError)))
	assert.Equal(t, 6.0, testutil.ToFloat64(c.Rectangles))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.Lines))
	assert.Equal(t, 7.0, testutil.ToFloat64(c.Nodes))
}

func TestCollector_IndependentRegistries(t *testing.T) {
	a := NewCollector(Namespace)
	b := NewCollector(Namespace)

	a.Observe(nil, time.Millisecond, 1, 1, 1)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.Lines))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Lines))
	assert.NotSame(t, a.Registry(), b.Registry())
}

func TestCollector_Nil(t *testing.T) {
	var c *Collector
	c.Observe(nil, time.Second, 1, 1, 1)
	assert.NoError(t, c.WriteFile(filepath.Join(t.TempDir(), "none.prom")))
}

func TestCollector_WriteFile(t *testing.T) {
	c := NewCollector(Namespace)
	c.Observe(nil, 10*time.Millisecond, 2, 1, 2)

	path := filepath.Join(t.TempDir(), "floorplan.prom")
	require.NoError(t, c.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, `floorplan_invocations_total{outcome="ok"} 1`), text)
	assert.True(t, strings.Contains(text, "floorplan_lines_created_total 1"), text)
}

func TestCollector_Gather(t *testing.T) {
	c := NewCollector(Namespace)
	c.Observe(nil, time.Millisecond, 0, 0, 0)

	count, err := testutil.GatherAndCount(c.Registry())
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}
