package profiler

import (
	"bytes"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestSamples(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithClock(clk.now))

	p.BeginSample("Render Camera")
	clk.advance(2 * time.Millisecond)
	p.BeginSample("Render Camera")
	clk.advance(1 * time.Millisecond)
	p.EndSample("Render Camera")
	clk.advance(1 * time.Millisecond)
	p.EndSample("Render Camera")

	samples := p.Samples()
	require.Len(t, samples, 1)
	s := samples[0]
	assert.Equal(t, "Render Camera", s.Name)
	assert.Equal(t, 2, s.Calls)
	assert.Equal(t, 5*time.Millisecond, s.Total)
	assert.Equal(t, 4*time.Millisecond, s.Max)
	assert.Equal(t, 2500*time.Microsecond, s.Average())
}

func TestEndSampleWithoutBegin(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewProfiler(WithLogger(common.NewWriterLogger("profiler", false, &out, &errOut)))

	p.EndSample("missing")

	assert.Empty(t, p.Samples())
	assert.Contains(t, out.String()+errOut.String(), `EndSample("missing")`)
}

func TestTickReportsAndResets(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	var out, errOut bytes.Buffer
	p := NewProfiler(
		WithClock(clk.now),
		WithUpdateInterval(time.Second),
		WithLogger(common.NewWriterLogger("profiler", false, &out, &errOut)),
	)

	p.BeginSample("Skybox")
	p.EndSample("Skybox")

	clk.advance(500 * time.Millisecond)
	assert.False(t, p.Tick())
	clk.advance(600 * time.Millisecond)
	assert.True(t, p.Tick())

	assert.Contains(t, out.String(), "FPS: ")
	assert.Contains(t, out.String(), "Skybox: 1 calls")
	assert.Empty(t, p.Samples())
}

func TestSampleAverageZeroCalls(t *testing.T) {
	assert.Equal(t, time.Duration(0), Sample{}.Average())
}
