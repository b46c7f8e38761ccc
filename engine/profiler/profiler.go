package profiler

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-srp/common"
)

// Sample is the accumulated timing of one named scope since the last report.
type Sample struct {
	Name  string
	Calls int
	Total time.Duration
	Max   time.Duration
}

// Average returns the mean duration of one call of the scope.
//
// Returns:
//   - time.Duration: Total / Calls, zero when the scope never closed
func (s Sample) Average() time.Duration {
	if s.Calls == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Calls)
}

// Profiler tracks frame rate, memory statistics and named sample scopes for performance monitoring.
// Outputs stats to the logger at a configurable interval.
type Profiler struct {
	mu             sync.Mutex
	logger         common.Logger
	now            func() time.Time
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	// open holds the start times of open scopes, innermost last, per name.
	open    map[string][]time.Time
	samples map[string]*Sample
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second and output is discarded unless WithLogger is given.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		logger:         common.NewNopLogger(),
		now:            time.Now,
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
		open:           make(map[string][]time.Time),
		samples:        make(map[string]*Sample),
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.now()
	return p
}

// BeginSample opens a named scope. Scopes with the same name may nest.
//
// Parameters:
//   - name: the scope name
func (p *Profiler) BeginSample(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open[name] = append(p.open[name], p.now())
}

// EndSample closes the innermost open scope with the given name. Closing a scope that was never
// opened is logged and ignored.
//
// Parameters:
//   - name: the scope name
func (p *Profiler) EndSample(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	stack := p.open[name]
	if len(stack) == 0 {
		p.logger.Warnf("EndSample(%q) without matching BeginSample", name)
		return
	}
	start := stack[len(stack)-1]
	p.open[name] = stack[:len(stack)-1]

	d := p.now().Sub(start)
	s, ok := p.samples[name]
	if !ok {
		s = &Sample{Name: name}
		p.samples[name] = s
	}
	s.Calls++
	s.Total += d
	s.Max = max(s.Max, d)
}

// Samples returns a copy of the accumulated scopes sorted by name.
//
// Returns:
//   - []Sample: the scopes recorded since the last report
func (p *Profiler) Samples() []Sample {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.samplesLocked()
}

func (p *Profiler) samplesLocked() []Sample {
	out := make([]Sample, 0, len(p.samples))
	for _, s := range p.samples {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times, total memory,
// followed by one line per sample scope. Scopes are reset after each report.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	// Alloc: Bytes of allocated heap objects (live memory)
	// Sys: Total bytes of memory obtained from the OS (actual process footprint)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of last 256 GC pauses
	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.logger.Infof("FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		fps, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)
	for _, s := range p.samplesLocked() {
		p.logger.Infof("  %s: %d calls | avg %v | max %v", s.Name, s.Calls, s.Average(), s.Max)
	}
	clear(p.samples)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
