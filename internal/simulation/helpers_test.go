package simulation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pyrolysis_sim/internal/models"
)

func zeroNoise(float64) float64 { return 0 }

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeScheduler struct {
	delays []time.Duration
	funcs  []func()
}

func (s *fakeScheduler) schedule(d time.Duration, fn func()) {
	s.delays = append(s.delays, d)
	s.funcs = append(s.funcs, fn)
}

// newTestEngine returns an engine with a fixed clock, no noise and machines
// that never jam unless a test overrides e.chance.
func newTestEngine(t *testing.T, opts ...Option) (*Engine, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.SeedHistory = false
	e, err := NewEngine(cfg, nil, append([]Option{WithClock(clock.Now)}, opts...)...)
	require.NoError(t, err)
	e.noise = zeroNoise
	e.chance = func() float64 { return 1 }
	return e, clock
}

// tickBoth runs n rounds of the primary task followed by the supply task.
func tickBoth(e *Engine, clock *fakeClock, n int) {
	for i := 0; i < n; i++ {
		clock.Advance(time.Second)
		e.TickPrimary()
		e.TickSupply()
	}
}

func countLogs(e *Engine, substr string) int {
	n := 0
	for _, l := range e.Logs(0) {
		if strings.Contains(l.Text, substr) {
			n++
		}
	}
	return n
}

func countEvents(events []models.SecurityEvent, category string) int {
	n := 0
	for _, ev := range events {
		if ev.Category == category {
			n++
		}
	}
	return n
}
