package splash_test

import (
	"fmt"
	"slices"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/danhigham/splashscreen/internal/splash"
	"github.com/danhigham/splashscreen/internal/surface"
)

// fakeClock is a virtual clock whose timers fire only when advanced.
type fakeClock struct {
	now    time.Time
	seq    int
	timers []fakeTimer
}

type fakeTimer struct {
	at  time.Time
	seq int
	d   time.Duration
	msg tea.Msg
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Schedule(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	c.seq++
	at := c.now.Add(d)
	c.timers = append(c.timers, fakeTimer{at: at, seq: c.seq, d: d, msg: fn(at)})
	return nil
}

// pending returns the scheduled-but-unfired timers whose message type
// name matches kind, e.g. "autoHideMsg".
func (c *fakeClock) pending(kind string) []fakeTimer {
	var out []fakeTimer
	for _, t := range c.timers {
		if fmt.Sprintf("%T", t.msg) == "splash."+kind {
			out = append(out, t)
		}
	}
	return out
}

func (c *fakeClock) next(deadline time.Time) (fakeTimer, bool) {
	if len(c.timers) == 0 {
		return fakeTimer{}, false
	}
	i := slices.IndexFunc(c.timers, func(t fakeTimer) bool { return !t.at.After(deadline) })
	if i < 0 {
		return fakeTimer{}, false
	}
	for j, t := range c.timers {
		if t.at.After(deadline) {
			continue
		}
		best := c.timers[i]
		if t.at.Before(best.at) || (t.at.Equal(best.at) && t.seq < best.seq) {
			i = j
		}
	}
	t := c.timers[i]
	c.timers = slices.Delete(c.timers, i, i+1)
	return t, true
}

// harness drives a Model the way a Bubble Tea program would, on the fake
// clock.
type harness struct {
	t      *testing.T
	clock  *fakeClock
	surf   *surface.Surface
	model  splash.Model
	hidden []splash.HiddenMsg
}

func newHarness(t *testing.T, p splash.Partial, surfOpts ...surface.Option) *harness {
	t.Helper()
	h := &harness{t: t, clock: newFakeClock()}
	opts := []surface.Option{
		surface.WithSize(80, 24),
		surface.WithClock(h.clock.Now),
		surface.WithScheduler(h.clock.Schedule),
		surface.WithImageLoader(func(src string) (string, error) { return "[logo]", nil }),
	}
	h.surf = surface.New(append(opts, surfOpts...)...)
	h.model = splash.New(h.surf, p, splash.WithScheduler(h.clock.Schedule))
	return h
}

func (h *harness) init() *harness {
	h.run(h.model.Init())
	return h
}

func (h *harness) send(msg tea.Msg) {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	h.run(cmd)
}

func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			h.run(c)
		}
	case splash.HiddenMsg:
		h.hidden = append(h.hidden, msg)
	default:
		h.send(msg)
	}
}

func (h *harness) hide() {
	var cmd tea.Cmd
	h.model, cmd = h.model.Hide()
	h.run(cmd)
}

func (h *harness) show() {
	var cmd tea.Cmd
	h.model, cmd = h.model.Show()
	h.run(cmd)
}

// advance moves the clock forward by d, firing due timers in order.
func (h *harness) advance(d time.Duration) {
	deadline := h.clock.now.Add(d)
	for {
		t, ok := h.clock.next(deadline)
		if !ok {
			break
		}
		h.clock.now = t.at
		h.send(t.msg)
	}
	h.clock.now = deadline
}

// dropSignals is a surface scheduler that never delivers anything.
func dropSignals(time.Duration, func(time.Time) tea.Msg) tea.Cmd { return nil }
