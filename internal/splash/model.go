package splash

import (
	"math"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/danhigham/splashscreen/internal/domain"
	"github.com/danhigham/splashscreen/internal/surface"
)

const (
	// ProgressInterval is the period of the progress-bar tick.
	ProgressInterval = 30 * time.Millisecond

	// FallbackSlack is added to the fade-out duration before the fallback
	// completes a hide whose transition signal never arrived.
	FallbackSlack = 50 * time.Millisecond
)

// Model is a loading overlay. It stays visible until its auto-hide timer
// fires or Hide is called, then fades out and runs its completion work
// exactly once per hide.
//
// Timers are Bubble Tea ticks tagged with a generation. Starting a timer
// bumps its generation, so at most one timer of each kind is ever armed.
type Model struct {
	id       string
	surface  *surface.Surface
	opts     Options
	nodes    *Handles
	logger   *zap.Logger
	schedule surface.Scheduler

	initialized bool
	hidden      bool
	progress    float64

	autoHideGen int
	progressGen int
	frameGen    int
	hideCycle   int
	armed       bool // completion work pending for hideCycle
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLogger sets the logger for lifecycle diagnostics.
func WithLogger(l *zap.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithScheduler replaces tea.Tick for every timer the overlay starts.
func WithScheduler(fn surface.Scheduler) ModelOption {
	return func(m *Model) {
		if fn != nil {
			m.schedule = fn
		}
	}
}

// New creates an overlay on s (the process-wide surface when nil). Nothing is
// built until the surface is ready; see Init.
func New(s *surface.Surface, p Partial, opts ...ModelOption) Model {
	if s == nil {
		s = surface.Default()
	}
	o := Resolve(p)
	m := Model{
		id:       o.ContainerID,
		surface:  s,
		opts:     o,
		logger:   zap.NewNop(),
		schedule: tea.Tick,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.logger = m.logger.With(zap.String("overlay", m.id))
	if o.ShowProgressBar && o.Duration == 0 {
		m.logger.Warn("progress bar needs a duration to animate; it will stay empty")
	}
	return m
}

// Init requests initialization. It happens at once if the surface is ready,
// otherwise on the first tea.WindowSizeMsg.
func (m Model) Init() tea.Cmd {
	id := m.id
	return func() tea.Msg { return initMsg{id: id} }
}

// Update routes timer, transition and request messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.surface.Resize(msg.Width, msg.Height) {
			m.logger.Debug("surface ready",
				zap.Int("width", msg.Width),
				zap.Int("height", msg.Height),
			)
		}
		if !m.initialized {
			return m.Initialize()
		}

	case initMsg:
		if msg.id != m.id || m.initialized {
			return m, nil
		}
		if !m.surface.Ready() {
			m.logger.Debug("surface not ready, deferring initialization")
			return m, nil
		}
		return m.Initialize()

	case autoHideMsg:
		if msg.id == m.id && msg.gen == m.autoHideGen {
			return m.Hide()
		}

	case progressTickMsg:
		if msg.id == m.id && msg.gen == m.progressGen {
			return m.advance()
		}

	case surface.TransitionEndMsg:
		if msg.ID == m.id && m.surface.EndTransition(msg) {
			return m.complete("transition")
		}

	case fallbackMsg:
		if msg.id == m.id && msg.cycle == m.hideCycle {
			return m.complete("fallback")
		}

	case frameMsg:
		if msg.id == m.id && msg.gen == m.frameGen && m.animating() {
			return m, m.frameTick()
		}

	case ShowMsg:
		if m.targets(msg.ID) {
			return m.Show()
		}

	case HideMsg:
		if m.targets(msg.ID) {
			return m.Hide()
		}

	case UpdateOptionsMsg:
		if m.targets(msg.ID) {
			return m.UpdateOptions(msg.Options)
		}
	}

	return m, nil
}

// Initialize builds the overlay and starts its timers. It is a no-op once
// initialized, and while the surface is not ready.
func (m Model) Initialize() (Model, tea.Cmd) {
	if m.initialized || !m.surface.Ready() {
		return m, nil
	}
	m.initialized = true
	m.nodes = Build(m.surface, m.opts, m.logger)

	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.opts.ShowProgressBar {
		m, cmd = m.startProgress()
		cmds = append(cmds, cmd)
	}
	if m.opts.Duration > 0 {
		m, cmd = m.scheduleAutoHide()
		cmds = append(cmds, cmd)
	}
	m, cmd = m.startFrames()
	cmds = append(cmds, cmd)

	m.logger.Info("overlay shown", zap.Duration("duration", m.opts.Duration))
	return m, tea.Batch(cmds...)
}

// Hide starts fading the overlay out. Completion work runs when the surface
// reports the transition finished, or after FadeOutDuration+FallbackSlack,
// whichever comes first.
func (m Model) Hide() (Model, tea.Cmd) {
	if m.hidden || m.nodes == nil {
		m.logger.Debug("hide ignored", zap.Bool("hidden", m.hidden), zap.Bool("built", m.nodes != nil))
		return m, nil
	}
	c := m.nodes.Container
	m.hidden = true
	m.autoHideGen++
	m.surface.Modify(c, func(n *surface.Node) { n.AddClass(surface.ClassHidden) })

	m.hideCycle++
	m.armed = true
	id, cycle := m.id, m.hideCycle
	fallback := m.schedule(m.opts.FadeOutDuration+FallbackSlack, func(time.Time) tea.Msg {
		return fallbackMsg{id: id, cycle: cycle}
	})
	transition := m.surface.BeginTransition(c)

	var frames tea.Cmd
	m, frames = m.startFrames()

	m.logger.Debug("hiding", zap.Int("cycle", cycle), zap.Bool("transition", transition != nil))
	return m, tea.Batch(transition, fallback, frames)
}

// Show brings a hidden overlay back. A hide still fading out is abandoned
// and its completion work never runs.
func (m Model) Show() (Model, tea.Cmd) {
	if !m.hidden || m.nodes == nil {
		m.logger.Debug("show ignored", zap.Bool("hidden", m.hidden), zap.Bool("built", m.nodes != nil))
		return m, nil
	}
	c := m.nodes.Container
	m.hidden = false
	m.armed = false
	m.surface.CancelTransition(c)
	m.surface.Modify(c, func(n *surface.Node) { n.RemoveClass(surface.ClassHidden) })
	if !m.surface.IsMounted(c) {
		m.surface.Mount(c)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.opts.ShowProgressBar && m.nodes.Fill != nil {
		m, cmd = m.startProgress()
		cmds = append(cmds, cmd)
	}
	if m.opts.Duration > 0 {
		m, cmd = m.scheduleAutoHide()
		cmds = append(cmds, cmd)
	}
	m, cmd = m.startFrames()
	cmds = append(cmds, cmd)

	m.logger.Debug("shown again")
	return m, tea.Batch(cmds...)
}

// UpdateOptions merges p into the live options and re-applies the visual
// properties they drive to the existing nodes. Nothing is rebuilt, and the
// container id cannot change.
func (m Model) UpdateOptions(p Partial) (Model, tea.Cmd) {
	prevSrc := m.opts.LogoSrc
	m.opts = m.opts.Merge(p)
	m.opts.ContainerID = m.id
	if m.nodes == nil {
		return m, nil
	}

	o, h := m.opts, m.nodes
	m.surface.Modify(h.Container, func(n *surface.Node) {
		n.Style.Background = o.BackgroundColor
		n.Style.ZIndex = o.ZIndex
		n.Style.Transition = o.FadeOutDuration
		n.Animation = o.Animation
	})
	if h.Logo != nil && o.LogoSrc != "" {
		m.surface.Modify(h.Logo, func(n *surface.Node) { applyLogo(n, o) })
		if o.LogoSrc != prevSrc {
			_ = m.surface.LoadImage(h.Logo)
		}
	}
	if h.Text != nil && o.Text != "" {
		m.surface.Modify(h.Text, func(n *surface.Node) {
			n.Text = o.Text
			n.Style.Foreground = o.TextColor
		})
	}
	if h.Fill != nil {
		m.surface.Modify(h.Fill, func(n *surface.Node) { n.Style.Background = o.ProgressBarColor })
	}
	if h.Spinner != nil {
		m.surface.Modify(h.Spinner, func(n *surface.Node) { n.Style.Foreground = o.SpinnerColor })
	}

	m.logger.Debug("options updated")
	if m.hidden {
		return m, nil
	}
	return m.startFrames()
}

// View renders every overlay mounted on the surface.
func (m Model) View() string {
	return m.surface.View()
}

// ID returns the container id the overlay is mounted under.
func (m Model) ID() string { return m.id }

// Hidden reports whether Hide has been called since the last Show.
func (m Model) Hidden() bool { return m.hidden }

// Initialized reports whether the overlay has been built.
func (m Model) Initialized() bool { return m.initialized }

// Progress returns the progress-bar fill, 0-100.
func (m Model) Progress() float64 { return m.progress }

// Options returns the live options.
func (m Model) Options() Options { return m.opts }

// Nodes returns the realized nodes, or nil before initialization.
func (m Model) Nodes() *Handles { return m.nodes }

// Surface returns the surface the overlay is mounted on.
func (m Model) Surface() *surface.Surface { return m.surface }

// Phase summarizes the lifecycle state.
func (m Model) Phase() domain.Phase {
	switch {
	case !m.initialized:
		return domain.PhaseUninitialized
	case m.hidden:
		return domain.PhaseHidden
	default:
		return domain.PhaseVisible
	}
}

func (m Model) targets(id string) bool {
	return id == "" || id == m.id
}

// complete runs the completion work of the current hide cycle once.
func (m Model) complete(trigger string) (Model, tea.Cmd) {
	if !m.armed {
		return m, nil
	}
	m.armed = false
	m.progressGen++
	m.frameGen++

	c := m.nodes.Container
	m.surface.CancelTransition(c)
	if m.opts.OnHide != nil {
		m.opts.OnHide()
	}
	if m.opts.RemoveAfterHide {
		m.surface.Detach(c)
	}

	m.logger.Info("overlay hidden",
		zap.String("trigger", trigger),
		zap.Int("cycle", m.hideCycle),
		zap.Bool("removed", m.opts.RemoveAfterHide),
	)
	id := m.id
	return m, func() tea.Msg { return HiddenMsg{ID: id} }
}

func (m Model) scheduleAutoHide() (Model, tea.Cmd) {
	m.autoHideGen++
	id, gen := m.id, m.autoHideGen
	return m, m.schedule(m.opts.Duration, func(time.Time) tea.Msg {
		return autoHideMsg{id: id, gen: gen}
	})
}

// startProgress resets the fill to 0% and, when the bar can be animated,
// arms a fresh tick.
func (m Model) startProgress() (Model, tea.Cmd) {
	m.progressGen++
	m.progress = 0
	m.setFill(0)
	if !m.opts.Animated() {
		return m, nil
	}
	return m, m.progressTick()
}

func (m Model) progressTick() tea.Cmd {
	id, gen := m.id, m.progressGen
	return m.schedule(ProgressInterval, func(time.Time) tea.Msg {
		return progressTickMsg{id: id, gen: gen}
	})
}

func (m Model) advance() (Model, tea.Cmd) {
	if m.opts.Duration <= 0 {
		return m, nil
	}
	step := float64(ProgressInterval) / float64(m.opts.Duration) * 100
	m.progress = math.Min(m.progress+step, 100)
	m.setFill(m.progress)
	if m.progress >= 100 {
		return m, nil
	}
	return m, m.progressTick()
}

func (m Model) setFill(pct float64) {
	if m.nodes == nil || m.nodes.Fill == nil {
		return
	}
	m.surface.Modify(m.nodes.Fill, func(n *surface.Node) { n.Style.WidthPercent = pct })
}

func (m Model) startFrames() (Model, tea.Cmd) {
	m.frameGen++
	if !m.animating() {
		return m, nil
	}
	return m, m.frameTick()
}

func (m Model) frameTick() tea.Cmd {
	id, gen := m.id, m.frameGen
	return m.schedule(surface.FrameInterval, func(time.Time) tea.Msg {
		return frameMsg{id: id, gen: gen}
	})
}

// animating reports whether the overlay needs periodic redraws: while
// fading out, or while visible with a spinner or an animated logo.
func (m Model) animating() bool {
	if m.nodes == nil || !m.surface.Displayed(m.nodes.Container) {
		return false
	}
	if m.hidden {
		return true
	}
	logoAnimated := m.nodes.Logo != nil && m.opts.LogoAnimation != domain.LogoAnimationNone
	return m.nodes.Spinner != nil || logoAnimated
}
