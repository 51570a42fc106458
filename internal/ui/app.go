package ui

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/danhigham/splashscreen/internal/domain"
	"github.com/danhigham/splashscreen/internal/splash"
	"github.com/danhigham/splashscreen/internal/state"
	"github.com/danhigham/splashscreen/internal/surface"
)

// statusBarHeight is the single row the status bar occupies below the document.
const statusBarHeight = 1

// Options configures the demo host.
type Options struct {
	Splash   splash.Partial
	Tasks    []domain.BootTask
	Document string // markdown; empty shows the boot report

	// MinSplash is how long the overlay stays up at least when boot tasks
	// are configured.
	MinSplash time.Duration

	Surface   *surface.Surface
	Logger    *zap.Logger
	Scheduler surface.Scheduler
	Sleep     func(time.Duration)
}

// Model is the root Bubble Tea model.
type Model struct {
	overlay splash.Model
	doc     DocumentModel
	status  statusModel
	help    HelpModel
	gate    bootGate

	store     *state.Store
	tasks     []domain.BootTask
	minSplash time.Duration
	logger    *zap.Logger
	sleep     func(time.Duration)

	width  int
	height int
}

// NewModel creates the root model with all sub-components.
func NewModel(store *state.Store, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	splashOpts := []splash.ModelOption{splash.WithLogger(logger)}
	if opts.Scheduler != nil {
		splashOpts = append(splashOpts, splash.WithScheduler(opts.Scheduler))
	}

	store.SetTasks(opts.Tasks)

	return Model{
		overlay:   splash.New(opts.Surface, opts.Splash, splashOpts...),
		doc:       NewDocumentModel(opts.Document),
		status:    newStatusModel(),
		help:      NewHelpModel(),
		store:     store,
		tasks:     opts.Tasks,
		minSplash: opts.MinSplash,
		logger:    logger,
		sleep:     sleep,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.overlay.Init(), clockTick()}
	if len(m.tasks) > 0 {
		cmds = append(cmds, tea.Tick(m.minSplash, func(time.Time) tea.Msg { return gateTimerMsg{} }))
		for _, t := range m.tasks {
			cmds = append(cmds, runTask(m.store, t, m.sleep))
		}
	}
	return tea.Batch(cmds...)
}

// runTask simulates one unit of start-up work, reporting through the store.
func runTask(store *state.Store, t domain.BootTask, sleep func(time.Duration)) tea.Cmd {
	return func() tea.Msg {
		store.OnTaskStarted(t.Name)
		sleep(t.Duration)
		store.OnTaskFinished(t.Name, nil)
		return taskFinishedMsg{name: t.Name}
	}
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Minute, func(time.Time) tea.Msg { return clockTickMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m = m.distributeSize()
		m.overlay, cmd = m.overlay.Update(msg)
		return m, cmd

	case StoreUpdatedMsg:
		m = m.refreshFromStore()
		return m.dismissWhenBooted()

	case taskFinishedMsg:
		m.logger.Debug("boot task finished", zap.String("task", msg.name), zap.Error(msg.err))
		m = m.refreshFromStore()
		return m.dismissWhenBooted()

	case gateTimerMsg:
		m.gate = m.gate.TimerDone()
		return m.dismissWhenBooted()

	case splash.HiddenMsg:
		m.store.Record(fmt.Sprintf("overlay %s hidden", msg.ID))
		m = m.refreshFromStore()
		return m, nil

	case ConfigReloadedMsg:
		m.overlay, cmd = m.overlay.UpdateOptions(msg.Config.Splash.ToPartial(nil))
		m.store.Record("configuration reloaded")
		m = m.refreshFromStore()
		return m, cmd

	case clockTickMsg:
		return m, clockTick()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "?":
			m.help = m.help.Toggle()
			return m, nil
		case "esc":
			m.help = m.help.Close()
			return m, nil
		case "s":
			if m.overlay.Hidden() {
				m.store.Record("overlay shown")
			}
			m.overlay, cmd = m.overlay.Show()
			return m, cmd
		case "x":
			m.overlay, cmd = m.overlay.Hide()
			return m, cmd
		}

		if m.help.IsVisible() {
			return m, nil
		}
		m.doc, cmd = m.doc.Update(msg)
		return m, cmd
	}

	m.overlay, cmd = m.overlay.Update(msg)
	return m, cmd
}

// dismissWhenBooted hides the overlay once the boot gate opens. Hosts
// without boot tasks leave dismissal to the auto-hide timer and the keys.
func (m Model) dismissWhenBooted() (Model, tea.Cmd) {
	if len(m.tasks) == 0 {
		return m, nil
	}
	if m.store.BootComplete() {
		m.gate = m.gate.Booted()
	}

	var open bool
	m.gate, open = m.gate.Open()
	if !open {
		return m, nil
	}

	m.logger.Info("boot complete, dismissing overlay")
	m.store.Record("boot complete")
	var cmd tea.Cmd
	m.overlay, cmd = m.overlay.Hide()
	return m, cmd
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	o := m.overlay.Options()
	status := m.status.SetOverlay(m.overlay.Phase(), m.overlay.Progress(), o.ShowProgressBar)
	full := lipgloss.JoinVertical(lipgloss.Left, m.doc.View(), status.View())

	// Clamp to terminal dimensions
	mainContent := lipgloss.NewStyle().
		MaxWidth(m.width).
		MaxHeight(m.height).
		Render(full)

	content := m.overlay.Surface().Compose(mainContent)

	if m.help.IsVisible() {
		x, y := m.help.BoxOffset()
		bg := lipgloss.NewLayer(content)
		fg := lipgloss.NewLayer(m.help.View()).X(x).Y(y).Z(1)
		content = lipgloss.NewCompositor(bg, fg).Render()
	}

	v.SetContent(content)
	return v
}

func (m Model) distributeSize() Model {
	docHeight := max(m.height-statusBarHeight, 1)
	m.doc = m.doc.SetSize(m.width, docHeight)
	m.status = m.status.SetWidth(m.width)
	m.help = m.help.SetSize(m.width, m.height)
	return m
}

func (m Model) refreshFromStore() Model {
	m.doc = m.doc.SetBoot(m.store.GetTasks(), m.store.GetEvents())
	m.status = m.status.SetBoot(m.store.BootProgress())
	return m
}

// Overlay returns the loading overlay component.
func (m Model) Overlay() splash.Model {
	return m.overlay
}

// Document returns the content view under the overlay.
func (m Model) Document() DocumentModel {
	return m.doc
}

// HelpVisible reports whether the help box is showing.
func (m Model) HelpVisible() bool {
	return m.help.IsVisible()
}

// App wraps the Bubble Tea program for external use.
type App struct {
	program *tea.Program
}

// NewApp creates a new App ready to Run.
func NewApp(model Model, opts ...tea.ProgramOption) *App {
	p := tea.NewProgram(model, opts...)
	return &App{program: p}
}

// Run starts the Bubble Tea event loop (blocks until quit).
func (a *App) Run() error {
	_, err := a.program.Run()
	return err
}

// Send sends a message into the Bubble Tea event loop from external goroutines.
func (a *App) Send(msg tea.Msg) {
	go a.program.Send(msg)
}

// DrawFunc returns a function suitable for state.Store that triggers a re-render.
func (a *App) DrawFunc() func() {
	return func() {
		a.Send(StoreUpdatedMsg{})
	}
}
