package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"

	"github.com/danhigham/splashscreen/internal/domain"
)

// DocumentModel is the application content the overlay covers: a markdown
// document rendered with glamour, or a boot report when none is given.
type DocumentModel struct {
	viewport viewport.Model
	renderer *glamour.TermRenderer
	focused  bool
	width    int
	height   int
	markdown string
	tasks    []domain.BootTask
	events   []domain.Event
}

func NewDocumentModel(markdown string) DocumentModel {
	return DocumentModel{
		viewport: viewport.New(),
		markdown: markdown,
		focused:  true,
	}
}

func (m DocumentModel) Update(msg tea.Msg) (DocumentModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "j":
			m.viewport.ScrollDown(1)
			return m, nil
		case "k":
			m.viewport.ScrollUp(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m DocumentModel) View() string {
	contentH := max(m.height-2, 0)
	content := truncateHeight(m.viewport.View(), contentH)

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(m.width).
		Height(m.height)
	style = applyBorderColor(style, m.focused)

	return style.Render(content)
}

func (m DocumentModel) SetSize(w, h int) DocumentModel {
	m.width = w
	m.height = h
	// Viewport inner: subtract border (2)
	m.viewport.SetWidth(max(w-2, 1))
	m.viewport.SetHeight(max(h-2, 1))
	m = m.recreateRenderer()
	m = m.renderContent()
	return m
}

// SetBoot updates the boot report shown when there is no document.
func (m DocumentModel) SetBoot(tasks []domain.BootTask, events []domain.Event) DocumentModel {
	m.tasks = tasks
	m.events = events
	if m.markdown == "" {
		m = m.renderContent()
	}
	return m
}

// Content returns the rendered, unscrolled content.
func (m DocumentModel) Content() string {
	return m.viewport.GetContent()
}

func (m DocumentModel) recreateRenderer() DocumentModel {
	wordWrap := max(m.viewport.Width()-2, 10)
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(wordWrap),
	)
	if err == nil {
		m.renderer = r
	}
	return m
}

func (m DocumentModel) renderContent() DocumentModel {
	src := m.markdown
	if src == "" {
		src = bootReport(m.tasks, m.events)
	}

	out := src
	if m.renderer != nil {
		if r, err := m.renderer.Render(src); err == nil {
			out = strings.Trim(r, "\n")
		}
	}

	m.viewport.SetContent(out)
	return m
}

// bootReport renders the task list and event log as markdown.
func bootReport(tasks []domain.BootTask, events []domain.Event) string {
	var b strings.Builder
	b.WriteString("# Boot report\n\n")

	if len(tasks) == 0 {
		b.WriteString("No boot tasks configured.\n")
	} else {
		b.WriteString("| Task | Status | Took |\n|---|---|---|\n")
		for _, t := range tasks {
			took := "-"
			if t.Status.Finished() && !t.Started.IsZero() {
				took = t.Finished.Sub(t.Started).Round(time.Millisecond).String()
			}
			status := t.Status.String()
			if t.Err != "" {
				status += ": " + t.Err
			}
			fmt.Fprintf(&b, "| %s | %s | %s |\n", t.Name, status, took)
		}
	}

	if len(events) > 0 {
		b.WriteString("\n## Events\n\n")
		for _, e := range events {
			fmt.Fprintf(&b, "- `%s` %s\n", e.Time.Format("15:04:05.000"), e.Text)
		}
	}
	return b.String()
}
