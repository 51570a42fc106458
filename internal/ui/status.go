package ui

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/danhigham/splashscreen/internal/domain"
)

var (
	// Dark gray background matching the lipgloss example
	statusBarBg = lipgloss.Color("#353533")
	// Bright magenta while the overlay is up, muted purple once it is gone
	statusPillBg    = lipgloss.Color("#FF5FAF")
	statusPillBgOff = lipgloss.Color("#6C5098")
	statusTimeBg    = lipgloss.Color("#6124DF")
	statusBootBg    = lipgloss.Color("#7B5EA7")
)

type statusModel struct {
	phase         domain.Phase
	progress      float64
	showProgress  bool
	booted, tasks int
	width         int
	now           func() time.Time
}

func newStatusModel() statusModel {
	return statusModel{now: time.Now}
}

// SetWidth sets the full terminal width for the status bar.
func (m statusModel) SetWidth(w int) statusModel {
	m.width = w
	return m
}

// SetOverlay records the overlay's lifecycle phase and progress.
func (m statusModel) SetOverlay(phase domain.Phase, progress float64, showProgress bool) statusModel {
	m.phase = phase
	m.progress = progress
	m.showProgress = showProgress
	return m
}

// SetBoot records how many boot tasks have finished.
func (m statusModel) SetBoot(finished, total int) statusModel {
	m.booted = finished
	m.tasks = total
	return m
}

// View renders a full-width status bar:
// [PHASE pill] [boot count] ... [progress pill] [time pill]
func (m statusModel) View() string {
	pillBg := statusPillBgOff
	if m.phase == domain.PhaseVisible {
		pillBg = statusPillBg
	}
	pill := pillStyle(pillBg).Render(strings.ToUpper(m.phase.String()))

	boot := "no boot tasks"
	if m.tasks > 0 {
		boot = fmt.Sprintf("boot %d/%d", m.booted, m.tasks)
	}
	title := pillStyle(statusBarBg).Render(boot)

	var right string
	if m.showProgress {
		right += pillStyle(statusBootBg).Render(fmt.Sprintf("%3.0f%%", m.progress))
	}
	right += pillStyle(statusTimeBg).Render(m.now().Format("15:04"))

	left := pill + title

	// Fill gap between left and right
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	filler := lipgloss.NewStyle().
		Background(statusBarBg).
		Render(strings.Repeat(" ", gap))

	barStyle := lipgloss.NewStyle().
		Background(statusBarBg).
		Width(m.width)

	return barStyle.Render(left + filler + right)
}

func pillStyle(bg color.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true).
		Padding(0, 1)
}
