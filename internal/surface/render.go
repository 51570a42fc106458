package surface

import (
	"image/color"
	"slices"
	"strings"
	"time"

	"charm.land/bubbles/v2/progress"
	"charm.land/lipgloss/v2"

	"github.com/danhigham/splashscreen/internal/domain"
)

// ClassHidden is the state class that hides a container once its transition
// has played.
const ClassHidden = "hidden"

// FrameInterval is how often animated nodes need a redraw.
const FrameInterval = 80 * time.Millisecond

// Pixel sizes are mapped onto cells using a typical 8x16 cell.
const (
	cellWidthPx  = 8
	cellHeightPx = 16
)

const defaultTrackWidth = 25

// View renders the mounted containers alone.
func (s *Surface) View() string {
	return s.Compose("")
}

// Compose renders every displayed container over base, ordered by z-index.
func (s *Surface) Compose(base string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.ready {
		return base
	}

	now := s.now()
	var layers []*lipgloss.Layer
	if base != "" {
		layers = append(layers, lipgloss.NewLayer(base))
	}
	overlays := 0
	for _, n := range s.mounted {
		content, ok := s.renderContainer(n, now)
		if !ok {
			continue
		}
		layers = append(layers, lipgloss.NewLayer(content).ID(n.ID).Z(n.Style.ZIndex))
		overlays++
	}

	switch {
	case overlays == 0:
		return base
	case len(layers) == 1:
		return layers[0].GetContent()
	}
	return lipgloss.NewCompositor(layers...).Render()
}

// Displayed reports whether n would currently be drawn: mounted, not
// display:none, and either visible or still fading out.
func (s *Surface) Displayed(n *Node) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isMounted(n) || n.Style.DisplayNone {
		return false
	}
	if !n.HasClass(ClassHidden) {
		return true
	}
	_, running := s.transitionProgress(n, s.now())
	return running
}

func (s *Surface) renderContainer(n *Node, now time.Time) (string, bool) {
	if n.Style.DisplayNone {
		return "", false
	}

	fade := 0.0
	if n.HasClass(ClassHidden) {
		p, running := s.transitionProgress(n, now)
		if !running {
			return "", false
		}
		fade = p
	}

	bg := lipgloss.Color(n.Style.Background)
	elapsed := now.Sub(n.mounted)

	var parts []string
	for _, child := range n.children {
		if out := s.renderNode(child, bg, elapsed); out != "" {
			parts = append(parts, out)
		}
	}
	body := lipgloss.JoinVertical(lipgloss.Center, parts...)

	if fade > 0 {
		switch n.Animation {
		case domain.AnimationSlide:
			shift := int(fade * float64(s.height) / 2)
			body = lipgloss.NewStyle().Background(bg).PaddingTop(shift).Render(body)
		default:
			if fade >= 0.5 {
				body = lipgloss.NewStyle().Faint(true).Render(body)
			}
		}
	}

	ws := lipgloss.NewStyle().Background(bg)
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, body,
		lipgloss.WithWhitespaceStyle(ws)), true
}

func (s *Surface) renderNode(n *Node, bg color.Color, elapsed time.Duration) string {
	if n.Style.DisplayNone {
		return ""
	}

	rule, frames, animated := s.rulesFor(n)
	style := lipgloss.NewStyle().
		Background(bg).
		MarginBackground(bg).
		MarginTop(rule.MarginTop).
		MarginBottom(rule.MarginBottom).
		Bold(rule.Bold)

	var frame Keyframe
	if animated {
		frame = frames.At(elapsed)
	}

	switch n.Kind {
	case KindImage:
		art := n.art
		if art == "" {
			return ""
		}
		if frame.MirrorX {
			art = mirrorX(art)
		}
		if frame.MirrorY {
			art = mirrorY(art)
		}
		if n.Width > 0 {
			style = style.MaxWidth(max(n.Width/cellWidthPx, 1))
		}
		if n.Height > 0 {
			style = style.MaxHeight(max(n.Height/cellHeightPx, 1) + rule.MarginTop + rule.MarginBottom + lift(frames))
		}
		if reserve := lift(frames); reserve > 0 {
			style = style.PaddingTop(reserve + frame.OffsetY).PaddingBottom(-frame.OffsetY)
		}
		return style.Bold(rule.Bold || frame.Bold).Faint(frame.Faint).Render(art)

	case KindText:
		return style.Foreground(lipgloss.Color(n.Style.Foreground)).Render(n.Text)

	case KindTrack:
		width := rule.Width
		if width == 0 {
			width = defaultTrackWidth
		}
		percent, fill := 0.0, lipgloss.Color("")
		for _, child := range n.children {
			if child.Kind == KindFill {
				percent = child.Style.WidthPercent / 100
				fill = lipgloss.Color(child.Style.Background)
			}
		}
		bar := progress.New(
			progress.WithColors(fill),
			progress.WithWidth(width),
			progress.WithoutPercentage(),
		)
		return style.Render(bar.ViewAs(percent))

	case KindSpinner:
		glyph := frame.Glyph
		if glyph == "" {
			glyph = "*"
		}
		return style.Foreground(lipgloss.Color(n.Style.Foreground)).Render(glyph)
	}

	return ""
}

// lift returns how many rows an animation raises its node at most.
func lift(k Keyframes) int {
	top := 0
	for _, f := range k.Frames {
		top = min(top, f.OffsetY)
	}
	return -top
}

func mirrorX(s string) string {
	lines := strings.Split(s, "\n")
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	for i, l := range lines {
		r := []rune(l)
		for len(r) < width {
			r = append(r, ' ')
		}
		slices.Reverse(r)
		lines[i] = string(r)
	}
	return strings.Join(lines, "\n")
}

func mirrorY(s string) string {
	lines := strings.Split(s, "\n")
	slices.Reverse(lines)
	return strings.Join(lines, "\n")
}
