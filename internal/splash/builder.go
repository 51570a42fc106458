package splash

import (
	"go.uber.org/zap"

	"github.com/danhigham/splashscreen/internal/domain"
	"github.com/danhigham/splashscreen/internal/surface"
)

// Handles points at the nodes of a built overlay. Optional parts are nil
// when not configured.
type Handles struct {
	Container *surface.Node
	Logo      *surface.Node
	Text      *surface.Node
	Track     *surface.Node
	Fill      *surface.Node
	Spinner   *surface.Node
}

// Build realizes o on s: it injects the shared stylesheet if absent, replaces
// any container already mounted under o.ContainerID, and mounts a fresh one.
func Build(s *surface.Surface, o Options, logger *zap.Logger) *Handles {
	if logger == nil {
		logger = zap.NewNop()
	}
	s.InjectStyles(StyleID, stylesheet)

	if existing := s.GetElementByID(o.ContainerID); existing != nil {
		s.Detach(existing)
		logger.Debug("replaced existing container", zap.String("id", o.ContainerID))
	}

	h := &Handles{}
	h.Container = surface.NewNode(surface.KindContainer, ClassContainer)
	h.Container.ID = o.ContainerID
	h.Container.Style.Background = o.BackgroundColor
	h.Container.Style.ZIndex = o.ZIndex
	h.Container.Style.Transition = o.FadeOutDuration
	h.Container.Animation = o.Animation

	if o.LogoSrc != "" {
		h.Logo = surface.NewNode(surface.KindImage, ClassLogo)
		applyLogo(h.Logo, o)
		h.Container.Append(h.Logo)
		// A failed load hides the node; the overlay is built regardless.
		_ = s.LoadImage(h.Logo)
	}

	if o.Text != "" {
		h.Text = surface.NewNode(surface.KindText, ClassText)
		h.Text.Text = o.Text
		h.Text.Style.Foreground = o.TextColor
		h.Container.Append(h.Text)
	}

	if o.ShowProgressBar {
		h.Track = surface.NewNode(surface.KindTrack, ClassProgressContainer)
		h.Fill = surface.NewNode(surface.KindFill, ClassProgressBar)
		h.Fill.Style.Background = o.ProgressBarColor
		h.Fill.Style.WidthPercent = 0
		h.Track.Append(h.Fill)
		h.Container.Append(h.Track)
	}

	if o.ShowSpinner {
		h.Spinner = surface.NewNode(surface.KindSpinner, ClassSpinner)
		h.Spinner.Style.Foreground = o.SpinnerColor
		h.Container.Append(h.Spinner)
	}

	s.Mount(h.Container)
	logger.Debug("overlay built",
		zap.String("id", o.ContainerID),
		zap.Int("nodes", h.Container.Count()),
	)
	return h
}

func applyLogo(n *surface.Node, o Options) {
	n.Src = o.LogoSrc
	n.Alt = o.LogoAlt
	n.Width = o.LogoWidth
	n.Height = o.LogoHeight
	n.RemoveClass(logoAnimationClasses...)
	if o.LogoAnimation != domain.LogoAnimationNone {
		n.AddClass(o.LogoAnimation.String())
	}
}

var logoAnimationClasses = []string{
	domain.LogoAnimationPulse.String(),
	domain.LogoAnimationRotate.String(),
	domain.LogoAnimationBounce.String(),
}
