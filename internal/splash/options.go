package splash

import (
	"time"

	"github.com/danhigham/splashscreen/internal/domain"
)

// Defaults applied by Resolve to every omitted option.
const (
	DefaultContainerID      = "splash-screen-container"
	DefaultBackgroundColor  = "#ffffff"
	DefaultLogoWidth        = 120
	DefaultLogoHeight       = 120
	DefaultLogoAlt          = "Logo"
	DefaultTextColor        = "#333333"
	DefaultDuration         = 2500 * time.Millisecond
	DefaultFadeOutDuration  = 500 * time.Millisecond
	DefaultProgressBarColor = "#4CAF50"
	DefaultSpinnerColor     = "#333333"
	DefaultZIndex           = 9999
)

// Partial is the caller-supplied configuration. Every field is optional and
// a zero value means "not set", except Duration, where nil means "not set"
// and an explicit zero disables auto-hide.
type Partial struct {
	ContainerID      string
	BackgroundColor  string
	LogoSrc          string
	LogoWidth        int
	LogoHeight       int
	LogoAlt          string
	Text             string
	TextColor        string
	Duration         *time.Duration
	FadeOutDuration  time.Duration
	ShowProgressBar  bool
	ProgressBarColor string
	ShowSpinner      bool
	SpinnerColor     string
	OnHide           func()
	Animation        string // fade, zoom or slide
	ZIndex           int
	LogoAnimation    string // pulse, rotate, bounce or none
	RemoveAfterHide  bool
}

// Duration returns a pointer to d, for Partial.Duration.
func Duration(d time.Duration) *time.Duration {
	return &d
}

// Options is a fully resolved configuration.
type Options struct {
	ContainerID      string
	BackgroundColor  string
	LogoSrc          string
	LogoWidth        int
	LogoHeight       int
	LogoAlt          string
	Text             string
	TextColor        string
	Duration         time.Duration
	FadeOutDuration  time.Duration
	ShowProgressBar  bool
	ProgressBarColor string
	ShowSpinner      bool
	SpinnerColor     string
	OnHide           func()
	Animation        domain.Animation
	ZIndex           int
	LogoAnimation    domain.LogoAnimation
	RemoveAfterHide  bool
}

// Resolve fills every field p leaves unset with its default.
func Resolve(p Partial) Options {
	o := Options{
		ContainerID:      DefaultContainerID,
		BackgroundColor:  DefaultBackgroundColor,
		LogoWidth:        DefaultLogoWidth,
		LogoHeight:       DefaultLogoHeight,
		LogoAlt:          DefaultLogoAlt,
		TextColor:        DefaultTextColor,
		Duration:         DefaultDuration,
		FadeOutDuration:  DefaultFadeOutDuration,
		ProgressBarColor: DefaultProgressBarColor,
		SpinnerColor:     DefaultSpinnerColor,
		Animation:        domain.AnimationFade,
		ZIndex:           DefaultZIndex,
		LogoAnimation:    domain.LogoAnimationPulse,
	}
	return o.Merge(p)
}

// Merge returns o with every field set in p applied over it.
func (o Options) Merge(p Partial) Options {
	o.ContainerID = pick(p.ContainerID, o.ContainerID)
	o.BackgroundColor = pick(p.BackgroundColor, o.BackgroundColor)
	o.LogoSrc = pick(p.LogoSrc, o.LogoSrc)
	o.LogoWidth = pick(p.LogoWidth, o.LogoWidth)
	o.LogoHeight = pick(p.LogoHeight, o.LogoHeight)
	o.LogoAlt = pick(p.LogoAlt, o.LogoAlt)
	o.Text = pick(p.Text, o.Text)
	o.TextColor = pick(p.TextColor, o.TextColor)
	if p.Duration != nil {
		o.Duration = max(*p.Duration, 0)
	}
	if p.FadeOutDuration > 0 {
		o.FadeOutDuration = p.FadeOutDuration
	}
	o.ShowProgressBar = o.ShowProgressBar || p.ShowProgressBar
	o.ProgressBarColor = pick(p.ProgressBarColor, o.ProgressBarColor)
	o.ShowSpinner = o.ShowSpinner || p.ShowSpinner
	o.SpinnerColor = pick(p.SpinnerColor, o.SpinnerColor)
	if p.OnHide != nil {
		o.OnHide = p.OnHide
	}
	if a, ok := domain.ParseAnimation(p.Animation); ok {
		o.Animation = a
	}
	o.ZIndex = pick(p.ZIndex, o.ZIndex)
	if a, ok := domain.ParseLogoAnimation(p.LogoAnimation); ok {
		o.LogoAnimation = a
	}
	o.RemoveAfterHide = o.RemoveAfterHide || p.RemoveAfterHide
	return o
}

// Animated reports whether the progress bar can be animated. A bar with no
// duration has no rate to fill at.
func (o Options) Animated() bool {
	return o.ShowProgressBar && o.Duration > 0
}

func pick[T comparable](v, fallback T) T {
	var zero T
	if v == zero {
		return fallback
	}
	return v
}
