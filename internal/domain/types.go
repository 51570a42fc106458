package domain

import (
	"strings"
	"time"
)

// LogoAnimation is the continuous animation applied to the logo node.
type LogoAnimation int

const (
	LogoAnimationPulse LogoAnimation = iota
	LogoAnimationNone
	LogoAnimationRotate
	LogoAnimationBounce
)

func (a LogoAnimation) String() string {
	switch a {
	case LogoAnimationNone:
		return "none"
	case LogoAnimationRotate:
		return "rotate"
	case LogoAnimationBounce:
		return "bounce"
	default:
		return "pulse"
	}
}

// ParseLogoAnimation maps a name to a LogoAnimation. Unknown or empty names
// report ok=false and yield the default (pulse).
func ParseLogoAnimation(s string) (LogoAnimation, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pulse":
		return LogoAnimationPulse, true
	case "none":
		return LogoAnimationNone, true
	case "rotate":
		return LogoAnimationRotate, true
	case "bounce":
		return LogoAnimationBounce, true
	}
	return LogoAnimationPulse, false
}

// Animation is the container's show/hide animation kind.
type Animation int

const (
	AnimationFade Animation = iota
	AnimationZoom
	AnimationSlide
)

func (a Animation) String() string {
	switch a {
	case AnimationZoom:
		return "zoom"
	case AnimationSlide:
		return "slide"
	default:
		return "fade"
	}
}

// ParseAnimation maps a name to an Animation, defaulting to fade.
func ParseAnimation(s string) (Animation, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fade":
		return AnimationFade, true
	case "zoom":
		return AnimationZoom, true
	case "slide":
		return AnimationSlide, true
	}
	return AnimationFade, false
}

// Phase is where an overlay sits in its lifecycle.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseVisible
	PhaseHidden
)

func (p Phase) String() string {
	switch p {
	case PhaseVisible:
		return "visible"
	case PhaseHidden:
		return "hidden"
	default:
		return "uninitialized"
	}
}

// TaskStatus tracks a host boot task.
type TaskStatus int

const (
	TaskPending TaskStatus = iota
	TaskRunning
	TaskDone
	TaskFailed
)

func (s TaskStatus) String() string {
	switch s {
	case TaskRunning:
		return "running"
	case TaskDone:
		return "done"
	case TaskFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Finished reports whether the task will not change state again.
func (s TaskStatus) Finished() bool {
	return s == TaskDone || s == TaskFailed
}

// BootTask is one unit of start-up work the overlay covers.
type BootTask struct {
	Name     string
	Duration time.Duration
	Status   TaskStatus
	Started  time.Time
	Finished time.Time
	Err      string
}

// Event is a timestamped lifecycle entry shown by the host.
type Event struct {
	Time time.Time
	Text string
}
