package splash

import (
	"time"

	"charm.land/bubbles/v2/spinner"

	"github.com/danhigham/splashscreen/internal/surface"
)

// StyleID identifies the shared stylesheet on a surface.
const StyleID = "splash-screen-styles"

const (
	ClassContainer         = "splash-screen-container"
	ClassLogo              = "splash-screen-logo"
	ClassText              = "splash-screen-text"
	ClassProgressContainer = "splash-screen-progress-container"
	ClassProgressBar       = "splash-screen-progress-bar"
	ClassSpinner           = "splash-screen-spinner"
)

var spinnerFrames = spinner.MiniDot

// stylesheet builds the rules shared by every overlay on a surface.
func stylesheet() *surface.Stylesheet {
	spin := make([]surface.Keyframe, len(spinnerFrames.Frames))
	for i, f := range spinnerFrames.Frames {
		spin[i] = surface.Keyframe{Glyph: f}
	}

	return &surface.Stylesheet{
		Rules: map[string]surface.Rule{
			ClassLogo:              {MarginBottom: 1},
			"pulse":                {Animation: "splash-screen-pulse"},
			"rotate":               {Animation: "splash-screen-rotate"},
			"bounce":               {Animation: "splash-screen-bounce"},
			ClassText:              {MarginTop: 1, Bold: true},
			ClassProgressContainer: {MarginTop: 1, Width: 25},
			ClassSpinner:           {MarginTop: 1, Animation: "splash-screen-spin"},
		},
		Keyframes: map[string]surface.Keyframes{
			"splash-screen-pulse": {
				Period: 2 * time.Second,
				Frames: []surface.Keyframe{{Faint: true}, {}, {Bold: true}, {}},
			},
			"splash-screen-rotate": {
				Period: 2 * time.Second,
				Frames: []surface.Keyframe{{}, {MirrorX: true}, {MirrorX: true, MirrorY: true}, {MirrorY: true}},
			},
			// 0%, 20%, 50%, 80%, 100% rest; 40% up two rows; 60% up one.
			"splash-screen-bounce": {
				Period: 2 * time.Second,
				Frames: []surface.Keyframe{
					{}, {}, {OffsetY: -1}, {OffsetY: -2}, {OffsetY: -1},
					{}, {OffsetY: -1}, {}, {}, {},
				},
			},
			"splash-screen-spin": {
				Period: spinnerFrames.FPS * time.Duration(len(spinnerFrames.Frames)),
				Frames: spin,
			},
		},
	}
}
