package surface

import "time"

// Rule is the terminal equivalent of a CSS class rule.
type Rule struct {
	MarginTop    int
	MarginBottom int
	Bold         bool
	Width        int    // cells; 0 means natural width
	Animation    string // name of a Keyframes entry
}

// Keyframe is one step of a continuous animation.
type Keyframe struct {
	Bold    bool
	Faint   bool
	MirrorX bool
	MirrorY bool
	OffsetY int // negative lifts the node
	Glyph   string
}

// Keyframes is a looping animation split into equal-length frames.
type Keyframes struct {
	Period time.Duration
	Frames []Keyframe
}

// At returns the frame shown after elapsed time.
func (k Keyframes) At(elapsed time.Duration) Keyframe {
	if len(k.Frames) == 0 {
		return Keyframe{}
	}
	if k.Period <= 0 || elapsed < 0 {
		return k.Frames[0]
	}
	pos := elapsed % k.Period
	i := int(int64(pos) * int64(len(k.Frames)) / int64(k.Period))
	return k.Frames[i]
}

// Stylesheet is a named block of rules and keyframes injected into a surface.
type Stylesheet struct {
	ID        string
	Rules     map[string]Rule
	Keyframes map[string]Keyframes
}

// InjectStyles adds the stylesheet built by build under id unless one with
// that id is already present. build is not called when the id exists.
// It reports whether the stylesheet was added.
func (s *Surface) InjectStyles(id string, build func() *Stylesheet) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sheet := range s.sheets {
		if sheet.ID == id {
			return false
		}
	}
	sheet := build()
	sheet.ID = id
	s.sheets = append(s.sheets, sheet)
	s.logger.Debug("stylesheet injected")
	return true
}

// Stylesheets returns the number of injected stylesheets.
func (s *Surface) Stylesheets() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sheets)
}

// rulesFor cascades the rules of every class on n, later sheets and later
// classes winning. Callers hold the lock.
func (s *Surface) rulesFor(n *Node) (Rule, Keyframes, bool) {
	var (
		out      Rule
		frames   Keyframes
		animated bool
	)
	for _, sheet := range s.sheets {
		for _, c := range n.classes {
			r, ok := sheet.Rules[c]
			if !ok {
				continue
			}
			if r.MarginTop != 0 {
				out.MarginTop = r.MarginTop
			}
			if r.MarginBottom != 0 {
				out.MarginBottom = r.MarginBottom
			}
			if r.Width != 0 {
				out.Width = r.Width
			}
			out.Bold = out.Bold || r.Bold
			if r.Animation != "" {
				if kf, ok := s.keyframes(r.Animation); ok {
					out.Animation = r.Animation
					frames = kf
					animated = true
				}
			}
		}
	}
	return out, frames, animated
}

func (s *Surface) keyframes(name string) (Keyframes, bool) {
	for i := len(s.sheets) - 1; i >= 0; i-- {
		if kf, ok := s.sheets[i].Keyframes[name]; ok {
			return kf, true
		}
	}
	return Keyframes{}, false
}
