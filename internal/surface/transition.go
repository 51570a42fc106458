package surface

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"
)

type transition struct {
	seq      int
	started  time.Time
	duration time.Duration
	ended    bool
}

// TransitionEndMsg signals that the transition started by BeginTransition
// finished playing.
type TransitionEndMsg struct {
	ID  string
	Seq int
}

// BeginTransition starts playing n's transition and returns the command that
// delivers its TransitionEndMsg. Nothing plays, and no signal is ever sent,
// when the surface is not ready, n is not mounted, n is not displayed or n
// has no transition duration.
func (s *Surface) BeginTransition(n *Node) tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.transitions, n)
	if !s.ready || n.Style.DisplayNone || n.Style.Transition <= 0 || !s.isMounted(n) {
		s.logger.Debug("transition not played", zap.String("id", n.ID))
		return nil
	}
	s.seq++
	t := transition{seq: s.seq, started: s.now(), duration: n.Style.Transition}
	s.transitions[n] = t
	id, seq := n.ID, t.seq
	return s.schedule(t.duration, func(time.Time) tea.Msg {
		return TransitionEndMsg{ID: id, Seq: seq}
	})
}

// EndTransition consumes msg, reporting whether it belongs to a transition
// that is still playing. Signals for cancelled or replaced transitions and
// repeated signals report false.
func (s *Surface) EndTransition(msg TransitionEndMsg) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for n, t := range s.transitions {
		if n.ID != msg.ID || t.seq != msg.Seq {
			continue
		}
		if t.ended {
			return false
		}
		t.ended = true
		s.transitions[n] = t
		return true
	}
	return false
}

// CancelTransition stops any transition playing on n. Its pending signal
// will be rejected by EndTransition.
func (s *Surface) CancelTransition(n *Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.transitions, n)
}

// transitionProgress returns how far n's transition has played, 0-1, and
// whether one is still running. Callers hold the lock.
func (s *Surface) transitionProgress(n *Node, now time.Time) (float64, bool) {
	t, ok := s.transitions[n]
	if !ok || t.ended || t.duration <= 0 {
		return 1, false
	}
	p := float64(now.Sub(t.started)) / float64(t.duration)
	if p >= 1 {
		return 1, false
	}
	if p < 0 {
		p = 0
	}
	return p, true
}

func (s *Surface) isMounted(n *Node) bool {
	for _, m := range s.mounted {
		if m == n {
			return true
		}
	}
	return false
}
