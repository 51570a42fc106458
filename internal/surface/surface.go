package surface

import (
	"slices"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"
)

// Scheduler arranges for fn's message to be delivered after d.
// tea.Tick satisfies it.
type Scheduler func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Surface is a terminal rendering surface: a retained tree of mounted
// containers, the stylesheets injected into it, and the bookkeeping for
// transitions currently playing.
type Surface struct {
	mu          sync.RWMutex
	width       int
	height      int
	ready       bool
	mounted     []*Node
	sheets      []*Stylesheet
	transitions map[*Node]transition
	seq         int

	logger   *zap.Logger
	schedule Scheduler
	now      func() time.Time
	loader   ImageLoader
}

// Option configures a Surface.
type Option func(*Surface)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Surface) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithScheduler replaces tea.Tick for transition-completion signals.
func WithScheduler(fn Scheduler) Option {
	return func(s *Surface) {
		if fn != nil {
			s.schedule = fn
		}
	}
}

// WithClock replaces time.Now for animation frames.
func WithClock(now func() time.Time) Option {
	return func(s *Surface) {
		if now != nil {
			s.now = now
		}
	}
}

// WithImageLoader replaces the file-based logo loader.
func WithImageLoader(l ImageLoader) Option {
	return func(s *Surface) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithSize makes the surface ready immediately with the given dimensions.
func WithSize(w, h int) Option {
	return func(s *Surface) {
		s.width, s.height = w, h
		s.ready = w > 0 && h > 0
	}
}

// New creates a surface. It is not ready until it learns its size, either
// through WithSize or Resize.
func New(opts ...Option) *Surface {
	s := &Surface{
		transitions: make(map[*Node]transition),
		logger:      zap.NewNop(),
		schedule:    tea.Tick,
		now:         time.Now,
		loader:      LoadArt,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	defaultOnce    sync.Once
	defaultSurface *Surface
)

// Default returns the process-wide surface shared by every overlay that is
// not given one explicitly. It lives for the life of the process.
func Default() *Surface {
	defaultOnce.Do(func() {
		defaultSurface = New()
	})
	return defaultSurface
}

// Resize records the terminal dimensions. The first non-empty size makes the
// surface ready; Resize reports whether this call did so.
func (s *Surface) Resize(w, h int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = w, h
	if !s.ready && w > 0 && h > 0 {
		s.ready = true
		return true
	}
	return false
}

// Ready reports whether the surface can realize nodes.
func (s *Surface) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Size returns the current dimensions.
func (s *Surface) Size() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height
}

// Logger returns the surface's diagnostic logger.
func (s *Surface) Logger() *zap.Logger {
	return s.logger
}

// GetElementByID returns the mounted container with the given id.
func (s *Surface) GetElementByID(id string) *Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(id)
}

func (s *Surface) lookup(id string) *Node {
	for _, n := range s.mounted {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Mount appends n to the surface. A container already mounted under the
// same id is detached first.
func (s *Surface) Mount(n *Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID != "" {
		if prev := s.lookup(n.ID); prev != nil && prev != n {
			s.detach(prev)
		}
	}
	if slices.Contains(s.mounted, n) {
		return
	}
	n.mounted = s.now()
	s.mounted = append(s.mounted, n)
}

// Detach removes n from the surface, reporting whether it was mounted.
func (s *Surface) Detach(n *Node) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detach(n)
}

func (s *Surface) detach(n *Node) bool {
	i := slices.Index(s.mounted, n)
	if i < 0 {
		return false
	}
	s.mounted = slices.Delete(s.mounted, i, i+1)
	delete(s.transitions, n)
	return true
}

// IsMounted reports whether n is currently attached.
func (s *Surface) IsMounted(n *Node) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.mounted, n)
}

// Mounted returns the attached containers in mount order.
func (s *Surface) Mounted() []*Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.mounted)
}

// Modify applies fn to n while holding the surface lock.
func (s *Surface) Modify(n *Node, fn func(n *Node)) {
	if n == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(n)
}
