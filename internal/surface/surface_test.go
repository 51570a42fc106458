package surface_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danhigham/splashscreen/internal/surface"
)

type scheduled struct {
	d   time.Duration
	msg tea.Msg
}

func recorder(out *[]scheduled) surface.Scheduler {
	return func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
		msg := fn(time.Time{})
		*out = append(*out, scheduled{d: d, msg: msg})
		return func() tea.Msg { return msg }
	}
}

func container(id string) *surface.Node {
	n := surface.NewNode(surface.KindContainer)
	n.ID = id
	n.Style.Transition = 500 * time.Millisecond
	return n
}

func TestSurface_ReadyOnFirstSize(t *testing.T) {
	s := surface.New()
	assert.False(t, s.Ready())

	assert.False(t, s.Resize(0, 0))
	assert.False(t, s.Ready())

	assert.True(t, s.Resize(80, 24))
	assert.True(t, s.Ready())
	assert.False(t, s.Resize(100, 30), "only the first size makes it ready")

	w, h := s.Size()
	assert.Equal(t, 100, w)
	assert.Equal(t, 30, h)
}

func TestSurface_MountReplacesSameID(t *testing.T) {
	s := surface.New()
	a := container("splash")
	b := container("splash")
	other := container("other")

	s.Mount(a)
	s.Mount(other)
	s.Mount(b)
	s.Mount(b)

	assert.Equal(t, []*surface.Node{other, b}, s.Mounted())
	assert.Same(t, b, s.GetElementByID("splash"))
	assert.False(t, s.IsMounted(a))

	assert.True(t, s.Detach(b))
	assert.False(t, s.Detach(b))
	assert.Nil(t, s.GetElementByID("splash"))
}

func TestSurface_InjectStylesOnce(t *testing.T) {
	s := surface.New()
	builds := 0
	build := func() *surface.Stylesheet {
		builds++
		return &surface.Stylesheet{}
	}

	assert.True(t, s.InjectStyles("splash-screen-styles", build))
	assert.False(t, s.InjectStyles("splash-screen-styles", build))
	assert.True(t, s.InjectStyles("another", build))

	assert.Equal(t, 2, builds)
	assert.Equal(t, 2, s.Stylesheets())
}

func TestSurface_DefaultIsShared(t *testing.T) {
	assert.Same(t, surface.Default(), surface.Default())
}

func TestSurface_TransitionSignal(t *testing.T) {
	var timers []scheduled
	s := surface.New(surface.WithSize(80, 24), surface.WithScheduler(recorder(&timers)))
	n := container("splash")
	s.Mount(n)

	cmd := s.BeginTransition(n)
	require.NotNil(t, cmd)
	require.Len(t, timers, 1)
	assert.Equal(t, 500*time.Millisecond, timers[0].d)

	msg, ok := cmd().(surface.TransitionEndMsg)
	require.True(t, ok)
	assert.Equal(t, "splash", msg.ID)
	assert.True(t, s.EndTransition(msg))
	assert.False(t, s.EndTransition(msg), "a signal is consumed once")
}

func TestSurface_CancelledTransitionSignalIsRejected(t *testing.T) {
	var timers []scheduled
	s := surface.New(surface.WithSize(80, 24), surface.WithScheduler(recorder(&timers)))
	n := container("splash")
	s.Mount(n)

	first := s.BeginTransition(n)().(surface.TransitionEndMsg)
	s.CancelTransition(n)
	assert.False(t, s.EndTransition(first))

	s.BeginTransition(n)
	second := s.BeginTransition(n)().(surface.TransitionEndMsg)
	assert.NotEqual(t, first.Seq, second.Seq)
	assert.True(t, s.EndTransition(second))
}

func TestSurface_NoTransitionWhenNotDisplayed(t *testing.T) {
	var timers []scheduled

	notReady := surface.New(surface.WithScheduler(recorder(&timers)))
	n := container("a")
	notReady.Mount(n)
	assert.Nil(t, notReady.BeginTransition(n))

	s := surface.New(surface.WithSize(80, 24), surface.WithScheduler(recorder(&timers)))
	detached := container("b")
	assert.Nil(t, s.BeginTransition(detached))

	instant := container("c")
	instant.Style.Transition = 0
	s.Mount(instant)
	assert.Nil(t, s.BeginTransition(instant))

	assert.Empty(t, timers)
}

func TestSurface_LoadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.txt")
	require.NoError(t, os.WriteFile(path, []byte(" /\\\n/__\\\n\n"), 0600))

	s := surface.New()
	n := surface.NewNode(surface.KindImage)
	n.Src = path
	require.NoError(t, s.LoadImage(n))
	assert.Equal(t, " /\\\n/__\\", n.Art())
	assert.False(t, n.Style.DisplayNone)

	n.Src = filepath.Join(dir, "missing.txt")
	assert.Error(t, s.LoadImage(n))
	assert.True(t, n.Style.DisplayNone)
	assert.Empty(t, n.Art())

	n.Src = path
	require.NoError(t, s.LoadImage(n))
	assert.False(t, n.Style.DisplayNone)
}

func TestLoadArt_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.txt")
	require.NoError(t, os.WriteFile(path, []byte("  \n\n"), 0600))

	_, err := surface.LoadArt(path)
	assert.ErrorIs(t, err, surface.ErrEmptyImage)
}
