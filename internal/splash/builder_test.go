package splash_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/danhigham/splashscreen/internal/splash"
	"github.com/danhigham/splashscreen/internal/surface"
)

func TestBuild_AllParts(t *testing.T) {
	s := surface.New(
		surface.WithSize(80, 24),
		surface.WithImageLoader(func(string) (string, error) { return "LOGO", nil }),
	)
	o := splash.Resolve(splash.Partial{
		BackgroundColor: "#101010",
		LogoSrc:         "logo.txt",
		LogoAnimation:   "bounce",
		Text:            "Loading...",
		TextColor:       "#eeeeee",
		ShowProgressBar: true,
		ShowSpinner:     true,
		SpinnerColor:    "#ff00ff",
		ZIndex:          42,
		FadeOutDuration: 300 * time.Millisecond,
	})

	h := splash.Build(s, o, nil)

	require.NotNil(t, h.Container)
	assert.Same(t, h.Container, s.GetElementByID(splash.DefaultContainerID))
	assert.Equal(t, "#101010", h.Container.Style.Background)
	assert.Equal(t, 42, h.Container.Style.ZIndex)
	assert.Equal(t, 300*time.Millisecond, h.Container.Style.Transition)
	assert.True(t, h.Container.HasClass(splash.ClassContainer))

	require.NotNil(t, h.Logo)
	assert.Equal(t, "logo.txt", h.Logo.Src)
	assert.Equal(t, "Logo", h.Logo.Alt)
	assert.Equal(t, 120, h.Logo.Width)
	assert.True(t, h.Logo.HasClass("bounce"))
	assert.Equal(t, "LOGO", h.Logo.Art())

	require.NotNil(t, h.Text)
	assert.Equal(t, "Loading...", h.Text.Text)
	assert.Equal(t, "#eeeeee", h.Text.Style.Foreground)

	require.NotNil(t, h.Track)
	require.NotNil(t, h.Fill)
	assert.Same(t, h.Track, h.Fill.Parent())
	assert.Equal(t, "#4CAF50", h.Fill.Style.Background)
	assert.Zero(t, h.Fill.Style.WidthPercent)

	require.NotNil(t, h.Spinner)
	assert.Equal(t, "#ff00ff", h.Spinner.Style.Foreground)

	children := h.Container.Children()
	require.Len(t, children, 4)
	assert.Equal(t, []*surface.Node{h.Logo, h.Text, h.Track, h.Spinner}, children)
}

func TestBuild_OptionalPartsOmitted(t *testing.T) {
	s := surface.New(surface.WithSize(80, 24))
	h := splash.Build(s, splash.Resolve(splash.Partial{}), nil)

	assert.Nil(t, h.Logo)
	assert.Nil(t, h.Text)
	assert.Nil(t, h.Track)
	assert.Nil(t, h.Fill)
	assert.Nil(t, h.Spinner)
	assert.Empty(t, h.Container.Children())
}

func TestBuild_LogoAnimationNone(t *testing.T) {
	s := surface.New(surface.WithImageLoader(func(string) (string, error) { return "x", nil }))
	h := splash.Build(s, splash.Resolve(splash.Partial{LogoSrc: "a", LogoAnimation: "none"}), nil)

	assert.Equal(t, []string{splash.ClassLogo}, h.Logo.Classes())
}

func TestBuild_ReplacesExistingContainer(t *testing.T) {
	s := surface.New(surface.WithSize(80, 24))
	o := splash.Resolve(splash.Partial{Text: "one"})

	first := splash.Build(s, o, nil)
	second := splash.Build(s, o, nil)

	mounted := s.Mounted()
	require.Len(t, mounted, 1)
	assert.Same(t, second.Container, mounted[0])
	assert.False(t, s.IsMounted(first.Container))
}

func TestBuild_InjectsStylesOnce(t *testing.T) {
	s := surface.New()
	splash.Build(s, splash.Resolve(splash.Partial{ContainerID: "a"}), nil)
	splash.Build(s, splash.Resolve(splash.Partial{ContainerID: "b"}), nil)

	assert.Equal(t, 1, s.Stylesheets())
	assert.Len(t, s.Mounted(), 2)
}

func TestBuild_LogoLoadFailure(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	s := surface.New(
		surface.WithLogger(zap.New(core)),
		surface.WithImageLoader(func(string) (string, error) { return "", errors.New("no such file") }),
	)

	h := splash.Build(s, splash.Resolve(splash.Partial{LogoSrc: "missing.txt", Text: "still here"}), nil)

	require.NotNil(t, h.Logo)
	assert.True(t, h.Logo.Style.DisplayNone)
	assert.NotNil(t, h.Text)
	assert.True(t, s.IsMounted(h.Container))

	entries := logs.FilterMessage("Failed to load logo image").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "missing.txt", entries[0].ContextMap()["src"])
}
