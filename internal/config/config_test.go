package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danhigham/splashscreen/internal/config"
	"github.com/danhigham/splashscreen/internal/splash"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `splash:
  background_color: "#101820"
  logo_src: logo.txt
  text: "Loading..."
  text_color: "252"
  duration_ms: 1200
  fade_out_ms: 300
  show_progress_bar: true
  show_spinner: true
  animation: slide
  logo_animation: bounce
  remove_after_hide: true
boot:
  - name: Reading index
    duration_ms: 400
log_level: debug
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "#101820", cfg.Splash.BackgroundColor)
	assert.Equal(t, "debug", cfg.LogLevel)
	require.NotNil(t, cfg.Splash.DurationMS)
	assert.Equal(t, 1200, *cfg.Splash.DurationMS)
	require.Len(t, cfg.Boot, 1)
	assert.Equal(t, "Reading index", cfg.Boot[0].Name)
	assert.Equal(t, 400*time.Millisecond, cfg.Boot[0].Duration())
}

func TestLoadConfig_DefaultLogLevel(t *testing.T) {
	cfg, err := config.Parse([]byte("splash:\n  text: hi\n"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Nil(t, cfg.Splash.DurationMS)
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := config.Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := config.LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed yaml", "splash: [unterminated"},
		{"negative duration", "splash:\n  duration_ms: -1\n"},
		{"negative fade", "splash:\n  fade_out_ms: -5\n"},
		{"negative z-index", "splash:\n  z_index: -1\n"},
		{"unknown animation", "splash:\n  animation: spin\n"},
		{"unknown logo animation", "splash:\n  logo_animation: wobble\n"},
		{"bad color", "splash:\n  text_color: not-a-color\n"},
		{"palette out of range", "splash:\n  spinner_color: \"300\"\n"},
		{"unnamed boot step", "boot:\n  - duration_ms: 10\n"},
		{"unknown log level", "log_level: loud\n"},
		{"progress bar without duration", "splash:\n  show_progress_bar: true\n  duration_ms: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_ProgressBarWithoutDuration(t *testing.T) {
	_, err := config.Parse([]byte("splash:\n  show_progress_bar: true\n  duration_ms: 0\n"))
	assert.ErrorIs(t, err, config.ErrProgressWithoutDuration)

	_, err = config.Parse([]byte("splash:\n  show_progress_bar: true\n"))
	assert.NoError(t, err, "an omitted duration keeps the default")
}

func TestToPartial(t *testing.T) {
	zero := 0
	called := false
	s := config.SplashConfig{
		Text:          "Booting",
		DurationMS:    &zero,
		FadeOutMS:     250,
		Animation:     "zoom",
		LogoAnimation: "none",
		ZIndex:        5,
	}

	p := s.ToPartial(func() { called = true })
	o := splash.Resolve(p)

	assert.Equal(t, "Booting", o.Text)
	assert.Equal(t, time.Duration(0), o.Duration)
	assert.Equal(t, 250*time.Millisecond, o.FadeOutDuration)
	assert.Equal(t, "zoom", o.Animation.String())
	assert.Equal(t, "none", o.LogoAnimation.String())
	assert.Equal(t, 5, o.ZIndex)

	o.OnHide()
	assert.True(t, called)

	o = splash.Resolve(config.SplashConfig{}.ToPartial(nil))
	assert.Equal(t, splash.DefaultDuration, o.Duration)
}

func TestConfigDir(t *testing.T) {
	assert.NotEmpty(t, config.Dir())
	assert.Equal(t, "config.yaml", filepath.Base(config.Path()))
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "splash:\n  text: one\n")

	changes := make(chan *config.Config, 16)
	w, err := config.NewWatcher(path, nil, func(c *config.Config) { changes <- c })
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	writeConfig(t, dir, "splash:\n  text: broken\n  z_index: -1\n")
	writeConfig(t, dir, "splash:\n  text: two\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1"), 0600))

	// A write may be observed mid-truncate, so wait for the final content.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-changes:
			assert.GreaterOrEqual(t, c.Splash.ZIndex, 0, "invalid edits never reach the callback")
			if c.Splash.Text == "two" {
				return
			}
		case <-deadline:
			t.Fatal("no reload after write")
		}
	}
}
