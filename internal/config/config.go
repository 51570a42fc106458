package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/danhigham/splashscreen/internal/splash"
)

type Config struct {
	Splash   SplashConfig `yaml:"splash"`
	Boot     []BootStep   `yaml:"boot" validate:"dive"`
	LogLevel string       `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// SplashConfig mirrors splash.Partial with YAML-friendly types. Durations are
// milliseconds; a missing duration_ms keeps the default, 0 disables
// auto-hide.
type SplashConfig struct {
	ContainerID      string `yaml:"container_id"`
	BackgroundColor  string `yaml:"background_color" validate:"omitempty,termcolor"`
	LogoSrc          string `yaml:"logo_src"`
	LogoWidth        int    `yaml:"logo_width" validate:"gte=0"`
	LogoHeight       int    `yaml:"logo_height" validate:"gte=0"`
	LogoAlt          string `yaml:"logo_alt"`
	Text             string `yaml:"text"`
	TextColor        string `yaml:"text_color" validate:"omitempty,termcolor"`
	DurationMS       *int   `yaml:"duration_ms" validate:"omitempty,gte=0"`
	FadeOutMS        int    `yaml:"fade_out_ms" validate:"gte=0"`
	ShowProgressBar  bool   `yaml:"show_progress_bar"`
	ProgressBarColor string `yaml:"progress_bar_color" validate:"omitempty,termcolor"`
	ShowSpinner      bool   `yaml:"show_spinner"`
	SpinnerColor     string `yaml:"spinner_color" validate:"omitempty,termcolor"`
	Animation        string `yaml:"animation" validate:"omitempty,oneof=fade zoom slide"`
	ZIndex           int    `yaml:"z_index" validate:"gte=0"`
	LogoAnimation    string `yaml:"logo_animation" validate:"omitempty,oneof=pulse rotate bounce none"`
	RemoveAfterHide  bool   `yaml:"remove_after_hide"`
}

// BootStep is one simulated start-up task run by the demo host.
type BootStep struct {
	Name       string `yaml:"name" validate:"required"`
	DurationMS int    `yaml:"duration_ms" validate:"gte=0"`
}

// ErrProgressWithoutDuration rejects a progress bar that could never fill.
var ErrProgressWithoutDuration = errors.New("show_progress_bar requires duration_ms > 0")

var (
	validate  = validator.New()
	hexColor  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	logLevels = []string{"debug", "info", "warn", "error"}
)

func init() {
	_ = validate.RegisterValidation("termcolor", validateTermColor)
}

// validateTermColor accepts the colors lipgloss understands: hex codes and
// ANSI 256 palette indexes.
func validateTermColor(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if hexColor.MatchString(s) {
		return true
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0 && n <= 255
}

func Dir() string {
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		cfgDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(cfgDir, "splashscreen")
}

// Path returns the default config file location.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default is the configuration used when no file exists.
func Default() *Config {
	return &Config{LogLevel: "info"}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes and validates YAML config data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges and names, and rejects combinations the
// overlay cannot honor.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	s := c.Splash
	if s.ShowProgressBar && s.DurationMS != nil && *s.DurationMS == 0 {
		return fmt.Errorf("validate config: %w", ErrProgressWithoutDuration)
	}
	return nil
}

// ToPartial converts the splash section to overlay options. onHide is
// attached as the completion callback.
func (s SplashConfig) ToPartial(onHide func()) splash.Partial {
	p := splash.Partial{
		ContainerID:      s.ContainerID,
		BackgroundColor:  s.BackgroundColor,
		LogoSrc:          s.LogoSrc,
		LogoWidth:        s.LogoWidth,
		LogoHeight:       s.LogoHeight,
		LogoAlt:          s.LogoAlt,
		Text:             s.Text,
		TextColor:        s.TextColor,
		FadeOutDuration:  ms(s.FadeOutMS),
		ShowProgressBar:  s.ShowProgressBar,
		ProgressBarColor: s.ProgressBarColor,
		ShowSpinner:      s.ShowSpinner,
		SpinnerColor:     s.SpinnerColor,
		OnHide:           onHide,
		Animation:        s.Animation,
		ZIndex:           s.ZIndex,
		LogoAnimation:    s.LogoAnimation,
		RemoveAfterHide:  s.RemoveAfterHide,
	}
	if s.DurationMS != nil {
		p.Duration = splash.Duration(ms(*s.DurationMS))
	}
	return p
}

// Duration returns the step's simulated run time.
func (b BootStep) Duration() time.Duration {
	return ms(b.DurationMS)
}

// LogLevels lists the accepted log_level values.
func LogLevels() []string {
	return logLevels
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
