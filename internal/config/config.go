package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Window     WindowConfig
	Log        LogConfig
	Render     RenderConfig
	Annotation AnnotationConfig
}

// WindowConfig holds the initial window geometry.
type WindowConfig struct {
	Width  float32
	Height float32
}

// LogConfig selects log verbosity and encoding.
type LogConfig struct {
	Level string
	JSON  bool
}

// RenderConfig controls how drawings are fitted and sampled.
type RenderConfig struct {
	ArcSegments     int     `mapstructure:"arc_segments"`
	EllipseSegments int     `mapstructure:"ellipse_segments"`
	Padding         float64 `mapstructure:"padding"`
	FlipY           bool    `mapstructure:"flip_y"`
	PointRadius     float64 `mapstructure:"point_radius"`
	TextSize        float64 `mapstructure:"text_size"`
}

// AnnotationConfig controls annotation stroke appearance.
type AnnotationConfig struct {
	StrokeWidth float32 `mapstructure:"stroke_width"`
}

// Load reads configuration from file and env. Env var overrides use prefix QUALITYMAP_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("QUALITYMAP_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "qualitymap"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("QUALITYMAP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit QUALITYMAP_CONFIG must exist
		if !errors.As(err, &notFound) || cfgPath != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Default returns the built-in configuration without consulting file or env.
func Default() Config {
	v := viper.New()
	setDefaults(v)

	var c Config
	_ = v.Unmarshal(&c)
	return c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.width", 800)
	v.SetDefault("window.height", 600)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("render.arc_segments", 100)
	v.SetDefault("render.ellipse_segments", 100)
	v.SetDefault("render.padding", 10)
	v.SetDefault("render.flip_y", true)
	v.SetDefault("render.point_radius", 2)
	v.SetDefault("render.text_size", 12)
	v.SetDefault("annotation.stroke_width", 1.5)
}

// Validate rejects values the renderer cannot work with.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %.0fx%.0f must be positive", c.Window.Width, c.Window.Height)
	case c.Render.ArcSegments < 1:
		return fmt.Errorf("render.arc_segments must be at least 1, got %d", c.Render.ArcSegments)
	case c.Render.EllipseSegments < 1:
		return fmt.Errorf("render.ellipse_segments must be at least 1, got %d", c.Render.EllipseSegments)
	case c.Render.Padding < 0:
		return fmt.Errorf("render.padding must not be negative, got %g", c.Render.Padding)
	case c.Render.PointRadius <= 0:
		return fmt.Errorf("render.point_radius must be positive, got %g", c.Render.PointRadius)
	case c.Render.TextSize <= 0:
		return fmt.Errorf("render.text_size must be positive, got %g", c.Render.TextSize)
	case c.Annotation.StrokeWidth <= 0:
		return fmt.Errorf("annotation.stroke_width must be positive, got %g", c.Annotation.StrokeWidth)
	}
	return nil
}
