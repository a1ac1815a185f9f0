package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	ini "github.com/go-ini/ini"

	"sonjit/internal/chosung"
	"sonjit/internal/geom"
	"sonjit/internal/jungsung"
	"sonjit/internal/pdollar"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "sonjit.ini"

type Config struct {
	Classifier ClassifierConfig
	Chosung    ChosungConfig
	Jungsung   JungsungConfig
	Text       TextConfig
	Complete   CompleteConfig
	Layout     LayoutConfig
	Log        LogConfig
}

type ClassifierConfig struct {
	Resolution int
	Scale      string
}

type ChosungConfig struct {
	PointThreshold int
	ScoreThreshold float64
	TopK           int
	FlipY          bool
	Templates      string
}

type JungsungConfig struct {
	PointThreshold int
	OriginX        float64
	OriginY        float64
	OriginZ        float64
}

type TextConfig struct {
	MaxBytes int
}

type CompleteConfig struct {
	Dictionary string
	Limit      int
}

type LayoutConfig struct {
	Name   string
	Custom string
}

type LogConfig struct {
	Level  string
	Format string
}

func Default() Config {
	cho := chosung.DefaultOptions()
	jung := jungsung.DefaultOptions()
	return Config{
		Classifier: ClassifierConfig{Resolution: pdollar.DefaultResolution, Scale: pdollar.ScaleUniform.String()},
		Chosung: ChosungConfig{
			PointThreshold: cho.PointThreshold,
			ScoreThreshold: cho.ScoreThreshold,
			TopK:           cho.TopK,
			Templates:      "templates",
		},
		Jungsung: JungsungConfig{
			PointThreshold: jung.PointThreshold,
			OriginX:        jung.Origin.X,
			OriginY:        jung.Origin.Y,
			OriginZ:        jung.Origin.Z,
		},
		Text:     TextConfig{MaxBytes: 4096},
		Complete: CompleteConfig{Limit: 5},
		Layout:   LayoutConfig{Name: "dubeolsik"},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults. An empty path or a missing file yields
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	if info.IsDir() {
		return cfg, fmt.Errorf("config: %s is a directory", path)
	}

	file, err := ini.Load(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	classifier := file.Section("classifier")
	cfg.Classifier.Resolution = classifier.Key("resolution").MustInt(cfg.Classifier.Resolution)
	cfg.Classifier.Scale = classifier.Key("scale").MustString(cfg.Classifier.Scale)

	cho := file.Section("chosung")
	cfg.Chosung.PointThreshold = cho.Key("point_threshold").MustInt(cfg.Chosung.PointThreshold)
	cfg.Chosung.ScoreThreshold = cho.Key("score_threshold").MustFloat64(cfg.Chosung.ScoreThreshold)
	cfg.Chosung.TopK = cho.Key("top_k").MustInt(cfg.Chosung.TopK)
	cfg.Chosung.FlipY = cho.Key("flip_y").MustBool(cfg.Chosung.FlipY)
	cfg.Chosung.Templates = cho.Key("templates").MustString(cfg.Chosung.Templates)

	jung := file.Section("jungsung")
	cfg.Jungsung.PointThreshold = jung.Key("point_threshold").MustInt(cfg.Jungsung.PointThreshold)
	cfg.Jungsung.OriginX = jung.Key("origin_x").MustFloat64(cfg.Jungsung.OriginX)
	cfg.Jungsung.OriginY = jung.Key("origin_y").MustFloat64(cfg.Jungsung.OriginY)
	cfg.Jungsung.OriginZ = jung.Key("origin_z").MustFloat64(cfg.Jungsung.OriginZ)

	cfg.Text.MaxBytes = file.Section("text").Key("max_bytes").MustInt(cfg.Text.MaxBytes)

	complete := file.Section("complete")
	cfg.Complete.Dictionary = complete.Key("dictionary").MustString(cfg.Complete.Dictionary)
	cfg.Complete.Limit = complete.Key("limit").MustInt(cfg.Complete.Limit)

	layout := file.Section("layout")
	cfg.Layout.Name = layout.Key("name").MustString(cfg.Layout.Name)
	cfg.Layout.Custom = layout.Key("custom").MustString(cfg.Layout.Custom)

	log := file.Section("log")
	cfg.Log.Level = log.Key("level").MustString(cfg.Log.Level)
	cfg.Log.Format = log.Key("format").MustString(cfg.Log.Format)

	return cfg, cfg.Validate()
}

// Resolve loads cliPath when set, else DefaultFile from the working
// directory if present.
func Resolve(cliPath string) (Config, error) {
	if cliPath != "" {
		return Load(cliPath)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return Default(), nil
	}
	return Load(filepath.Join(cwd, DefaultFile))
}

func (c Config) Validate() error {
	if c.Classifier.Resolution < 2 {
		return fmt.Errorf("config: classifier resolution must be at least 2, got %d", c.Classifier.Resolution)
	}
	if _, ok := pdollar.ParseScaleMode(c.Classifier.Scale); !ok {
		return fmt.Errorf("config: unknown scale mode %q", c.Classifier.Scale)
	}
	if c.Chosung.TopK < 1 {
		return fmt.Errorf("config: chosung top_k must be positive, got %d", c.Chosung.TopK)
	}
	if c.Jungsung.OriginX <= 0 || c.Jungsung.OriginY <= 0 || c.Jungsung.OriginZ <= 0 {
		return fmt.Errorf("config: jungsung origin must be positive")
	}
	return nil
}

func (c Config) ClassifierOptions() pdollar.Options {
	scale, _ := pdollar.ParseScaleMode(c.Classifier.Scale)
	return pdollar.Options{Resolution: c.Classifier.Resolution, Scale: scale}
}

func (c Config) ChosungOptions() chosung.Options {
	return chosung.Options{
		PointThreshold: c.Chosung.PointThreshold,
		ScoreThreshold: c.Chosung.ScoreThreshold,
		TopK:           c.Chosung.TopK,
		FlipY:          c.Chosung.FlipY,
	}
}

func (c Config) JungsungOptions() jungsung.Options {
	return jungsung.Options{
		PointThreshold: c.Jungsung.PointThreshold,
		Origin:         geom.Point3{X: c.Jungsung.OriginX, Y: c.Jungsung.OriginY, Z: c.Jungsung.OriginZ},
	}
}
