// Package config loads the optional portfolio.toml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/toxichemicals/GO/holy-portfolio/assets"
	"github.com/toxichemicals/GO/holy-portfolio/logging"
	"github.com/toxichemicals/GO/holy-portfolio/scene"
)

// DefaultPath is where main looks for a config file.
const DefaultPath = "portfolio.toml"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full program configuration.
type Config struct {
	Window WindowConfig `toml:"window"`
	Assets AssetsConfig `toml:"assets"`
	Scene  SceneConfig  `toml:"scene"`
	Log    LogConfig    `toml:"log"`
	Export ExportConfig `toml:"export"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type AssetsConfig struct {
	TextureDir string `toml:"texture_dir"`
	// FontPath is a TrueType/OpenType file. Empty selects the embedded Go Regular face.
	FontPath string `toml:"font_path"`
}

type SceneConfig struct {
	Background string `toml:"background"`
	Texture    string `toml:"texture"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type ExportConfig struct {
	Path string `toml:"path"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Holy Portfolio",
			VSync:  true,
		},
		Assets: AssetsConfig{
			TextureDir: "static/textures/matcaps",
		},
		Scene: SceneConfig{
			Background: scene.DefaultBackground,
			Texture:    assets.DefaultTexture,
		},
		Log:    LogConfig{Level: "info"},
		Export: ExportConfig{Path: "portfolio.glb"},
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values main relies on.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !slices.Contains(assets.TextureNames, c.Scene.Texture) {
		return fmt.Errorf("%w: unknown texture %q", ErrInvalid, c.Scene.Texture)
	}
	if _, err := scene.ParseColor(c.Scene.Background); err != nil {
		return fmt.Errorf("%w: background: %v", ErrInvalid, err)
	}
	return nil
}
