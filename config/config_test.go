package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "#b8bec6", cfg.Scene.Background)
	assert.Equal(t, "Matcap 3", cfg.Scene.Texture)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.toml")
	data := `
[window]
width = 800
height = 600

[assets]
font_path = "static/fonts/helvetiker.ttf"

[scene]
background = "#112233"
texture = "Matcap 7"

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "Holy Portfolio", cfg.Window.Title)
	assert.Equal(t, "static/fonts/helvetiker.ttf", cfg.Assets.FontPath)
	assert.Equal(t, "static/textures/matcaps", cfg.Assets.TextureDir)
	assert.Equal(t, "#112233", cfg.Scene.Background)
	assert.Equal(t, "Matcap 7", cfg.Scene.Texture)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"size":       "[window]\nwidth = 0\n",
		"level":      "[log]\nlevel = \"loud\"\n",
		"texture":    "[scene]\ntexture = \"Matcap 9\"\n",
		"background": "[scene]\nbackground = \"not-a-color\"\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "portfolio.toml")
			require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
			_, err := Load(path)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
