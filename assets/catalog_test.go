package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestCatalogNames(t *testing.T) {
	c := NewCatalog("static")
	names := c.Names()
	require.Len(t, names, 8)
	assert.Equal(t, "Matcap 1", names[0])
	assert.Equal(t, "Matcap 8", names[7])
	assert.Contains(t, names, DefaultTexture)

	tex, ok := c.Lookup("Matcap 3")
	require.True(t, ok)
	assert.Equal(t, filepath.Join("static", "3.png"), tex.Path)

	_, ok = c.Lookup("Matcap 9")
	assert.False(t, ok)
}

func TestCatalogHandlesExistBeforeLoad(t *testing.T) {
	c := NewCatalog(t.TempDir())
	tex, ok := c.Lookup(DefaultTexture)
	require.True(t, ok)

	_, decoded := tex.Image()
	assert.False(t, decoded)
	assert.NoError(t, tex.Err())
	assert.NoError(t, c.Wait())
}

func TestCatalogLoad(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 8; i++ {
		writePNG(t, filepath.Join(dir, string(rune('0'+i))+".png"), color.RGBA{R: uint8(i * 20), A: 255})
	}

	c := NewCatalog(dir)
	c.Start(t.Context())
	require.NoError(t, c.Wait())

	for _, name := range c.Names() {
		tex, _ := c.Lookup(name)
		img, ok := tex.Image()
		require.True(t, ok, name)
		assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())
	}
}

func TestCatalogMissingFileIsRecorded(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "3.png"), color.White)

	c := NewCatalog(dir)
	c.Start(t.Context())
	assert.Error(t, c.Wait())

	good, _ := c.Lookup("Matcap 3")
	_, ok := good.Image()
	assert.True(t, ok)

	bad, _ := c.Lookup("Matcap 1")
	_, ok = bad.Image()
	assert.False(t, ok)
	assert.ErrorIs(t, bad.Err(), os.ErrNotExist)
}
