package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadFontEmbedded(t *testing.T) {
	res := <-LoadFont(t.Context(), "")
	require.NoError(t, res.Err)
	require.NotNil(t, res.Font)
	assert.Positive(t, res.Font.NumGlyphs())
}

func TestLoadFontFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regular.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))

	res := <-LoadFont(t.Context(), path)
	require.NoError(t, res.Err)
	assert.NotNil(t, res.Font)
}

func TestLoadFontFailures(t *testing.T) {
	res := <-LoadFont(t.Context(), filepath.Join(t.TempDir(), "missing.ttf"))
	assert.ErrorIs(t, res.Err, os.ErrNotExist)
	assert.Nil(t, res.Font)

	path := filepath.Join(t.TempDir(), "garbage.ttf")
	require.NoError(t, os.WriteFile(path, []byte("not a font"), 0o644))
	res = <-LoadFont(t.Context(), path)
	assert.Error(t, res.Err)
}

func TestLoadFontChannelClosesAfterResult(t *testing.T) {
	ch := LoadFont(t.Context(), "")
	<-ch
	_, open := <-ch
	assert.False(t, open)
}
