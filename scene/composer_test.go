package scene

import (
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"

	"github.com/toxichemicals/GO/holy-portfolio/assets"
	"github.com/toxichemicals/GO/holy-portfolio/field"
	"github.com/toxichemicals/GO/holy-portfolio/geometry"
)

func mustColor(t *testing.T, s string) colorful.Color {
	t.Helper()
	c, err := ParseColor(s)
	require.NoError(t, err)
	return c
}

func newComposer(t *testing.T, opts ...Option) *Composer {
	t.Helper()
	return NewComposer(assets.NewCatalog(t.TempDir()), NewCamera(16.0/9), opts...)
}

func goRegular(t *testing.T) *sfnt.Font {
	t.Helper()
	f, err := sfnt.Parse(goregular.TTF)
	require.NoError(t, err)
	return f
}

func TestNewComposerDefaults(t *testing.T) {
	c := newComposer(t)
	assert.Equal(t, "#b8bec6", c.BackgroundStyle())
	assert.Equal(t, "Matcap 3", c.ActiveTexture())
	assert.Same(t, c.TextMaterial().Texture, c.CubeMaterial().Texture)
	assert.Equal(t, "Matcap 3", c.TextMaterial().Texture.Name)
	assert.Empty(t, c.Scene().Meshes)
	assert.False(t, c.Populated())
}

func TestNewComposerOptions(t *testing.T) {
	c := newComposer(t, WithBackground("#123456"), WithTexture("Matcap 8"))
	assert.Equal(t, "#123456", c.BackgroundStyle())
	assert.Equal(t, "Matcap 8", c.ActiveTexture())

	c = newComposer(t, WithBackground("nope"), WithTexture("Matcap 99"))
	assert.Equal(t, DefaultBackground, c.BackgroundStyle())
	assert.Equal(t, assets.DefaultTexture, c.ActiveTexture())
}

func TestSetActiveTexture(t *testing.T) {
	c := newComposer(t)
	for _, name := range assets.TextureNames {
		require.NoError(t, c.SetActiveTexture(name))
		assert.Equal(t, name, c.ActiveTexture())
		assert.Equal(t, name, c.TextMaterial().Texture.Name)
		assert.Equal(t, name, c.CubeMaterial().Texture.Name)
	}

	before := c.TextMaterial().Texture
	err := c.SetActiveTexture("Matcap 9")
	assert.ErrorIs(t, err, ErrUnknownTexture)
	assert.Equal(t, "Matcap 8", c.ActiveTexture())
	assert.Same(t, before, c.TextMaterial().Texture)
}

func TestSetBackgroundColor(t *testing.T) {
	c := newComposer(t)
	for _, style := range []string{"#000000", "#ffffff", "#ff0080", "#b8bec6"} {
		require.NoError(t, c.SetBackgroundColor(style))
		assert.Equal(t, style, c.BackgroundStyle())
	}

	require.NoError(t, c.SetBackgroundColor("#abc"))
	assert.Equal(t, "#aabbcc", c.BackgroundStyle())

	err := c.SetBackgroundColor("#zzzzzz")
	assert.ErrorIs(t, err, ErrInvalidColor)
	assert.Equal(t, "#aabbcc", c.BackgroundStyle())
}

func TestPopulate(t *testing.T) {
	c := newComposer(t)
	require.NoError(t, c.Populate(goRegular(t), rand.New(rand.NewPCG(1, 1))))

	meshes := c.Scene().Meshes
	require.Len(t, meshes, 2+field.Count)

	dev, des := meshes[0], meshes[1]
	assert.Equal(t, PrimaryLabel, dev.Name)
	assert.True(t, dev.Geometry.BoundingBox().Center().ApproxEqualThreshold(mgl32.Vec3{}, 1e-5))
	assert.Equal(t, mgl32.Vec3{}, dev.Position)

	assert.Equal(t, SecondaryLabel, des.Name)
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, des.Position)
	// Not centered: same box as a freshly built label.
	fresh, err := geometry.NewText(goRegular(t), SecondaryLabel, geometry.DefaultTextStyle())
	require.NoError(t, err)
	assert.Equal(t, fresh.BoundingBox(), des.Geometry.BoundingBox())

	assert.Same(t, c.TextMaterial(), dev.Material)
	assert.Same(t, c.TextMaterial(), des.Material)

	box := meshes[2].Geometry
	for _, m := range meshes[2:] {
		assert.Same(t, box, m.Geometry)
		assert.Same(t, c.CubeMaterial(), m.Material)
		assert.Zero(t, m.Rotation.Z())
		assert.Equal(t, m.Scale.X(), m.Scale.Y())
	}
	assert.InDelta(t, field.CubeSize, box.BoundingBox().Size().X(), 1e-6)

	// Restyling after population reaches every mesh through the shared material.
	require.NoError(t, c.SetActiveTexture("Matcap 1"))
	assert.Equal(t, "Matcap 1", meshes[0].Material.Texture.Name)
	assert.Equal(t, "Matcap 1", meshes[100].Material.Texture.Name)
}

func TestPopulateTwice(t *testing.T) {
	c := newComposer(t)
	f := goRegular(t)
	require.NoError(t, c.Populate(f, field.GlobalSource()))
	assert.ErrorIs(t, c.Populate(f, field.GlobalSource()), ErrAlreadyPopulated)
	assert.Len(t, c.Scene().Meshes, 2+field.Count)
}

func TestPopulateWithoutFont(t *testing.T) {
	c := newComposer(t)
	err := c.Populate(nil, field.GlobalSource())
	assert.ErrorIs(t, err, geometry.ErrNoFont)
	assert.Empty(t, c.Scene().Meshes)
	assert.False(t, c.Populated())
}

func TestExportGLB(t *testing.T) {
	c := newComposer(t)
	require.NoError(t, c.Populate(goRegular(t), rand.New(rand.NewPCG(3, 4))))
	c.Scene().Rotation = mgl32.Vec3{0, 0.5, 0}

	path := filepath.Join(t.TempDir(), "portfolio.glb")
	require.NoError(t, ExportGLB(c.Scene(), path))

	doc, err := gltf.Open(path)
	require.NoError(t, err)
	assert.Len(t, doc.Nodes, 1+2+field.Count)
	assert.Len(t, doc.Meshes, 3)
	assert.Len(t, doc.Materials, 2)
	assert.Len(t, doc.Nodes[0].Children, 2+field.Count)
	assert.Equal(t, "Developer", doc.Meshes[0].Name)
	assert.InDelta(t, -1, doc.Nodes[2].Translation[1], 1e-6)
}
