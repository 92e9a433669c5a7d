// Package scene holds the portfolio scene graph and the Composer that builds
// and restyles it.
package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/sfnt"

	"github.com/toxichemicals/GO/holy-portfolio/assets"
	"github.com/toxichemicals/GO/holy-portfolio/field"
	"github.com/toxichemicals/GO/holy-portfolio/geometry"
	"github.com/toxichemicals/GO/holy-portfolio/logging"
)

var (
	ErrUnknownTexture   = errors.New("unknown texture")
	ErrAlreadyPopulated = errors.New("scene already populated")
)

// Label placement.
const (
	PrimaryLabel   = "Developer"
	SecondaryLabel = "Designer"
	SecondaryY     = -1
)

// TextureSource resolves display names to texture handles.
type TextureSource interface {
	Lookup(name string) (*assets.Texture, bool)
}

type options struct {
	background string
	texture    string
	textStyle  geometry.TextStyle
}

type Option func(*options)

// WithBackground overrides the initial background color.
func WithBackground(style string) Option {
	return func(o *options) { o.background = style }
}

// WithTexture overrides the initially selected matcap.
func WithTexture(name string) Option {
	return func(o *options) { o.texture = name }
}

func WithTextStyle(style geometry.TextStyle) Option {
	return func(o *options) { o.textStyle = style }
}

// Composer owns the scene, its camera and the two shared materials. It is
// not safe for concurrent use; every call happens on the render thread.
type Composer struct {
	textures  TextureSource
	camera    *Camera
	scene     *Scene
	textMat   *Material
	cubeMat   *Material
	active    string
	textStyle geometry.TextStyle
	populated bool
}

// NewComposer creates an empty scene with both materials on the default
// texture. Invalid options fall back to the defaults with a warning.
func NewComposer(textures TextureSource, camera *Camera, opts ...Option) *Composer {
	o := options{
		background: DefaultBackground,
		texture:    assets.DefaultTexture,
		textStyle:  geometry.DefaultTextStyle(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if camera == nil {
		camera = NewCamera(1)
	}

	bg, err := ParseColor(o.background)
	if err != nil {
		logging.Logger().Warn("falling back to default background", "err", err)
		bg, _ = ParseColor(DefaultBackground)
	}

	c := &Composer{
		textures:  textures,
		camera:    camera,
		scene:     NewScene(bg),
		textMat:   &Material{Name: "text"},
		cubeMat:   &Material{Name: "cube"},
		textStyle: o.textStyle,
	}
	if err := c.SetActiveTexture(o.texture); err != nil {
		logging.Logger().Warn("falling back to default texture", "err", err)
		if err := c.SetActiveTexture(assets.DefaultTexture); err != nil {
			logging.Logger().Warn("default texture unavailable", "err", err)
		}
	}
	return c
}

// Populate adds both labels and the cube field. It runs once, after the
// font has resolved.
func (c *Composer) Populate(f *sfnt.Font, src field.Source) error {
	if c.populated {
		return ErrAlreadyPopulated
	}

	primary, err := geometry.NewText(f, PrimaryLabel, c.textStyle)
	if err != nil {
		return fmt.Errorf("failed to build %s label: %w", PrimaryLabel, err)
	}
	primary.Center()
	secondary, err := geometry.NewText(f, SecondaryLabel, c.textStyle)
	if err != nil {
		return fmt.Errorf("failed to build %s label: %w", SecondaryLabel, err)
	}

	meshes := make([]*Mesh, 0, 2+field.Count)
	meshes = append(meshes,
		&Mesh{Name: PrimaryLabel, Geometry: primary, Material: c.textMat, Transform: Identity()},
		&Mesh{Name: SecondaryLabel, Geometry: secondary, Material: c.textMat, Transform: Identity()},
	)
	meshes[1].Position = mgl32.Vec3{0, SecondaryY, 0}

	box := geometry.NewBox(field.CubeSize, field.CubeSize, field.CubeSize)
	for i, in := range field.Generate(field.Count, src) {
		meshes = append(meshes, &Mesh{
			Name:     fmt.Sprintf("cube.%03d", i),
			Geometry: box,
			Material: c.cubeMat,
			Transform: Transform{
				Position: in.Position,
				Rotation: in.Rotation,
				Scale:    mgl32.Vec3{in.Scale, in.Scale, in.Scale},
			},
		})
	}

	c.scene.Add(meshes...)
	c.populated = true
	logging.Logger().Info("scene populated", "meshes", len(c.scene.Meshes))
	return nil
}

// SetActiveTexture points both materials at the named matcap.
func (c *Composer) SetActiveTexture(name string) error {
	if c.textures == nil {
		return fmt.Errorf("%w: %q", ErrUnknownTexture, name)
	}
	tex, ok := c.textures.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTexture, name)
	}
	c.textMat.Texture = tex
	c.cubeMat.Texture = tex
	c.active = name
	logging.Logger().Debug("texture selected", "name", name)
	return nil
}

// SetBackgroundColor parses style with ParseColor and applies it.
func (c *Composer) SetBackgroundColor(style string) error {
	col, err := ParseColor(style)
	if err != nil {
		return err
	}
	c.scene.Background = col
	return nil
}

// BackgroundStyle returns the background as "#rrggbb".
func (c *Composer) BackgroundStyle() string {
	return c.scene.Background.Clamped().Hex()
}

func (c *Composer) Background() colorful.Color { return c.scene.Background }

func (c *Composer) ActiveTexture() string   { return c.active }
func (c *Composer) Populated() bool         { return c.populated }
func (c *Composer) Scene() *Scene           { return c.scene }
func (c *Composer) Camera() *Camera         { return c.camera }
func (c *Composer) TextMaterial() *Material { return c.textMat }
func (c *Composer) CubeMaterial() *Material { return c.cubeMat }
