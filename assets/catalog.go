// Package assets loads the matcap textures and the label font off the render
// thread.
package assets

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // matcaps may ship as JPEG
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/toxichemicals/GO/holy-portfolio/logging"
)

// DefaultTexture is the matcap selected at startup.
const DefaultTexture = "Matcap 3"

// TextureNames lists the catalog entries in display order. Entry i is read
// from "<dir>/<i+1>.png".
var TextureNames = []string{
	"Matcap 1",
	"Matcap 2",
	"Matcap 3",
	"Matcap 4",
	"Matcap 5",
	"Matcap 6",
	"Matcap 7",
	"Matcap 8",
}

// maxDecoders bounds the number of concurrent image decodes.
const maxDecoders = 4

// Texture is a handle to a decoded image. It exists before the decode
// finishes; Image reports whether pixels are available yet.
type Texture struct {
	Name string
	Path string

	mu  sync.RWMutex
	img image.Image
	err error
}

// NewTexture returns a handle around an already decoded image.
func NewTexture(name string, img image.Image) *Texture {
	return &Texture{Name: name, img: img}
}

// Image returns the decoded image once the load has completed successfully.
func (t *Texture) Image() (image.Image, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.img, t.img != nil
}

// Err returns the decode error, if the load failed.
func (t *Texture) Err() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.err
}

func (t *Texture) resolve(img image.Image, err error) {
	t.mu.Lock()
	t.img, t.err = img, err
	t.mu.Unlock()
}

func (t *Texture) load() {
	f, err := os.Open(t.Path)
	if err != nil {
		t.resolve(nil, fmt.Errorf("failed to open texture %s: %w", t.Path, err))
		return
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		t.resolve(nil, fmt.Errorf("failed to decode texture %s: %w", t.Path, err))
		return
	}
	t.resolve(img, nil)
}

// Catalog maps display names to texture handles.
type Catalog struct {
	names  []string
	byName map[string]*Texture
	done   chan struct{}
}

// NewCatalog creates handles for every name in TextureNames under dir.
// Nothing is read until Start.
func NewCatalog(dir string) *Catalog {
	c := &Catalog{
		names:  TextureNames,
		byName: make(map[string]*Texture, len(TextureNames)),
	}
	for i, name := range TextureNames {
		c.byName[name] = &Texture{
			Name: name,
			Path: filepath.Join(dir, strconv.Itoa(i+1)+".png"),
		}
	}
	return c
}

// Start begins decoding every texture in the background and returns
// immediately. A failed decode is logged and recorded on its handle.
func (c *Catalog) Start(ctx context.Context) {
	c.done = make(chan struct{})
	go func() {
		defer close(c.done)

		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(maxDecoders)
		for _, name := range c.names {
			tex := c.byName[name]
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					tex.resolve(nil, err)
					return nil
				}
				tex.load()
				if err := tex.Err(); err != nil {
					logging.Logger().Warn("texture load failed", "name", tex.Name, "err", err)
					return nil
				}
				logging.Logger().Debug("texture decoded", "name", tex.Name, "path", tex.Path)
				return nil
			})
		}
		_ = g.Wait()
	}()
}

// Wait blocks until every decode started by Start has finished, and returns
// the first recorded failure.
func (c *Catalog) Wait() error {
	if c.done == nil {
		return nil
	}
	<-c.done
	for _, name := range c.names {
		if err := c.byName[name].Err(); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the handle for name.
func (c *Catalog) Lookup(name string) (*Texture, bool) {
	t, ok := c.byName[name]
	return t, ok
}

// Names returns the display names in catalog order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}
