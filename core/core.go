// Package core owns the GLFW window, the OpenGL programs and every draw
// call: the matcap-shaded scene and the control panel overlay.
package core

import (
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/toxichemicals/GO/holy-portfolio/assets"
	"github.com/toxichemicals/GO/holy-portfolio/geometry"
	"github.com/toxichemicals/GO/holy-portfolio/logging"
	"github.com/toxichemicals/GO/holy-portfolio/panel"
	"github.com/toxichemicals/GO/holy-portfolio/scene"
)

// Options configures the window.
type Options struct {
	Width, Height int
	Title         string
	VSync         bool
}

// Handlers are called from GLFW callbacks on the main thread.
type Handlers struct {
	// PointerMove receives the cursor in window coordinates and the window size.
	PointerMove func(x, y float64, width, height int)
	Resize      func(width, height int, pixelRatio float32)
	Export      func()
}

// Core struct encapsulates the low-level graphics and windowing components.
type Core struct {
	window *glfw.Window
	opts   Options

	// Scene program and uniform locations
	program           uint32
	modelUniform      int32
	viewUniform       int32
	projectionUniform int32
	matcapUniform     int32
	hasMatcapUniform  int32

	// UI program, its unit quad and uniform locations
	uiProgram          uint32
	uiVAO, uiVBO       uint32
	uiTransformUniform int32
	uiColorUniform     int32
	uiTexturedUniform  int32
	uiTextureUniform   int32

	// GPU caches keyed by the CPU-side resource
	meshes   map[*geometry.Geometry]*gpuMesh
	textures map[*assets.Texture]uint32
	texts    *textCache

	// Window and framebuffer dimensions
	width, height     int
	fbWidth, fbHeight int
	ratio             float32

	camera   *scene.Camera
	panel    *panel.Panel
	handlers Handlers

	// Pointer state for the panel
	mouseX, mouseY    float32
	mouseLeftPressed  bool
	mouseLeftReleased bool
	handCursor        *glfw.Cursor
	overPanel         bool

	vsyncEnabled bool
	fps          fpsCounter
}

// NewCore creates a Core; nothing touches GLFW or GL until Init.
func NewCore(opts Options) *Core {
	return &Core{
		opts:     opts,
		width:    opts.Width,
		height:   opts.Height,
		ratio:    1,
		meshes:   make(map[*geometry.Geometry]*gpuMesh),
		textures: make(map[*assets.Texture]uint32),
		texts: newTextCache(
			func(img *image.RGBA) uint32 { return newTexture(img, false) },
			func(id uint32) { gl.DeleteTextures(1, &id) },
		),
	}
}

// Init initializes GLFW, the OpenGL context and both programs.
func (c *Core) Init() error {
	runtime.LockOSThread() // GLFW and GL calls stay on this thread until Shutdown.

	if err := c.initializeWindow(); err != nil {
		return err
	}
	if err := gl.Init(); err != nil {
		c.window.Destroy()
		glfw.Terminate()
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logging.Logger().Info("OpenGL initialized", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.MULTISAMPLE)
	gl.Viewport(0, 0, int32(c.fbWidth), int32(c.fbHeight))

	if err := c.setupSceneProgram(); err != nil {
		c.window.Destroy()
		glfw.Terminate()
		return err
	}
	if err := c.setupUIProgram(); err != nil {
		gl.DeleteProgram(c.program)
		c.window.Destroy()
		glfw.Terminate()
		return err
	}
	return nil
}

func (c *Core) initializeWindow() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)

	window, err := glfw.CreateWindow(c.width, c.height, c.opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}
	c.window = window
	c.window.MakeContextCurrent()

	c.setVSync(c.opts.VSync)

	c.width, c.height = c.window.GetSize()
	c.fbWidth, c.fbHeight = c.window.GetFramebufferSize()
	c.ratio = pixelRatio(c.fbWidth, c.width)
	c.handCursor = glfw.CreateStandardCursor(glfw.HandCursor)

	c.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		c.fbWidth, c.fbHeight = width, height
		gl.Viewport(0, 0, int32(width), int32(height))
		c.ratio = pixelRatio(c.fbWidth, c.width)
	})

	c.window.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		c.width, c.height = width, height
		c.ratio = pixelRatio(c.fbWidth, c.width)
		if c.camera != nil {
			c.camera.SetAspect(width, height)
		}
		if c.handlers.Resize != nil {
			c.handlers.Resize(width, height, c.ratio)
		}
	})

	c.window.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		c.mouseX = float32(xpos)
		c.mouseY = float32(ypos)
		if c.handlers.PointerMove != nil {
			c.handlers.PointerMove(xpos, ypos, c.width, c.height)
		}
	})

	c.window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		switch action {
		case glfw.Press:
			c.mouseLeftPressed = true
		case glfw.Release:
			c.mouseLeftReleased = true
		}
	})

	c.window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyV:
			c.setVSync(!c.vsyncEnabled)
		case glfw.KeyE:
			if c.handlers.Export != nil {
				c.handlers.Export()
			}
		}
	})

	return nil
}

func (c *Core) setVSync(on bool) {
	c.vsyncEnabled = on
	if on {
		glfw.SwapInterval(1)
		logging.Logger().Info("VSync: ON (FPS capped)")
	} else {
		glfw.SwapInterval(0)
		logging.Logger().Info("VSync: OFF (FPS uncapped)")
	}
}

func (c *Core) setupSceneProgram() error {
	program, err := compileShader(sceneVertexShader, sceneFragmentShader)
	if err != nil {
		return fmt.Errorf("failed to compile scene shaders: %w", err)
	}
	c.program = program
	c.modelUniform = uniform(program, "model")
	c.viewUniform = uniform(program, "view")
	c.projectionUniform = uniform(program, "projection")
	c.matcapUniform = uniform(program, "matcap")
	c.hasMatcapUniform = uniform(program, "hasMatcap")
	return nil
}

func (c *Core) setupUIProgram() error {
	program, err := compileShader(uiVertexShader, uiFragmentShader)
	if err != nil {
		return fmt.Errorf("failed to compile UI shaders: %w", err)
	}
	c.uiProgram = program
	c.uiTransformUniform = uniform(program, "uiTransform")
	c.uiColorUniform = uniform(program, "uiColor")
	c.uiTexturedUniform = uniform(program, "uiTextured")
	c.uiTextureUniform = uniform(program, "uiTexture")

	quad := []float32{
		0, 0,
		1, 0,
		1, 1,
		0, 0,
		1, 1,
		0, 1,
	}
	gl.GenVertexArrays(1, &c.uiVAO)
	gl.BindVertexArray(c.uiVAO)
	gl.GenBuffers(1, &c.uiVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.uiVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.Ptr(nil))
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
	return nil
}

// SetCamera selects the camera used by Draw and updated on resize.
func (c *Core) SetCamera(cam *scene.Camera) {
	c.camera = cam
	if cam != nil {
		cam.SetAspect(c.width, c.height)
	}
}

// SetPanel installs the overlay drawn after the scene.
func (c *Core) SetPanel(p *panel.Panel) { c.panel = p }

func (c *Core) SetHandlers(h Handlers) { c.handlers = h }

// Size returns the window size in screen coordinates.
func (c *Core) Size() (int, int) { return c.width, c.height }

// PixelRatio returns the framebuffer pixels per window unit.
func (c *Core) PixelRatio() float32 { return c.ratio }

// ShouldClose returns true if the window should close.
func (c *Core) ShouldClose() bool {
	return c.window.ShouldClose()
}

// PollEvents processes window events.
func (c *Core) PollEvents() {
	glfw.PollEvents()
}

// Draw renders s and the panel, then swaps buffers.
func (c *Core) Draw(s *scene.Scene) {
	c.renderScene(s)
	c.drawPanel()
	c.window.SwapBuffers()

	if fps, ok := c.fps.tick(time.Now()); ok {
		c.window.SetTitle(fpsTitle(c.opts.Title, fps))
	}
}

func (c *Core) renderScene(s *scene.Scene) {
	if s != nil {
		bg := s.Background.Clamped()
		gl.ClearColor(float32(bg.R), float32(bg.G), float32(bg.B), 1)
	}
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if s == nil || c.camera == nil {
		return
	}

	gl.UseProgram(c.program)
	view := c.camera.View()
	projection := c.camera.Projection()
	gl.UniformMatrix4fv(c.viewUniform, 1, false, &view[0])
	gl.UniformMatrix4fv(c.projectionUniform, 1, false, &projection[0])
	gl.Uniform1i(c.matcapUniform, 0)
	gl.ActiveTexture(gl.TEXTURE0)

	root := s.Matrix()
	var bound *scene.Material
	for _, m := range s.Meshes {
		if m.Geometry == nil || m.Geometry.VertexCount() == 0 {
			continue
		}
		if m.Material != bound {
			c.bindMaterial(m.Material)
			bound = m.Material
		}
		model := root.Mul4(m.Matrix())
		gl.UniformMatrix4fv(c.modelUniform, 1, false, &model[0])
		c.mesh(m.Geometry).draw()
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// bindMaterial binds the material's matcap, uploading it the first time its
// decode has finished. Until then, or if decoding failed, the untextured
// fallback shading is used.
func (c *Core) bindMaterial(mat *scene.Material) {
	id := c.texture(mat)
	if id == 0 {
		gl.Uniform1i(c.hasMatcapUniform, 0)
		return
	}
	gl.Uniform1i(c.hasMatcapUniform, 1)
	gl.BindTexture(gl.TEXTURE_2D, id)
}

func (c *Core) texture(mat *scene.Material) uint32 {
	if mat == nil || mat.Texture == nil {
		return 0
	}
	if id, ok := c.textures[mat.Texture]; ok {
		return id
	}
	img, ok := mat.Texture.Image()
	if !ok {
		return 0
	}
	id := newTexture(img, true)
	c.textures[mat.Texture] = id
	logging.Logger().Debug("matcap uploaded", "name", mat.Texture.Name)
	return id
}

func (c *Core) mesh(g *geometry.Geometry) *gpuMesh {
	m, ok := c.meshes[g]
	if !ok {
		m = uploadGeometry(g)
		c.meshes[g] = m
	}
	return m
}

func (c *Core) drawPanel() {
	in := panel.Input{
		X:        c.mouseX,
		Y:        c.mouseY,
		Pressed:  c.mouseLeftPressed,
		Down:     c.window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press,
		Released: c.mouseLeftReleased,
	}
	c.mouseLeftPressed = false
	c.mouseLeftReleased = false
	if c.panel == nil {
		return
	}

	list := c.panel.Frame(in, float32(c.width))
	c.updateCursor(c.panel.Contains(c.mouseX, c.mouseY))
	c.drawUI(list)
}

func (c *Core) updateCursor(over bool) {
	if over == c.overPanel {
		return
	}
	c.overPanel = over
	if over {
		c.window.SetCursor(c.handCursor)
	} else {
		c.window.SetCursor(nil)
	}
}

// drawUI renders a panel draw list in window coordinates, (0,0) top left.
func (c *Core) drawUI(list *panel.DrawList) {
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.UseProgram(c.uiProgram)
	gl.Uniform1i(c.uiTextureUniform, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(c.uiVAO)

	ortho := mgl32.Ortho2D(0, float32(c.width), float32(c.height), 0)
	for _, cmd := range list.Commands {
		w, h := cmd.W, cmd.H
		textured := int32(0)
		if cmd.Kind == panel.KindText {
			if cmd.Text == "" {
				continue
			}
			tt := c.texts.get(cmd.Text)
			w, h = float32(tt.width), float32(tt.height)
			gl.BindTexture(gl.TEXTURE_2D, tt.id)
			textured = 1
		}
		transform := ortho.Mul4(mgl32.Translate3D(cmd.X, cmd.Y, 0)).Mul4(mgl32.Scale3D(w, h, 1))
		gl.UniformMatrix4fv(c.uiTransformUniform, 1, false, &transform[0])
		gl.Uniform4fv(c.uiColorUniform, 1, &cmd.Color[0])
		gl.Uniform1i(c.uiTexturedUniform, textured)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
	c.texts.sweep()
}

// Shutdown releases every GL object, the window and GLFW.
func (c *Core) Shutdown() {
	for _, m := range c.meshes {
		m.delete()
	}
	for _, id := range c.textures {
		gl.DeleteTextures(1, &id)
	}
	c.texts.clear()
	gl.DeleteVertexArrays(1, &c.uiVAO)
	gl.DeleteBuffers(1, &c.uiVBO)
	gl.DeleteProgram(c.program)
	gl.DeleteProgram(c.uiProgram)

	if c.handCursor != nil {
		c.handCursor.Destroy()
	}
	if c.window != nil {
		c.window.Destroy()
	}
	glfw.Terminate()

	runtime.UnlockOSThread()
}
