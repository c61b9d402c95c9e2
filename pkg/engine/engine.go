package engine

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"glitchpad/internal/logger"
	"glitchpad/pkg/config"
	"glitchpad/pkg/editor"
	"glitchpad/pkg/effects"
	"glitchpad/pkg/sfx"
)

// Explosion cue length in seconds
const explosionDuration = 0.8

// Engine owns the window and runs the editor's frame loop
type Engine struct {
	window     *glfw.Window
	config     *config.Config
	logger     *logger.Logger
	editor     *editor.Editor
	compositor *effects.Compositor
	display    *Display
	input      *InputHandler
	audio      *AudioEngine
	explosion  []float32
	canvas     *image.RGBA
	isRunning  bool
	frameRate  int
	startTime  time.Time
	fps        fpsCounter
}

// NewEngine opens the window, initializes OpenGL and wires the editor to
// the effect compositor. Audio failures only disable sound.
func NewEngine(cfg *config.Config, ed *editor.Editor, log *logger.Logger) (*Engine, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	window.MakeContextCurrent()
	if cfg.Window.VSync {
		glfw.SwapInterval(1)
	}

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Infof("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	fbWidth, fbHeight := window.GetFramebufferSize()
	display, err := NewDisplay(fbWidth, fbHeight, log)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize display: %w", err)
	}

	width, height := window.GetSize()
	size := image.Pt(width, height)

	e := &Engine{
		window:     window,
		config:     cfg,
		logger:     log,
		editor:     ed,
		compositor: effects.New(cfg.Effects, cfg.Window.FrameRate, size, log),
		display:    display,
		input:      NewInputHandler(window),
		canvas:     effects.NewCanvas(width, height),
		frameRate:  cfg.Window.FrameRate,
	}
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		e.display.SetViewport(w, h)
	})

	if cfg.Audio.Enabled {
		audio, err := NewAudioEngine(cfg.Audio, log)
		if err != nil {
			log.Warnf("sound disabled: %v", err)
		} else {
			e.audio = audio
			e.explosion = sfx.NewGenerator(sfx.SampleRate, time.Now().UnixNano()).Explosion(explosionDuration)
		}
	}

	return e, nil
}

// Compositor exposes the effect engine
func (e *Engine) Compositor() *effects.Compositor {
	return e.compositor
}

// Run starts the main loop and returns once the window is closed
func (e *Engine) Run() {
	e.isRunning = true
	e.startTime = time.Now()
	e.fps.reset(e.startTime)

	for e.isRunning && !e.window.ShouldClose() {
		currentTime := time.Now()

		e.processInput()
		e.render(currentTime)

		e.window.SwapBuffers()
		glfw.PollEvents()

		if fps, ok := e.fps.tick(time.Now()); ok {
			e.window.SetTitle(e.title(fps))
		}

		// Cap the frame rate
		if e.frameRate > 0 {
			frameTime := time.Since(currentTime)
			targetFrameTime := time.Second / time.Duration(e.frameRate)
			if frameTime < targetFrameTime {
				time.Sleep(targetFrameTime - frameTime)
			}
		}
	}

	e.cleanup()
}

// processInput applies every event queued since the previous frame
func (e *Engine) processInput() {
	for _, ev := range e.input.Drain() {
		switch ev.Kind {
		case EventKey:
			e.handleKey(ev.Key, ev.Mods)
		case EventChar:
			e.editor.HandleChar(ev.Char)
		case EventScroll:
			switch {
			case ev.Scroll > 0:
				e.editor.Zoom(1)
			case ev.Scroll < 0:
				e.editor.Zoom(-1)
			}
		case EventMouseDown:
			if ev.Button == glfw.MouseButtonLeft {
				e.editor.BeginDrag(ev.Pos)
			}
		case EventMouseUp:
			if ev.Button == glfw.MouseButtonLeft {
				e.editor.EndDrag()
			}
		case EventMouseMove:
			e.editor.DragTo(ev.Pos)
		case EventResize:
			e.resize(ev.Size)
		}
	}
}

var editorKeys = map[glfw.Key]editor.Key{
	glfw.KeyUp:        editor.KeyUp,
	glfw.KeyDown:      editor.KeyDown,
	glfw.KeyLeft:      editor.KeyLeft,
	glfw.KeyRight:     editor.KeyRight,
	glfw.KeyBackspace: editor.KeyBackspace,
	glfw.KeyEnter:     editor.KeyEnter,
	glfw.KeyKPEnter:   editor.KeyEnter,
	glfw.KeyTab:       editor.KeyTab,
}

// handleKey reacts to a key press or repeat
func (e *Engine) handleKey(key glfw.Key, mods glfw.ModifierKey) {
	pipeline := e.compositor.Pipeline()
	if e.config.Effects.CanShake {
		pipeline.TriggerShake()
		e.audio.Play(e.explosion, 1)
	} else {
		pipeline.ResetShake()
	}

	if key == glfw.KeyEscape {
		e.isRunning = false
		return
	}
	if key >= glfw.KeyF1 && key <= glfw.KeyF10 {
		e.toggleEffect(effects.Effect(key - glfw.KeyF1))
		return
	}

	if mods&glfw.ModControl != 0 {
		switch key {
		case glfw.KeyR:
			e.editor.ResetView()
		case glfw.KeyS:
			e.save()
		case glfw.KeyC:
			e.window.SetClipboardString(e.editor.Document().Text())
		case glfw.KeyV:
			e.editor.Paste(e.window.GetClipboardString())
		}
		return
	}

	if k, ok := editorKeys[key]; ok {
		e.editor.HandleKey(k)
	}
}

// toggleEffect flips one effect on or off
func (e *Engine) toggleEffect(effect effects.Effect) {
	pipeline := e.compositor.Pipeline()
	if pipeline.Enabled(effect) {
		pipeline.Disable(effect)
		e.logger.Infof("effect %s off", effect)
		return
	}
	if err := pipeline.Enable(effect); err != nil {
		e.logger.Warnf("toggle effect: %v", err)
		return
	}
	e.logger.Infof("effect %s on", effect)
}

func (e *Engine) save() {
	err := e.editor.Save()
	switch {
	case errors.Is(err, editor.ErrNoPath):
		e.logger.Warn("nothing to save to: start with a file argument")
	case err != nil:
		e.logger.Errorf("save failed: %v", err)
	}
}

// resize reallocates the canvas for a new window size
func (e *Engine) resize(size image.Point) {
	if size.X <= 0 || size.Y <= 0 || size == e.canvas.Bounds().Size() {
		return
	}
	e.logger.Infof("Window resized to %dx%d", size.X, size.Y)
	e.canvas = effects.NewCanvas(size.X, size.Y)
	e.compositor.Resize(size)
}

// render draws the text and runs it through the compositor
func (e *Engine) render(now time.Time) {
	pipeline := e.compositor.Pipeline()
	if err := e.editor.Render(e.canvas, pipeline.Rotation(), pipeline.Enabled(effects.EffectRotate)); err != nil {
		e.logger.Errorf("%v", err)
	}
	frame := e.compositor.Draw(e.canvas, now.Sub(e.startTime).Milliseconds())
	e.compositor.Present(e.display, frame)
}

func (e *Engine) title(fps float64) string {
	name := "Untitled"
	if p := e.editor.Path(); p != "" {
		name = filepath.Base(p)
	}
	return fmt.Sprintf("%s | %s | FPS : %.2f", e.config.Window.Title, name, fps)
}

// cleanup performs necessary cleanup before exiting
func (e *Engine) cleanup() {
	e.logger.Info("Shutting down engine...")
	e.audio.Shutdown()
	e.display.Close()
	e.window.Destroy()
	glfw.Terminate()
}
