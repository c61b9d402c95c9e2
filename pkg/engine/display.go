package engine

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"glitchpad/internal/logger"
)

// Display uploads finished frames to a texture and draws it on a
// fullscreen quad. It implements effects.Surface and must be used from the
// thread owning the GL context.
type Display struct {
	logger *logger.Logger

	program   uint32
	quadVAO   uint32
	quadVBO   uint32
	textureID uint32

	offsetLocation  int32
	textureLocation int32

	texSize  image.Point
	viewport image.Point
}

// NewDisplay compiles the blit shaders and creates the quad and texture.
// gl.Init must have been called.
func NewDisplay(width, height int, log *logger.Logger) (*Display, error) {
	d := &Display{
		logger:   log.Named("display"),
		viewport: image.Pt(width, height),
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)

	var err error
	if d.program, err = createShaderProgram(blitVertexShaderSource, blitFragmentShaderSource); err != nil {
		return nil, err
	}
	gl.UseProgram(d.program)
	d.offsetLocation = gl.GetUniformLocation(d.program, gl.Str("offset\x00"))
	d.textureLocation = gl.GetUniformLocation(d.program, gl.Str("canvasTexture\x00"))

	d.setupScreenQuad()

	gl.GenTextures(1, &d.textureID)
	gl.BindTexture(gl.TEXTURE_2D, d.textureID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	return d, nil
}

// setupScreenQuad creates a full-screen quad with the image's first row at the top
func (d *Display) setupScreenQuad() {
	vertices := []float32{
		// Positions   // Texture coords
		-1.0, -1.0, 0.0, 0.0, 1.0,
		1.0, -1.0, 0.0, 1.0, 1.0,
		1.0, 1.0, 0.0, 1.0, 0.0,
		-1.0, 1.0, 0.0, 0.0, 0.0,
	}

	gl.GenVertexArrays(1, &d.quadVAO)
	gl.GenBuffers(1, &d.quadVBO)
	gl.BindVertexArray(d.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	// Position attribute
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	// Texture coord attribute
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

// SetViewport adopts a new framebuffer size in pixels.
func (d *Display) SetViewport(width, height int) {
	d.viewport = image.Pt(width, height)
}

// Present uploads img and draws it shifted by offset canvas pixels. The
// area the shifted frame leaves uncovered is black.
func (d *Display) Present(img *image.RGBA, offset image.Point) {
	gl.Viewport(0, 0, int32(d.viewport.X), int32(d.viewport.Y))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if img == nil || img.Bounds().Empty() {
		return
	}

	size := img.Bounds().Size()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.textureID)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	pix := gl.Ptr(img.Pix[img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y):])
	if size != d.texSize {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(size.X), int32(size.Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, pix)
		d.texSize = size
		d.logger.Debugf("canvas texture reallocated at %dx%d", size.X, size.Y)
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(size.X), int32(size.Y), gl.RGBA, gl.UNSIGNED_BYTE, pix)
	}
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	gl.UseProgram(d.program)
	gl.Uniform1i(d.textureLocation, 0)
	ox, oy := clipOffset(offset, size)
	gl.Uniform2f(d.offsetLocation, ox, oy)

	gl.BindVertexArray(d.quadVAO)
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, 4)
	gl.BindVertexArray(0)
}

// clipOffset converts a pixel offset on a canvas of size to clip space.
// Clip space y points up.
func clipOffset(offset, size image.Point) (float32, float32) {
	if size.X == 0 || size.Y == 0 {
		return 0, 0
	}
	return 2 * float32(offset.X) / float32(size.X), -2 * float32(offset.Y) / float32(size.Y)
}

// Close releases GL objects.
func (d *Display) Close() {
	gl.DeleteTextures(1, &d.textureID)
	gl.DeleteBuffers(1, &d.quadVBO)
	gl.DeleteVertexArrays(1, &d.quadVAO)
	gl.DeleteProgram(d.program)
}

func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	// Vertex shader
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}

	// Fragment shader
	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		gl.DeleteProgram(program)
		gl.DeleteShader(vertexShader)
		gl.DeleteShader(fragmentShader)

		return 0, fmt.Errorf("shader program linking failed: %v", log)
	}

	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		gl.DeleteShader(shader)

		return 0, fmt.Errorf("shader compilation failed: %v", log)
	}

	return shader, nil
}
