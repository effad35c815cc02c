// Package gldevice implements device.Device on top of OpenGL 4.1 core via go-gl.
//
// go-gl/gl: https://pkg.go.dev/github.com/go-gl/gl/v4.1-core/gl
package gldevice

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-gl/engine/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/logging"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
)

// glDevice is the OpenGL implementation of device.Device.
type glDevice struct{}

var _ device.Device = &glDevice{}

// New loads the GL function pointers for the context current on the calling
// thread and returns a Device bound to it.
//
// Returns:
//   - device.Device: the GL device
//   - error: error if the GL bindings could not be initialized
func New() (device.Device, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize OpenGL bindings")
	}
	// Decoded images use tightly packed rows (RED and RGB rows are not 4-byte aligned).
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	logging.Get().WithFields(map[string]any{
		"version":  gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer": gl.GoStr(gl.GetString(gl.RENDERER)),
	}).Info("OpenGL context ready")
	return &glDevice{}, nil
}

func (d *glDevice) CreateVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (d *glDevice) DeleteVertexArray(id uint32) {
	gl.DeleteVertexArrays(1, &id)
}

func (d *glDevice) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

func (d *glDevice) CreateBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (d *glDevice) DeleteBuffer(id uint32) {
	gl.DeleteBuffers(1, &id)
}

func (d *glDevice) BindBuffer(target device.BufferTarget, id uint32) {
	gl.BindBuffer(bufferTarget(target), id)
}

func (d *glDevice) BufferData(target device.BufferTarget, size int, data []byte) {
	gl.BufferData(bufferTarget(target), size, ptr(data), gl.STATIC_DRAW)
}

func (d *glDevice) BufferSubData(target device.BufferTarget, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.BufferSubData(bufferTarget(target), offset, len(data), gl.Ptr(data))
}

func (d *glDevice) VertexAttribPointer(index uint32, count int, typ device.ScalarType, stride, offset int) {
	gl.VertexAttribPointer(index, int32(count), scalarType(typ), false, int32(stride), gl.PtrOffset(offset))
}

func (d *glDevice) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (d *glDevice) CreateShader(stage device.ShaderStage) uint32 {
	switch stage {
	case device.StageVertex:
		return gl.CreateShader(gl.VERTEX_SHADER)
	case device.StageFragment:
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	default:
		panic(fmt.Sprintf("unsupported shader stage: %d", stage))
	}
}

func (d *glDevice) CompileShader(id uint32, source string) error {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(id, logLength, nil, gl.Str(log))
	return errors.New(strings.TrimRight(log, "\x00"))
}

func (d *glDevice) DeleteShader(id uint32) {
	gl.DeleteShader(id)
}

func (d *glDevice) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *glDevice) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *glDevice) LinkProgram(program uint32) error {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return errors.New(strings.TrimRight(log, "\x00"))
}

func (d *glDevice) DeleteProgram(id uint32) {
	gl.DeleteProgram(id)
}

func (d *glDevice) UseProgram(id uint32) {
	gl.UseProgram(id)
}

func (d *glDevice) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *glDevice) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (d *glDevice) Uniform1ui(location int32, v uint32) {
	gl.Uniform1ui(location, v)
}

func (d *glDevice) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (d *glDevice) Uniform3f(location int32, v [3]float32) {
	gl.Uniform3fv(location, 1, &v[0])
}

func (d *glDevice) UniformMatrix4f(location int32, m [16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *glDevice) CreateTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (d *glDevice) DeleteTexture(id uint32) {
	gl.DeleteTextures(1, &id)
}

func (d *glDevice) ActiveTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
}

func (d *glDevice) BindTexture(target device.TextureTarget, id uint32) {
	gl.BindTexture(textureTarget(target), id)
}

func (d *glDevice) TexImage2D(img device.TextureImage) {
	gl.TexImage2D(
		textureTarget(img.Target),
		0,
		internalFormat(img.InternalFormat),
		int32(img.Width),
		int32(img.Height),
		0,
		pixelFormat(img.Format),
		scalarType(img.Type),
		ptr(img.Pixels),
	)
}

func (d *glDevice) TexParameter(target device.TextureTarget, param device.TextureParam, value device.TextureParamValue) {
	gl.TexParameteri(textureTarget(target), textureParam(param), textureParamValue(value))
}

func (d *glDevice) GenerateMipmap(target device.TextureTarget) {
	gl.GenerateMipmap(textureTarget(target))
}

func (d *glDevice) CreateFramebuffer() uint32 {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return id
}

func (d *glDevice) DeleteFramebuffer(id uint32) {
	gl.DeleteFramebuffers(1, &id)
}

func (d *glDevice) BindFramebuffer(id uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, id)
}

func (d *glDevice) FramebufferTexture2D(attachment device.Attachment, texture uint32) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachmentPoint(attachment), gl.TEXTURE_2D, texture, 0)
}

func (d *glDevice) DrawBuffers(attachments []device.Attachment) {
	if len(attachments) == 0 {
		return
	}
	bufs := make([]uint32, len(attachments))
	for i, a := range attachments {
		bufs[i] = attachmentPoint(a)
	}
	gl.DrawBuffers(int32(len(bufs)), &bufs[0])
}

func (d *glDevice) CheckFramebufferStatus() error {
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return errors.Errorf("framebuffer status 0x%x", status)
	}
	return nil
}

func (d *glDevice) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (d *glDevice) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *glDevice) Clear(mask device.ClearMask) {
	var bits uint32
	if mask&device.ClearColor != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&device.ClearDepth != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (d *glDevice) Enable(c device.Capability) {
	gl.Enable(capability(c))
}

func (d *glDevice) Disable(c device.Capability) {
	gl.Disable(capability(c))
}

func (d *glDevice) DepthMask(write bool) {
	gl.DepthMask(write)
}

func (d *glDevice) DepthFunc(f device.DepthFunc) {
	switch f {
	case device.DepthLessEqual:
		gl.DepthFunc(gl.LEQUAL)
	default:
		gl.DepthFunc(gl.LESS)
	}
}

func (d *glDevice) DrawElements(mode device.Primitive, count int, typ device.IndexType) {
	gl.DrawElements(primitive(mode), int32(count), indexType(typ), gl.PtrOffset(0))
}

func (d *glDevice) DrawArrays(mode device.Primitive, first, count int) {
	gl.DrawArrays(primitive(mode), int32(first), int32(count))
}

func (d *glDevice) Error() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return errors.Errorf("OpenGL error 0x%x", code)
	}
	return nil
}

// ptr converts optional client data into a GL pointer. Empty and nil data map
// to a null pointer so storage-only uploads work.
func ptr(data any) unsafe.Pointer {
	switch v := data.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return gl.Ptr(v)
	case []float32:
		if len(v) == 0 {
			return nil
		}
		return gl.Ptr(v)
	default:
		return gl.Ptr(v)
	}
}
