// Package device defines the single GPU context every renderer component is
// threaded through. Only the gldevice backend knows about OpenGL enums; the
// rest of the engine speaks these device-level types so it can be exercised
// against the in-memory devicetest fake.
package device

// BufferTarget selects the binding point of a buffer object.
type BufferTarget int

const (
	// BufferTargetArray is the vertex attribute buffer binding.
	BufferTargetArray BufferTarget = iota
	// BufferTargetElementArray is the index buffer binding.
	BufferTargetElementArray
)

// ScalarType is the element type of a vertex attribute or pixel component.
type ScalarType int

const (
	// ScalarFloat is a 32-bit IEEE float.
	ScalarFloat ScalarType = iota
	// ScalarUnsignedByte is an 8-bit unsigned integer.
	ScalarUnsignedByte
)

// Size returns the byte size of a single scalar.
//
// Returns:
//   - int: byte size, 0 for unknown types
func (s ScalarType) Size() int {
	switch s {
	case ScalarFloat:
		return 4
	case ScalarUnsignedByte:
		return 1
	default:
		return 0
	}
}

// IndexType is the element type of an index buffer.
type IndexType int

const (
	// IndexUint32 is a 32-bit unsigned index.
	IndexUint32 IndexType = iota
)

// Primitive is the topology of a draw call.
type Primitive int

const (
	// PrimitiveTriangles draws independent triangles.
	PrimitiveTriangles Primitive = iota
	// PrimitiveLines draws independent line segments.
	PrimitiveLines
)

// TextureTarget selects a texture binding point or cube map face.
type TextureTarget int

const (
	// Texture2D is a plain 2D texture.
	Texture2D TextureTarget = iota
	// TextureCubeMap is a cube map texture.
	TextureCubeMap
	// TextureCubeMapPositiveX is the first cube map face. The remaining five
	// faces follow in +X, -X, +Y, -Y, +Z, -Z order.
	TextureCubeMapPositiveX
	TextureCubeMapNegativeX
	TextureCubeMapPositiveY
	TextureCubeMapNegativeY
	TextureCubeMapPositiveZ
	TextureCubeMapNegativeZ
)

// CubeMapFace returns the upload target for face i (0..5).
//
// Parameters:
//   - i: face index in +X, -X, +Y, -Y, +Z, -Z order
//
// Returns:
//   - TextureTarget: the face target
func CubeMapFace(i int) TextureTarget {
	return TextureCubeMapPositiveX + TextureTarget(i)
}

// InternalFormat is the storage format of a texture on the GPU.
type InternalFormat int

const (
	InternalRGB8 InternalFormat = iota
	InternalRGBA8
	InternalRGB8SNorm
	InternalRGBA8SNorm
	InternalDepthComponent
)

// PixelFormat is the layout of client-side pixel data.
type PixelFormat int

const (
	PixelRed PixelFormat = iota
	PixelRGB
	PixelRGBA
	PixelDepthComponent
)

// Channels returns the number of components per pixel.
//
// Returns:
//   - int: component count
func (p PixelFormat) Channels() int {
	switch p {
	case PixelRed, PixelDepthComponent:
		return 1
	case PixelRGB:
		return 3
	case PixelRGBA:
		return 4
	default:
		return 0
	}
}

// TextureImage describes one TexImage2D upload. Pixels may be nil to allocate
// storage only, a []byte, or a []float32 matching Type.
type TextureImage struct {
	Target         TextureTarget
	InternalFormat InternalFormat
	Width          int
	Height         int
	Format         PixelFormat
	Type           ScalarType
	Pixels         any
}

// TextureParam names a sampler parameter.
type TextureParam int

const (
	ParamWrapS TextureParam = iota
	ParamWrapT
	ParamWrapR
	ParamMinFilter
	ParamMagFilter
)

// TextureParamValue is the value of a sampler parameter.
type TextureParamValue int

const (
	Nearest TextureParamValue = iota
	Linear
	Repeat
	ClampToEdge
)

// Attachment is a framebuffer attachment point.
type Attachment int

const (
	AttachmentColor0 Attachment = iota
	AttachmentColor1
	AttachmentColor2
	AttachmentDepth
)

// Capability is a fixed-function pipeline switch.
type Capability int

const (
	CapabilityDepthTest Capability = iota
	CapabilityBlend
	CapabilityScissorTest
	CapabilityCullFace
)

// DepthFunc is the depth comparison function.
type DepthFunc int

const (
	DepthLess DepthFunc = iota
	DepthLessEqual
)

// ClearMask selects the buffers cleared by Clear.
type ClearMask int

const (
	ClearColor ClearMask = 1 << iota
	ClearDepth
)

// ShaderStage is a programmable pipeline stage.
type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageFragment
)

// String returns the stage name used in diagnostics.
func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Device is the GPU context. Handles are plain uint32 names where 0 always
// means "none"; binding 0 restores the default object for that binding point.
//
// All methods must be called from the thread that owns the context.
type Device interface {
	// CreateVertexArray allocates a vertex array object.
	CreateVertexArray() uint32
	// DeleteVertexArray frees a vertex array object.
	DeleteVertexArray(id uint32)
	// BindVertexArray binds a vertex array object, 0 unbinds.
	BindVertexArray(id uint32)

	// CreateBuffer allocates a buffer object.
	CreateBuffer() uint32
	// DeleteBuffer frees a buffer object.
	DeleteBuffer(id uint32)
	// BindBuffer binds a buffer to a target, 0 unbinds.
	BindBuffer(target BufferTarget, id uint32)
	// BufferData allocates size bytes for the bound buffer and uploads data
	// when it is non-nil.
	BufferData(target BufferTarget, size int, data []byte)
	// BufferSubData uploads data at offset into the bound buffer.
	BufferSubData(target BufferTarget, offset int, data []byte)
	// VertexAttribPointer describes attribute index of the bound vertex array.
	VertexAttribPointer(index uint32, count int, typ ScalarType, stride, offset int)
	// EnableVertexAttribArray enables attribute index of the bound vertex array.
	EnableVertexAttribArray(index uint32)

	// CreateShader allocates a shader object for stage.
	CreateShader(stage ShaderStage) uint32
	// CompileShader compiles source and returns the info log on failure.
	CompileShader(id uint32, source string) error
	// DeleteShader frees a shader object.
	DeleteShader(id uint32)
	// CreateProgram allocates a program object.
	CreateProgram() uint32
	// AttachShader attaches a compiled shader to a program.
	AttachShader(program, shader uint32)
	// LinkProgram links a program and returns the info log on failure.
	LinkProgram(program uint32) error
	// DeleteProgram frees a program object.
	DeleteProgram(id uint32)
	// UseProgram activates a program, 0 deactivates.
	UseProgram(id uint32)
	// UniformLocation returns the location of name or -1 when the program has
	// no active uniform with that name.
	UniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1ui(location int32, v uint32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, v [3]float32)
	UniformMatrix4f(location int32, m [16]float32)

	// CreateTexture allocates a texture object.
	CreateTexture() uint32
	// DeleteTexture frees a texture object.
	DeleteTexture(id uint32)
	// ActiveTexture selects the texture unit subsequent binds apply to.
	ActiveTexture(unit uint32)
	// BindTexture binds a texture to the active unit, 0 unbinds.
	BindTexture(target TextureTarget, id uint32)
	// TexImage2D uploads or allocates one image level 0.
	TexImage2D(img TextureImage)
	// TexParameter sets a sampler parameter of the bound texture.
	TexParameter(target TextureTarget, param TextureParam, value TextureParamValue)
	// GenerateMipmap builds the mip chain of the bound texture.
	GenerateMipmap(target TextureTarget)

	// CreateFramebuffer allocates a framebuffer object.
	CreateFramebuffer() uint32
	// DeleteFramebuffer frees a framebuffer object.
	DeleteFramebuffer(id uint32)
	// BindFramebuffer binds a framebuffer, 0 restores the window framebuffer.
	BindFramebuffer(id uint32)
	// FramebufferTexture2D attaches a 2D texture to the bound framebuffer.
	FramebufferTexture2D(attachment Attachment, texture uint32)
	// DrawBuffers sets the color outputs of the bound framebuffer.
	DrawBuffers(attachments []Attachment)
	// CheckFramebufferStatus reports an incomplete bound framebuffer.
	CheckFramebufferStatus() error

	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	Enable(c Capability)
	Disable(c Capability)
	DepthMask(write bool)
	DepthFunc(f DepthFunc)

	// DrawElements draws count indices from the bound element buffer.
	DrawElements(mode Primitive, count int, typ IndexType)
	// DrawArrays draws count vertices starting at first.
	DrawArrays(mode Primitive, first, count int)

	// Error returns the first pending device error, or nil.
	Error() error
}
