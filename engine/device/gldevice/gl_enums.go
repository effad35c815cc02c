package gldevice

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/device"

	"github.com/go-gl/gl/v4.1-core/gl"
)

func bufferTarget(t device.BufferTarget) uint32 {
	switch t {
	case device.BufferTargetArray:
		return gl.ARRAY_BUFFER
	case device.BufferTargetElementArray:
		return gl.ELEMENT_ARRAY_BUFFER
	default:
		panic(fmt.Sprintf("unsupported buffer target: %d", t))
	}
}

func scalarType(t device.ScalarType) uint32 {
	switch t {
	case device.ScalarFloat:
		return gl.FLOAT
	case device.ScalarUnsignedByte:
		return gl.UNSIGNED_BYTE
	default:
		panic(fmt.Sprintf("unsupported scalar type: %d", t))
	}
}

func indexType(t device.IndexType) uint32 {
	switch t {
	case device.IndexUint32:
		return gl.UNSIGNED_INT
	default:
		panic(fmt.Sprintf("unsupported index type: %d", t))
	}
}

func primitive(p device.Primitive) uint32 {
	switch p {
	case device.PrimitiveTriangles:
		return gl.TRIANGLES
	case device.PrimitiveLines:
		return gl.LINES
	default:
		panic(fmt.Sprintf("unsupported primitive: %d", p))
	}
}

func textureTarget(t device.TextureTarget) uint32 {
	switch t {
	case device.Texture2D:
		return gl.TEXTURE_2D
	case device.TextureCubeMap:
		return gl.TEXTURE_CUBE_MAP
	case device.TextureCubeMapPositiveX, device.TextureCubeMapNegativeX,
		device.TextureCubeMapPositiveY, device.TextureCubeMapNegativeY,
		device.TextureCubeMapPositiveZ, device.TextureCubeMapNegativeZ:
		return gl.TEXTURE_CUBE_MAP_POSITIVE_X + uint32(t-device.TextureCubeMapPositiveX)
	default:
		panic(fmt.Sprintf("unsupported texture target: %d", t))
	}
}

func internalFormat(f device.InternalFormat) int32 {
	switch f {
	case device.InternalRGB8:
		return gl.RGB
	case device.InternalRGBA8:
		return gl.RGBA
	case device.InternalRGB8SNorm:
		return gl.RGB8_SNORM
	case device.InternalRGBA8SNorm:
		return gl.RGBA8_SNORM
	case device.InternalDepthComponent:
		return gl.DEPTH_COMPONENT
	default:
		panic(fmt.Sprintf("unsupported internal format: %d", f))
	}
}

func pixelFormat(f device.PixelFormat) uint32 {
	switch f {
	case device.PixelRed:
		return gl.RED
	case device.PixelRGB:
		return gl.RGB
	case device.PixelRGBA:
		return gl.RGBA
	case device.PixelDepthComponent:
		return gl.DEPTH_COMPONENT
	default:
		panic(fmt.Sprintf("unsupported pixel format: %d", f))
	}
}

func textureParam(p device.TextureParam) uint32 {
	switch p {
	case device.ParamWrapS:
		return gl.TEXTURE_WRAP_S
	case device.ParamWrapT:
		return gl.TEXTURE_WRAP_T
	case device.ParamWrapR:
		return gl.TEXTURE_WRAP_R
	case device.ParamMinFilter:
		return gl.TEXTURE_MIN_FILTER
	case device.ParamMagFilter:
		return gl.TEXTURE_MAG_FILTER
	default:
		panic(fmt.Sprintf("unsupported texture parameter: %d", p))
	}
}

func textureParamValue(v device.TextureParamValue) int32 {
	switch v {
	case device.Nearest:
		return gl.NEAREST
	case device.Linear:
		return gl.LINEAR
	case device.Repeat:
		return gl.REPEAT
	case device.ClampToEdge:
		return gl.CLAMP_TO_EDGE
	default:
		panic(fmt.Sprintf("unsupported texture parameter value: %d", v))
	}
}

func attachmentPoint(a device.Attachment) uint32 {
	switch a {
	case device.AttachmentColor0:
		return gl.COLOR_ATTACHMENT0
	case device.AttachmentColor1:
		return gl.COLOR_ATTACHMENT1
	case device.AttachmentColor2:
		return gl.COLOR_ATTACHMENT2
	case device.AttachmentDepth:
		return gl.DEPTH_ATTACHMENT
	default:
		panic(fmt.Sprintf("unsupported attachment: %d", a))
	}
}

func capability(c device.Capability) uint32 {
	switch c {
	case device.CapabilityDepthTest:
		return gl.DEPTH_TEST
	case device.CapabilityBlend:
		return gl.BLEND
	case device.CapabilityScissorTest:
		return gl.SCISSOR_TEST
	case device.CapabilityCullFace:
		return gl.CULL_FACE
	default:
		panic(fmt.Sprintf("unsupported capability: %d", c))
	}
}
