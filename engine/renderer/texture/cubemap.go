package texture

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/device"

	"github.com/pkg/errors"
)

// NewCubemap uploads six faces in +X, -X, +Y, -Y, +Z, -Z order with linear
// filtering and clamp-to-edge on all three axes.
//
// Parameters:
//   - dev: the device context
//   - faces: decoded face images, all present
//
// Returns:
//   - Texture: the cube map
//   - error: error if a face is missing or has an unsupported channel count
func NewCubemap(dev device.Device, faces [6]*Image) (Texture, error) {
	images := make([]device.TextureImage, 0, len(faces))
	for i, face := range faces {
		if face == nil {
			return nil, errors.Errorf("cube map face %d missing", i)
		}
		format, err := formatFor(face.Channels)
		if err != nil {
			return nil, errors.Wrapf(err, "cube map face %d", i)
		}
		images = append(images, device.TextureImage{
			Target:         device.CubeMapFace(i),
			InternalFormat: device.InternalRGB8,
			Width:          face.Width,
			Height:         face.Height,
			Format:         format,
			Type:           device.ScalarUnsignedByte,
			Pixels:         face.Pixels,
		})
	}

	return create(dev, device.TextureCubeMap, Diffuse, sampling{
		wrap:   device.ClampToEdge,
		filter: device.Linear,
		wrapR:  true,
	}, images...), nil
}
