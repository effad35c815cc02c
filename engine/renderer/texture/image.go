package texture

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is tightly packed 8-bit pixel data ready for upload. Rows run top to
// bottom unless the image was decoded with WithFlipVertical.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pixels   []byte
}

type decodeConfig struct {
	flipVertical bool
}

// DecodeOption configures Decode.
type DecodeOption func(*decodeConfig)

// WithFlipVertical stores rows bottom to top, matching GL texture coordinates
// for images authored with a top-left origin.
//
// Returns:
//   - DecodeOption: option enabling the flip
func WithFlipVertical() DecodeOption {
	return func(c *decodeConfig) {
		c.flipVertical = true
	}
}

// Decode reads an encoded image (png, jpeg, bmp, tiff or webp). Grayscale
// sources decode to 1 channel, opaque colour to 3 and anything with alpha
// to 4 (straight, not premultiplied).
//
// Parameters:
//   - r: encoded image stream
//   - opts: decode options
//
// Returns:
//   - *Image: packed pixels
//   - error: error if the stream could not be decoded
func Decode(r io.Reader, opts ...DecodeOption) (*Image, error) {
	cfg := decodeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	src, format, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode image")
	}

	channels := 4
	switch s := src.(type) {
	case *image.Gray, *image.Gray16:
		channels = 1
	case interface{ Opaque() bool }:
		if s.Opaque() {
			channels = 3
		}
	}

	rgba := clone.AsRGBA(src)
	if cfg.flipVertical {
		rgba = transform.FlipV(rgba)
	}

	b := rgba.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, errors.Errorf("empty %s image", format)
	}

	out := &Image{Width: w, Height: h, Channels: channels, Pixels: make([]byte, w*h*channels)}
	i := 0
	for y := 0; y < h; y++ {
		row := rgba.Pix[rgba.PixOffset(b.Min.X, b.Min.Y+y):]
		for x := 0; x < w; x++ {
			px := row[x*4 : x*4+4]
			switch channels {
			case 1:
				out.Pixels[i] = px[0]
			case 3:
				copy(out.Pixels[i:i+3], px[:3])
			case 4:
				a := px[3]
				for c := 0; c < 3; c++ {
					out.Pixels[i+c] = unpremultiply(px[c], a)
				}
				out.Pixels[i+3] = a
			}
			i += channels
		}
	}
	return out, nil
}

func unpremultiply(c, a uint8) uint8 {
	if a == 0 || a == 0xff {
		return c
	}
	return uint8((uint32(c)*0xff + uint32(a)/2) / uint32(a))
}

// DecodeFile reads and decodes the image at path.
//
// Parameters:
//   - path: image file path
//   - opts: decode options
//
// Returns:
//   - *Image: packed pixels
//   - error: error if the file could not be read or decoded
func DecodeFile(path string, opts ...DecodeOption) (*Image, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read texture %q", path)
	}
	img, err := Decode(bytes.NewReader(raw), opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "texture %q", path)
	}
	return img, nil
}

// DecodeFiles decodes paths in parallel on a worker pool and returns the
// images in input order. Decoding never touches the device, so the results
// are uploaded afterwards on the render thread.
//
// Parameters:
//   - paths: image file paths
//   - workers: pool size, values below 1 use 1
//   - opts: decode options applied to every image
//
// Returns:
//   - []*Image: decoded images aligned with paths
//   - error: the first failure in input order
func DecodeFiles(paths []string, workers int, opts ...DecodeOption) ([]*Image, error) {
	return DecodeParallel(len(paths), workers, func(i int) (*Image, error) {
		return DecodeFile(paths[i], opts...)
	})
}

// DecodeParallel runs n decode jobs on a worker pool and returns the images in
// job order.
//
// Parameters:
//   - n: number of jobs
//   - workers: pool size, values below 1 use 1
//   - decode: decodes job i
//
// Returns:
//   - []*Image: decoded images aligned with job indices
//   - error: the first failure in job order
func DecodeParallel(n, workers int, decode func(i int) (*Image, error)) ([]*Image, error) {
	if n == 0 {
		return nil, nil
	}
	pool := worker.NewDynamicWorkerPool(max(workers, 1), n, 1*time.Second)

	images := make([]*Image, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				images[i], errs[i] = decode(i)
				return nil, errs[i]
			},
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return images, nil
}
