package postprocess

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/engine/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Kind selects a pass implementation.
type Kind int

const (
	KindBayerDither Kind = iota
	KindPrewitt
	KindPrewittNormals
	KindFilter
)

var kindNames = []string{
	KindBayerDither:    "bayer",
	KindPrewitt:        "prewitt",
	KindPrewittNormals: "prewitt_normals",
	KindFilter:         "filter",
}

// Kinds lists every pass kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindBayerDither, KindPrewitt, KindPrewittNormals, KindFilter}
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ProgramName returns the name of the GLSL program the pass runs.
func (k Kind) ProgramName() string {
	switch k {
	case KindBayerDither:
		return "bayer_dither"
	default:
		return k.String()
	}
}

// ParseKind resolves a configured pass name.
//
// Parameters:
//   - name: bayer, prewitt, prewitt_normals or filter (case insensitive)
//
// Returns:
//   - Kind: the pass kind
//   - error: error for unknown names
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(i), nil
		}
	}
	return 0, errors.Errorf("unknown post-process pass %q (want one of %s)", name, strings.Join(kindNames, ", "))
}

// Pass is one full-screen post-process pass.
type Pass interface {
	// Kind returns which pass this is.
	Kind() Kind

	// Program returns the pass program.
	Program() shader.Program

	// SetDensity adapts the pass to the output resolution. It must be called
	// before the first Draw and again after every resolution change.
	//
	// Parameters:
	//   - width: output width in pixels
	//   - height: output height in pixels
	SetDensity(width, height int)

	// Size returns the resolution last given to SetDensity.
	Size() (width, height int)

	// Draw samples input on unit 0 and draws the full-screen quad onto the
	// currently bound framebuffer.
	//
	// Parameters:
	//   - input: 2D texture handle to process
	Draw(input uint32)

	// Destroy frees the program, quad and lookup textures.
	Destroy()
}

// Sources resolves a program name to its GLSL sources.
type Sources func(name string) (shader.Source, error)

type passConfig struct {
	kernelSize int
	kernel     []mgl32.Vec3
}

// PassBuilderOption configures New.
type PassBuilderOption func(*passConfig)

// WithKernel supplies the convolution kernel of a Filter pass.
//
// Parameters:
//   - size: kernel width and height
//   - kernel: size*size weights in row order, one per colour channel
//
// Returns:
//   - PassBuilderOption: option setting the kernel
func WithKernel(size int, kernel []mgl32.Vec3) PassBuilderOption {
	return func(c *passConfig) {
		c.kernelSize = size
		c.kernel = kernel
	}
}

// New builds the pass selected by kind. The choice is static for the life of
// the pass; switching passes means building another one.
//
// Parameters:
//   - dev: the device context
//   - kind: which pass to build
//   - sources: resolves the pass program
//   - options: builder options, WithKernel is required for KindFilter
//
// Returns:
//   - Pass: the pass
//   - error: error if the sources, program or lookups could not be built
func New(dev device.Device, kind Kind, sources Sources, options ...PassBuilderOption) (Pass, error) {
	cfg := passConfig{}
	for _, option := range options {
		option(&cfg)
	}

	src, err := sources(kind.ProgramName())
	if err != nil {
		return nil, errors.Wrapf(err, "%s pass sources", kind)
	}

	switch kind {
	case KindBayerDither:
		return NewBayerDither(dev, src)
	case KindPrewitt:
		return NewPrewitt(dev, src)
	case KindPrewittNormals:
		return NewPrewittNormals(dev, src)
	case KindFilter:
		return NewFilter(dev, src, cfg.kernelSize, cfg.kernel)
	default:
		return nil, errors.Errorf("unknown post-process pass %d", kind)
	}
}
