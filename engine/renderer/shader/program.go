package shader

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/logging"
)

// program is the implementation of the Program interface.
type program struct {
	dev  device.Device
	name string
	id   uint32

	locations map[string]int32
	missing   map[string]bool
}

// Program is a linked vertex + fragment program. A Program only exists once
// linking succeeded; there is no half-built state.
type Program interface {
	// ID returns the device handle, 0 after Destroy.
	//
	// Returns:
	//   - uint32: program handle
	ID() uint32

	// Name returns the name the program was built with, used in diagnostics.
	//
	// Returns:
	//   - string: program name
	Name() string

	// Use makes this the active program. Activation is device-global: callers
	// interleaving programs must Use before each draw.
	Use()

	// Bind activates the program and returns a release that restores program 0.
	//
	// Returns:
	//   - func(): release function
	Bind() (release func())

	// WithBinding runs fn with the program active, restoring program 0 on every
	// exit path.
	//
	// Parameters:
	//   - fn: work to run while active
	//
	// Returns:
	//   - error: the error returned by fn
	WithBinding(fn func() error) error

	// Set writes value to the uniform called name. The program must be active.
	// A name that is not an active uniform of this program is a no-op; it is
	// reported once at debug level.
	//
	// Parameters:
	//   - name: GLSL uniform name, including struct fields and array indices
	//   - value: the typed value to write
	Set(name string, value Uniform)

	// Destroy frees the program. Subsequent calls are no-ops.
	Destroy()
}

var _ Program = &program{}

// NewProgram compiles both stages of src and links them.
//
// Parameters:
//   - dev: the device context
//   - src: named vertex and fragment sources
//
// Returns:
//   - Program: the linked program
//   - error: *CompileError or *LinkError carrying the driver log; every handle created is released
func NewProgram(dev device.Device, src Source) (Program, error) {
	log := logging.Get().WithField("program", src.Name)

	vs, err := compile(dev, src.Name, device.StageVertex, src.Vertex)
	if err != nil {
		log.WithError(err).Error("shader compilation failed")
		return nil, err
	}
	fs, err := compile(dev, src.Name, device.StageFragment, src.Fragment)
	if err != nil {
		dev.DeleteShader(vs)
		log.WithError(err).Error("shader compilation failed")
		return nil, err
	}

	id := dev.CreateProgram()
	dev.AttachShader(id, vs)
	dev.AttachShader(id, fs)
	linkErr := dev.LinkProgram(id)

	dev.DeleteShader(vs)
	dev.DeleteShader(fs)

	if linkErr != nil {
		dev.DeleteProgram(id)
		err := &LinkError{Program: src.Name, Log: linkErr.Error()}
		log.WithError(err).Error("shader link failed")
		return nil, err
	}

	log.WithField("id", id).Debug("shader program linked")
	return &program{
		dev:       dev,
		name:      src.Name,
		id:        id,
		locations: make(map[string]int32),
		missing:   make(map[string]bool),
	}, nil
}

func compile(dev device.Device, name string, stage device.ShaderStage, source string) (uint32, error) {
	id := dev.CreateShader(stage)
	if err := dev.CompileShader(id, source); err != nil {
		dev.DeleteShader(id)
		return 0, &CompileError{Program: name, Stage: stage, Log: err.Error()}
	}
	return id, nil
}

func (p *program) ID() uint32 {
	return p.id
}

func (p *program) Name() string {
	return p.name
}

func (p *program) Use() {
	p.dev.UseProgram(p.id)
}

func (p *program) Bind() func() {
	p.dev.UseProgram(p.id)
	return func() {
		p.dev.UseProgram(0)
	}
}

func (p *program) WithBinding(fn func() error) error {
	return device.Scoped(p.Bind, fn)
}

func (p *program) Set(name string, value Uniform) {
	loc, ok := p.locations[name]
	if !ok {
		loc = p.dev.UniformLocation(p.id, name)
		p.locations[name] = loc
	}
	if loc < 0 {
		if !p.missing[name] {
			p.missing[name] = true
			logging.Get().WithField("program", p.name).WithField("uniform", name).Debug("uniform not active, write ignored")
		}
		return
	}
	value.apply(p.dev, loc)
}

func (p *program) Destroy() {
	if p.id == 0 {
		return
	}
	p.dev.DeleteProgram(p.id)
	p.id = 0
	p.locations = make(map[string]int32)
}
