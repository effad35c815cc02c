package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/engine/device"
)

// CompileError is returned when one shader stage fails to compile.
type CompileError struct {
	// Program is the name of the program the stage belongs to.
	Program string
	Stage   device.ShaderStage
	// Log is the driver's info log.
	Log string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader %q: %s stage failed to compile: %s", e.Program, e.Stage, strings.TrimSpace(e.Log))
}

// LinkError is returned when the compiled stages fail to link.
type LinkError struct {
	Program string
	Log     string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader %q: link failed: %s", e.Program, strings.TrimSpace(e.Log))
}
