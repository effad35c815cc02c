// pre_processor.go implements the GLSL include pre-processor. It scans shader
// source for `#include "path"` lines and replaces each with the contents of the
// referenced file, resolved relative to the including file inside an fs.FS.
//
// Each file is inserted at most once per Process call, so shared struct
// definitions can be included from several places. An include that leads
// back to a file still being expanded is an error.
package shader

import (
	"io/fs"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// ErrIncludeCycle is returned when an include chain refers back to itself.
var ErrIncludeCycle = errors.New("include cycle")

const includeDirective = "#include"

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	fsys fs.FS

	// includes accumulates the files inserted during a Process call, in the
	// order they were first expanded. Reset at the start of each call.
	includes []string
	seen     map[string]bool
}

// PreProcessor expands #include directives in GLSL source.
type PreProcessor interface {
	// Process reads the file at name and returns it with every #include line
	// replaced by the expanded contents of the referenced file.
	//
	// Parameters:
	//   - name: slash separated path inside the pre-processor's file system
	//
	// Returns:
	//   - string: the expanded GLSL source
	//   - error: missing files, malformed directives, or ErrIncludeCycle
	Process(name string) (string, error)

	// Includes returns the files inserted during the most recent Process call.
	//
	// Returns:
	//   - []string: included paths in expansion order
	Includes() []string
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor reading from fsys.
//
// Parameters:
//   - fsys: file system holding the shader sources
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor
func NewPreProcessor(fsys fs.FS) PreProcessor {
	return &preProcessor{fsys: fsys}
}

func (p *preProcessor) Process(name string) (string, error) {
	p.includes = p.includes[:0]
	p.seen = map[string]bool{name: true}
	return p.expand(name, []string{name})
}

func (p *preProcessor) Includes() []string {
	return p.includes
}

func (p *preProcessor) expand(name string, stack []string) (string, error) {
	raw, err := fs.ReadFile(p.fsys, name)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read shader source %q", name)
	}

	lines := strings.Split(string(raw), "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		target, ok, err := parseInclude(line)
		if err != nil {
			return "", errors.Wrapf(err, "%s:%d", name, i+1)
		}
		if !ok {
			out = append(out, line)
			continue
		}

		resolved := path.Join(path.Dir(name), target)
		for _, s := range stack {
			if s == resolved {
				return "", errors.Wrapf(ErrIncludeCycle, "%s:%d: %s", name, i+1, strings.Join(append(stack, resolved), " -> "))
			}
		}
		if p.seen[resolved] {
			continue
		}
		p.seen[resolved] = true
		p.includes = append(p.includes, resolved)

		body, err := p.expand(resolved, append(stack, resolved))
		if err != nil {
			return "", err
		}
		out = append(out, body)
	}
	return strings.Join(out, "\n"), nil
}

// parseInclude recognizes `#include "path"`. ok is false for any other line.
func parseInclude(line string) (target string, ok bool, err error) {
	trimmed := strings.TrimSpace(line)
	rest, found := strings.CutPrefix(trimmed, includeDirective)
	if !found {
		return "", false, nil
	}
	rest = strings.TrimSpace(rest)
	if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
		return "", false, errors.Errorf("malformed include directive %q", trimmed)
	}
	target = rest[1 : len(rest)-1]
	if target == "" {
		return "", false, errors.New("empty include path")
	}
	return target, true, nil
}
