package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/config"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPassesListsEveryKind(t *testing.T) {
	out, err := execute(t, "passes")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	for i, name := range []string{"bayer", "prewitt", "prewitt_normals", "filter"} {
		assert.True(t, strings.HasPrefix(lines[i], name+" "), lines[i])
	}
}

func TestPassFlagIsValidated(t *testing.T) {
	_, err := execute(t, "passes", "--pass", "sobel")
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalidConfig))

	_, err = execute(t, "passes", "--pass", "prewitt_normals", "--source", "normal")
	assert.NoError(t, err)
}

func TestFlagOverridesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxygl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pipeline:\n  pass: sobel\n"), 0o644))

	_, err := execute(t, "passes", "--config", path)
	assert.True(t, errors.Is(err, config.ErrInvalidConfig))

	_, err = execute(t, "passes", "--config", path, "--pass", "filter")
	assert.NoError(t, err)
}
