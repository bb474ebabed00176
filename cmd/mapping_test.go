package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fulmenhq/iconeat/pkg/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappingValidate_ValidDefaultFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "mapping.yaml"), "a:\n- x\nb:\n- y\n")

	res := execRoot(t, "mapping", "validate")
	assert.Equal(t, exitcode.Success, res.code, res.stderr)
	assert.Empty(t, res.stderr)
}

func TestMappingValidate_UnsortedValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	writeFile(t, path, "a:\n- z\n- y\n")

	res := execRoot(t, "mapping", "validate", path)
	assert.Equal(t, exitcode.ValidationError, res.code)
	assert.Contains(t, res.stderr, "The entry 'a' has unsorted values")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a:\n- z\n- y\n", string(data), "no rewrite without --fix")
}

func TestMappingValidate_FixRewrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "b:\n- w\na:\n- z\n- y\n- z\n")

	res := execRoot(t, "mapping", "validate", "--fix", "--file", path)
	assert.Equal(t, exitcode.Success, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Keys are not sorted")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a:\n- y\n- z\nb:\n- w\n", string(data))
}

func TestMappingValidate_CollisionSurvivesFix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	writeFile(t, path, "a:\n- x\nb:\n- x\n")

	res := execRoot(t, "mapping", "validate", path)
	assert.Equal(t, exitcode.ValidationError, res.code)
	assert.Contains(t, res.stderr, "The value 'x' is in multiple keys: a and b")

	res = execRoot(t, "mapping", "validate", "--fix", path)
	assert.Equal(t, exitcode.Success, res.code)
	assert.Contains(t, res.stderr, "The value 'x' is in multiple keys: a and b")
}

func TestMappingValidate_DuplicateKeysNeverFixed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	original := "a:\n- x\na:\n- y\n"
	writeFile(t, path, original)

	res := execRoot(t, "mapping", "validate", "--fix", path)
	assert.Equal(t, exitcode.ValidationError, res.code)
	assert.Contains(t, res.stderr, "The following keys are duplicated: ['a']")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestMappingValidate_FileFromConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "iconeat.yaml"), "mapping:\n  file: icons/map.yaml\n")
	writeFile(t, filepath.Join(dir, "icons", "map.yaml"), "b:\n- x\na:\n- y\n")

	res := execRoot(t, "mapping", "validate")
	assert.Equal(t, exitcode.ValidationError, res.code)
	assert.Contains(t, res.stderr, "Keys are not sorted")
}

func TestMappingValidate_Errors(t *testing.T) {
	t.Chdir(t.TempDir())

	res := execRoot(t, "mapping", "validate", "missing.yaml")
	assert.Equal(t, exitcode.GeneralError, res.code)
	assert.Contains(t, res.stderr, "Command execution failed")

	res = execRoot(t, "mapping", "validate", "../outside.yaml")
	assert.Equal(t, exitcode.GeneralError, res.code)
	assert.Contains(t, res.stderr, "path traversal")

	writeFile(t, "list.yaml", "- a\n- b\n")
	res = execRoot(t, "mapping", "validate", "list.yaml")
	assert.Equal(t, exitcode.GeneralError, res.code)
}
