package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fulmenhq/iconeat/internal/ops"
	"github.com/fulmenhq/iconeat/pkg/exitcode"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execResult struct {
	stdout string
	stderr string
	code   int
}

// execRoot runs a fresh command tree so flag values never leak between tests.
func execRoot(t *testing.T, args ...string) execResult {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	reg := ops.NewRegistry()
	root := newRootCommand(reg)
	registerSubcommands(root, reg)

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--no-color"}, args...))
	code := run(root)
	return execResult{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestInitializeLogger(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error", "invalid"} {
		cmd := &cobra.Command{}
		cmd.Flags().String("log-level", level, "")
		cmd.Flags().Bool("json", level == "debug", "")
		cmd.Flags().Bool("no-color", true, "")

		assert.NotPanics(t, func() { initializeLogger(cmd) }, level)
	}
}

func TestRootVersionIsSet(t *testing.T) {
	assert.NotEmpty(t, rootCmd.Version)
}

func TestProductionRegistryCoversCoreCommands(t *testing.T) {
	errs := ops.Validate(ops.GetRegistry())
	assert.Empty(t, errs, ops.FormatErrors(errs))
}

func TestGroupedHelp(t *testing.T) {
	res := execRoot(t, "--help")
	require.Equal(t, exitcode.Success, res.code)

	assert.Contains(t, res.stdout, "Icon Checks:")
	assert.Contains(t, res.stdout, "Theme Commands:")
	assert.Contains(t, res.stdout, "Support Commands:")
	assert.Regexp(t, `mapping\s+Check the icon mapping file`, res.stdout)
	assert.Regexp(t, `generate\s+Build theme variants`, res.stdout)
}

func TestSubcommandHelp(t *testing.T) {
	res := execRoot(t, "mapping", "validate", "--help")
	require.Equal(t, exitcode.Success, res.code)
	assert.Contains(t, res.stdout, "--fix")
	assert.NotContains(t, res.stdout, "Icon Checks:")
}

func TestUnknownCommandFails(t *testing.T) {
	res := execRoot(t, "nope")
	assert.Equal(t, exitcode.GeneralError, res.code)
}

func TestExplicitConfigMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	res := execRoot(t, "--config", "missing.yaml", "mapping", "validate")
	assert.Equal(t, exitcode.ConfigError, res.code)
	assert.Contains(t, res.stderr, "Invalid configuration")
}

func TestVersionCommand(t *testing.T) {
	res := execRoot(t, "version")
	require.Equal(t, exitcode.Success, res.code)
	assert.Equal(t, "iconeat dev\n", res.stdout)

	res = execRoot(t, "version", "--extended")
	require.Equal(t, exitcode.Success, res.code)
	assert.Contains(t, res.stdout, "Go version:")

	res = execRoot(t, "version", "--report-json")
	require.Equal(t, exitcode.Success, res.code)
	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &info))
	assert.Equal(t, "dev", info["version"])
}
