package shell

import (
	"runtime"
	"testing"

	"github.com/kfkonrad/relconf/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX shell syntax")
	}
}

func TestInvocation(t *testing.T) {
	name, args := Invocation("echo hi")
	if runtime.GOOS == "windows" {
		assert.Equal(t, "powershell", name)
		assert.Equal(t, "echo hi", args[len(args)-1])
		return
	}
	assert.Equal(t, "sh", name)
	assert.Equal(t, []string{"-c", "echo hi"}, args)
}

func TestCommandRunner_Run(t *testing.T) {
	skipOnWindows(t)
	r := NewCommandRunner()

	t.Run("captures stdout", func(t *testing.T) {
		out, err := r.Run(`printf 'a = 1\nb = "x"\n'`)
		require.NoError(t, err)
		assert.Equal(t, "a = 1\nb = \"x\"\n", string(out))
	})

	t.Run("stderr is not content", func(t *testing.T) {
		out, err := r.Run("echo noise >&2; echo data")
		require.NoError(t, err)
		assert.Equal(t, "data\n", string(out))
	})

	t.Run("non-zero exit surfaces stderr", func(t *testing.T) {
		_, err := r.Run("echo 'something broke' >&2; exit 3")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
		assert.Contains(t, err.Error(), "something broke")

		details := errors.GetErrorDetails(err)
		assert.Equal(t, 3, details["exitCode"])
		assert.Equal(t, "echo 'something broke' >&2; exit 3", details["command"])
	})

	t.Run("non-zero exit without stderr", func(t *testing.T) {
		_, err := r.Run("exit 1")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
		assert.Contains(t, err.Error(), "exit status 1")
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		_, err := r.Run(`printf '\377\376'`)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrCommandOutput))
	})
}

func TestExportLine(t *testing.T) {
	tests := []struct {
		name string
		env  string
		path string
		want string
	}{
		{"plain", "GIT_CONFIG_GLOBAL", "/home/u/.config/git/out.toml", `export GIT_CONFIG_GLOBAL="/home/u/.config/git/out.toml"`},
		{"spaces", "X", "/tmp/my dir/f.json", `export X="/tmp/my dir/f.json"`},
		{"quotes and dollars", "X", `/tmp/a"b$c`, `export X="/tmp/a\"b\$c"`},
		{"backslash and backtick", "X", "/tmp/a\\b`c", "export X=\"/tmp/a\\\\b\\`c\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExportLine(tt.env, tt.path))
		})
	}
}

func TestExportLine_EvaluatesToPath(t *testing.T) {
	skipOnWindows(t)
	path := "/tmp/we`ird \"$HOME\" \\dir/out.yaml"
	out, err := NewCommandRunner().Run(ExportLine("RELCONF_TEST_PATH", path) + `; printf '%s' "$RELCONF_TEST_PATH"`)
	require.NoError(t, err)
	assert.Equal(t, path, string(out))
}

func TestValidateEnvName(t *testing.T) {
	for _, name := range []string{"A", "_x", "GIT_CONFIG_GLOBAL", "a1"} {
		assert.NoError(t, ValidateEnvName(name), name)
	}
	for _, name := range []string{"", "1A", "A-B", "A B", "$A"} {
		err := ValidateEnvName(name)
		require.Error(t, err, name)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	}
}
