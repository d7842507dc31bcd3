package shell

import (
	"bytes"
	stderrors "errors"
	"os/exec"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/kfkonrad/relconf/pkg/errors"
	"github.com/kfkonrad/relconf/pkg/logging"
)

// Runner executes a command line and returns its standard output
type Runner interface {
	Run(command string) ([]byte, error)
}

// CommandRunner runs commands with the platform's default shell: sh -c on
// POSIX systems and PowerShell on Windows. Commands inherit the environment
// and working directory of the process. No timeout is applied.
type CommandRunner struct{}

// NewCommandRunner returns a Runner backed by the platform shell
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{}
}

// Invocation returns the program and arguments used to run command
func Invocation(command string) (string, []string) {
	if runtime.GOOS == "windows" {
		return "powershell", []string{"-NoProfile", "-NonInteractive", "-Command", command}
	}
	return "sh", []string{"-c", command}
}

// Run executes command and returns its standard output. A non-zero exit
// status fails with COMMAND_FAILED carrying the command's standard error;
// output that is not valid UTF-8 fails with COMMAND_OUTPUT.
func (r *CommandRunner) Run(command string) ([]byte, error) {
	name, args := Invocation(command)
	logging.LogCommand(name, args)

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				msg = exitErr.Error()
			}
			return nil, errors.New(errors.ErrCommandFailed, msg).
				WithDetail("command", command).
				WithDetail("exitCode", exitErr.ExitCode())
		}
		return nil, errors.Wrapf(err, errors.ErrCommandFailed, "unable to start %s", name).
			WithDetail("command", command)
	}

	out := stdout.Bytes()
	if !utf8.Valid(out) {
		return nil, errors.New(errors.ErrCommandOutput, "command output is not valid UTF-8").
			WithDetail("command", command)
	}
	return out, nil
}
