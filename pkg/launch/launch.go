// Package launch runs the wrapped command with the recorder's environment
// injected, forwarding the caller's stdio and surfacing the child's exit
// code so the wrapper can propagate it.
package launch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Resolve locates the executable for name on PATH. It returns an error
// naming the missing binary so the run command can fail before forking.
func Resolve(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("command %q not found on PATH: %w", name, err)
	}
	return path, nil
}

// Run executes path with args, inheriting the parent's stdio and
// environment plus the given extra variables. It blocks until the child
// exits and returns its exit code. A non-zero child exit is not an
// error; only failures to start or signal-kills are.
func Run(ctx context.Context, path string, args []string, extraEnv []string) (int, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extraEnv...)

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		// Killed by a signal; report it as a failure with a
		// conventional non-zero code.
		return 1, fmt.Errorf("command terminated by signal: %w", err)
	}
	return 1, fmt.Errorf("command failed to run: %w", err)
}
