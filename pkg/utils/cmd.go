package utils

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// ExitError is returned when a command started but exited non-zero.
type ExitError struct {
	Name     string
	Args     []string
	ExitCode int
	Output   string
}

func (e *ExitError) Error() string {
	msg := strings.TrimSpace(e.Output)
	if msg == "" {
		return fmt.Sprintf("%s exited with status %d", e.Name, e.ExitCode)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Name, e.ExitCode, msg)
}

// RunCommandWithContext runs name with args and returns its combined output.
// A command that could not be started yields a wrapped launch error; one that
// exited non-zero yields *ExitError together with its output.
func RunCommandWithContext(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out, &ExitError{Name: name, Args: args, ExitCode: exitErr.ExitCode(), Output: string(out)}
		}
		return nil, errors.Wrapf(err, "exec %s", name)
	}
	return out, nil
}
