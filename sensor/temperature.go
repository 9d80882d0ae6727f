package sensor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var runCommandFn = runCommand

// commandWaitDelay bounds the wait for output pipes after the process was killed.
const commandWaitDelay = time.Second

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = commandWaitDelay
	return cmd.Output()
}

// Temperature is the outcome of a successful diagnostic command run.
// Celsius is nil when the output did not have the expected temp=<value>'C form.
type Temperature struct {
	Celsius *float64
	Raw     string
}

// ReadCPUTemp runs the diagnostic command (vcgencmd measure_temp) once and
// parses its output. A failed run returns an *Error, malformed output does not.
func ReadCPUTemp(ctx context.Context, command []string) (Temperature, error) {
	if len(command) == 0 || command[0] == "" {
		return Temperature{}, &Error{
			Kind:    ErrUnexpected,
			Message: "Unexpected error: empty command",
		}
	}

	out, err := runCommandFn(ctx, command[0], command[1:]...)
	if err != nil {
		return Temperature{}, commandError(ctx, filepath.Base(command[0]), err)
	}

	raw := strings.TrimSpace(string(out))
	return Temperature{Celsius: parseTemp(raw), Raw: raw}, nil
}

func commandError(ctx context.Context, source string, err error) *Error {
	var exitErr *exec.ExitError

	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return &Error{
			Kind:    ErrExecutableNotFound,
			Source:  source,
			Message: fmt.Sprintf("%s not found: %s", source, err),
			Err:     err,
		}
	case ctx.Err() != nil:
		// the process was killed by the read timeout or the client went away
		cause := fmt.Errorf("%w (%s)", ctx.Err(), err)
		return &Error{
			Kind:    ErrCommandFailed,
			Source:  source,
			Message: fmt.Sprintf("%s failed: %s", source, cause),
			Err:     cause,
		}
	case errors.As(err, &exitErr):
		cause := err
		if stderr := bytes.TrimSpace(exitErr.Stderr); len(stderr) > 0 {
			cause = fmt.Errorf("%w: %s", err, stderr)
		}
		return &Error{
			Kind:    ErrCommandFailed,
			Source:  source,
			Message: fmt.Sprintf("%s failed: %s", source, cause),
			Err:     cause,
		}
	}

	return &Error{
		Kind:    ErrUnexpected,
		Source:  source,
		Message: fmt.Sprintf("Unexpected error: %s", err),
		Err:     err,
	}
}

// parseTemp accepts temp=48.3'C and temp=48.3.
func parseTemp(raw string) *float64 {
	value, ok := strings.CutPrefix(raw, "temp=")
	if !ok {
		return nil
	}
	value = strings.TrimSpace(value)
	value = strings.TrimSuffix(value, "'C")
	value = strings.TrimSpace(value)

	c, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(c) || math.IsInf(c, 0) {
		return nil
	}
	return &c
}
