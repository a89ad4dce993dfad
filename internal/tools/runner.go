package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// Exit statuses recorded for invocations that never produced one.
const (
	StatusTimeout  = 124
	StatusNotFound = 127
)

// RunResult captures one external tool invocation verbatim. The engine never
// sees the process; it only interprets this record.
type RunResult struct {
	Name   string
	Ok     bool
	Status int
	Stdout string
	Stderr string
	Note   string
}

// Run executes a command with a timeout and returns its captured output.
// Failures to launch (missing binary, timeout) are folded into the result
// rather than returned as errors: a broken collaborator is a recordable scan
// fact, not a crash.
func Run(ctx context.Context, timeout time.Duration, name string, args ...string) RunResult {
	res := RunResult{Name: name}

	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	switch {
	case err == nil:
		res.Ok = true
		res.Status = 0
	case runCtx.Err() == context.DeadlineExceeded:
		res.Status = StatusTimeout
		res.Note = fmt.Sprintf("timeout after %s", timeout)
	case errors.Is(err, exec.ErrNotFound):
		res.Status = StatusNotFound
		res.Note = fmt.Sprintf("%s not installed or not in PATH", name)
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.Status = exitErr.ExitCode()
		} else {
			res.Status = StatusNotFound
			res.Note = err.Error()
		}
	}
	return res
}

// Available reports whether a binary can be found in PATH.
func Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
