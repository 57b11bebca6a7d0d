// Package shell runs external tools and captures their output as typed
// results. Every pipeline step that touches an external binary goes through
// Runner so exit status, stdout and stderr are handled uniformly.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Result captures one external-process invocation. It is immutable once
// returned; ExitCode is meaningful only when Ran is true.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Ran      bool
	Args     []string
}

// Int parses stdout as an integer, e.g. a page count. Surrounding
// whitespace is ignored.
func (r Result) Int() (int, error) {
	return strconv.Atoi(strings.TrimSpace(r.Stdout))
}

// Diagnostic returns the most useful human-readable output of the command:
// stdout when present, stderr otherwise.
func (r Result) Diagnostic() string {
	if s := strings.TrimSpace(r.Stdout); s != "" {
		return s
	}
	return strings.TrimSpace(r.Stderr)
}

// Runner executes external commands. The zero value is usable.
type Runner struct{}

// NewRunner creates a new Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes name with args, waits for completion, and returns the
// captured Result. A nonzero exit status is reported through
// Result.ExitCode, not through the error; the error is non-nil only when
// the process could not be started at all. One attempt per call, no retry.
func (r *Runner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	res := Result{Args: cmd.Args}
	err := cmd.Run()
	res.Stdout = decode(stdout.Bytes())
	res.Stderr = decode(stderr.Bytes())

	return finish(res, err)
}

// RunToFile executes name with args and streams stdout into destPath,
// truncating any existing file. Stderr is still captured in the Result.
// Used for tools that write recognized text to stdout.
func (r *Runner) RunToFile(ctx context.Context, destPath, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return Result{Args: cmd.Args}, err
	}
	defer out.Close()

	var stderr bytes.Buffer
	cmd.Stdout = out
	cmd.Stderr = &stderr

	res := Result{Args: cmd.Args}
	err = cmd.Run()
	res.Stderr = decode(stderr.Bytes())

	return finish(res, err)
}

// finish classifies cmd.Run errors: a nonzero exit still counts as a
// completed invocation, only spawn failures surface as errors.
func finish(res Result, err error) (Result, error) {
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.Ran = true
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}
	res.Ran = true
	return res, nil
}

// CommandExists reports whether name resolves to an executable in PATH.
func CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// decode converts raw tool output to a string. Valid UTF-8 passes through
// unchanged; anything else is quoted byte by byte so the conversion never
// fails on binary noise in stderr.
func decode(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	q := strconv.Quote(string(b))
	return q[1 : len(q)-1]
}
