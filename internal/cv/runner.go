package cv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"time"
)

// DefaultConverterTimeout bounds a single external converter invocation.
const DefaultConverterTimeout = 30 * time.Second

// Runner executes an external conversion tool with a bounded wait. The
// process is killed when the timeout expires or the caller's context ends.
type Runner struct {
	Binary  string
	Timeout time.Duration
}

// Run executes the binary with args and returns its stdout and stderr.
// Failures are returned as *ExtractionError tagged with strategy.
func (r Runner) Run(ctx context.Context, strategy ParserName, args ...string) (stdout, stderr []byte, err error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultConverterTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.Binary, args...)
	// Don't hang on grandchildren still holding the output pipes after kill.
	cmd.WaitDelay = time.Second

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	runErr := cmd.Run()
	if runErr == nil {
		return outBuf.Bytes(), errBuf.Bytes(), nil
	}

	if errors.Is(runErr, exec.ErrNotFound) || errors.Is(runErr, fs.ErrNotExist) {
		return nil, nil, toolUnavailable(strategy, r.Binary, runErr)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		err := fmt.Errorf("canceled: %w", ctxErr)
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", timeout, ctxErr)
		}
		return nil, nil, &ExtractionError{Kind: ErrConversionFailed, Strategy: strategy, Tool: r.Binary, Err: err}
	}
	return nil, nil, &ExtractionError{
		Kind:     ErrConversionFailed,
		Strategy: strategy,
		Tool:     r.Binary,
		Stderr:   errBuf.String(),
		Err:      runErr,
	}
}
