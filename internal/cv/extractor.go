package cv

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// ExtractionResult is the raw output of one extraction strategy.
type ExtractionResult struct {
	Text      string
	HTML      string
	PageCount *int
	Warnings  []string
}

// TextExtractor is a single strategy for turning a file into text.
type TextExtractor interface {
	Name() ParserName
	// Probe reports whether the strategy can run in this environment. It
	// returns an ErrToolUnavailable error naming the missing dependency.
	Probe() error
	Extract(ctx context.Context, path string) (*ExtractionResult, error)
}

// probeBinary checks that an external tool is on PATH.
func probeBinary(strategy ParserName, binary string) error {
	if _, err := exec.LookPath(binary); err != nil {
		return toolUnavailable(strategy, binary, err)
	}
	return nil
}

// boundedCall runs fn under a deadline. It is used for library calls that
// may spawn processes we cannot kill ourselves; the caller stops waiting on
// timeout and the goroutine is left to finish on its own.
func boundedCall[T any](ctx context.Context, timeout time.Duration, fn func() (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type outcome struct {
		val T
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := fn()
		done <- outcome{v, err}
	}()

	select {
	case o := <-done:
		return o.val, o.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("gave up after %s: %w", timeout, ctx.Err())
	}
}

func intPtr(n int) *int { return &n }
