package cv

import (
	"context"
	"os"
	"sync"
)

type fakeExtractor struct {
	name     ParserName
	probeErr error
	result   *ExtractionResult
	err      error

	mu    sync.Mutex
	calls int
	// sawFile records whether the input existed while Extract ran.
	sawFile bool
	path    string
}

func (f *fakeExtractor) Name() ParserName { return f.name }

func (f *fakeExtractor) Probe() error { return f.probeErr }

func (f *fakeExtractor) Extract(_ context.Context, path string) (*ExtractionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.path = path
	_, statErr := os.Stat(path)
	f.sawFile = statErr == nil
	if f.err != nil {
		return nil, f.err
	}
	if f.result == nil {
		return &ExtractionResult{}, nil
	}
	r := *f.result
	return &r, nil
}

func (f *fakeExtractor) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func textResult(text string) *ExtractionResult {
	return &ExtractionResult{Text: text}
}
