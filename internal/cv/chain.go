package cv

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

type candidate struct {
	extractor TextExtractor
	probeErr  error
}

// Chain tries extraction strategies for one format in priority order and
// keeps the first result with non-blank text. Results are never merged.
type Chain struct {
	format     Format
	candidates []candidate
	// haltOn lists error kinds that end the chain without trying the rest.
	haltOn []error
	// exhausted replaces the terminal error when the last strategy that ran
	// produced nothing.
	exhausted error
	logger    *zap.Logger
}

// NewChain probes each extractor once and returns a chain over them.
func NewChain(format Format, logger *zap.Logger, extractors ...TextExtractor) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Chain{format: format, logger: logger}
	for _, e := range extractors {
		err := e.Probe()
		if err != nil {
			logger.Debug("extractor unavailable",
				zap.String("format", string(format)),
				zap.String("strategy", string(e.Name())),
				zap.Error(err))
		}
		c.candidates = append(c.candidates, candidate{extractor: e, probeErr: err})
	}
	return c
}

// HaltOn makes errors of the given kinds terminal for the whole chain.
func (c *Chain) HaltOn(kinds ...error) *Chain {
	c.haltOn = append(c.haltOn, kinds...)
	return c
}

// ExhaustedAs sets the kind reported when every strategy that ran came back empty.
func (c *Chain) ExhaustedAs(kind error) *Chain {
	c.exhausted = kind
	return c
}

// Strategies returns the chain's strategies with their probe results.
func (c *Chain) Strategies() []Attempt {
	out := make([]Attempt, 0, len(c.candidates))
	for _, cand := range c.candidates {
		out = append(out, Attempt{Strategy: cand.extractor.Name(), Err: cand.probeErr})
	}
	return out
}

// Extract runs the chain against path.
func (c *Chain) Extract(ctx context.Context, path string) (*ExtractionResult, ParserName, error) {
	var (
		attempts []Attempt
		last     error
		lastRan  error
	)

	for i, cand := range c.candidates {
		name := cand.extractor.Name()
		log := c.logger.With(
			zap.String("stage", "extract"),
			zap.String("format", string(c.format)),
			zap.String("strategy", string(name)),
		)
		if i > 0 {
			log.Info("fallback triggered", zap.String("previous", string(attempts[i-1].Strategy)))
		}

		if cand.probeErr != nil {
			log.Debug("skipping unavailable extractor", zap.Error(cand.probeErr))
			attempts = append(attempts, Attempt{Strategy: name, Err: cand.probeErr})
			last = cand.probeErr
			continue
		}

		log.Debug("extractor attempted")
		res, err := cand.extractor.Extract(ctx, path)
		if err == nil && (res == nil || strings.TrimSpace(res.Text) == "") {
			err = emptyResult(name)
		}
		if err == nil {
			log.Info("extractor succeeded", zap.Int("text_bytes", len(res.Text)), zap.Int("html_bytes", len(res.HTML)))
			return res, name, nil
		}

		log.Warn("extractor failed", zap.Error(err))
		attempts = append(attempts, Attempt{Strategy: name, Err: err})
		last, lastRan = err, err

		if c.halts(err) {
			return nil, "", c.fail(KindOf(err), err, attempts)
		}
	}

	if last == nil {
		last = toolUnavailable("", "", errors.New("no extractor registered"))
	}
	if c.exhausted != nil && lastRan != nil && errors.Is(lastRan, ErrEmptyResult) {
		return nil, "", c.fail(c.exhausted, lastRan, attempts)
	}
	kind := KindOf(last)
	if kind == nil {
		kind = ErrConversionFailed
	}
	return nil, "", c.fail(kind, last, attempts)
}

func (c *Chain) halts(err error) bool {
	for _, kind := range c.haltOn {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

func (c *Chain) fail(kind, err error, attempts []Attempt) error {
	return &ChainError{Format: c.format, Kind: kind, Attempts: attempts, Err: err}
}
