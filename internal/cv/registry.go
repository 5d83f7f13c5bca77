package cv

import (
	"time"

	"go.uber.org/zap"
)

// ToolOptions configures the external tools used by extraction strategies.
type ToolOptions struct {
	ConverterBinary  string        // universal converter, pandoc by default
	PDFToTextBinary  string        // poppler's pdftotext by default
	UnrtfBinary      string        // RTF fallback, unrtf by default
	ConverterTimeout time.Duration // per invocation
}

// Registry holds the probed fallback chain for every supported format.
type Registry struct {
	chains map[Format]*Chain
}

// NewRegistry builds and probes the default chains. Probing happens once,
// here, so availability is fixed for the registry's lifetime.
func NewRegistry(opts ToolOptions, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.ConverterTimeout
	if timeout <= 0 {
		timeout = DefaultConverterTimeout
	}
	pandoc := func(f Format) TextExtractor {
		return NewPandocExtractor(f, opts.ConverterBinary, timeout)
	}

	r := &Registry{chains: map[Format]*Chain{
		FormatPDF: NewChain(FormatPDF, logger,
			NewPDFNativeExtractor(),
			NewPDFToTextExtractor(opts.PDFToTextBinary, timeout),
		).ExhaustedAs(ErrLikelyScannedPdf),
		FormatDOCX: NewChain(FormatDOCX, logger,
			pandoc(FormatDOCX),
			NewOOXMLExtractor(),
		),
		FormatDOC: NewChain(FormatDOC, logger,
			NewDocconvDocExtractor(timeout),
		),
		FormatODT: NewChain(FormatODT, logger,
			pandoc(FormatODT),
			NewDocconvODTExtractor(timeout),
		).HaltOn(ErrConversionFailed),
		FormatRTF: NewChain(FormatRTF, logger,
			pandoc(FormatRTF),
			NewUnrtfExtractor(opts.UnrtfBinary, timeout),
		).HaltOn(ErrConversionFailed),
		FormatTEX: NewChain(FormatTEX, logger,
			pandoc(FormatTEX),
		).HaltOn(ErrConversionFailed),
		FormatTXT: NewChain(FormatTXT, logger,
			NewPlainTextExtractor(),
		),
		FormatHTML: NewChain(FormatHTML, logger,
			NewHTMLDOMExtractor(),
			NewHTMLStripExtractor(),
		),
	}}

	for _, f := range SupportedFormats {
		for _, s := range r.chains[f].Strategies() {
			if s.Err == nil {
				logger.Info("extractor available", zap.String("format", string(f)), zap.String("strategy", string(s.Strategy)))
			} else {
				logger.Warn("extractor unavailable", zap.String("format", string(f)), zap.String("strategy", string(s.Strategy)), zap.Error(s.Err))
			}
		}
	}
	return r
}

// NewRegistryWithChains builds a registry from explicit chains.
func NewRegistryWithChains(chains map[Format]*Chain) *Registry {
	return &Registry{chains: chains}
}

// Chain returns the fallback chain for a format.
func (r *Registry) Chain(f Format) (*Chain, bool) {
	c, ok := r.chains[f]
	return c, ok
}

// StrategyStatus reports the probe result of one strategy.
type StrategyStatus struct {
	Name      ParserName `json:"name"`
	Available bool       `json:"available"`
	Reason    string     `json:"reason,omitempty"`
}

// Capability lists a format's strategies in fallback order.
type Capability struct {
	Format     Format           `json:"format"`
	Strategies []StrategyStatus `json:"strategies"`
}

// Capabilities reports every supported format with its strategies.
func (r *Registry) Capabilities() []Capability {
	caps := make([]Capability, 0, len(SupportedFormats))
	for _, f := range SupportedFormats {
		c, ok := r.chains[f]
		if !ok {
			caps = append(caps, Capability{Format: f, Strategies: []StrategyStatus{}})
			continue
		}
		statuses := []StrategyStatus{}
		for _, s := range c.Strategies() {
			st := StrategyStatus{Name: s.Strategy, Available: s.Err == nil}
			if s.Err != nil {
				st.Reason = s.Err.Error()
			}
			statuses = append(statuses, st)
		}
		caps = append(caps, Capability{Format: f, Strategies: statuses})
	}
	return caps
}
