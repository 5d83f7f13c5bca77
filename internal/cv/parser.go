package cv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// ParserConfig configures a CVParser.
type ParserConfig struct {
	UploadsDir string
	Tools      ToolOptions
	Vocabulary Vocabulary
	Logger     *zap.Logger
	// Registry overrides the default probed chains, mostly for tests.
	Registry *Registry
}

// CVParser turns CV files into normalized documents. It holds no per-call
// state and is safe for concurrent use.
type CVParser struct {
	uploadsDir string
	registry   *Registry
	structure  *StructuralExtractor
	sanitizer  *bluemonday.Policy
	logger     *zap.Logger
}

func NewCVParser(cfg ParserConfig) *CVParser {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := cfg.Registry
	if registry == nil {
		registry = NewRegistry(cfg.Tools, logger)
	}
	uploads := cfg.UploadsDir
	if uploads == "" {
		uploads = os.TempDir()
	}
	return &CVParser{
		uploadsDir: uploads,
		registry:   registry,
		structure:  NewStructuralExtractor(cfg.Vocabulary),
		sanitizer:  newSanitizer(),
		logger:     logger,
	}
}

// newSanitizer keeps structural markup and drops scripts, event handlers
// and unsafe URLs.
func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowDataAttributes()
	return p
}

// Capabilities reports the extraction strategies available per format.
func (p *CVParser) Capabilities() []Capability {
	return p.registry.Capabilities()
}

// ParseDocument extracts, normalizes and structures the file at path.
// Every failure is a *ParseError carrying exactly one error kind.
func (p *CVParser) ParseDocument(ctx context.Context, path string) (*NormalizedDocument, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ParseError{Path: path, Err: fmt.Errorf("%w: %s", ErrFileNotFound, path)}
		}
		return nil, &ParseError{Path: path, Err: fmt.Errorf("%w: %v", ErrFileNotFound, err)}
	}
	if info.IsDir() {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("%w: %s is a directory", ErrFileNotFound, path)}
	}

	format, err := DetectFormat(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return p.parse(ctx, path, format, info.Size())
}

// ParseFile stages an uploaded stream in the uploads directory and parses it.
// The format is checked before anything touches the disk and the staged copy
// is removed on every path.
func (p *CVParser) ParseFile(ctx context.Context, filename string, reader io.Reader) (*NormalizedDocument, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, &ParseError{Path: filename, Err: err}
	}

	if err := os.MkdirAll(p.uploadsDir, 0755); err != nil {
		return nil, &ParseError{Path: filename, Format: format, Err: fmt.Errorf("failed to create uploads dir: %w", err)}
	}
	file, err := os.CreateTemp(p.uploadsDir, "cv-*"+format.Extension())
	if err != nil {
		return nil, &ParseError{Path: filename, Format: format, Err: fmt.Errorf("failed to create file: %w", err)}
	}
	staged := file.Name()
	defer os.Remove(staged)

	size, err := io.Copy(file, reader)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, &ParseError{Path: filename, Format: format, Err: fmt.Errorf("failed to save file: %w", err)}
	}

	doc, err := p.parse(ctx, staged, format, size)
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.Path = filename
	}
	return doc, err
}

// ParseText normalizes text submitted directly, skipping extraction.
func (p *CVParser) ParseText(ctx context.Context, raw string) (*NormalizedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ParseError{Path: "<text>", Format: FormatTXT, Err: conversionFailed(ParserDirect, err)}
	}
	text := Normalize(raw)
	if text == "" {
		return nil, &ParseError{Path: "<text>", Format: FormatTXT, Err: emptyResult(ParserDirect)}
	}
	doc := p.assemble(text, "", FormatTXT, ParserDirect, int64(len(raw)), nil, plausibilityWarnings(text, FormatTXT))
	p.logger.Info("text normalized",
		zap.String("stage", "normalize"),
		zap.Int("words", doc.Metadata.WordCount),
		zap.Int("sections", len(doc.Structure.Sections)))
	return doc, nil
}

func (p *CVParser) parse(ctx context.Context, path string, format Format, size int64) (*NormalizedDocument, error) {
	start := time.Now()
	log := p.logger.With(zap.String("path", path), zap.String("format", string(format)))
	log.Info("format selected", zap.String("stage", "detect"), zap.Int64("size_bytes", size))

	if size == 0 {
		kind := ErrEmptyResult
		if format == FormatPDF {
			kind = ErrLikelyScannedPdf
		}
		log.Warn("empty input", zap.String("stage", "detect"))
		return nil, &ParseError{Path: path, Format: format, Err: fmt.Errorf("%w: file is empty", kind)}
	}

	chain, ok := p.registry.Chain(format)
	if !ok {
		return nil, &ParseError{Path: path, Format: format,
			Err: toolUnavailable("", "", fmt.Errorf("no extractors for %s", format))}
	}

	res, parser, err := chain.Extract(ctx, path)
	if err != nil {
		log.Warn("extraction failed", zap.String("stage", "extract"), zap.Error(err))
		return nil, &ParseError{Path: path, Format: format, Err: err}
	}

	text := Normalize(res.Text)
	if text == "" {
		kind := ErrEmptyResult
		if format == FormatPDF {
			kind = ErrLikelyScannedPdf
		}
		log.Warn("nothing left after normalization", zap.String("stage", "normalize"), zap.String("strategy", string(parser)))
		return nil, &ParseError{Path: path, Format: format,
			Err: &ChainError{Format: format, Kind: kind, Attempts: []Attempt{{Strategy: parser, Err: emptyResult(parser)}}}}
	}

	semantic := ""
	if strings.TrimSpace(res.HTML) != "" {
		semantic = strings.TrimSpace(p.sanitizer.Sanitize(res.HTML))
	}

	doc := p.assemble(text, semantic, format, parser, size, res.PageCount, append(res.Warnings, plausibilityWarnings(text, format)...))
	for _, w := range doc.Metadata.Warnings {
		log.Warn("extraction warning", zap.String("stage", "quality"), zap.String("warning", w))
	}
	log.Info("document normalized",
		zap.String("stage", "structure"),
		zap.String("parser", string(parser)),
		zap.Int("words", doc.Metadata.WordCount),
		zap.Int("sections", len(doc.Structure.Sections)),
		zap.Int("bullets", len(doc.Structure.Bullets)),
		zap.Duration("took", time.Since(start)))
	return doc, nil
}

func (p *CVParser) assemble(text, semantic string, format Format, parser ParserName, size int64, pages *int, warnings []string) *NormalizedDocument {
	if warnings == nil {
		warnings = []string{}
	}
	return &NormalizedDocument{
		PlainText:    text,
		SemanticHTML: semantic,
		Metadata: Metadata{
			SourceFormat:  format,
			ParserUsed:    parser,
			PageCount:     pages,
			WordCount:     len(strings.Fields(text)),
			FileSizeBytes: size,
			Warnings:      warnings,
		},
		Structure: p.structure.Extract(text, semantic),
	}
}
