// Package extractor turns uploaded PDF bytes into plain text through an
// ordered chain of extraction strategies.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/adavadkardhruv13/Polaris-backend/domain/pitch"
	"github.com/adavadkardhruv13/Polaris-backend/internal/log"
)

// minTextLength is the minimum trimmed length for a strategy's output to be
// accepted. Shorter results usually mean the strategy only picked up
// metadata or page furniture, so the next strategy gets a chance.
const minTextLength = 50

// Strategy errors.
var (
	// ErrEncrypted indicates the document is password protected. It aborts
	// the whole pipeline: later strategies would either fail the same way
	// or silently bypass the protection.
	ErrEncrypted = errors.New("pdf is encrypted")

	// ErrNoText indicates a strategy produced no usable text.
	ErrNoText = errors.New("no text extracted")
)

// Strategy extracts plain text from PDF bytes.
type Strategy interface {
	// Name identifies the strategy in logs and results.
	Name() string

	// Extract returns the document's plain text.
	Extract(ctx context.Context, data []byte) (string, error)
}

// Result is a successful extraction with its provenance.
type Result struct {
	Text     string
	Strategy string
}

// Pipeline runs strategies in order and accepts the first usable result.
type Pipeline struct {
	strategies []Strategy
	logger     *log.Logger
}

// NewPipeline creates a Pipeline over the given strategies.
func NewPipeline(logger *log.Logger, strategies ...Strategy) Pipeline {
	return Pipeline{
		strategies: strategies,
		logger:     logger,
	}
}

// DefaultPipeline assembles the production strategy chain: the pure Go
// reader first, then the pdfium engine, then poppler's pdftotext.
func DefaultPipeline(logger *log.Logger) Pipeline {
	return NewPipeline(logger,
		NewPureGoStrategy(logger),
		NewPdfiumStrategy(logger),
		NewPopplerStrategy(),
	)
}

// Extract runs the chain. Strategy failures are logged and the next strategy
// is tried, except for encrypted documents, which fail immediately. All
// errors are reported as pitch.ErrPDFProcessing.
func (p Pipeline) Extract(ctx context.Context, data []byte) (Result, error) {
	if len(p.strategies) == 0 {
		return Result{}, fmt.Errorf("%w: no extraction strategies configured", pitch.ErrPDFProcessing)
	}

	for _, s := range p.strategies {
		text, err := s.Extract(ctx, data)
		if err != nil {
			if errors.Is(err, ErrEncrypted) {
				p.logger.WarnContext(ctx, "encrypted pdf rejected", "strategy", s.Name())
				return Result{}, fmt.Errorf("%w: document is password protected", pitch.ErrPDFProcessing)
			}
			p.logger.WarnContext(ctx, "extraction strategy failed",
				"strategy", s.Name(),
				"error", err,
			)
			continue
		}

		trimmed := strings.TrimSpace(text)
		if len(trimmed) > minTextLength {
			p.logger.InfoContext(ctx, "text extracted",
				"strategy", s.Name(),
				"characters", len(trimmed),
			)
			return Result{Text: trimmed, Strategy: s.Name()}, nil
		}

		p.logger.DebugContext(ctx, "extraction result below threshold",
			"strategy", s.Name(),
			"characters", len(trimmed),
		)
	}

	return Result{}, fmt.Errorf("%w: could not extract text from PDF, the file may be image-based or corrupted", pitch.ErrPDFProcessing)
}
