package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/adavadkardhruv13/Polaris-backend/internal/log"
)

// PureGoStrategy extracts text with the ledongthuc/pdf reader. It runs first
// because it needs no external engine, and it is the strategy that detects
// password protection.
type PureGoStrategy struct {
	logger *log.Logger
}

// NewPureGoStrategy creates the pure Go extraction strategy.
func NewPureGoStrategy(logger *log.Logger) PureGoStrategy {
	if logger == nil {
		logger = log.Default()
	}
	return PureGoStrategy{logger: logger}
}

// Name identifies the strategy.
func (PureGoStrategy) Name() string { return "purego" }

// Extract reads the document and concatenates the plain text of every page.
// Pages that fail to decode are skipped.
func (s PureGoStrategy) Extract(ctx context.Context, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if isEncryptedError(err) {
			return "", fmt.Errorf("%w: %s", ErrEncrypted, err)
		}
		return "", fmt.Errorf("open pdf: %w", err)
	}

	pageCount := reader.NumPage()
	if pageCount == 0 {
		return "", ErrNoText
	}

	var b strings.Builder
	for i := 1; i <= pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			s.logger.WarnContext(ctx, "page extraction failed",
				"strategy", s.Name(),
				"page", i,
				"error", err,
			)
			continue
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.TrimSpace(text))
	}

	if b.Len() == 0 {
		return "", ErrNoText
	}
	return b.String(), nil
}

func isEncryptedError(err error) bool {
	if errors.Is(err, pdf.ErrInvalidPassword) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "encrypted")
}
