package extractor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// defaultPdftotext is the poppler binary looked up on PATH.
const defaultPdftotext = "pdftotext"

// PopplerStrategy shells out to poppler's pdftotext. Its -layout mode keeps
// column structure that the in-process extractors flatten, which helps with
// slide-style decks. It is last in the chain because it requires poppler to
// be installed on the host.
type PopplerStrategy struct {
	binary string
}

// NewPopplerStrategy creates the poppler extraction strategy.
func NewPopplerStrategy() PopplerStrategy {
	return PopplerStrategy{binary: defaultPdftotext}
}

// NewPopplerStrategyWithBinary creates the strategy with a specific binary
// path, for tests and non-standard installs.
func NewPopplerStrategyWithBinary(binary string) PopplerStrategy {
	return PopplerStrategy{binary: binary}
}

// Name identifies the strategy.
func (PopplerStrategy) Name() string { return "poppler" }

// Extract writes the document to a temporary file and runs
// pdftotext -layout over it, reading the text from stdout.
func (s PopplerStrategy) Extract(ctx context.Context, data []byte) (string, error) {
	if _, err := exec.LookPath(s.binary); err != nil {
		return "", fmt.Errorf("pdftotext not available: %w", err)
	}

	tmp, err := os.CreateTemp("", "polaris-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.binary, "-layout", "-enc", "UTF-8", "-eol", "unix", tmp.Name(), "-")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("pdftotext: %w: %s", err, detail)
		}
		return "", fmt.Errorf("pdftotext: %w", err)
	}

	text := stdout.String()
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}
