package pitch

import (
	"fmt"
	"html"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/microcosm-cc/bluemonday"
)

// Validator checks and sanitizes analysis input.
type Validator struct {
	minLength    int
	maxLength    int
	maxFileSize  int64
	allowedTypes []string
	policy       *bluemonday.Policy
}

// NewValidator creates a Validator with the given bounds and MIME allow-list.
func NewValidator(minLength, maxLength int, maxFileSize int64, allowedTypes []string) Validator {
	types := make([]string, len(allowedTypes))
	copy(types, allowedTypes)
	return Validator{
		minLength:    minLength,
		maxLength:    maxLength,
		maxFileSize:  maxFileSize,
		allowedTypes: types,
		policy:       bluemonday.StrictPolicy(),
	}
}

// ValidatePitchContent validates and sanitizes pitch text. All markup is
// stripped and the result is entity-escaped before it reaches the model.
func (v Validator) ValidatePitchContent(pitch string) (string, error) {
	trimmed := strings.TrimSpace(pitch)
	if trimmed == "" {
		return "", fmt.Errorf("%w: pitch content cannot be empty", ErrValidation)
	}

	if len(trimmed) < v.minLength {
		return "", fmt.Errorf("%w: pitch content too short, minimum %d characters required", ErrValidation, v.minLength)
	}
	if len(trimmed) > v.maxLength {
		return "", fmt.Errorf("%w: pitch content too long, maximum %d characters allowed", ErrValidation, v.maxLength)
	}

	sanitized := v.policy.Sanitize(trimmed)
	return html.EscapeString(sanitized), nil
}

// ValidateFile validates an uploaded file's size and type. The MIME type is
// sniffed from content; when sniffing is inconclusive the check falls back
// to the filename extension.
func (v Validator) ValidateFile(content []byte, filename string) error {
	if len(content) == 0 {
		return fmt.Errorf("%w: file is empty", ErrValidation)
	}

	if int64(len(content)) > v.maxFileSize {
		return fmt.Errorf("%w: file too large, maximum size %.1fMB", ErrValidation, float64(v.maxFileSize)/(1024*1024))
	}

	mtype := mimetype.Detect(content)
	for _, allowed := range v.allowedTypes {
		if mtype.Is(allowed) {
			return nil
		}
	}

	// Inconclusive sniffs fall back to the extension allow-list.
	if mtype.Is("application/octet-stream") || mtype.Is("text/plain") {
		lower := strings.ToLower(filename)
		if strings.HasSuffix(lower, ".pdf") || strings.HasSuffix(lower, ".txt") {
			return nil
		}
		return fmt.Errorf("%w: only PDF and TXT files are allowed", ErrValidation)
	}

	return fmt.Errorf("%w: file type %q not allowed, allowed types: %s",
		ErrValidation, mtype.String(), strings.Join(v.allowedTypes, ", "))
}
