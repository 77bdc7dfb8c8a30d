// Package service contains the application services that orchestrate the
// domain, extraction, provider and persistence layers.
package service

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	_ "embed"

	"github.com/google/uuid"

	"github.com/adavadkardhruv13/Polaris-backend/domain/pitch"
	"github.com/adavadkardhruv13/Polaris-backend/infrastructure/extractor"
	"github.com/adavadkardhruv13/Polaris-backend/infrastructure/provider"
	"github.com/adavadkardhruv13/Polaris-backend/internal/log"
	"github.com/adavadkardhruv13/Polaris-backend/internal/metrics"
)

//go:embed prompt.txt
var defaultPrompt string

// additionalRequirements is appended to every analysis prompt.
const additionalRequirements = `
Additional Analysis Requirements:
- Identify top 3 risk factors
- List top 3 strengths
- Ensure all scores are between 0-100
- Be specific and actionable in feedback
`

// Analyzer orchestrates a pitch analysis: validation, extraction for PDF
// input, the model call and response decoding.
type Analyzer struct {
	generator provider.TextGenerator
	validator pitch.Validator
	pipeline  extractor.Pipeline
	logger    *log.Logger
	metrics   *metrics.Metrics
	prompt    string
	maxTokens int
}

// AnalyzerOption is a functional option for Analyzer.
type AnalyzerOption func(*Analyzer)

// WithMaxTokens sets the completion token ceiling.
func WithMaxTokens(n int) AnalyzerOption {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxTokens = n
		}
	}
}

// WithPromptTemplate replaces the embedded prompt template.
func WithPromptTemplate(prompt string) AnalyzerOption {
	return func(a *Analyzer) {
		if strings.TrimSpace(prompt) != "" {
			a.prompt = prompt
		}
	}
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(
	generator provider.TextGenerator,
	validator pitch.Validator,
	pipeline extractor.Pipeline,
	logger *log.Logger,
	m *metrics.Metrics,
	opts ...AnalyzerOption,
) *Analyzer {
	a := &Analyzer{
		generator: generator,
		validator: validator,
		pipeline:  pipeline,
		logger:    logger,
		metrics:   m,
		prompt:    defaultPrompt,
		maxTokens: 4000,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// LoadPromptTemplate reads a prompt template override from disk.
func LoadPromptTemplate(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load prompt template: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("load prompt template: %s is empty", path)
	}
	return string(data), nil
}

// AnalyzeText validates, sanitizes and analyzes raw pitch text.
func (a *Analyzer) AnalyzeText(ctx context.Context, pitchText string) (pitch.Feedback, error) {
	sanitized, err := a.validator.ValidatePitchContent(pitchText)
	if err != nil {
		a.metrics.ObserveAnalysis(metrics.AnalysisTypeText, err)
		return pitch.Feedback{}, err
	}

	fb, err := a.analyze(ctx, sanitized)
	a.metrics.ObserveAnalysis(metrics.AnalysisTypeText, err)
	return fb, err
}

// AnalyzePDF validates the upload, extracts its text and analyzes it.
func (a *Analyzer) AnalyzePDF(ctx context.Context, data []byte, filename string) (pitch.Feedback, error) {
	if err := a.validator.ValidateFile(data, filename); err != nil {
		a.metrics.ObserveAnalysis(metrics.AnalysisTypePDF, err)
		return pitch.Feedback{}, err
	}

	extractStart := time.Now()
	result, err := a.pipeline.Extract(ctx, data)
	a.metrics.ObservePDFProcessing(time.Since(extractStart))
	if err != nil {
		a.metrics.ObserveAnalysis(metrics.AnalysisTypePDF, err)
		return pitch.Feedback{}, err
	}

	sanitized, err := a.validator.ValidatePitchContent(result.Text)
	if err != nil {
		a.metrics.ObserveAnalysis(metrics.AnalysisTypePDF, err)
		return pitch.Feedback{}, err
	}

	fb, err := a.analyze(ctx, sanitized)
	a.metrics.ObserveAnalysis(metrics.AnalysisTypePDF, err)
	return fb, err
}

// analyze runs the model call and assembles the feedback report. Every
// failure is reported as pitch.ErrAnalysis; the underlying detail stays in
// the logs.
func (a *Analyzer) analyze(ctx context.Context, content string) (pitch.Feedback, error) {
	start := time.Now()
	analysisID := uuid.NewString()
	ctx = log.WithAnalysisID(ctx, analysisID)

	a.logger.InfoContext(ctx, "starting pitch analysis")

	stats := pitch.ComputeStats(content)
	a.logger.DebugContext(ctx, "content statistics",
		"words", stats.WordCount,
		"sentences", stats.SentenceCount,
		"paragraphs", stats.ParagraphCount,
	)

	req := provider.NewChatCompletionRequest([]provider.Message{
		provider.SystemMessage(a.prompt + additionalRequirements),
		provider.UserMessage(a.buildUserPrompt(content)),
	}).WithMaxTokens(a.maxTokens).WithTemperature(0).WithJSONResponse()

	resp, err := a.generator.ChatCompletion(ctx, req)
	if err != nil {
		return pitch.Feedback{}, a.fail(ctx, start, fmt.Errorf("model call: %w", err))
	}

	fb, err := pitch.DecodeFeedback(resp.Content())
	if err != nil {
		return pitch.Feedback{}, a.fail(ctx, start, err)
	}

	elapsed := time.Since(start)
	fb.AnalysisID = analysisID
	fb.Timestamp = time.Now().UTC()
	fb.ProcessingTime = roundSeconds(elapsed)
	fb.ContentStatistics = &stats

	a.logger.InfoContext(ctx, "analysis complete",
		"duration", elapsed,
		"prompt_tokens", resp.Usage().PromptTokens(),
		"completion_tokens", resp.Usage().CompletionTokens(),
	)

	return fb, nil
}

func (a *Analyzer) buildUserPrompt(content string) string {
	var b strings.Builder
	b.WriteString("Pitch deck content:\n")
	b.WriteString(content)
	b.WriteString("\n\nRespond ONLY in JSON format:\n")
	b.WriteString(pitch.FormatInstructions())
	return b.String()
}

func (a *Analyzer) fail(ctx context.Context, start time.Time, err error) error {
	elapsed := time.Since(start)
	a.logger.ErrorContext(ctx, "analysis failed",
		"duration", elapsed,
		"error", err,
	)
	return fmt.Errorf("%w: %s", pitch.ErrAnalysis, err)
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
