// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost               = "0.0.0.0"
	DefaultPort               = 8000
	DefaultLogLevel           = "INFO"
	DefaultMinPitchLength     = 90
	DefaultMaxPitchLength     = 50000
	DefaultMaxFileSize        = 10 * 1024 * 1024 // 10MB
	DefaultRateLimitPerMinute = 10
	DefaultOpenAIModel        = "gpt-4.1"
	DefaultOpenAITimeout      = 60 * time.Second
	DefaultOpenAIMaxTokens    = 4000
	// Retries are off by default. A failed model call is reported to the
	// caller rather than repeated; set OPENAI_MAX_RETRIES to opt in.
	DefaultOpenAIMaxRetries   = 0
	DefaultOpenAIInitialDelay = 2 * time.Second
	DefaultOpenAIBackoff      = 2.0
	DefaultDBURL              = "sqlite:///polaris.db"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// Endpoint configures the OpenAI-compatible analysis endpoint.
type Endpoint struct {
	baseURL       string
	model         string
	apiKey        string
	timeout       time.Duration
	maxTokens     int
	maxRetries    int
	initialDelay  time.Duration
	backoffFactor float64
}

// NewEndpoint creates a new Endpoint with defaults.
func NewEndpoint() Endpoint {
	return Endpoint{
		model:         DefaultOpenAIModel,
		timeout:       DefaultOpenAITimeout,
		maxTokens:     DefaultOpenAIMaxTokens,
		maxRetries:    DefaultOpenAIMaxRetries,
		initialDelay:  DefaultOpenAIInitialDelay,
		backoffFactor: DefaultOpenAIBackoff,
	}
}

// BaseURL returns the base URL for the endpoint.
func (e Endpoint) BaseURL() string { return e.baseURL }

// Model returns the model identifier.
func (e Endpoint) Model() string { return e.model }

// APIKey returns the API key.
func (e Endpoint) APIKey() string { return e.apiKey }

// Timeout returns the request timeout.
func (e Endpoint) Timeout() time.Duration { return e.timeout }

// MaxTokens returns the output token ceiling.
func (e Endpoint) MaxTokens() int { return e.maxTokens }

// MaxRetries returns the maximum retry count.
func (e Endpoint) MaxRetries() int { return e.maxRetries }

// InitialDelay returns the initial retry delay.
func (e Endpoint) InitialDelay() time.Duration { return e.initialDelay }

// BackoffFactor returns the retry backoff multiplier.
func (e Endpoint) BackoffFactor() float64 { return e.backoffFactor }

// IsConfigured returns true if the endpoint has an API key.
func (e Endpoint) IsConfigured() bool {
	return e.apiKey != ""
}

// EndpointOption is a functional option for Endpoint.
type EndpointOption func(*Endpoint)

// WithBaseURL sets the base URL.
func WithBaseURL(url string) EndpointOption {
	return func(e *Endpoint) { e.baseURL = url }
}

// WithModel sets the model.
func WithModel(model string) EndpointOption {
	return func(e *Endpoint) { e.model = model }
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) EndpointOption {
	return func(e *Endpoint) { e.apiKey = key }
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) EndpointOption {
	return func(e *Endpoint) { e.timeout = d }
}

// WithMaxTokens sets the output token ceiling.
func WithMaxTokens(n int) EndpointOption {
	return func(e *Endpoint) { e.maxTokens = n }
}

// WithMaxRetries sets the maximum retry count.
func WithMaxRetries(n int) EndpointOption {
	return func(e *Endpoint) { e.maxRetries = n }
}

// WithInitialDelay sets the initial retry delay.
func WithInitialDelay(d time.Duration) EndpointOption {
	return func(e *Endpoint) { e.initialDelay = d }
}

// WithBackoffFactor sets the retry backoff multiplier.
func WithBackoffFactor(f float64) EndpointOption {
	return func(e *Endpoint) { e.backoffFactor = f }
}

// NewEndpointWithOptions creates an Endpoint with functional options.
func NewEndpointWithOptions(opts ...EndpointOption) Endpoint {
	e := NewEndpoint()
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	host               string
	port               int
	dbURL              string
	logLevel           string
	logFormat          LogFormat
	minPitchLength     int
	maxPitchLength     int
	maxFileSize        int64
	allowedFileTypes   []string
	corsOrigins        []string
	rateLimitPerMinute int
	promptPath         string
	openAI             Endpoint
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:               DefaultHost,
		port:               DefaultPort,
		dbURL:              DefaultDBURL,
		logLevel:           DefaultLogLevel,
		logFormat:          LogFormatPretty,
		minPitchLength:     DefaultMinPitchLength,
		maxPitchLength:     DefaultMaxPitchLength,
		maxFileSize:        DefaultMaxFileSize,
		allowedFileTypes:   []string{"application/pdf"},
		corsOrigins:        []string{"http://localhost:3000", "http://localhost:3001"},
		rateLimitPerMinute: DefaultRateLimitPerMinute,
		openAI:             NewEndpoint(),
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// MinPitchLength returns the minimum accepted pitch length in characters.
func (c AppConfig) MinPitchLength() int { return c.minPitchLength }

// MaxPitchLength returns the maximum accepted pitch length in characters.
func (c AppConfig) MaxPitchLength() int { return c.maxPitchLength }

// MaxFileSize returns the upload size ceiling in bytes.
func (c AppConfig) MaxFileSize() int64 { return c.maxFileSize }

// AllowedFileTypes returns the MIME type allow-list for uploads.
func (c AppConfig) AllowedFileTypes() []string {
	types := make([]string, len(c.allowedFileTypes))
	copy(types, c.allowedFileTypes)
	return types
}

// CORSOrigins returns the allowed CORS origins.
func (c AppConfig) CORSOrigins() []string {
	origins := make([]string, len(c.corsOrigins))
	copy(origins, c.corsOrigins)
	return origins
}

// RateLimitPerMinute returns the per-client request budget for the
// analysis endpoints.
func (c AppConfig) RateLimitPerMinute() int { return c.rateLimitPerMinute }

// PromptPath returns the path to a prompt template override, or empty
// to use the embedded default.
func (c AppConfig) PromptPath() string { return c.promptPath }

// OpenAI returns the analysis endpoint config.
func (c AppConfig) OpenAI() Endpoint { return c.openAI }

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithPitchLengthBounds sets the accepted pitch length range.
func WithPitchLengthBounds(minLen, maxLen int) AppConfigOption {
	return func(c *AppConfig) {
		if minLen > 0 {
			c.minPitchLength = minLen
		}
		if maxLen > 0 {
			c.maxPitchLength = maxLen
		}
	}
}

// WithMaxFileSize sets the upload size ceiling.
func WithMaxFileSize(n int64) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.maxFileSize = n
		}
	}
}

// WithAllowedFileTypes sets the MIME type allow-list.
func WithAllowedFileTypes(types []string) AppConfigOption {
	return func(c *AppConfig) {
		c.allowedFileTypes = make([]string, len(types))
		copy(c.allowedFileTypes, types)
	}
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) AppConfigOption {
	return func(c *AppConfig) {
		c.corsOrigins = make([]string, len(origins))
		copy(c.corsOrigins, origins)
	}
}

// WithRateLimitPerMinute sets the per-client analysis request budget.
func WithRateLimitPerMinute(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.rateLimitPerMinute = n
		}
	}
}

// WithPromptPath sets the prompt template override path.
func WithPromptPath(path string) AppConfigOption {
	return func(c *AppConfig) { c.promptPath = path }
}

// WithOpenAIEndpoint sets the analysis endpoint.
func WithOpenAIEndpoint(e Endpoint) AppConfigOption {
	return func(c *AppConfig) { c.openAI = e }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
// The API key is shown only as a presence flag.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("log_level", c.logLevel),
		slog.String("db_url", c.maskedDBURL()),
		slog.Int("min_pitch_length", c.minPitchLength),
		slog.Int("max_pitch_length", c.maxPitchLength),
		slog.Int64("max_file_size", c.maxFileSize),
		slog.Int("rate_limit_per_minute", c.rateLimitPerMinute),
		slog.String("openai_base_url", c.openAI.BaseURL()),
		slog.String("openai_model", c.openAI.Model()),
		slog.Bool("openai_configured", c.openAI.IsConfigured()),
	}
}

func (c AppConfig) maskedDBURL() string {
	if strings.HasPrefix(c.dbURL, "sqlite:") {
		return c.dbURL
	}
	return "postgres://***@***"
}

// ParseList parses a comma-separated string into trimmed entries.
func ParseList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
