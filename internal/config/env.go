package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Field names map directly to environment variables; the OpenAI endpoint
// group uses an underscore delimiter (e.g. OPENAI_BASE_URL).
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8000)
	Port int `envconfig:"PORT" default:"8000"`

	// DBURL is the database connection URL.
	// Env: DB_URL (default: sqlite:///polaris.db)
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// MinPitchLength is the minimum accepted pitch length in characters.
	// Env: MIN_PITCH_LENGTH (default: 90)
	MinPitchLength int `envconfig:"MIN_PITCH_LENGTH" default:"90"`

	// MaxPitchLength is the maximum accepted pitch length in characters.
	// Env: MAX_PITCH_LENGTH (default: 50000)
	MaxPitchLength int `envconfig:"MAX_PITCH_LENGTH" default:"50000"`

	// MaxFileSize is the upload size ceiling in bytes.
	// Env: MAX_FILE_SIZE (default: 10485760)
	MaxFileSize int64 `envconfig:"MAX_FILE_SIZE" default:"10485760"`

	// AllowedFileTypes is a comma-separated MIME type allow-list.
	// Env: ALLOWED_FILE_TYPES (default: application/pdf)
	AllowedFileTypes string `envconfig:"ALLOWED_FILE_TYPES" default:"application/pdf"`

	// CORSOrigins is a comma-separated list of allowed CORS origins.
	// Env: CORS_ORIGINS
	CORSOrigins string `envconfig:"CORS_ORIGINS"`

	// RateLimitPerMinute is the per-client analysis request budget.
	// Env: RATE_LIMIT_PER_MINUTE (default: 10)
	RateLimitPerMinute int `envconfig:"RATE_LIMIT_PER_MINUTE" default:"10"`

	// PromptPath points to a prompt template override file.
	// Env: PROMPT_PATH
	PromptPath string `envconfig:"PROMPT_PATH"`

	// OpenAI configures the analysis LLM endpoint.
	OpenAI EndpointEnv `envconfig:"OPENAI"`
}

// EndpointEnv holds environment configuration for the analysis endpoint.
type EndpointEnv struct {
	// BaseURL is the base URL for the endpoint.
	// Env: OPENAI_BASE_URL
	BaseURL string `envconfig:"BASE_URL"`

	// Model is the model identifier.
	// Env: OPENAI_MODEL (default: gpt-4.1)
	Model string `envconfig:"MODEL" default:"gpt-4.1"`

	// APIKey is the API key for authentication.
	// Env: OPENAI_API_KEY
	APIKey string `envconfig:"API_KEY"`

	// Timeout is the request timeout in seconds.
	// Env: OPENAI_TIMEOUT (default: 60)
	Timeout float64 `envconfig:"TIMEOUT" default:"60"`

	// MaxTokens is the completion token ceiling.
	// Env: OPENAI_MAX_TOKENS (default: 4000)
	MaxTokens int `envconfig:"MAX_TOKENS" default:"4000"`

	// MaxRetries is the maximum number of retries. Zero disables
	// retrying; a failed model call is reported to the caller.
	// Env: OPENAI_MAX_RETRIES (default: 0)
	MaxRetries int `envconfig:"MAX_RETRIES" default:"0"`

	// InitialDelay is the initial retry delay in seconds.
	// Env: OPENAI_INITIAL_DELAY (default: 2.0)
	InitialDelay float64 `envconfig:"INITIAL_DELAY" default:"2.0"`

	// BackoffFactor is the retry backoff multiplier.
	// Env: OPENAI_BACKOFF_FACTOR (default: 2.0)
	BackoffFactor float64 `envconfig:"BACKOFF_FACTOR" default:"2.0"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "POLARIS" would require POLARIS_DB_URL instead of DB_URL.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = cfg.Apply(WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = cfg.Apply(WithPort(e.Port))
	}
	if e.DBURL != "" {
		cfg = cfg.Apply(WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		cfg = cfg.Apply(WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = cfg.Apply(WithLogFormat(parseLogFormat(e.LogFormat)))
	}

	cfg = cfg.Apply(
		WithPitchLengthBounds(e.MinPitchLength, e.MaxPitchLength),
		WithMaxFileSize(e.MaxFileSize),
		WithRateLimitPerMinute(e.RateLimitPerMinute),
	)

	if e.AllowedFileTypes != "" {
		cfg = cfg.Apply(WithAllowedFileTypes(ParseList(e.AllowedFileTypes)))
	}
	if e.CORSOrigins != "" {
		cfg = cfg.Apply(WithCORSOrigins(ParseList(e.CORSOrigins)))
	}
	if e.PromptPath != "" {
		cfg = cfg.Apply(WithPromptPath(e.PromptPath))
	}

	cfg = cfg.Apply(WithOpenAIEndpoint(e.OpenAI.ToEndpoint()))

	return cfg
}

// ToEndpoint converts EndpointEnv to Endpoint.
func (e EndpointEnv) ToEndpoint() Endpoint {
	opts := []EndpointOption{
		WithModel(e.Model),
		WithTimeout(time.Duration(e.Timeout * float64(time.Second))),
		WithMaxTokens(e.MaxTokens),
		WithMaxRetries(e.MaxRetries),
		WithInitialDelay(time.Duration(e.InitialDelay * float64(time.Second))),
		WithBackoffFactor(e.BackoffFactor),
	}

	if e.BaseURL != "" {
		opts = append(opts, WithBaseURL(e.BaseURL))
	}
	if e.APIKey != "" {
		opts = append(opts, WithAPIKey(e.APIKey))
	}

	return NewEndpointWithOptions(opts...)
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
