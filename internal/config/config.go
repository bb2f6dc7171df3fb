package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	FactCheck  FactCheckConfig  `yaml:"factcheck" mapstructure:"factcheck"`
	Vision     VisionConfig     `yaml:"vision" mapstructure:"vision"`
	Verdict    VerdictConfig    `yaml:"verdict" mapstructure:"verdict"`
	Resilience ResilienceConfig `yaml:"resilience" mapstructure:"resilience"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Batch      BatchConfig      `yaml:"batch" mapstructure:"batch"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// FactCheckConfig holds Google Fact Check Tools settings. An empty Key
// disables claim lookups; every text check then takes the no-evidence path.
type FactCheckConfig struct {
	Key          string  `yaml:"key" mapstructure:"key"`
	BaseURL      string  `yaml:"base_url" mapstructure:"base_url"`
	LanguageCode string  `yaml:"language_code" mapstructure:"language_code"`
	TimeoutSecs  int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RatePerSec   float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// VisionConfig holds Google Cloud Vision settings. An empty Key disables
// image checks; uploads then get the unsupported-media response.
type VisionConfig struct {
	Key         string  `yaml:"key" mapstructure:"key"`
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	MaxResults  int     `yaml:"max_results" mapstructure:"max_results"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// VerdictConfig overrides the scoring word lists. Empty lists keep the
// built-in defaults.
type VerdictConfig struct {
	SensationalPatterns []string `yaml:"sensational_patterns" mapstructure:"sensational_patterns"`
	TrustedDomains      []string `yaml:"trusted_domains" mapstructure:"trusted_domains"`
}

// ResilienceConfig configures retries and circuit breaking for provider calls.
type ResilienceConfig struct {
	MaxAttempts      int `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoffMs int `yaml:"initial_backoff_ms" mapstructure:"initial_backoff_ms"`
	MaxBackoffMs     int `yaml:"max_backoff_ms" mapstructure:"max_backoff_ms"`
	FailureThreshold int `yaml:"failure_threshold" mapstructure:"failure_threshold"`
	ResetTimeoutSecs int `yaml:"reset_timeout_secs" mapstructure:"reset_timeout_secs"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port            int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins  []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	MaxUploadMB     int      `yaml:"max_upload_mb" mapstructure:"max_upload_mb"`
	ReadTimeoutSecs int      `yaml:"read_timeout_secs" mapstructure:"read_timeout_secs"`
}

// BatchConfig configures the batch and feed commands.
type BatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from .env, config.yaml and the environment.
// Environment variables use the FAKECHECK_ prefix; the provider keys are
// also read from GOOGLE_FACTCHECK_API_KEY and GOOGLE_VISION_API_KEY.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FAKECHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("factcheck.key", "FAKECHECK_FACTCHECK_KEY", "GOOGLE_FACTCHECK_API_KEY"); err != nil {
		return nil, eris.Wrap(err, "config: bind factcheck key")
	}
	if err := v.BindEnv("vision.key", "FAKECHECK_VISION_KEY", "GOOGLE_VISION_API_KEY"); err != nil {
		return nil, eris.Wrap(err, "config: bind vision key")
	}

	v.SetDefault("factcheck.base_url", "https://factchecktools.googleapis.com/v1alpha1")
	v.SetDefault("factcheck.language_code", "")
	v.SetDefault("factcheck.timeout_secs", 10)
	v.SetDefault("factcheck.rate_per_sec", 5.0)
	v.SetDefault("vision.base_url", "https://vision.googleapis.com/v1")
	v.SetDefault("vision.max_results", 5)
	v.SetDefault("vision.timeout_secs", 15)
	v.SetDefault("vision.rate_per_sec", 5.0)
	v.SetDefault("verdict.sensational_patterns", []string{})
	v.SetDefault("verdict.trusted_domains", []string{})
	v.SetDefault("resilience.max_attempts", 3)
	v.SetDefault("resilience.initial_backoff_ms", 250)
	v.SetDefault("resilience.max_backoff_ms", 2000)
	v.SetDefault("resilience.failure_threshold", 5)
	v.SetDefault("resilience.reset_timeout_secs", 30)
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.max_upload_mb", 10)
	v.SetDefault("server.read_timeout_secs", 30)
	v.SetDefault("batch.max_concurrent", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
