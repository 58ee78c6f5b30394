package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"aspects/internal/game/ending"
	"aspects/internal/llm"
	"aspects/internal/observability"
)

const (
	NarratorStatic = "static"
	NarratorLLM    = "llm"
)

type Config struct {
	Debug     bool   `mapstructure:"debug"`
	DebugLog  string `mapstructure:"debug_log"`
	Level     string `mapstructure:"level"`
	Script    string `mapstructure:"script"`
	Threshold int    `mapstructure:"threshold"`
	SkipIntro bool   `mapstructure:"skip_intro"`
	Sound     bool   `mapstructure:"sound"`
	FPS       int    `mapstructure:"fps"`

	Narrator NarratorConfig `mapstructure:"narrator"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

type NarratorConfig struct {
	Mode    string `mapstructure:"mode"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	LogPath string `mapstructure:"log_path"`
}

type TracingConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Endpoint     string `mapstructure:"endpoint"`
	Environment  string `mapstructure:"environment"`
	LangfuseHost string `mapstructure:"langfuse_host"`
	PublicKey    string `mapstructure:"public_key"`
	SecretKey    string `mapstructure:"secret_key"`
}

// SetDefaults registers every key so environment overrides reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("debug_log", "debug.log")
	v.SetDefault("level", "")
	v.SetDefault("script", "")
	v.SetDefault("threshold", ending.DefaultThreshold)
	v.SetDefault("skip_intro", false)
	v.SetDefault("sound", true)
	v.SetDefault("fps", 20)

	v.SetDefault("narrator.mode", NarratorStatic)
	v.SetDefault("narrator.model", llm.DefaultModel)
	v.SetDefault("narrator.base_url", "")
	v.SetDefault("narrator.api_key", "")
	v.SetDefault("narrator.log_path", "narration.db")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.environment", "development")
	v.SetDefault("tracing.langfuse_host", "https://cloud.langfuse.com")
	v.SetDefault("tracing.public_key", "")
	v.SetDefault("tracing.secret_key", "")
}

// NewViper prepares a viper instance reading aspects.yaml from the working
// directory or ~/.config/aspects, or configFile when it is set. Environment
// variables use the ASPECTS_ prefix; the usual OpenAI, OTEL and Langfuse
// variables are honoured too.
func NewViper(configFile string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("aspects")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/aspects")
	}

	v.SetEnvPrefix("ASPECTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("narrator.api_key", "ASPECTS_NARRATOR_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("narrator.base_url", "ASPECTS_NARRATOR_BASE_URL", "OPENAI_BASE_URL")
	_ = v.BindEnv("tracing.enabled", "ASPECTS_TRACING_ENABLED", "OTEL_TRACES_ENABLED")
	_ = v.BindEnv("tracing.environment", "ASPECTS_TRACING_ENVIRONMENT", "ENVIRONMENT")
	_ = v.BindEnv("tracing.langfuse_host", "ASPECTS_TRACING_LANGFUSE_HOST", "LANGFUSE_HOST")
	_ = v.BindEnv("tracing.public_key", "ASPECTS_TRACING_PUBLIC_KEY", "LANGFUSE_PUBLIC_KEY")
	_ = v.BindEnv("tracing.secret_key", "ASPECTS_TRACING_SECRET_KEY", "LANGFUSE_SECRET_KEY")

	return v
}

// Load reads the config file, if any, and decodes the merged settings.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Threshold <= 0 {
		return fmt.Errorf("threshold must be positive, got %d", c.Threshold)
	}
	if c.FPS <= 0 || c.FPS > 120 {
		return fmt.Errorf("fps must be between 1 and 120, got %d", c.FPS)
	}
	switch c.Narrator.Mode {
	case NarratorStatic:
	case NarratorLLM:
		if c.Narrator.APIKey == "" {
			return errors.New("narrator mode llm needs an API key (OPENAI_API_KEY)")
		}
	default:
		return fmt.Errorf("unknown narrator mode %q", c.Narrator.Mode)
	}
	return nil
}

func (c Config) LLM() llm.Config {
	return llm.Config{
		APIKey:     c.Narrator.APIKey,
		Model:      c.Narrator.Model,
		BaseURL:    c.Narrator.BaseURL,
		MaxRetries: 2,
	}
}

func (c Config) Observability(version string) observability.Config {
	return observability.Config{
		ServiceName:    "aspects",
		ServiceVersion: version,
		Environment:    c.Tracing.Environment,
		Enabled:        c.Tracing.Enabled,
		Endpoint:       c.Tracing.Endpoint,
		LangfuseHost:   c.Tracing.LangfuseHost,
		PublicKey:      c.Tracing.PublicKey,
		SecretKey:      c.Tracing.SecretKey,
	}
}
