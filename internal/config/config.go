package config

import (
	"fmt"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Inference InferenceConfig `mapstructure:"inference"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Mail      MailConfig      `mapstructure:"mail"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port" validate:"gt=0,lte=65535"`
	CORS              CORSConfig    `mapstructure:"cors"`
	AdminToken        string        `mapstructure:"admin_token"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
	// TrustForwardedFor is only safe behind a proxy that appends the peer
	// address to X-Forwarded-For.
	TrustForwardedFor bool          `mapstructure:"trust_forwarded_for"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RedisConfig struct {
	URL         string        `mapstructure:"url" validate:"required"`
	Password    string        `mapstructure:"password"`
	TLS         bool          `mapstructure:"tls"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

// InferenceConfig declares the model providers, the named models with their
// prompts, and which model serves each route.
type InferenceConfig struct {
	Providers        map[string]ProviderConfig `mapstructure:"providers" validate:"required,dive"`
	Models           map[string]ModelConfig    `mapstructure:"models" validate:"required,dive"`
	Transcript       RouteConfig               `mapstructure:"transcript"`
	Translate        RouteConfig               `mapstructure:"translate"`
	MaxRetryAttempts uint                      `mapstructure:"max_retry_attempts"`
	Timeout          time.Duration             `mapstructure:"timeout"`
}

type ProviderConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	APIKey  string `mapstructure:"api_key"`
}

type ModelConfig struct {
	Provider string        `mapstructure:"provider" validate:"required"`
	Model    string        `mapstructure:"model" validate:"required"`
	Prompts  PromptsConfig `mapstructure:"prompts"`
}

// PromptsConfig holds prompt templates. {target_lang} and {source_lang} are substituted.
type PromptsConfig struct {
	Transcript string `mapstructure:"transcript"`
	Translate  string `mapstructure:"translate"`
}

// RouteConfig selects models by name. UseSecondary is an operator toggle;
// the secondary model is never used as an automatic fallback.
type RouteConfig struct {
	Main         string `mapstructure:"main" validate:"required"`
	Secondary    string `mapstructure:"secondary"`
	UseSecondary bool   `mapstructure:"use_secondary"`
}

// Selected returns the name of the model currently serving the route.
func (r RouteConfig) Selected() string {
	if r.UseSecondary && r.Secondary != "" {
		return r.Secondary
	}
	return r.Main
}

type CacheConfig struct {
	TranscriptTTL      time.Duration `mapstructure:"transcript_ttl" validate:"gt=0"`
	TicketTTL          time.Duration `mapstructure:"ticket_ttl" validate:"gt=0"`
	EmailValidationTTL time.Duration `mapstructure:"email_validation_ttl" validate:"gt=0"`
}

type RateLimitConfig struct {
	InitialTTL     time.Duration `mapstructure:"initial_ttl" validate:"gt=0"`
	BlockThreshold time.Duration `mapstructure:"block_threshold" validate:"gt=0"`
	MaxTTL         time.Duration `mapstructure:"max_ttl" validate:"gtfield=BlockThreshold"`
}

type LedgerConfig struct {
	SignupCredits      int  `mapstructure:"signup_credits" validate:"gte=0"`
	DebitCost          int  `mapstructure:"debit_cost" validate:"gt=0"`
	MaxConflictRetries uint `mapstructure:"max_conflict_retries"`
}

type MailConfig struct {
	Endpoint      string        `mapstructure:"endpoint" validate:"omitempty,url"`
	APIKey        string        `mapstructure:"api_key"`
	Sender        string        `mapstructure:"sender" validate:"omitempty,email"`
	Subject       string        `mapstructure:"subject"`
	ValidationURL string        `mapstructure:"validation_url" validate:"required,contains=%s"`
	Timeout       time.Duration `mapstructure:"timeout"`
	// Template overrides the embedded validation mail body.
	Template      string        `mapstructure:"template"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/transcript")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"*"})
	v.SetDefault("server.request_timeout", 60*time.Second)
	v.SetDefault("server.trust_forwarded_for", false)
	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "design_emotion")
	v.SetDefault("database.username", "transcript")
	v.SetDefault("inference.providers.openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("inference.providers.openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("inference.models.gpt4o.provider", "openai")
	v.SetDefault("inference.models.gpt4o.model", "gpt-4o")
	v.SetDefault("inference.models.gpt4o.prompts.transcript", defaultTranscriptPrompt)
	v.SetDefault("inference.models.gpt4o.prompts.translate", defaultTranslatePrompt)
	v.SetDefault("inference.models.gpt41-or.provider", "openrouter")
	v.SetDefault("inference.models.gpt41-or.model", "openai/gpt-4.1")
	v.SetDefault("inference.models.gpt41-or.prompts.transcript", defaultTranscriptPrompt)
	v.SetDefault("inference.models.gpt41-or.prompts.translate", defaultTranslatePrompt)
	v.SetDefault("inference.transcript.main", "gpt41-or")
	v.SetDefault("inference.transcript.secondary", "gpt4o")
	v.SetDefault("inference.translate.main", "gpt4o")
	v.SetDefault("inference.translate.secondary", "gpt41-or")
	v.SetDefault("inference.max_retry_attempts", 0)
	v.SetDefault("inference.timeout", 60*time.Second)
	v.SetDefault("cache.transcript_ttl", 15*24*time.Hour)
	v.SetDefault("cache.ticket_ttl", 240*time.Second)
	v.SetDefault("cache.email_validation_ttl", 24*time.Hour)
	v.SetDefault("rate_limit.initial_ttl", 30*time.Second)
	v.SetDefault("rate_limit.block_threshold", 100*time.Second)
	v.SetDefault("rate_limit.max_ttl", 72*time.Hour)
	v.SetDefault("ledger.signup_credits", 0)
	v.SetDefault("ledger.debit_cost", 1)
	v.SetDefault("ledger.max_conflict_retries", 3)
	v.SetDefault("mail.subject", "Confirm your registration - Design Emotion")
	v.SetDefault("mail.validation_url", "https://design-emotion.org/validate-email?validation_key=%s")
	v.SetDefault("mail.timeout", 10*time.Second)

	// Secrets are bound to environment variables only (not from config file)
	secrets := map[string]string{
		"inference.providers.openai.api_key":     "OPENAI_API_KEY",
		"inference.providers.openrouter.api_key": "OPENROUTER_API_KEY",
		"redis.password":                         "REDIS_PASSWORD",
		"database.password":                      "DB_PASSWORD",
		"mail.api_key":                           "MAIL_API_KEY",
		"server.admin_token":                     "ADMIN_TOKEN",
	}
	for key, env := range secrets {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

const defaultTranscriptPrompt = `Analyse this screenshot of a web page and focus on the emotions and the overall mood carried by its structure, colours and graphic elements. Ignore the text unless it directly contributes to the emotion.
Translate these emotions into a sensory and intellectual experience for a blind person, using references to touch, sound, smell, taste or abstract concepts. Never refer explicitly to visual aspects or layout, and ignore advertising that looks out of context.
Keep it compact (between 400 and 500 characters) and do not embellish. Start with "This site ...".
Write the transcript in the language: {target_lang}`

const defaultTranslatePrompt = `Translate from {source_lang} to {target_lang}. If it is the same language, return the given text with no additional comment. If you translate, return only the translation.`
