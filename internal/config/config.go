package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server           ServerConfig
	Logger           LoggerConfig
	LLM              LLMConfig
	Pricing          PricingConfig
	Redis            RedisConfig
	Upload           UploadConfig
	CacheTTLs        CacheTTLConfig
	ResponseTemplate string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

// LLMConfig selects the hosted model. Provider is "openai" or "ollama".
type LLMConfig struct {
	Provider    string
	Model       string
	Temperature float64
	Timeout     time.Duration
	OpenAIKey   string
	OllamaURL   string
}

// PricingConfig is the USD price per 1000 tokens used for the cost line.
type PricingConfig struct {
	PromptPer1K     float64
	CompletionPer1K float64
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type UploadConfig struct {
	MaxBytes int64
}

type CacheTTLConfig struct {
	ExtractedText string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 180)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "gpt-3.5-turbo")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout", 120)
	v.SetDefault("llm.ollama_url", "http://localhost:11434")
	v.SetDefault("pricing.prompt_per_1k", 0.0015)
	v.SetDefault("pricing.completion_per_1k", 0.002)
	v.SetDefault("redis.db", 0)
	v.SetDefault("upload.max_bytes", 10*1024*1024)
	v.SetDefault("cache_ttls.extracted_text", "24h")
}

// LoadConfig reads config.yaml when present, applies defaults and then the
// environment. It is called once at startup; the result is read-only.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		LLM: LLMConfig{
			Provider:    v.GetString("llm.provider"),
			Model:       v.GetString("llm.model"),
			Temperature: v.GetFloat64("llm.temperature"),
			Timeout:     time.Duration(v.GetInt("llm.timeout")) * time.Second,
			OpenAIKey:   v.GetString("llm.openai_api_key"),
			OllamaURL:   v.GetString("llm.ollama_url"),
		},
		Pricing: PricingConfig{
			PromptPer1K:     v.GetFloat64("pricing.prompt_per_1k"),
			CompletionPer1K: v.GetFloat64("pricing.completion_per_1k"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Upload: UploadConfig{
			MaxBytes: v.GetInt64("upload.max_bytes"),
		},
		CacheTTLs: CacheTTLConfig{
			ExtractedText: v.GetString("cache_ttls.extracted_text"),
		},
		ResponseTemplate: v.GetString("response_template"),
	}

	// Override with the conventional environment variable names
	if openAIKey := os.Getenv("OPENAI_API_KEY"); openAIKey != "" {
		config.LLM.OpenAIKey = openAIKey
	}
	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		config.LLM.Provider = provider
	}
	if model := os.Getenv("LLM_MODEL"); model != "" {
		config.LLM.Model = model
	}
	if ollamaURL := os.Getenv("LLM_SERVER"); ollamaURL != "" {
		config.LLM.OllamaURL = ollamaURL
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		v.Set("server.port", port)
		config.Server.Port = v.GetInt("server.port")
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if templatePath := os.Getenv("RESPONSE_TEMPLATE_PATH"); templatePath != "" {
		config.ResponseTemplate = templatePath
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the settings that would otherwise fail on the first request.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "openai":
		if c.LLM.OpenAIKey == "" {
			return errors.New("OPENAI_API_KEY is required for the openai provider")
		}
	case "ollama":
		if c.LLM.OllamaURL == "" {
			return errors.New("llm.ollama_url is required for the ollama provider")
		}
	default:
		return fmt.Errorf("unsupported llm provider: %q", c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		return errors.New("llm.model must not be empty")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	return nil
}

// ParseTTLStringOrDefault parses a duration like "24h", falling back to def.
func (c *Config) ParseTTLStringOrDefault(ttlString string, def time.Duration) time.Duration {
	if ttlString == "" {
		return def
	}
	d, err := time.ParseDuration(ttlString)
	if err != nil || d < 0 {
		return def
	}
	return d
}
