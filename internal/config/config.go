package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// apiKeyPlaceholder is the sentinel shipped in example config; a key left at
// this value is treated as not configured.
const apiKeyPlaceholder = "your_groq_api_key_here"

type Config struct {
	Port     string
	LogLevel string

	DatabasePath string

	Groq   GroqConfig
	Export ExportConfig

	// MaxContentChars bounds the text sent upstream per analysis.
	MaxContentChars int
}

type GroqConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	TimeoutSec int
}

// ExportConfig drives the optional report-export object store.
type ExportConfig struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetEnvPrefix("INSIGHTFLOW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Port:            viper.GetString("port"),
		LogLevel:        viper.GetString("logLevel"),
		DatabasePath:    viper.GetString("databasePath"),
		MaxContentChars: viper.GetInt("maxContentChars"),
		Groq: GroqConfig{
			APIKey:     viper.GetString("groq.apiKey"),
			Model:      viper.GetString("groq.model"),
			BaseURL:    viper.GetString("groq.baseURL"),
			TimeoutSec: viper.GetInt("groq.timeoutSec"),
		},
		Export: ExportConfig{
			Enabled:         viper.GetBool("export.enabled"),
			Endpoint:        viper.GetString("export.endpoint"),
			AccessKeyID:     viper.GetString("export.accessKeyId"),
			SecretAccessKey: viper.GetString("export.secretAccessKey"),
			BucketName:      viper.GetString("export.bucketName"),
			UseSSL:          viper.GetBool("export.useSSL"),
		},
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("port", "8080")
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("databasePath", "./data/insightflow.db")
	viper.SetDefault("maxContentChars", 8000)

	viper.SetDefault("groq.model", "llama-3.3-70b-versatile")
	viper.SetDefault("groq.baseURL", "https://api.groq.com/openai/v1")
	viper.SetDefault("groq.timeoutSec", 60)

	viper.SetDefault("export.enabled", false)
	viper.SetDefault("export.endpoint", "localhost:9000")
	viper.SetDefault("export.accessKeyId", "minioadmin")
	viper.SetDefault("export.secretAccessKey", "minioadmin")
	viper.SetDefault("export.bucketName", "insightflow-reports")
	viper.SetDefault("export.useSSL", false)
}

// GroqConfigured reports whether a usable provider credential is present.
// The placeholder value from example config counts as missing.
func (c *Config) GroqConfigured() bool {
	return c.Groq.APIKey != "" && c.Groq.APIKey != apiKeyPlaceholder
}
