package config

import (
	"fmt"
	"reflect"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	EnvVars EnvVars  `json:"env"`
	Prompts *Prompts `json:"-"`
}

// EnvVars holds environment variables required by the application.
// Fields tagged `optional:"true"` are skipped by CheckConfigEnvFields.
type EnvVars struct {
	Port         string `env:"PORT" envDefault:"8000"`
	DatabaseUrl  string `env:"DATABASE_URL" optional:"true"`
	JwtSecretKey string `env:"JWT_SECRET_KEY"`

	// Generation backend. "azure" runs chat completions against an Azure
	// OpenAI deployment; "anthropic" uses the Claude Messages API.
	AIProvider            string `env:"AI_PROVIDER" envDefault:"azure" optional:"true"`
	AzureOpenAIEndpoint   string `env:"AZURE_OPENAI_ENDPOINT"`
	AzureOpenAIAPIKey     string `env:"AZURE_OPENAI_API_KEY"`
	AzureOpenAIDeployment string `env:"AZURE_OPENAI_DEPLOYMENT" envDefault:"gpt35" optional:"true"`
	AnthropicAPIKey       string `env:"ANTHROPIC_API_KEY" optional:"true"`

	// Whisper transcription and TTS run against the public OpenAI API.
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`

	OpenWeatherAPIKey string `env:"OPENWEATHER_API_KEY" optional:"true"`

	AWSRegion          string `env:"AWS_REGION" optional:"true"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" optional:"true"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" optional:"true"`
	S3Bucket           string `env:"S3_BUCKET" optional:"true"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173" optional:"true"`

	DefaultLocation string `env:"DEFAULT_LOCATION" envDefault:"Delhi, India" optional:"true"`
	DefaultMarket   string `env:"DEFAULT_MARKET" envDefault:"Delhi" optional:"true"`
}

// Tuning holds per-call generation knobs for the answer pipeline. These are
// configuration, not contract: translation calls run near-deterministic with
// a small response budget, answer calls run with more varied phrasing.
type Tuning struct {
	TranslationMaxTokens   int
	TranslationTemperature float32
	AnswerMaxTokens        int
	AnswerTemperature      float32
}

// DefaultTuning returns the deployed generation knobs.
func DefaultTuning() Tuning {
	return Tuning{
		TranslationMaxTokens:   500,
		TranslationTemperature: 0.1,
		AnswerMaxTokens:        1000,
		AnswerTemperature:      0.7,
	}
}

// LoadConfig parses environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	var config Config
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}
	return &config, nil
}

// CheckConfigEnvFields validates that all required EnvVars fields are set.
func (c *Config) CheckConfigEnvFields() error {
	return checkFieldsRecursive(reflect.ValueOf(c.EnvVars))
}

func checkFieldsRecursive(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := v.Type().Field(i)
		if fieldType.Tag.Get("optional") == "true" {
			continue
		}
		if isZeroValue(field) {
			return fmt.Errorf("$%s must be set", fieldType.Name)
		}
		if field.Kind() == reflect.Struct {
			if err := checkFieldsRecursive(field); err != nil {
				return err
			}
		}
	}
	return nil
}

func isZeroValue(v reflect.Value) bool {
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Map {
		return v.Len() == 0
	}
	return v.Interface() == reflect.Zero(v.Type()).Interface()
}
