package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const DefaultObfuscationMask = "***REDACTED***"

// DefaultSensitiveKeys is applied when no sensitive_keys entry exists in the
// configuration. An explicitly empty list disables redaction entirely and is
// kept as-is.
var DefaultSensitiveKeys = []string{
	"password",
	"creditCard",
	"creditCardNumber",
	"cardNumber",
	"cvv",
	"ssn",
	"apiKey",
	"token",
	"authorization",
}

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Obfuscation ObfuscationConfig `mapstructure:"obfuscation"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
}

type ObfuscationConfig struct {
	Enabled       bool     `mapstructure:"enabled"`
	Mask          string   `mapstructure:"mask"`
	SensitiveKeys []string `mapstructure:"sensitive_keys"`
}

type MetricsConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	EnableLatency bool `mapstructure:"enable_latency"`
}

type TelemetryConfig struct {
	Exporters []ExporterConfig `mapstructure:"exporters"`
}

type ExporterConfig struct {
	Name     string                 `mapstructure:"name"`
	Settings map[string]interface{} `mapstructure:"settings"`
}

var globalConfig Config

func Load(configPath string) error {
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("could not load main config file: %w", err)
	}

	setDefaultValues()

	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	v := viper.New()
	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.metrics_port", 9090)
	v.SetDefault("obfuscation.enabled", true)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.enable_latency", true)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
		}
		// fall through: defaults plus environment variables still apply
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues() {
	if globalConfig.Obfuscation.Mask == "" {
		globalConfig.Obfuscation.Mask = DefaultObfuscationMask
	}
	// nil means the key was absent; an explicit empty list stays empty.
	if globalConfig.Obfuscation.SensitiveKeys == nil {
		globalConfig.Obfuscation.SensitiveKeys = append([]string(nil), DefaultSensitiveKeys...)
	}
}

func GetConfig() *Config {
	return &globalConfig
}
