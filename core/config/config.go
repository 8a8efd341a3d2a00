package config

import (
	"reflect"
	"strings"
	"time"

	"oss-mcp/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ModeCLI is the NODE_ENV value that selects the stdio transport.
const ModeCLI = "cli"

// Config holds the ambient configuration for the application.
// OSS bucket configurations are resolved separately by Resolve.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Storage holds client options shared by every bucket.
	Storage StorageOptions `mapstructure:"storage"`
	// NodeEnv selects the stdio transport when set to "cli".
	NodeEnv string `mapstructure:"node_env" default:""`
}

// StorageOptions holds settings applied to every storage client.
type StorageOptions struct {
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Timeout returns the configured timeout as a duration.
func (o StorageOptions) Timeout() time.Duration {
	return time.Duration(o.TimeoutSeconds) * time.Second
}

// StdioRequested reports whether the environment asks for the stdio transport.
func (c *Config) StdioRequested() bool {
	return c.NodeEnv == ModeCLI
}

// LoadConfig loads configuration from environment variables and .env file.
// Variables from the .env file are exported to the process environment so the
// OSS_CONFIG_* and PORT lookups in Resolve see them as well. Variables already
// set in the environment take precedence over the file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Load(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. LOG_LEVEL -> log.level)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
