package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DefaultConfigName is the configuration used when no name is given.
const DefaultConfigName = "default"

// ErrInvalidConfig is returned when a storage configuration is malformed.
var ErrInvalidConfig = errors.New("invalid storage config")

// Config holds the connection parameters for one OSS bucket.
type Config struct {
	// Region is the bucket region (e.g., oss-cn-hangzhou).
	Region string `json:"region"`
	// AccessKeyID is the access key ID for authentication.
	AccessKeyID string `json:"accessKeyId"`
	// AccessKeySecret is the secret access key for authentication.
	AccessKeySecret string `json:"accessKeySecret"`
	// Bucket is the name of the bucket uploads go to.
	Bucket string `json:"bucket"`
	// Endpoint is the service endpoint, with or without scheme.
	Endpoint string `json:"endpoint"`
}

// requiredFields lists the JSON keys every configuration must carry, in display order.
var requiredFields = []string{"region", "accessKeyId", "accessKeySecret", "bucket", "endpoint"}

// NormalizeName lowercases a configuration name. An empty name maps to the default.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultConfigName
	}
	return name
}

// ParseConfig decodes and validates a single JSON-encoded configuration.
func ParseConfig(raw []byte) (Config, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if fields == nil {
		return Config{}, fmt.Errorf("%w: expected a JSON object", ErrInvalidConfig)
	}
	return configFromFields(fields)
}

// configFromFields checks that every required field is a non-empty string.
// Unknown fields are ignored.
func configFromFields(fields map[string]json.RawMessage) (Config, error) {
	values := make(map[string]string, len(requiredFields))
	for _, key := range requiredFields {
		rawValue, ok := fields[key]
		if !ok || string(rawValue) == "null" {
			return Config{}, fmt.Errorf("%w: missing field %q", ErrInvalidConfig, key)
		}
		var s string
		if err := json.Unmarshal(rawValue, &s); err != nil {
			return Config{}, fmt.Errorf("%w: field %q must be a string", ErrInvalidConfig, key)
		}
		if s == "" {
			return Config{}, fmt.Errorf("%w: field %q must not be empty", ErrInvalidConfig, key)
		}
		values[key] = s
	}

	return Config{
		Region:          values["region"],
		AccessKeyID:     values["accessKeyId"],
		AccessKeySecret: values["accessKeySecret"],
		Bucket:          values["bucket"],
		Endpoint:        values["endpoint"],
	}, nil
}

// Validate reports whether all fields are set.
func (c Config) Validate() error {
	fields := []struct{ key, value string }{
		{"region", c.Region},
		{"accessKeyId", c.AccessKeyID},
		{"accessKeySecret", c.AccessKeySecret},
		{"bucket", c.Bucket},
		{"endpoint", c.Endpoint},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: field %q must not be empty", ErrInvalidConfig, f.key)
		}
	}
	return nil
}

// Configs maps normalized configuration names to configurations.
// Names keep their first insertion order; a later Set for the same name replaces the value in place.
type Configs struct {
	names  []string
	byName map[string]Config
}

// NewConfigs creates an empty configuration set.
func NewConfigs() *Configs {
	return &Configs{byName: make(map[string]Config)}
}

// Set installs cfg under the normalized name.
func (c *Configs) Set(name string, cfg Config) {
	name = NormalizeName(name)
	if _, ok := c.byName[name]; !ok {
		c.names = append(c.names, name)
	}
	c.byName[name] = cfg
}

// Get looks up a configuration by name, case-insensitively.
func (c *Configs) Get(name string) (Config, bool) {
	if c == nil {
		return Config{}, false
	}
	cfg, ok := c.byName[NormalizeName(name)]
	return cfg, ok
}

// Names returns the configuration names in insertion order.
func (c *Configs) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of configurations.
func (c *Configs) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}
