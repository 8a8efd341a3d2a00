package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"oss-mcp/core/storage"

	"go.uber.org/zap"
)

// DefaultPort is the HTTP port used when neither flag nor environment sets one.
const DefaultPort = 3000

// Origin records where a setting came from.
type Origin string

const (
	OriginCLI     Origin = "cli"
	OriginEnv     Origin = "env"
	OriginDefault Origin = "default"
)

// Origins tags the resolved settings with their provenance.
type Origins struct {
	Port    Origin
	Storage Origin
}

// ServerConfig is the result of a resolution pass.
type ServerConfig struct {
	// Port is the HTTP listen port.
	Port int
	// Storage maps configuration names to bucket configurations.
	Storage *storage.Configs
	// Origins records where Port and Storage came from.
	Origins Origins
}

// Inputs carries the command line values relevant to resolution.
type Inputs struct {
	// StorageJSON is the --oss-config value; empty when not given.
	StorageJSON string
	// Port is the --port value.
	Port int
	// PortSet reports whether --port was given explicitly.
	PortSet bool
}

// Resolve builds the server configuration from command line inputs and src.
//
// A --oss-config value exclusively determines the default and named entries it
// carries; otherwise OSS_CONFIG_DEFAULT sets the default entry. Every other
// OSS_CONFIG_<NAME> variable is then merged in and overwrites entries of the
// same name. Malformed --oss-config or OSS_CONFIG_DEFAULT values fail the
// resolution; malformed named variables are logged and skipped.
func Resolve(in Inputs, src Source, logger *zap.Logger) (*ServerConfig, error) {
	cfg := &ServerConfig{
		Port:    DefaultPort,
		Storage: storage.NewConfigs(),
		Origins: Origins{Port: OriginDefault, Storage: OriginDefault},
	}

	resolvePort(cfg, in, src, logger)

	switch {
	case in.StorageJSON != "":
		configs, err := parseStorageJSON(in.StorageJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to parse --oss-config: %w", err)
		}
		cfg.Storage = configs
		cfg.Origins.Storage = OriginCLI
	default:
		if raw, ok := src.Lookup(EnvConfigDefault); ok && raw != "" {
			def, err := storage.ParseConfig([]byte(raw))
			if err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", EnvConfigDefault, err)
			}
			cfg.Storage.Set(storage.DefaultConfigName, def)
			cfg.Origins.Storage = OriginEnv
		}
	}

	for _, c := range src.Candidates() {
		named, err := storage.ParseConfig([]byte(c.Raw))
		if err != nil {
			logger.Error("Failed to parse OSS config from environment", zap.String("variable", c.Key), zap.Error(err))
			continue
		}
		cfg.Storage.Set(c.Name, named)
	}

	if cfg.Storage.Len() == 0 {
		logger.Warn("No valid OSS configuration found. The server will start, but uploads are unavailable.")
	}

	return cfg, nil
}

func resolvePort(cfg *ServerConfig, in Inputs, src Source, logger *zap.Logger) {
	if in.PortSet && in.Port > 0 {
		cfg.Port = in.Port
		cfg.Origins.Port = OriginCLI
		return
	}

	raw, ok := src.Lookup(EnvPort)
	if !ok || raw == "" {
		return
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port <= 0 {
		logger.Warn("Ignoring invalid PORT value", zap.String("value", raw))
		return
	}
	cfg.Port = port
	cfg.Origins.Port = OriginEnv
}

// parseStorageJSON accepts either a single configuration object, installed as
// the default, or an object mapping names to configurations.
func parseStorageJSON(raw string) (*storage.Configs, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrInvalidConfig, err)
	}
	if top == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", storage.ErrInvalidConfig)
	}

	configs := storage.NewConfigs()

	if isSingleConfig(top) {
		def, err := storage.ParseConfig([]byte(raw))
		if err != nil {
			return nil, err
		}
		configs.Set(storage.DefaultConfigName, def)
		return configs, nil
	}

	names := make([]string, 0, len(top))
	for name := range top {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		named, err := storage.ParseConfig(top[name])
		if err != nil {
			return nil, fmt.Errorf("config %q: %w", name, err)
		}
		configs.Set(name, named)
	}
	return configs, nil
}

// isSingleConfig reports whether the object carries region and accessKeyId at the top level.
func isSingleConfig(top map[string]json.RawMessage) bool {
	for _, key := range []string{"region", "accessKeyId"} {
		v, ok := top[key]
		if !ok {
			return false
		}
		switch string(v) {
		case "null", `""`, "false", "0":
			return false
		}
	}
	return true
}
