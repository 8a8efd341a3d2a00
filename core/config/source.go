package config

import (
	"os"
	"sort"
	"strings"
)

const (
	// EnvPort holds the HTTP port.
	EnvPort = "PORT"
	// EnvConfigPrefix prefixes every OSS configuration variable.
	EnvConfigPrefix = "OSS_CONFIG_"
	// EnvConfigDefault holds the default OSS configuration.
	EnvConfigDefault = EnvConfigPrefix + "DEFAULT"
)

// Candidate is a raw named configuration found in a source.
type Candidate struct {
	// Key is the variable the candidate was read from.
	Key string
	// Name is the lowercased configuration name.
	Name string
	// Raw is the JSON-encoded configuration.
	Raw string
}

// Source provides raw configuration values.
type Source interface {
	// Lookup returns the value of key and whether it is set.
	Lookup(key string) (string, bool)
	// Candidates lists every named configuration other than the default, ordered by key.
	Candidates() []Candidate
}

// EnvSource reads the process environment.
type EnvSource struct{}

// Lookup implements Source.
func (EnvSource) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Candidates implements Source.
func (EnvSource) Candidates() []Candidate {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			vars[k] = v
		}
	}
	return candidates(vars)
}

// MapSource serves values from a map.
type MapSource map[string]string

// Lookup implements Source.
func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Candidates implements Source.
func (m MapSource) Candidates() []Candidate {
	return candidates(m)
}

func candidates(vars map[string]string) []Candidate {
	var out []Candidate
	for key, value := range vars {
		if !strings.HasPrefix(key, EnvConfigPrefix) || key == EnvConfigDefault || value == "" {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, EnvConfigPrefix))
		if name == "" {
			continue
		}
		out = append(out, Candidate{Key: key, Name: name, Raw: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
