package storage

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ConfigInfo is a configuration together with its display metadata.
type ConfigInfo struct {
	// ID is the normalized configuration name.
	ID string `json:"id"`
	// DisplayName is the capitalized name followed by a fixed label.
	DisplayName string `json:"name"`
	Config
}

// displayLabel is appended to capitalized configuration names.
const displayLabel = " Config"

// Registry lazily builds one Bucket per configuration name and caches it for the process lifetime.
type Registry struct {
	configs *Configs
	factory ClientFactory
	logger  *zap.Logger

	mu      sync.RWMutex
	buckets map[string]*Bucket
	group   singleflight.Group
}

// NewRegistry creates a client registry over the resolved configurations.
func NewRegistry(configs *Configs, factory ClientFactory, logger *zap.Logger) *Registry {
	if configs == nil {
		configs = NewConfigs()
	}
	return &Registry{
		configs: configs,
		factory: factory,
		logger:  logger,
		buckets: make(map[string]*Bucket),
	}
}

// Get returns the handle for name, building it on first use.
// It reports false when no configuration exists under name or the client cannot be constructed.
func (r *Registry) Get(name string) (*Bucket, bool) {
	name = NormalizeName(name)

	r.mu.RLock()
	b, ok := r.buckets[name]
	r.mu.RUnlock()
	if ok {
		return b, true
	}

	cfg, ok := r.configs.Get(name)
	if !ok {
		return nil, false
	}

	v, err, _ := r.group.Do(name, func() (any, error) {
		r.mu.RLock()
		existing, ok := r.buckets[name]
		r.mu.RUnlock()
		if ok {
			return existing, nil
		}

		client, err := r.factory(cfg)
		if err != nil {
			return nil, err
		}
		b := NewBucket(name, cfg, client)

		r.mu.Lock()
		r.buckets[name] = b
		r.mu.Unlock()
		return b, nil
	})
	if err != nil {
		r.logger.Error("Failed to create storage client", zap.String("config", name), zap.Error(err))
		return nil, false
	}
	return v.(*Bucket), true
}

// Names returns the configured names in insertion order.
func (r *Registry) Names() []string {
	return r.configs.Names()
}

// List returns every configuration with its display name, in insertion order.
func (r *Registry) List() []ConfigInfo {
	names := r.configs.Names()
	out := make([]ConfigInfo, 0, len(names))
	for _, name := range names {
		cfg, _ := r.configs.Get(name)
		out = append(out, ConfigInfo{
			ID:          name,
			DisplayName: DisplayName(name),
			Config:      cfg,
		})
	}
	return out
}

// DisplayName upper-cases the first character of id and appends the display label.
func DisplayName(id string) string {
	if id == "" {
		return displayLabel[1:]
	}
	r := []rune(id)
	return strings.ToUpper(string(r[0])) + string(r[1:]) + displayLabel
}
