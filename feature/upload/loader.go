package upload

import (
	"oss-mcp/core/loader"

	"go.uber.org/zap"
)

// Registry is the subset of the storage registry the feature needs.
type Registry interface {
	Buckets
	Names() []string
}

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates a new upload feature.
func NewFeature(registry Registry, logger *zap.Logger) *Feature {
	svc := NewService(registry, logger)
	return &Feature{handler: NewHandler(svc, registry.Names, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "upload"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the upload tool.
func (f *Feature) Load(r loader.ToolRegistrar) error {
	r.AddTool(f.handler.Tool(), f.handler.HandleUpload)
	return nil
}
