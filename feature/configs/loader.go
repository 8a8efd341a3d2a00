package configs

import (
	"oss-mcp/core/loader"

	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates a new configs feature.
func NewFeature(lister Lister, logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(lister, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "configs"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the list tool.
func (f *Feature) Load(r loader.ToolRegistrar) error {
	r.AddTool(f.handler.Tool(), f.handler.HandleList)
	return nil
}
