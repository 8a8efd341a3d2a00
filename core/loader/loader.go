package loader

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// ToolRegistrar accepts tool registrations. *server.MCPServer satisfies it.
type ToolRegistrar interface {
	AddTool(tool mcp.Tool, handler server.ToolHandlerFunc)
}

// Feature is a module that exposes tools.
type Feature interface {
	// Name returns the name of the feature.
	Name() string
	// IsEnabled reports whether the feature should be loaded.
	IsEnabled() bool
	// Load registers the feature's tools.
	Load(r ToolRegistrar) error
}

// Manager holds the registered features.
type Manager struct {
	features []Feature
	logger   *zap.Logger
}

// NewManager creates an empty feature manager.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{logger: logger}
}

// Register adds a feature.
func (m *Manager) Register(f Feature) {
	m.features = append(m.features, f)
}

// LoadAll loads every enabled feature in registration order.
func (m *Manager) LoadAll(r ToolRegistrar) error {
	for _, f := range m.features {
		if !f.IsEnabled() {
			m.logger.Debug("Skipping disabled feature", zap.String("feature", f.Name()))
			continue
		}
		if err := f.Load(r); err != nil {
			return fmt.Errorf("failed to load feature %s: %w", f.Name(), err)
		}
		m.logger.Debug("Loaded feature", zap.String("feature", f.Name()))
	}
	return nil
}
