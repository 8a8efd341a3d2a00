// Package loader provides the plugin-like feature loading system.
//
// It allows the application to register features (modules) and have each
// enabled one register its tools with the protocol server.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(r ToolRegistrar) error
//	}
//
// # Manager
//
// The Manager struct holds the registry of available features. It handles:
//   - Registration of features via Register()
//   - Loading of enabled features via LoadAll()
//
// This keeps features like 'upload' and 'configs' independent of the transport
// serving them.
package loader
