package cmd

import (
	"fmt"

	"oss-mcp/core/config"
	"oss-mcp/core/logger"
	"oss-mcp/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// environment holds everything a command needs after configuration is resolved.
type environment struct {
	app    *config.Config
	server *config.ServerConfig
	logger *zap.Logger
}

// bootstrap loads the ambient configuration, creates the logger and resolves
// the OSS configurations from the command line and src.
func bootstrap(cmd *cobra.Command, src config.Source) (*environment, error) {
	appCfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&appCfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	in := config.Inputs{StorageJSON: ossConfigFlag}
	if f := cmd.Flags().Lookup("port"); f != nil {
		in.Port = portFlag
		in.PortSet = f.Changed
	}

	srvCfg, err := config.Resolve(in, src, logg)
	if err != nil {
		return nil, err
	}

	return &environment{app: appCfg, server: srvCfg, logger: logg}, nil
}

// registry creates the client registry for the resolved configurations.
func (e *environment) registry(logg *zap.Logger) *storage.Registry {
	return storage.NewRegistry(e.server.Storage, storage.NewClientFactory(e.app.Storage.Timeout()), logg)
}
