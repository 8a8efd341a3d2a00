package cmd

import (
	"fmt"
	"os"

	"oss-mcp/core/logger"
	"oss-mcp/core/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	ossConfigFlag string
	portFlag      int
	stdioFlag     bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "oss-mcp",
	Short: "OSS upload MCP server",
	Long: `OSS MCP exposes uploads to Aliyun OSS buckets as MCP tools.
It serves the protocol over stdio or over HTTP with server-sent events.`,
	Version:       server.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd)
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with debug config gives readable timestamps for CLI errors
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&ossConfigFlag, "oss-config", "", "OSS configuration as JSON, either a single config or an object of named configs")
	RootCmd.Flags().IntVar(&portFlag, "port", 3000, "HTTP port")
	RootCmd.Flags().BoolVar(&stdioFlag, "stdio", false, "Serve over stdio instead of HTTP")
}
