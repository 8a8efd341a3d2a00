package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"oss-mcp/core/config"
	"oss-mcp/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verifyFlag bool

// configsCmd represents the configs command
var configsCmd = &cobra.Command{
	Use:   "configs",
	Short: "Show the resolved OSS configurations",
	Long:  `Resolves the OSS configurations from flags and environment, prints a masked summary and optionally checks that each bucket exists.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := bootstrap(cmd, config.EnvSource{})
		if err != nil {
			return err
		}
		defer env.logger.Sync()

		config.PrintSummary(os.Stdout, env.server)
		if !verifyFlag {
			return nil
		}

		timeout := env.app.Storage.Timeout()
		if timeout <= 0 {
			timeout = storage.DefaultTimeout
		}
		if failed := verifyConfigs(cmd.Context(), os.Stdout, env.registry(env.logger), timeout, env.logger); failed > 0 {
			return fmt.Errorf("%d of %d configs failed verification", failed, env.server.Storage.Len())
		}
		return nil
	},
}

func init() {
	configsCmd.Flags().BoolVar(&verifyFlag, "verify", false, "Check that every configured bucket exists")
	RootCmd.AddCommand(configsCmd)
}

// verifyConfigs checks the bucket of every configuration and returns the number of failures.
func verifyConfigs(ctx context.Context, w io.Writer, registry *storage.Registry, timeout time.Duration, logg *zap.Logger) int {
	fmt.Fprintln(w, "\n--- Bucket Verification ---")
	failed := 0
	for _, name := range registry.Names() {
		status := checkBucket(ctx, registry, name, timeout)
		if status != "ok" {
			failed++
			logg.Warn("Bucket verification failed", zap.String("config", name), zap.String("status", status))
		}
		fmt.Fprintf(w, "%-16s %s\n", name+":", status)
	}
	fmt.Fprintln(w, "---------------------------")
	return failed
}

func checkBucket(ctx context.Context, registry *storage.Registry, name string, timeout time.Duration) string {
	b, ok := registry.Get(name)
	if !ok {
		return "client unavailable"
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	exists, err := b.Exists(ctx)
	switch {
	case err != nil:
		return "error: " + err.Error()
	case !exists:
		return fmt.Sprintf("bucket %q not found", b.Config().Bucket)
	default:
		return "ok"
	}
}
