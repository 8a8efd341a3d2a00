package cmd

import (
	"encoding/json"
	"fmt"

	"oss-mcp/core/config"
	"oss-mcp/feature/upload"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	targetDirFlag  string
	fileNameFlag   string
	configNameFlag string
)

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a local file to OSS",
	Long:  `Uploads a file with the same rules as the upload_to_oss tool and prints the result as JSON.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := bootstrap(cmd, config.EnvSource{})
		if err != nil {
			return err
		}
		defer env.logger.Sync()

		svc := upload.NewService(env.registry(env.logger), env.logger)
		req := upload.Request{
			FilePath:   args[0],
			TargetDir:  targetDirFlag,
			FileName:   fileNameFlag,
			ConfigName: configNameFlag,
		}

		env.logger.Info("Uploading file...", zap.String("file", req.FilePath), zap.String("config", req.ConfigName))
		res := svc.Upload(cmd.Context(), req)

		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))

		if !res.Success {
			return fmt.Errorf("upload failed: %s", res.Error)
		}
		return nil
	},
}

func init() {
	uploadCmd.Flags().StringVar(&targetDirFlag, "target-dir", "", "Directory inside the bucket")
	uploadCmd.Flags().StringVar(&fileNameFlag, "file-name", "", "Object name, defaults to the local file name")
	uploadCmd.Flags().StringVar(&configNameFlag, "config-name", "", "OSS config to use (default \"default\")")
	RootCmd.AddCommand(uploadCmd)
}
