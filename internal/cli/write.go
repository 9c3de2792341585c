package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"license-manifest/internal/app"
)

type writeOptions struct {
	ManifestPath string
	Overrides    string
	Output       string
}

func newWriteCommand() *cobra.Command {
	opts := writeOptions{}
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write the generated license table to the manifest file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWrite(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.ManifestPath, "manifest-path", "Cargo.toml", "Path to the build manifest")
	cmd.Flags().StringVar(&opts.Overrides, "overrides", app.ConfigFilename, "Package override config file")
	cmd.Flags().StringVar(&opts.Output, "output", app.DestFilename, "Destination file")
	_ = viper.BindPFlag("manifest_path", cmd.Flags().Lookup("manifest-path"))
	_ = viper.BindPFlag("overrides_file", cmd.Flags().Lookup("overrides"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runWrite(cmd *cobra.Command, opts writeOptions) error {
	service := newAppService()
	result, err := service.Write(cmd.Context(), app.WriteRequest{
		Build:      buildRequest(cmd, opts.ManifestPath, opts.Overrides),
		OutputPath: resolveString(cmd, opts.Output, "output", "output"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", result.RecordCount, result.OutputPath)
	return nil
}
