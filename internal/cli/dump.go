package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"license-manifest/internal/app"
)

type dumpOptions struct {
	ManifestPath string
	Overrides    string
}

func newDumpCommand() *cobra.Command {
	opts := dumpOptions{}
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the generated license table to standard output",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDump(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.ManifestPath, "manifest-path", "Cargo.toml", "Path to the build manifest")
	cmd.Flags().StringVar(&opts.Overrides, "overrides", app.ConfigFilename, "Package override config file")
	_ = viper.BindPFlag("manifest_path", cmd.Flags().Lookup("manifest-path"))
	_ = viper.BindPFlag("overrides_file", cmd.Flags().Lookup("overrides"))
	return cmd
}

func runDump(cmd *cobra.Command, opts dumpOptions) error {
	service := newAppService()
	return service.Dump(cmd.Context(), buildRequest(cmd, opts.ManifestPath, opts.Overrides), cmd.OutOrStdout())
}

func newAppService() app.Service {
	return app.NewService()
}

func buildRequest(cmd *cobra.Command, manifestPath string, overrides string) app.BuildRequest {
	return app.BuildRequest{
		ManifestPath:  resolveString(cmd, manifestPath, "manifest_path", "manifest-path"),
		OverridesPath: resolveString(cmd, overrides, "overrides_file", "overrides"),
	}
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	if configured := viper.GetString(key); configured != "" {
		return configured
	}
	return value
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
