package cli

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"license-manifest/internal/app"
	"license-manifest/internal/core"
)

type checkOptions struct {
	ManifestPath string
	Overrides    string
	Output       string
}

func newCheckCommand() *cobra.Command {
	opts := checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the license table is up to date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.ManifestPath, "manifest-path", "Cargo.toml", "Path to the build manifest")
	cmd.Flags().StringVar(&opts.Overrides, "overrides", app.ConfigFilename, "Package override config file")
	cmd.Flags().StringVar(&opts.Output, "output", app.DestFilename, "Persisted manifest file to check against")
	_ = viper.BindPFlag("manifest_path", cmd.Flags().Lookup("manifest-path"))
	_ = viper.BindPFlag("overrides_file", cmd.Flags().Lookup("overrides"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runCheck(cmd *cobra.Command, opts checkOptions) error {
	service := newAppService()
	output := resolveString(cmd, opts.Output, "output", "output")
	result, err := service.Check(cmd.Context(), app.CheckRequest{
		Build:      buildRequest(cmd, opts.ManifestPath, opts.Overrides),
		OutputPath: output,
	})
	if err != nil {
		return err
	}
	if len(result.Mismatches) == 0 {
		return nil
	}
	// Every discrepancy is printed before the run fails.
	for _, mismatch := range result.Mismatches {
		switch mismatch.Kind {
		case core.MismatchExtraneous:
			fmt.Fprintf(cmd.OutOrStdout(), "Extraneous record for %q.\n", mismatch.Record.Component)
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "Record for %q is missing or changed.\n", mismatch.Record.Component)
		}
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("license manifest %s is not up to date", output))
}
