package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigShowCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Long: `Prints the configuration after defaults, the config file, PAGETABLE_*
environment variables and command-line flags have been applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := yaml.Marshal(s.cfg)
			if err != nil {
				return fmt.Errorf("encoding configuration: %w", err)
			}
			if s.cfgFile != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "# loaded from %s\n", s.cfgFile)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
