package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the study configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration in effect after defaults are applied, along
with the base directory the topic and plan files live in.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Config == nil {
			return fmt.Errorf("configuration not loaded")
		}

		data, err := yaml.Marshal(Config)
		if err != nil {
			return fmt.Errorf("formatting configuration: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# base path: %s\n", BasePath)
		fmt.Fprint(out, string(data))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
