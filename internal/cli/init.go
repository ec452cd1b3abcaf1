package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/study-buddy/internal/core"
)

// WorkspaceInit is the WorkspaceInitializer used by the init command.
// Set during application wiring.
var WorkspaceInit core.WorkspaceInitializer

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a study workspace",
	Long: `Create a study workspace with a .studyconfig populated with defaults.

sb finds its workspace by walking up from the current directory to the
nearest .studyconfig, so run this once in the directory that should hold
your topics and plan. An existing .studyconfig is never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if WorkspaceInit == nil {
			return fmt.Errorf("workspace initializer not initialized")
		}

		target := "."
		if len(args) > 0 {
			target = args[0]
		}
		absPath, err := filepath.Abs(target)
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}

		prefix, _ := cmd.Flags().GetString("prefix")
		strategy, _ := cmd.Flags().GetString("id-strategy")

		result, err := WorkspaceInit.Init(core.InitConfig{
			BasePath:   absPath,
			Prefix:     prefix,
			IDStrategy: strategy,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, p := range result.Created {
			fmt.Fprintf(out, "Created %s\n", p)
		}
		for _, p := range result.Skipped {
			fmt.Fprintf(out, "Skipped %s (already exists)\n", p)
		}
		fmt.Fprintf(out, "Study workspace ready at %s\n", absPath)
		return nil
	},
}

func init() {
	initCmd.Flags().String("prefix", "", "Topic id prefix for the counter strategy (default TOPIC)")
	initCmd.Flags().String("id-strategy", "", "Topic id strategy: counter or uuid (default counter)")
	rootCmd.AddCommand(initCmd)
}
