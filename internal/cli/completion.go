package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var completionInstall bool

var completionCmd = &cobra.Command{
	Use:   "completion <shell>",
	Short: "Set up shell completions for sb",
	Long: `Print or install shell completions for sb commands, flags, topic ids
and task ids.

Supported shells: bash, zsh, fish, powershell

  eval "$(sb completion bash)"     # current session only
  sb completion zsh --install      # write into your user completion dir`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MaximumNArgs(1),
	RunE:      runCompletion,
}

// shellCompletion describes how to generate and where to install the
// completion script for one shell. dir is relative to the home directory;
// an empty dir means --install is unsupported.
type shellCompletion struct {
	generate func(w io.Writer) error
	dir      []string
	file     string
	hint     string
}

func shellCompletions() map[string]shellCompletion {
	return map[string]shellCompletion{
		"bash": {
			generate: func(w io.Writer) error { return rootCmd.GenBashCompletionV2(w, true) },
			dir:      []string{".local", "share", "bash-completion", "completions"},
			file:     "sb",
			hint:     "Restart your shell or run: source %s",
		},
		"zsh": {
			generate: rootCmd.GenZshCompletion,
			dir:      []string{".local", "share", "zsh", "site-functions"},
			file:     "_sb",
			hint:     "Make sure the directory of %s is in your fpath, then run: autoload -Uz compinit && compinit",
		},
		"fish": {
			generate: func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
			dir:      []string{".config", "fish", "completions"},
			file:     "sb.fish",
			hint:     "%s is picked up by new fish sessions automatically.",
		},
		"powershell": {
			generate: rootCmd.GenPowerShellCompletionWithDesc,
		},
	}
}

func runCompletion(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	shell, ok := shellCompletions()[args[0]]
	if !ok {
		return fmt.Errorf("unsupported shell %q (supported: bash, zsh, fish, powershell)", args[0])
	}

	if !completionInstall {
		return shell.generate(cmd.OutOrStdout())
	}
	if len(shell.dir) == 0 {
		return fmt.Errorf("automatic install is not supported for %s; add the output of 'sb completion %s' to your profile", args[0], args[0])
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("detecting home directory: %w", err)
	}
	target, err := installCompletion(home, shell)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Completions installed to %s\n", target)
	fmt.Fprintf(out, shell.hint+"\n", target)
	return nil
}

// installCompletion writes the completion script below home and returns its path.
func installCompletion(home string, shell shellCompletion) (target string, err error) {
	dir := filepath.Join(append([]string{home}, shell.dir...)...)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating completion directory: %w", err)
	}
	target = filepath.Join(dir, shell.file)

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("creating completion file %s: %w", target, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing completion file %s: %w", target, closeErr)
		}
	}()

	if err := shell.generate(f); err != nil {
		return "", fmt.Errorf("writing completion file %s: %w", target, err)
	}
	return target, nil
}

func init() {
	completionCmd.Flags().BoolVar(&completionInstall, "install", false,
		"Install completions into your user completion directory")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(completionCmd)
}
