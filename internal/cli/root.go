// Package cli implements the commitlog command-line interface on top of
// cobra. Commands wire configuration, the repository reader, the
// conventional-commit pipeline and the renderers together; all domain
// logic lives in the internal packages they call.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/commitlog/internal/errors"
	"github.com/ariel-frischer/commitlog/internal/gitrepo"
)

var (
	configFlag string
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "commitlog",
	Short: "Generate changelogs from Conventional Commits history",
	Long: `commitlog reads the commit history between two refs, parses each
commit message against the Conventional Commits grammar and renders the
grouped result as a markdown changelog or as JSON, YAML or CSV records.

Messages that do not follow the convention are never rejected; they are
kept as-is and grouped under "Other Changes".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugFlag {
			gitrepo.SetDebugLogger(func(format string, args ...any) {
				fmt.Fprintf(os.Stderr, format+"\n", args...)
			})
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (default: .commitlog.yml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
}

// Execute runs the root command and prints structured errors to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if cliErr := errors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case errors.Argument:
			return ExitInvalidArguments
		case errors.Configuration:
			return ExitConfigError
		case errors.Repository:
			return ExitRepositoryError
		}
	}
	return ExitRuntimeError
}

// printError writes a formatted error to stderr, with remediation steps
// when the error carries them.
func printError(err error) {
	if cliErr := errors.AsCLIError(err); cliErr != nil {
		fmt.Fprint(os.Stderr, errors.FormatError(cliErr))
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
