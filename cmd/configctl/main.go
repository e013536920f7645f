package main

import (
	"os"

	"github.com/spf13/cobra"
)

const ErrExitCode = 1

func main() {
	if err := NewConfigctlCmd().Execute(); err != nil {
		os.Exit(ErrExitCode)
	}
}

func NewConfigctlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "configctl",
		Short:        "inspect and validate model configuration documents",
		SilenceUsage: true,
	}
	cmd.AddCommand(
		NewValidateCmd(),
		NewModelsCmd(),
		NewStringsCmd(),
	)
	return cmd
}
