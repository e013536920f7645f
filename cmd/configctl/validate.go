package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"model-config-service/internal/adapters/secondary/filesource"
	"model-config-service/internal/core/services"
)

func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "validate a configuration document",
		Example: `
  configctl validate models.yaml
		`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := filesource.NewFileSource(args[0], false).Fetch(cmd.Context())
			if err != nil {
				return err
			}
			doc, issues, err := services.NewConfigService(nil, services.ConfigServiceOptions{}).Validate(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(issues) > 0 {
				t := table.NewWriter()
				t.SetOutputMirror(out)
				t.AppendHeader(table.Row{"PATH", "KIND", "SEVERITY", "DETAIL"})
				for _, issue := range issues {
					t.AppendRow(table.Row{issue.Path, issue.Kind, issue.Severity, issue.Detail})
				}
				t.Render()
			}

			if doc == nil || issues.HasErrors() {
				return fmt.Errorf("%s: %d issues", args[0], len(issues))
			}
			fmt.Fprintf(out, "%s: ok (%d warnings)\n", args[0], len(issues.Warnings()))
			return nil
		},
	}
	return cmd
}
