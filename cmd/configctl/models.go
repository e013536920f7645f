package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"model-config-service/internal/core/domain"
)

func NewModelsCmd() *cobra.Command {
	allowPartial := false
	cmd := &cobra.Command{
		Use:   "models FILE [CATEGORY]",
		Short: "list the models of a configuration document",
		Example: `
  configctl models models.yaml
  configctl models models.yaml diffusion
		`,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadFile(cmd.Context(), args[0], allowPartial)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())

			if len(args) == 1 {
				counts := snap.Registry.Counts()
				t.AppendHeader(table.Row{"CATEGORY", "MODELS"})
				for _, category := range domain.Categories {
					t.AppendRow(table.Row{category, counts[category]})
				}
				t.Render()
				return nil
			}

			category := domain.Category(args[1])
			entities, err := snap.Registry.ListAll(category)
			if err != nil {
				return err
			}
			t.AppendHeader(table.Row{"NAME", "SOURCE", "DETAILS"})
			for _, entity := range entities {
				t.AppendRow(table.Row{entity.EntityName(), entity.EntitySource(), details(entity)})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().BoolVar(&allowPartial, "allow-partial", allowPartial, "list the valid entries of a document with errors")
	return cmd
}

func details(entity domain.Entity) string {
	switch e := entity.(type) {
	case domain.DiffusionModel:
		return joinNonEmpty(e.Format, e.Pipeline, e.Version)
	case domain.CorrectionModel:
		return joinNonEmpty(e.Format, e.Model)
	case domain.UpscalingModel:
		return joinNonEmpty(fmt.Sprintf("x%d", e.Scale), e.Format, e.Model)
	case domain.SourceNetwork:
		return joinNonEmpty(string(e.Type), e.Format, e.Model)
	case domain.SourceModel:
		return joinNonEmpty(e.Format, e.Dest)
	}
	return ""
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}
