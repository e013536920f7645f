package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"model-config-service/internal/core/services"
)

func NewStringsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strings FILE LOCALE KEY...",
		Short: "resolve a translated string",
		Example: `
  configctl strings models.yaml en errors server unreachable
  configctl strings models.yaml de,en model/stable-diffusion-onnx-v1-5
		`,
		Args:         cobra.MinimumNArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadFile(cmd.Context(), args[0], true)
			if err != nil {
				return err
			}

			var keyPath []string
			for _, arg := range args[2:] {
				for _, segment := range strings.Split(arg, "/") {
					if segment != "" {
						keyPath = append(keyPath, segment)
					}
				}
			}

			value, _, err := services.ResolveFirst(snap.Document.Strings, strings.Split(args[1], ","), keyPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
	return cmd
}
