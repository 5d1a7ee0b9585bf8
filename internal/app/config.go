package app

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/riteme/catmgr/internal/config"
)

func newConfigCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings",
		Long: `Print the settings catmgr would use, after environment overrides, as
YAML. The password is masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			source := s.settings.Path
			if !s.settings.Found {
				source += " (not found, using defaults)"
			}
			fmt.Fprintln(out, color.CyanString("# "+source))
			return config.WriteYAML(out, s.settings)
		},
	}
}
