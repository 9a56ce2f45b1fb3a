package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/example/imagetweaks/internal/config"
	"github.com/example/imagetweaks/internal/theme"
)

func newConfigCmd(r *root) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or persist the configuration",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "print",
			Short: "Print the effective configuration in RC format",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprint(r.stdout, r.config.String())
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the configuration file in use",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path := config.NewLoader(version, r.configPath).GetConfigPath()
				if path == "" {
					path = "(none, using defaults)"
				}
				fmt.Fprintln(r.stdout, path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "themes",
			Short: "List themes usable with --theme",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				names := theme.NewLoader().Available()
				for name := range r.config.Themes {
					if !slices.Contains(names, name) {
						names = append(names, name)
					}
				}
				slices.Sort(names)
				current := r.config.ThemeName(r.themeName)
				for _, name := range names {
					marker := " "
					if name == current {
						marker = "*"
					}
					fmt.Fprintf(r.stdout, "%s %s\n", marker, name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "save",
			Short: "Write the effective configuration to disk",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := config.NewLoader(version, r.configPath).Save(r.config)
				if err != nil {
					return fmt.Errorf("failed to save config: %w", err)
				}
				fmt.Fprintf(r.stderr, "Configuration saved to %s\n", path)
				return nil
			},
		},
	)
	return cmd
}
