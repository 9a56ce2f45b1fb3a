package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/imagetweaks/internal/capture"
)

var listMonitorsFn = capture.ListMonitors

func newMonitorsCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "monitors",
		Short: "List monitors usable with --display",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			monitors, err := listMonitorsFn()
			if err != nil {
				return fmt.Errorf("failed to list monitors: %w", err)
			}
			fmt.Fprintln(r.stdout, "available monitors (* marks the primary monitor):")
			for _, m := range monitors {
				marker := " "
				if m.Primary {
					marker = "*"
				}
				fmt.Fprintf(r.stdout, "%s %d: %s %dx%d+%d+%d\n", marker, m.Index, m.Name,
					m.Rect.Dx(), m.Rect.Dy(), m.Rect.Min.X, m.Rect.Min.Y)
			}
			return nil
		},
	}
}
