package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(r.stdout, "imagetweaks version %s", version)
			if commit != "" {
				fmt.Fprintf(r.stdout, " (%s", commit)
				if date != "" {
					fmt.Fprintf(r.stdout, ", %s", date)
				}
				fmt.Fprint(r.stdout, ")")
			}
			fmt.Fprintln(r.stdout)
			return nil
		},
	}
}
