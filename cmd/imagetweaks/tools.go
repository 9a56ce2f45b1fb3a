package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/imagetweaks/internal/coretools"
	"github.com/example/imagetweaks/internal/registry"
)

func newToolsCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the available tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.New()
			if err := coretools.Register(reg); err != nil {
				return err
			}
			writeTools(r.stdout, reg)
			return nil
		},
	}
}

func writeTools(out io.Writer, reg *registry.Registry) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTITLE\tINTERACTIVE")
	for _, name := range reg.Names() {
		t, _ := reg.Get(name)
		d := t.Descriptor()
		fmt.Fprintf(tw, "%s\t%s\t%t\n", d.Name, d.Title, d.Interactive)
	}
	_ = tw.Flush()
}

func (s *session) printTools(out io.Writer) {
	writeTools(out, s.ed.Registry())
}
