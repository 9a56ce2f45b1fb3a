package main

import (
	"github.com/spf13/cobra"

	"github.com/example/imagetweaks/internal/view"
)

var runWindowFn = func(w *view.Window) { w.Run() }

type editOptions struct {
	source
	output string
	layout string
}

func newEditCmd(r *root) *cobra.Command {
	opts := &editOptions{}
	cmd := &cobra.Command{
		Use:   "edit [FILE]",
		Short: "Open an image in the editor window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.path = args[0]
			}
			return r.runEdit(opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "file written by save (defaults to the input file)")
	f.BoolVar(&opts.fromClipboard, "from-clipboard", false, "start from the image on the clipboard")
	f.BoolVar(&opts.capture, "capture", false, "start from a screenshot")
	f.StringVar(&opts.display, "display", "", "monitor to capture (index or name)")
	f.StringVar(&opts.layout, "layout", "", "YAML file describing toolbar groups")
	return cmd
}

func (r *root) runEdit(opts *editOptions) error {
	img, err := opts.open()
	if err != nil {
		return err
	}
	output := opts.output
	if output == "" {
		output = opts.path
	}
	s, err := r.newSession(img, output, opts.layout)
	if err != nil {
		return err
	}
	w := view.New(s.ed, s.form,
		view.WithTheme(r.theme()),
		view.WithNotifier(r.notifier),
		view.WithLogger(r.log.Named("view")),
	)
	runWindowFn(w)
	return nil
}
