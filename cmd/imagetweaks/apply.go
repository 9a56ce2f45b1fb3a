package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/imagetweaks/internal/coretools"
	"github.com/example/imagetweaks/internal/editor"
)

type applyOptions struct {
	source
	output      string
	layout      string
	toClipboard bool
}

func newApplyCmd(r *root) *cobra.Command {
	opts := &applyOptions{}
	cmd := &cobra.Command{
		Use:   "apply [FILE] OPERATION...",
		Short: "Apply tools to an image without opening a window",
		Long: `Apply runs each operation in order and saves the result.

Operations are tool names (see "imagetweaks tools"), "undo", "redo" or
"crop=WxH+X+Y".`,
		Example: "  imagetweaks apply photo.png rotateClockwise crop=640x480+10+20\n" +
			"  imagetweaks apply --capture --to-clipboard flipHorizontal",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops := args
			if !opts.fromClipboard && !opts.capture {
				opts.path, ops = args[0], args[1:]
			}
			if len(ops) == 0 {
				return fmt.Errorf("no operations given")
			}
			return r.runApply(cmd.Context(), opts, ops)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file (defaults to the input file)")
	f.BoolVar(&opts.fromClipboard, "from-clipboard", false, "start from the image on the clipboard")
	f.BoolVar(&opts.capture, "capture", false, "start from a screenshot")
	f.StringVar(&opts.display, "display", "", "monitor to capture (index or name)")
	f.BoolVar(&opts.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	f.StringVar(&opts.layout, "layout", "", "YAML file describing toolbar groups")
	return cmd
}

func (r *root) runApply(ctx context.Context, opts *applyOptions, ops []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	img, err := opts.open()
	if err != nil {
		return err
	}
	output := opts.output
	if output == "" {
		output = opts.path
	}
	if output == "" && !opts.toClipboard {
		return fmt.Errorf("--output is required when the image does not come from a file")
	}
	s, err := r.newSession(img, output, opts.layout)
	if err != nil {
		return err
	}
	for _, op := range ops {
		if err := s.applyOp(ctx, op); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		r.log.Debug("applied", zap.String("op", op), zap.Int("cursor", s.ed.Cursor()))
	}
	if output != "" {
		path, err := s.save("")
		if err != nil {
			return err
		}
		fmt.Fprintf(r.stdout, "saved %s\n", path)
	}
	if opts.toClipboard {
		if err := s.copyToClipboard(); err != nil {
			return err
		}
		fmt.Fprintln(r.stdout, "copied to clipboard")
	}
	return nil
}

// applyOp runs a single operation to completion.
func (s *session) applyOp(ctx context.Context, op string) error {
	if rest, ok := strings.CutPrefix(op, coretools.CropName+"="); ok {
		g, err := parseGeometry(rest)
		if err != nil {
			return err
		}
		return s.crop(ctx, g)
	}
	switch op {
	case editor.UndoName:
		return s.ed.Undo()
	case editor.RedoName:
		return s.ed.Redo()
	}
	done, err := s.ed.Select(ctx, op)
	if err != nil {
		return err
	}
	if s.ed.InteractiveTool() {
		s.ed.Cancel()
		<-done
		return fmt.Errorf("tool %q needs input; use %s=WxH+X+Y", op, op)
	}
	return nil
}

func (s *session) crop(ctx context.Context, g geometry) error {
	done, err := s.ed.Select(ctx, coretools.CropName)
	if err != nil {
		return err
	}
	for name, v := range map[string]int{
		coretools.FieldWidth:  g.Width,
		coretools.FieldHeight: g.Height,
		coretools.FieldX:      g.X,
		coretools.FieldY:      g.Y,
	} {
		if err := s.form.SetField(name, v); err != nil {
			s.ed.Cancel()
			<-done
			return err
		}
	}
	if err := s.form.Click(coretools.ButtonCrop); err != nil {
		s.ed.Cancel()
		<-done
		return err
	}
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return s.ed.LastError()
}
