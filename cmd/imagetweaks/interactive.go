package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/imagetweaks/internal/editor"
)

var errQuit = errors.New("quit")

type interactiveOptions struct {
	source
	output string
	layout string
	exec   []string
}

func newInteractiveCmd(r *root) *cobra.Command {
	opts := &interactiveOptions{}
	cmd := &cobra.Command{
		Use:   "interactive [FILE]",
		Short: "Edit an image from a command prompt",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.path = args[0]
			}
			return r.runInteractive(cmd.Context(), opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "file written by save (defaults to the input file)")
	f.BoolVar(&opts.fromClipboard, "from-clipboard", false, "start from the image on the clipboard")
	f.BoolVar(&opts.capture, "capture", false, "start from a screenshot")
	f.StringVar(&opts.display, "display", "", "monitor to capture (index or name)")
	f.StringVar(&opts.layout, "layout", "", "YAML file describing toolbar groups")
	f.StringArrayVarP(&opts.exec, "exec", "e", nil, "run a command before reading from stdin (repeatable)")
	return cmd
}

func (r *root) runInteractive(ctx context.Context, opts *interactiveOptions) error {
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
	s, err := r.newSession(img, output, opts.layout)
	if err != nil {
		return err
	}
	defer s.ed.Cancel()

	for _, line := range opts.exec {
		if err := s.executeLine(ctx, r.stdout, line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
	}

	fmt.Fprintln(r.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(r.stdin)
	for {
		fmt.Fprint(r.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		err := s.executeLine(ctx, r.stdout, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(r.stderr, err)
		}
	}
	return scanner.Err()
}

const interactiveHelp = `commands:
  tools                  list registered tools
  select NAME | NAME     run a tool (interactive tools open the panel)
  set FIELD VALUE        set a panel field
  click BUTTON           press a panel button
  panel                  show the open panel
  cancel                 close the open interactive tool
  undo | redo            step through the history
  history                list recorded actions
  state                  show undo/redo availability
  save [PATH]            write the image
  copy                   copy the image to the clipboard
  exit | quit            leave`

// executeLine runs one prompt command.
func (s *session) executeLine(ctx context.Context, out io.Writer, line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}
	switch cmd := args[0]; cmd {
	case "exit", "quit":
		return errQuit
	case "help":
		fmt.Fprintln(out, interactiveHelp)
	case "tools":
		s.printTools(out)
	case "select":
		if len(args) != 2 {
			return errors.New("usage: select NAME")
		}
		return s.selectTool(ctx, out, args[1])
	case "set":
		if len(args) != 3 {
			return errors.New("usage: set FIELD VALUE")
		}
		v, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", args[2], err)
		}
		return s.form.SetField(args[1], v)
	case "click":
		if len(args) < 2 {
			return errors.New("usage: click BUTTON")
		}
		return s.click(strings.Join(args[1:], " "))
	case "panel":
		s.printPanel(out)
	case "cancel":
		if !s.ed.Cancel() {
			return errors.New("no interactive tool is open")
		}
		s.waitPending()
	case editor.UndoName:
		return s.ed.Undo()
	case editor.RedoName:
		return s.ed.Redo()
	case "history":
		s.printHistory(out)
	case "state":
		st := s.ed.State()
		fmt.Fprintf(out, "undoable=%t redoable=%t interactive=%t cursor=%d actions=%d\n",
			st.Undoable, st.Redoable, st.Interactive, st.Cursor, st.Len)
	case "save":
		var path string
		if len(args) > 1 {
			path = args[1]
		}
		saved, err := s.save(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "saved %s\n", saved)
	case "copy":
		if err := s.copyToClipboard(); err != nil {
			return err
		}
		fmt.Fprintln(out, "copied to clipboard")
	default:
		if len(args) != 1 {
			return fmt.Errorf("unknown command %q", cmd)
		}
		return s.selectTool(ctx, out, cmd)
	}
	return nil
}

func (s *session) selectTool(ctx context.Context, out io.Writer, name string) error {
	done, err := s.ed.Select(ctx, name)
	if err != nil {
		return err
	}
	if s.ed.InteractiveTool() {
		s.mu.Lock()
		s.pending = done
		s.mu.Unlock()
		s.printPanel(out)
		return nil
	}
	b := s.img.Bounds()
	fmt.Fprintf(out, "%s applied (%dx%d)\n", name, b.Dx(), b.Dy())
	return nil
}

// click presses a panel button and waits for the tool to settle if the press
// closed it.
func (s *session) click(label string) error {
	if err := s.form.Click(label); err != nil {
		return err
	}
	s.waitPending()
	return s.ed.LastError()
}

func (s *session) waitPending() {
	s.mu.Lock()
	done := s.pending
	s.mu.Unlock()
	if done == nil {
		return
	}
	if s.ed.AwaitingInput() {
		return
	}
	<-done
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
}

func (s *session) printPanel(out io.Writer) {
	if !s.form.Visible() {
		fmt.Fprintln(out, "no panel open")
		return
	}
	for _, f := range s.form.Fields() {
		fmt.Fprintf(out, "  %s = %d\n", f.Name, f.Value)
	}
	fmt.Fprintf(out, "  buttons: %s\n", strings.Join(s.form.Buttons(), ", "))
}

func (s *session) printHistory(out io.Writer) {
	actions := s.ed.History()
	if len(actions) == 0 {
		fmt.Fprintln(out, "history is empty")
		return
	}
	cursor := s.ed.Cursor()
	for i, a := range actions {
		marker := " "
		if i == cursor {
			marker = ">"
		}
		fmt.Fprintf(out, "%s %d %s\n", marker, i, a.Name)
	}
}
