package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/imagetweaks/internal/config"
	"github.com/example/imagetweaks/internal/logging"
	"github.com/example/imagetweaks/internal/notify"
	"github.com/example/imagetweaks/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

// root carries the state shared by every subcommand.
type root struct {
	configPath string
	verbose    bool
	themeName  string
	saveAlerts bool
	copyAlerts bool

	config   *config.Config
	notifier *notify.Notifier
	log      *zap.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newRoot() *root {
	return &root{
		config: config.New(),
		log:    zap.NewNop(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

func newRootCmd(r *root) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "imagetweaks",
		Short:         "Rotate, flip and crop images with undo and redo",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return r.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = r.log.Sync()
		},
	}
	cmd.SetIn(r.stdin)
	cmd.SetOut(r.stdout)
	cmd.SetErr(r.stderr)

	pf := cmd.PersistentFlags()
	pf.StringVar(&r.configPath, "config", configPathOverride, "path to the RC configuration file")
	pf.BoolVarP(&r.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&r.themeName, "theme", "", "colour theme for the editor window (default, dark, light or a file)")
	pf.BoolVar(&r.saveAlerts, "notify-save", false, "show a desktop notification after saving an image")
	pf.BoolVar(&r.copyAlerts, "notify-copy", false, "show a desktop notification after copying to the clipboard")

	cmd.AddCommand(
		newEditCmd(r),
		newApplyCmd(r),
		newInteractiveCmd(r),
		newToolsCmd(r),
		newMonitorsCmd(r),
		newConfigCmd(r),
		newVersionCmd(r),
	)
	return cmd
}

// setup builds the logger, loads the configuration and resolves the
// notification switches. Precedence: CLI > Env > Config > Default.
func (r *root) setup(cmd *cobra.Command) error {
	log, err := logging.New(r.verbose)
	if err != nil {
		return err
	}
	r.log = log

	loader := config.NewLoader(version, r.configPath)
	cfg, err := loader.Load()
	if err != nil {
		r.log.Warn("failed to load config, using defaults", zap.Error(err))
		cfg = config.New()
	}
	r.config = cfg

	flags := cmd.Flags()
	if !flags.Changed("notify-save") {
		r.saveAlerts = cfg.Notify.Save
	}
	if !flags.Changed("notify-copy") {
		r.copyAlerts = cfg.Notify.Copy
	}
	r.notifier = notify.New(notify.LoadPreferences(), r.log.Named("notify"))
	r.notifier.Enable(notify.EventSave, r.saveAlerts)
	r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	return nil
}

// theme resolves the window theme, falling back to the default when the
// requested one cannot be loaded.
func (r *root) theme() *theme.Theme {
	name := r.config.ThemeName(r.themeName)
	t, err := r.config.ResolveTheme(name, nil)
	if err != nil {
		if name != "default" {
			r.log.Warn("failed to load theme, using default", zap.String("theme", name), zap.Error(err))
		}
		return theme.Default()
	}
	return t
}

func main() {
	r := newRoot()
	if err := newRootCmd(r).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
