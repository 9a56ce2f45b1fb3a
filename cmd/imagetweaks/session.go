package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/example/imagetweaks/internal/canvas"
	"github.com/example/imagetweaks/internal/capture"
	"github.com/example/imagetweaks/internal/clipboard"
	"github.com/example/imagetweaks/internal/coretools"
	"github.com/example/imagetweaks/internal/editor"
	"github.com/example/imagetweaks/internal/event"
	"github.com/example/imagetweaks/internal/panel"
	"github.com/example/imagetweaks/internal/toolbar"
)

var (
	captureScreenFn  = capture.Screen
	readClipboardFn  = clipboard.ReadImage
	writeClipboardFn = clipboard.WriteImage
)

// source selects where the starting image comes from.
type source struct {
	path          string
	fromClipboard bool
	capture       bool
	display       string
}

func (s source) open() (*canvas.Canvas, error) {
	switch {
	case s.fromClipboard && s.capture:
		return nil, errors.New("--from-clipboard and --capture are mutually exclusive")
	case s.fromClipboard:
		img, err := readClipboardFn()
		if err != nil {
			return nil, fmt.Errorf("failed to read clipboard: %w", err)
		}
		return canvas.New(img), nil
	case s.capture:
		img, err := captureScreenFn(s.display)
		if err != nil {
			return nil, fmt.Errorf("failed to capture screen: %w", err)
		}
		return canvas.New(img), nil
	case s.path == "":
		return nil, errors.New("an input file is required")
	}
	return canvas.Open(s.path)
}

// session is an editor wired to a panel form and an output file.
type session struct {
	r      *root
	ed     *editor.Editor
	form   *panel.Form
	img    *canvas.Canvas
	output string

	mu      sync.Mutex
	saved   string
	saveErr error
	pending <-chan struct{}
}

func (r *root) newSession(img *canvas.Canvas, output, layout string) (*session, error) {
	if layout == "" {
		layout = r.config.ToolbarLayout
	}
	var groups []toolbar.Group
	if layout != "" {
		g, err := toolbar.LoadGroupsFile(layout)
		if err != nil {
			return nil, err
		}
		groups = g
	}

	form := panel.NewForm()
	ed, err := editor.New(
		editor.WithImage(img),
		editor.WithPanel(form),
		editor.WithLogger(r.log.Named("editor")),
		editor.WithHistoryLimit(r.config.HistoryLimit),
		editor.WithToolbarGroups(groups),
	)
	if err != nil {
		return nil, err
	}
	if err := coretools.Register(ed); err != nil {
		return nil, err
	}
	ed.Initialize()

	s := &session{r: r, ed: ed, form: form, img: img, output: output}
	ed.Subscribe(event.TypeSave, s.onSave)
	return s, nil
}

// resolveOutput applies the configured save directory and default format to
// an output name.
func (r *root) resolveOutput(name string) string {
	if name == "" {
		return ""
	}
	if filepath.Ext(name) == "" {
		name += "." + r.config.Format
	}
	if !filepath.IsAbs(name) && r.config.SaveDir != "" && !strings.ContainsRune(name, filepath.Separator) {
		name = filepath.Join(r.config.SaveDir, name)
	}
	return name
}

func (s *session) onSave(e event.Event) {
	data, ok := e.Data.(event.SaveData)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	path := s.r.resolveOutput(s.output)
	if path == "" {
		s.saveErr = errors.New("no output file set")
		return
	}
	if err := canvas.New(data.Pixels.Image()).Save(path, s.r.config.JPEGQuality); err != nil {
		s.saveErr = fmt.Errorf("failed to save %s: %w", path, err)
		s.r.log.Warn("save failed", zap.String("path", path), zap.Error(err))
		return
	}
	s.saved, s.saveErr = path, nil
	s.r.log.Info("saved image", zap.String("path", path),
		zap.Int("width", data.Pixels.Width), zap.Int("height", data.Pixels.Height))
	s.r.notifier.Save(path)
}

// save publishes the current image and returns where it was written.
func (s *session) save(output string) (string, error) {
	s.mu.Lock()
	if output != "" {
		s.output = output
	}
	s.mu.Unlock()
	s.ed.Save()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved, s.saveErr
}

func (s *session) copyToClipboard() error {
	if err := writeClipboardFn(s.img.Snapshot().Image()); err != nil {
		return fmt.Errorf("failed to copy image: %w", err)
	}
	s.r.notifier.Copy("image")
	return nil
}
