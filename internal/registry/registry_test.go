package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/imagetweaks/internal/tool"
)

func simple(t *testing.T, name, title string) tool.Tool {
	t.Helper()
	f, err := tool.New(tool.Descriptor{Name: name, Icon: name, Title: title},
		func(tool.Image, tool.Payload) (tool.Payload, error) { return nil, nil },
		func(tool.Image, tool.Payload) error { return nil })
	require.NoError(t, err)
	return f
}

type bare struct{ desc tool.Descriptor }

func (b bare) Descriptor() tool.Descriptor                     { return b.desc }
func (bare) Do(tool.Image, tool.Payload) (tool.Payload, error) { return nil, nil }
func (bare) Undo(tool.Image, tool.Payload) error               { return nil }

func TestRegisterAndGet(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(simple(t, "rotate", "Rotate")))
	got, ok := r.Get("rotate")
	require.True(t, ok)
	assert.Equal(t, "Rotate", got.Descriptor().Title)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegisterOverwritesSilently(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(simple(t, "a", "First")))
	require.NoError(t, r.Register(simple(t, "b", "B")))
	require.NoError(t, r.Register(simple(t, "a", "Second")))

	got, _ := r.Get("a")
	assert.Equal(t, "Second", got.Descriptor().Title)
	assert.Equal(t, []string{"a", "b"}, r.Names())
	assert.Equal(t, 2, r.Len())
}

func TestRegisterRejectsIncompleteDescriptor(t *testing.T) {
	r := New()
	err := r.Register(bare{desc: tool.Descriptor{Name: "x", Icon: "x"}})
	var cerr *tool.ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "title", cerr.Field)
	assert.Equal(t, 0, r.Len())
}

func TestRegisterNilTool(t *testing.T) {
	r := New()
	var err error
	require.NotPanics(t, func() { err = r.Register(nil) })
	var cerr *tool.ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "registry", cerr.Component)
	assert.Equal(t, "tool", cerr.Field)
	assert.Equal(t, 0, r.Len())
}
