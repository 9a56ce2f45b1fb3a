package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormFieldsAndButtons(t *testing.T) {
	f := NewForm()
	changes := 0
	f.OnChange(func() { changes++ })

	f.SetVisible(true)
	f.AddField("width", 20)
	f.AddField("height", 10)
	clicked := 0
	f.AddButton("Go", func() { clicked++ })

	v, ok := f.Field("width")
	require.True(t, ok)
	assert.Equal(t, 20, v)

	require.NoError(t, f.SetField("width", 5))
	v, _ = f.Field("width")
	assert.Equal(t, 5, v)
	assert.Error(t, f.SetField("depth", 1))

	require.NoError(t, f.Click("Go"))
	assert.Equal(t, 1, clicked)
	assert.Error(t, f.Click("Stop"))

	assert.Equal(t, []string{"Go"}, f.Buttons())
	assert.Equal(t, []Field{{"width", 5}, {"height", 10}}, f.Fields())
	assert.Equal(t, 5, changes)
}

func TestClickRequiresVisiblePanel(t *testing.T) {
	f := NewForm()
	f.AddButton("Go", func() { t.Fatal("hidden button fired") })
	assert.Error(t, f.Click("Go"))
}

func TestClearDropsControls(t *testing.T) {
	f := NewForm()
	f.AddField("x", 1)
	f.AddButton("Go", nil)
	f.Clear()
	assert.Empty(t, f.Fields())
	assert.Empty(t, f.Buttons())
	_, ok := f.Field("x")
	assert.False(t, ok)
}
