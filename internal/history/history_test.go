package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(h *History) []string {
	var out []string
	for _, a := range h.Actions() {
		out = append(out, a.Name)
	}
	return out
}

func TestEmptyHistory(t *testing.T) {
	h := New()
	assert.False(t, h.IsUndoable())
	assert.False(t, h.IsRedoable())
	assert.Equal(t, -1, h.Cursor())
	_, ok := h.Current()
	assert.False(t, ok)
	_, ok = h.Next()
	assert.False(t, ok)
	assert.False(t, h.StepBack())
	assert.False(t, h.StepForward())
}

func TestPushMakesUndoableNotRedoable(t *testing.T) {
	h := New()
	for i, n := range []string{"a", "b", "c"} {
		h.Push(Action{Name: n})
		assert.True(t, h.IsUndoable())
		assert.False(t, h.IsRedoable())
		assert.Equal(t, i, h.Cursor())
	}
}

func TestUndoRedoCursor(t *testing.T) {
	h := New()
	h.Push(Action{Name: "rotateClockwise", Payload: struct{}{}})
	assert.Equal(t, 0, h.Cursor())

	cur, ok := h.Current()
	require.True(t, ok)
	assert.Equal(t, "rotateClockwise", cur.Name)

	require.True(t, h.StepBack())
	assert.Equal(t, -1, h.Cursor())
	assert.False(t, h.IsUndoable())
	assert.True(t, h.IsRedoable())

	next, ok := h.Next()
	require.True(t, ok)
	assert.Equal(t, "rotateClockwise", next.Name)

	require.True(t, h.StepForward())
	assert.Equal(t, 0, h.Cursor())
	assert.True(t, h.IsUndoable())
	assert.False(t, h.IsRedoable())
}

func TestPushAfterUndoTruncates(t *testing.T) {
	h := New()
	h.Push(Action{Name: "A"})
	h.Push(Action{Name: "B"})
	h.Push(Action{Name: "C"})
	h.StepBack()
	h.Push(Action{Name: "D"})

	assert.Equal(t, []string{"A", "B", "D"}, names(h))
	assert.Equal(t, 2, h.Cursor())
	assert.False(t, h.IsRedoable())
}

func TestPushAfterUndoingEverything(t *testing.T) {
	h := New()
	h.Push(Action{Name: "A"})
	h.Push(Action{Name: "B"})
	h.StepBack()
	h.StepBack()
	h.Push(Action{Name: "C"})
	assert.Equal(t, []string{"C"}, names(h))
	assert.Equal(t, 0, h.Cursor())
}

func TestLimitEvictsOldest(t *testing.T) {
	h := New(WithLimit(2))
	h.Push(Action{Name: "A"})
	h.Push(Action{Name: "B"})
	h.Push(Action{Name: "C"})
	assert.Equal(t, []string{"B", "C"}, names(h))
	assert.Equal(t, 1, h.Cursor())
	assert.True(t, h.IsUndoable())
}

func TestActionsIsACopy(t *testing.T) {
	h := New()
	h.Push(Action{Name: "A"})
	got := h.Actions()
	got[0].Name = "Z"
	assert.Equal(t, []string{"A"}, names(h))
}

func TestClear(t *testing.T) {
	h := New()
	h.Push(Action{Name: "A"})
	h.Clear()
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, -1, h.Cursor())
	assert.False(t, h.IsRedoable())
}
