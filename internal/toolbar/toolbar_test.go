package toolbar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/imagetweaks/internal/tool"
)

func desc(name string) tool.Descriptor {
	return tool.Descriptor{Name: name, Icon: name, Title: name}
}

func layoutNames(rows [][]*Affordance) [][]string {
	var out [][]string
	for _, row := range rows {
		var names []string
		for _, a := range row {
			names = append(names, a.Descriptor().Name)
		}
		out = append(out, names)
	}
	return out
}

func TestActivateRespectsEnabledState(t *testing.T) {
	tb := New(nil)
	calls := 0
	gate := true
	tb.Add(NewAffordance(desc("undo"), func() error { calls++; return nil },
		func(a *Affordance) { a.SetEnabled(gate) }))

	require.NoError(t, tb.Activate("undo"))
	assert.Equal(t, 1, calls)

	gate = false
	tb.UpdateState()
	assert.ErrorIs(t, tb.Activate("undo"), ErrDisabled)
	assert.Equal(t, 1, calls)

	assert.ErrorIs(t, tb.Activate("nope"), ErrUnknown)
}

func TestLayoutFollowsGroups(t *testing.T) {
	tb := New(nil)
	for _, n := range []string{"crop", "undo", "redo", "rotateClockwise", "sepia"} {
		tb.Add(NewAffordance(desc(n), nil, nil))
	}
	assert.Equal(t, [][]string{
		{"undo", "redo"},
		{"rotateClockwise"},
		{"crop"},
		{"sepia"},
	}, layoutNames(tb.Layout()))
}

func TestLoadGroups(t *testing.T) {
	in := `
groups:
  - type: bar
    include: [crop, undo]
  - include: [redo]
`
	groups, err := LoadGroups(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"crop", "undo"}, groups[0].Include)
	assert.Equal(t, "bar", groups[1].Type)

	tb := New(groups)
	for _, n := range []string{"undo", "redo", "crop"} {
		tb.Add(NewAffordance(desc(n), nil, nil))
	}
	assert.Equal(t, [][]string{{"crop", "undo"}, {"redo"}}, layoutNames(tb.Layout()))
}

func TestLoadGroupsRejectsGarbage(t *testing.T) {
	_, err := LoadGroups(strings.NewReader("groups: [unterminated"))
	assert.Error(t, err)
}
