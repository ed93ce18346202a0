package numedit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistory_UndoRedo(t *testing.T) {
	h := NewHistory(0)
	require.False(t, h.CanUndo())

	h.Record(dec("1"))
	h.Record(dec("2"))

	v, ok := h.Undo(dec("3"))
	require.True(t, ok)
	requireValue(t, "2", v)
	require.True(t, h.CanRedo())

	v, ok = h.Redo(dec("2"))
	require.True(t, ok)
	requireValue(t, "3", v)
	require.Equal(t, 2, h.Len())
}

func TestHistory_RecordClearsRedo(t *testing.T) {
	h := NewHistory(0)
	h.Record(dec("1"))
	_, _ = h.Undo(dec("2"))
	require.True(t, h.CanRedo())

	h.Record(dec("1"))
	require.False(t, h.CanRedo())
}

func TestHistory_RedoKeepsRemainingRedo(t *testing.T) {
	h := NewHistory(0)
	h.Record(dec("1"))
	h.Record(dec("2"))
	_, _ = h.Undo(dec("3"))
	_, _ = h.Undo(dec("2"))

	_, ok := h.Redo(dec("1"))
	require.True(t, ok)
	require.True(t, h.CanRedo())
}

func TestHistory_LimitEvictsOldest(t *testing.T) {
	h := NewHistory(2)
	h.Record(dec("1"))
	h.Record(dec("2"))
	h.Record(dec("3"))
	require.Equal(t, 2, h.Len())

	v, _ := h.Undo(dec("4"))
	requireValue(t, "3", v)
	v, _ = h.Undo(v)
	requireValue(t, "2", v)
	_, ok := h.Undo(v)
	require.False(t, ok)
}

func TestHistory_SetLimitTrims(t *testing.T) {
	h := NewHistory(0)
	for _, s := range []string{"1", "2", "3", "4"} {
		h.Record(dec(s))
	}
	h.SetLimit(1)
	require.Equal(t, 1, h.Len())
	v, _ := h.Undo(zero)
	requireValue(t, "4", v)
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory(0)
	h.Record(dec("1"))
	_, _ = h.Undo(dec("2"))
	h.Record(dec("5"))
	h.Clear()
	require.False(t, h.CanUndo())
	require.False(t, h.CanRedo())
}
