package numedit

import "github.com/govalues/decimal"

// DefaultUndoLimit is the undo depth used when none is configured.
const DefaultUndoLimit = 100

// History is a bounded undo/redo stack of committed values. A limit of
// zero or less keeps every entry.
type History struct {
	undo  []decimal.Decimal
	redo  []decimal.Decimal
	limit int
}

// NewHistory creates a History holding at most limit undo entries.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Record pushes the value being replaced and clears the redo stack.
func (h *History) Record(previous decimal.Decimal) {
	h.push(previous)
	h.redo = h.redo[:0]
}

func (h *History) push(v decimal.Decimal) {
	h.undo = append(h.undo, v)
	h.trim()
}

func (h *History) trim() {
	if h.limit > 0 && len(h.undo) > h.limit {
		n := len(h.undo) - h.limit
		h.undo = append(h.undo[:0], h.undo[n:]...)
	}
}

// Undo pops the newest entry and moves current onto the redo stack.
// It returns false when there is nothing to undo.
func (h *History) Undo(current decimal.Decimal) (decimal.Decimal, bool) {
	if len(h.undo) == 0 {
		return current, false
	}
	last := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)
	return last, true
}

// Redo pops the newest redo entry and records current for undo without
// clearing the remaining redo entries.
func (h *History) Redo(current decimal.Decimal) (decimal.Decimal, bool) {
	if len(h.redo) == 0 {
		return current, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.push(current)
	return next, true
}

// CanUndo reports whether Undo would change anything.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would change anything.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the undo depth.
func (h *History) Len() int { return len(h.undo) }

// Clear empties both stacks.
func (h *History) Clear() {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}

// SetLimit changes the depth, evicting the oldest entries if needed.
func (h *History) SetLimit(limit int) {
	h.limit = limit
	h.trim()
}
