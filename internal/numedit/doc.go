// Package numedit implements the editing state machine behind a masked
// decimal input: digits, backspace, arrow steps, sign flips, undo/redo and
// clipboard paste are applied to a bounded fixed-point decimal one command at
// a time, so the rendered text never stops being a valid number.
//
// The package is rendering-agnostic. A host (see internal/ui/numberbox)
// classifies raw input into a Command, hands it to a Controller, and reads
// back the new Value, the rendered Text and the Caret offset.
//
// A Controller is not safe for concurrent use; confine it to one event loop.
package numedit
