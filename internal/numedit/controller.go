package numedit

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/zjrosen/currencybox/internal/log"
)

// DefaultRepeatAmount is the step size for auto-repeated arrow presses.
const DefaultRepeatAmount = 10

// Clipboard is the text clipboard used by copy and paste.
type Clipboard interface {
	Text() (string, error)
	SetText(text string) error
	Clear() error
}

// ValueChange is delivered to observers after every committed change.
type ValueChange struct {
	Value      decimal.Decimal
	Previous   decimal.Decimal
	IsNegative bool
}

// Config configures a Controller. The zero value is a usable C2 field in
// the invariant locale with simplified input and unlimited undo.
type Config struct {
	Format    string // format specifier, e.g. "C2", "N0", "P1"; empty means C2
	Locale    Locale // zero value means InvariantLocale
	InputMode InputMode

	Minimum decimal.Decimal // zero means no minimum
	Maximum decimal.Decimal // zero means no maximum
	Value   decimal.Decimal

	MaxLength    int  // refuse digits once the canonical text is this long; 0 disables
	UndoLimit    int  // 0 or less keeps every entry
	DisableUndo  bool // undo/redo commands are skipped; history is still kept
	RepeatAmount int  // 0 means DefaultRepeatAmount
	ReadOnly     bool
	AddPanel     bool // '+' opens an add panel

	Clipboard Clipboard // nil disables copy and paste
}

// Controller owns one editable value and applies commands to it.
type Controller struct {
	id     string
	format FormatSpec
	locale Locale
	mode   InputMode
	bounds Bounds
	value  decimal.Decimal

	zone  Zone
	caret int

	history     *History
	undoEnabled bool

	maxLength    int
	repeatAmount int
	readOnly     bool
	addPanel     bool
	inPanel      bool
	clipboard    Clipboard

	panel     *AddPanel
	observers []observer
	nextObsID int
}

type observer struct {
	id int
	fn func(ValueChange)
}

// New validates cfg and creates a Controller. Only ErrValidation errors
// are returned.
func New(cfg Config) (*Controller, error) {
	format := DefaultFormat
	if cfg.Format != "" {
		f, err := ParseFormat(cfg.Format)
		if err != nil {
			return nil, err
		}
		format = f
	}

	loc := cfg.Locale
	if loc.Tag == "" {
		loc = InvariantLocale
	}
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateBound(cfg.Minimum); err != nil {
		return nil, fmt.Errorf("minimum: %w", err)
	}
	if err := ValidateBound(cfg.Maximum); err != nil {
		return nil, fmt.Errorf("maximum: %w", err)
	}

	repeat := cfg.RepeatAmount
	if repeat <= 0 {
		repeat = DefaultRepeatAmount
	}

	c := &Controller{
		id:           uuid.NewString(),
		format:       format,
		locale:       loc,
		mode:         cfg.InputMode,
		bounds:       Bounds{Min: cfg.Minimum, Max: cfg.Maximum},
		history:      NewHistory(cfg.UndoLimit),
		undoEnabled:  !cfg.DisableUndo,
		maxLength:    cfg.MaxLength,
		repeatAmount: repeat,
		readOnly:     cfg.ReadOnly,
		addPanel:     cfg.AddPanel,
		clipboard:    cfg.Clipboard,
	}
	c.value = c.bounds.Clamp(cfg.Value)
	c.Focus()

	log.Debug(log.CatEdit, "controller created",
		"id", c.id, "format", c.format, "locale", c.locale.Tag, "mode", c.mode)
	return c, nil
}

// ============================================================================
// Accessors
// ============================================================================

// ID identifies the controller in log output.
func (c *Controller) ID() string { return c.id }

// Value returns the committed value.
func (c *Controller) Value() decimal.Decimal { return c.value }

// IsNegative reports whether the committed value is below zero.
func (c *Controller) IsNegative() bool { return c.value.Sign() < 0 }

func (c *Controller) Format() FormatSpec       { return c.format }
func (c *Controller) Locale() Locale           { return c.locale }
func (c *Controller) InputMode() InputMode     { return c.mode }
func (c *Controller) Minimum() decimal.Decimal { return c.bounds.Min }
func (c *Controller) Maximum() decimal.Decimal { return c.bounds.Max }
func (c *Controller) Zone() Zone               { return c.zone }
func (c *Controller) Caret() int               { return c.caret }
func (c *Controller) ReadOnly() bool           { return c.readOnly }
func (c *Controller) UndoEnabled() bool        { return c.undoEnabled }
func (c *Controller) CanUndo() bool            { return c.undoEnabled && c.history.CanUndo() }
func (c *Controller) CanRedo() bool            { return c.undoEnabled && c.history.CanRedo() }

// Text renders the committed value for display.
func (c *Controller) Text() string { return Display(c.value, c.format, c.locale) }

// Panel returns the open add panel, or nil.
func (c *Controller) Panel() *AddPanel { return c.panel }

// ============================================================================
// Setters
// ============================================================================

// SetValue replaces the value without recording undo history. The value
// is clamped into the bounds.
func (c *Controller) SetValue(v decimal.Decimal) {
	c.set(c.bounds.Clamp(v))
}

// SetMaximum sets the maximum and re-clamps the value. Zero clears it.
func (c *Controller) SetMaximum(d decimal.Decimal) error {
	if err := ValidateBound(d); err != nil {
		return fmt.Errorf("maximum: %w", err)
	}
	c.bounds.Max = d
	log.Debug(log.CatFormat, "maximum changed", "id", c.id, "max", d)
	c.set(c.bounds.Clamp(c.value))
	return nil
}

// SetMinimum sets the minimum and re-clamps the value. Zero clears it.
func (c *Controller) SetMinimum(d decimal.Decimal) error {
	if err := ValidateBound(d); err != nil {
		return fmt.Errorf("minimum: %w", err)
	}
	c.bounds.Min = d
	log.Debug(log.CatFormat, "minimum changed", "id", c.id, "min", d)
	c.set(c.bounds.Clamp(c.value))
	return nil
}

// SetFormat changes the format specifier. The value is kept; the zone
// and caret are re-derived.
func (c *Controller) SetFormat(spec string) error {
	f, err := ParseFormat(spec)
	if err != nil {
		return err
	}
	c.format = f
	log.Debug(log.CatFormat, "format changed", "id", c.id, "format", f)
	c.Focus()
	return nil
}

// SetLocale changes the locale after validating its separators.
func (c *Controller) SetLocale(loc Locale) error {
	if err := loc.Validate(); err != nil {
		return err
	}
	c.locale = loc
	log.Debug(log.CatFormat, "locale changed", "id", c.id, "locale", loc.Tag)
	c.Focus()
	return nil
}

// Reconfigure applies every setting of cfg except Value and Clipboard.
// Nothing changes unless all of cfg is valid. The current value is kept,
// clamped into the new bounds, without recording history.
func (c *Controller) Reconfigure(cfg Config) error {
	format := DefaultFormat
	if cfg.Format != "" {
		f, err := ParseFormat(cfg.Format)
		if err != nil {
			return err
		}
		format = f
	}
	loc := cfg.Locale
	if loc.Tag == "" {
		loc = InvariantLocale
	}
	if err := loc.Validate(); err != nil {
		return err
	}
	if err := ValidateBound(cfg.Minimum); err != nil {
		return fmt.Errorf("minimum: %w", err)
	}
	if err := ValidateBound(cfg.Maximum); err != nil {
		return fmt.Errorf("maximum: %w", err)
	}

	c.format = format
	c.locale = loc
	c.mode = cfg.InputMode
	c.bounds = Bounds{Min: cfg.Minimum, Max: cfg.Maximum}
	c.history.SetLimit(cfg.UndoLimit)
	c.undoEnabled = !cfg.DisableUndo
	c.maxLength = cfg.MaxLength
	c.repeatAmount = cfg.RepeatAmount
	if c.repeatAmount <= 0 {
		c.repeatAmount = DefaultRepeatAmount
	}
	c.readOnly = cfg.ReadOnly
	c.addPanel = cfg.AddPanel

	log.Info(log.CatFormat, "reconfigured",
		"id", c.id, "format", c.format, "locale", c.locale.Tag, "mode", c.mode)
	c.Focus()
	c.set(c.bounds.Clamp(c.value))
	return nil
}

// SetInputMode changes the input mode and re-derives the zone.
func (c *Controller) SetInputMode(m InputMode) {
	c.mode = m
	c.Focus()
}

func (c *Controller) SetReadOnly(readOnly bool) { c.readOnly = readOnly }

// SetUndoEnabled gates the undo and redo commands.
func (c *Controller) SetUndoEnabled(enabled bool) { c.undoEnabled = enabled }

// SetUndoLimit changes the history depth, evicting the oldest entries.
func (c *Controller) SetUndoLimit(limit int) { c.history.SetLimit(limit) }

// ClearUndoHistory empties both history stacks.
func (c *Controller) ClearUndoHistory() {
	c.history.Clear()
	log.Debug(log.CatHistory, "history cleared", "id", c.id)
}

// Observe registers fn for value changes and returns a function that
// removes it.
func (c *Controller) Observe(fn func(ValueChange)) (cancel func()) {
	c.nextObsID++
	id := c.nextObsID
	c.observers = append(c.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range c.observers {
			if o.id == id {
				c.observers = append(c.observers[:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

// ============================================================================
// Caret and zone
// ============================================================================

// Focus selects the default zone and parks the caret for it.
func (c *Controller) Focus() {
	c.zone = DefaultZone(c.mode, c.format)
	c.placeCaret()
}

// MoveCaret relocates the caret to a grapheme offset in Text, as a mouse
// click would. Zoned modes pick the zone the offset falls in; the caret
// is then re-parked for that zone.
func (c *Controller) MoveCaret(offset int) {
	if c.mode.zoned() {
		c.zone = ZoneAt(c.Text(), c.separator(), offset)
		if c.zone == ZoneDecimal && c.format.FractionDigits == 0 {
			c.zone = ZoneInteger
		}
	}
	c.placeCaret()
}

func (c *Controller) setZone(z Zone) Result {
	if !c.mode.zoned() || (z == ZoneDecimal && c.format.FractionDigits == 0) {
		return skipped
	}
	c.zone = z
	c.placeCaret()
	return executed
}

func (c *Controller) placeCaret() {
	c.caret = CaretFor(c.Text(), c.separator(), c.mode, c.zone)
}

func (c *Controller) separator() string { return c.format.DecimalSeparator(c.locale) }

// ============================================================================
// Edits
// ============================================================================

// InsertDigit types d (0-9) into the active zone.
func (c *Controller) InsertDigit(d int) Result {
	if d < 0 || d > 9 {
		return passThrough
	}
	if c.readOnly {
		return skipped
	}
	// The limit applies to the text already shown, not to the result.
	if c.maxLength > 0 && len(RenderClipboard(c.value, c.locale)) > c.maxLength {
		log.Debug(log.CatEdit, "digit refused", "id", c.id, "reason", "max length", "max", c.maxLength)
		return Result{Outcome: Skipped, Recovery: RecoveryMaxLength}
	}
	v, err := InsertDigit(c.value, d, c.mode, c.zone, c.format, c.locale)
	v, rec := c.recover("insert", v, err)
	return c.commit("insert", v, rec)
}

// Backspace removes the rightmost digit of the active zone.
func (c *Controller) Backspace() Result {
	if c.readOnly {
		return skipped
	}
	v, err := RemoveDigit(c.value, c.mode, c.zone, c.format, c.locale)
	rec := RecoveryNone
	if err != nil {
		log.ErrorErr(log.CatEdit, "remove digit failed, resetting", err, "id", c.id)
		v, rec = zero, RecoveryResetToZero
	}
	return c.commit("remove", v, rec)
}

// Step adds amount units to the active zone. Negative amounts step down.
func (c *Controller) Step(amount int) Result {
	if c.readOnly {
		return skipped
	}
	v, err := Step(c.value, amount, c.mode, c.zone, c.format, c.locale)
	v, rec := c.recover("step", v, err)
	return c.commit("step", v, rec)
}

// InvertSign negates the value.
func (c *Controller) InvertSign() Result {
	if c.readOnly {
		return skipped
	}
	return c.commit("invert sign", c.value.Neg(), RecoveryNone)
}

// SetPositive makes the value non-negative.
func (c *Controller) SetPositive() Result {
	if c.readOnly {
		return skipped
	}
	return c.commit("set positive", c.value.Abs(), RecoveryNone)
}

// SetNegative makes the value non-positive.
func (c *Controller) SetNegative() Result {
	if c.readOnly {
		return skipped
	}
	return c.commit("set negative", c.value.Abs().Neg(), RecoveryNone)
}

// Clear resets the value to zero.
func (c *Controller) Clear() Result {
	if c.readOnly {
		return skipped
	}
	return c.commit("clear", zero, RecoveryNone)
}

// FoldChildDelta adds delta to the value as a single undoable edit. Add
// panels call it to commit.
func (c *Controller) FoldChildDelta(delta decimal.Decimal) Result {
	if c.readOnly {
		return skipped
	}
	sum, err := c.value.Add(delta)
	if err != nil {
		err = overflow("fold", delta.Sign() < 0)
	}
	v, rec := c.recover("fold", sum, err)
	return c.commit("fold", v, rec)
}

// Undo restores the previous committed value.
func (c *Controller) Undo() Result {
	if c.readOnly || !c.undoEnabled {
		return skipped
	}
	prev, ok := c.history.Undo(c.value)
	if !ok {
		return skipped
	}
	log.Debug(log.CatHistory, "undo", "id", c.id, "from", c.value, "to", prev, "depth", c.history.Len())
	c.set(c.bounds.Clamp(prev))
	return executed
}

// Redo re-applies the last undone value.
func (c *Controller) Redo() Result {
	if c.readOnly || !c.undoEnabled {
		return skipped
	}
	next, ok := c.history.Redo(c.value)
	if !ok {
		return skipped
	}
	log.Debug(log.CatHistory, "redo", "id", c.id, "from", c.value, "to", next)
	c.set(c.bounds.Clamp(next))
	return executed
}

// Copy places the canonical rendering of the value on the clipboard.
func (c *Controller) Copy() Result {
	if c.clipboard == nil {
		return skipped
	}
	text := RenderClipboard(c.value, c.locale)
	if err := c.clipboard.Clear(); err != nil {
		log.ErrorErr(log.CatClipboard, "clipboard clear failed", err, "id", c.id)
	}
	if err := c.clipboard.SetText(text); err != nil {
		log.ErrorErr(log.CatClipboard, "clipboard write failed", err, "id", c.id)
		return skipped
	}
	log.Debug(log.CatClipboard, "copied", "id", c.id, "text", text)
	return executed
}

// Paste parses clipboard text and commits it. Unparseable text leaves the
// value unchanged.
func (c *Controller) Paste() Result {
	if c.readOnly || c.clipboard == nil {
		return skipped
	}
	text, err := c.clipboard.Text()
	if err != nil {
		log.ErrorErr(log.CatClipboard, "clipboard read failed", err, "id", c.id)
		return Result{Outcome: Skipped, Recovery: RecoveryParseIgnored}
	}
	return c.PasteText(text)
}

// PasteText commits text as if it had been pasted, e.g. from a terminal
// bracketed paste.
func (c *Controller) PasteText(text string) Result {
	if c.readOnly {
		return skipped
	}
	v, err := ParseClipboard(text, c.format, c.locale)
	if err != nil {
		log.Debug(log.CatClipboard, "paste ignored", "id", c.id, "error", err)
		return Result{Outcome: Skipped, Recovery: RecoveryParseIgnored}
	}
	return c.commit("paste", v, RecoveryNone)
}

// recover turns engine errors into a fallback value. Overflow clamps to
// the extreme with the sign the result would have had; anything else
// resets to zero.
func (c *Controller) recover(op string, v decimal.Decimal, err error) (decimal.Decimal, Recovery) {
	if err == nil {
		return v, RecoveryNone
	}
	var oe *OverflowError
	if errors.As(err, &oe) {
		log.Warn(log.CatEdit, "overflow clamped", "id", c.id, "op", op, "negative", oe.Negative)
		return extreme(oe.Negative), RecoveryOverflowClamp
	}
	log.ErrorErr(log.CatEdit, "edit failed, resetting", err, "id", c.id, "op", op)
	return zero, RecoveryResetToZero
}

// commit clamps v into the bounds and, if it differs from the current
// value, records history and notifies observers.
func (c *Controller) commit(op string, v decimal.Decimal, rec Recovery) Result {
	clamped := c.bounds.Clamp(v)
	if clamped.Cmp(v) != 0 && rec == RecoveryNone {
		rec = RecoveryBoundsClamp
	}
	if clamped.Cmp(c.value) == 0 {
		return Result{Outcome: Skipped, Recovery: rec}
	}

	c.history.Record(c.value)
	log.Debug(log.CatEdit, op, "id", c.id, "from", c.value, "to", clamped, "recovery", rec)
	c.set(clamped)
	return Result{Outcome: Executed, Recovery: rec}
}

// set stores v, re-parks the caret and notifies observers if the value
// changed.
func (c *Controller) set(v decimal.Decimal) {
	prev := c.value
	c.value = v
	c.placeCaret()
	if prev.Cmp(v) == 0 {
		return
	}
	change := ValueChange{Value: v, Previous: prev, IsNegative: v.Sign() < 0}
	for _, o := range append([]observer(nil), c.observers...) {
		o.fn(change)
	}
}

// ============================================================================
// Dispatch
// ============================================================================

// Apply dispatches a classified command. While an add panel is open,
// commands are routed to it.
func (c *Controller) Apply(cmd Command) Result {
	if c.panel != nil {
		return c.panel.Apply(cmd)
	}

	switch cmd.Kind {
	case CmdDigit:
		return c.InsertDigit(cmd.Digit)
	case CmdBackspace:
		return c.Backspace()
	case CmdDelete:
		return c.Clear()
	case CmdArrowUp:
		return c.Step(c.stepAmount(cmd))
	case CmdArrowDown:
		return c.Step(-c.stepAmount(cmd))
	case CmdArrowLeft:
		return c.setZone(ZoneInteger)
	case CmdArrowRight:
		return c.setZone(ZoneDecimal)
	case CmdDecimalPoint:
		if c.zone == ZoneDecimal {
			return skipped
		}
		return c.setZone(ZoneDecimal)
	case CmdMinus:
		return c.InvertSign()
	case CmdPlus:
		if c.readOnly || !c.addPanel || c.inPanel {
			return passThrough
		}
		if _, err := c.OpenAddPanel(); err != nil {
			return skipped
		}
		return executed
	case CmdUndo:
		return c.Undo()
	case CmdRedo:
		return c.Redo()
	case CmdCopy:
		return c.Copy()
	case CmdPaste:
		return c.Paste()
	default:
		return passThrough
	}
}

func (c *Controller) stepAmount(cmd Command) int {
	if cmd.Repeat {
		return c.repeatAmount
	}
	return 1
}
