package numedit

import "fmt"

// Outcome indicates how a Controller handled a command.
type Outcome int

const (
	// Executed means the command was consumed and changed state.
	Executed Outcome = iota
	// PassThrough means the command is not an edit (let the host handle it).
	PassThrough
	// Skipped means the command was consumed but changed nothing
	// (read-only field, empty history, backspace at zero).
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Executed:
		return "executed"
	case PassThrough:
		return "pass-through"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Recovery names the local fallback an edit took instead of failing.
type Recovery int

const (
	RecoveryNone Recovery = iota
	// RecoveryOverflowClamp: the result exceeded MaxValue and was clamped
	// to the extreme with the same sign.
	RecoveryOverflowClamp
	// RecoveryBoundsClamp: the result was forced into Minimum/Maximum.
	RecoveryBoundsClamp
	// RecoveryResetToZero: the value could not be decomposed and was reset.
	RecoveryResetToZero
	// RecoveryParseIgnored: clipboard text was not a number.
	RecoveryParseIgnored
	// RecoveryMaxLength: the digit was refused by MaxLength.
	RecoveryMaxLength
)

func (r Recovery) String() string {
	switch r {
	case RecoveryNone:
		return "none"
	case RecoveryOverflowClamp:
		return "overflow-clamp"
	case RecoveryBoundsClamp:
		return "bounds-clamp"
	case RecoveryResetToZero:
		return "reset-to-zero"
	case RecoveryParseIgnored:
		return "parse-ignored"
	case RecoveryMaxLength:
		return "max-length"
	default:
		return fmt.Sprintf("Recovery(%d)", int(r))
	}
}

// Result reports what a command did.
type Result struct {
	Outcome  Outcome
	Recovery Recovery
}

// Handled reports whether the host should treat the input as consumed.
func (r Result) Handled() bool { return r.Outcome != PassThrough }

var (
	executed    = Result{Outcome: Executed}
	passThrough = Result{Outcome: PassThrough}
	skipped     = Result{Outcome: Skipped}
)

// ============================================================================
// Commands
// ============================================================================

// CommandKind is the abstract input a host classifies raw keys into.
type CommandKind int

const (
	CmdIgnored CommandKind = iota
	CmdDigit
	CmdBackspace
	CmdDelete
	CmdArrowUp
	CmdArrowDown
	CmdArrowLeft
	CmdArrowRight
	CmdDecimalPoint
	CmdPlus
	CmdMinus
	CmdUndo
	CmdRedo
	CmdCopy
	CmdPaste
	CmdEnter
)

var commandNames = map[CommandKind]string{
	CmdIgnored:      "ignored",
	CmdDigit:        "digit",
	CmdBackspace:    "backspace",
	CmdDelete:       "delete",
	CmdArrowUp:      "up",
	CmdArrowDown:    "down",
	CmdArrowLeft:    "left",
	CmdArrowRight:   "right",
	CmdDecimalPoint: "decimal-point",
	CmdPlus:         "plus",
	CmdMinus:        "minus",
	CmdUndo:         "undo",
	CmdRedo:         "redo",
	CmdCopy:         "copy",
	CmdPaste:        "paste",
	CmdEnter:        "enter",
}

func (k CommandKind) String() string {
	if s, ok := commandNames[k]; ok {
		return s
	}
	return fmt.Sprintf("CommandKind(%d)", int(k))
}

// Command is one classified input. Digit is only meaningful for CmdDigit.
// Repeat marks an auto-repeated arrow press, which steps by the
// controller's repeat amount instead of 1.
type Command struct {
	Kind   CommandKind
	Digit  int
	Repeat bool
}

func (c Command) String() string {
	switch {
	case c.Kind == CmdDigit:
		return fmt.Sprintf("digit(%d)", c.Digit)
	case c.Repeat:
		return c.Kind.String() + "+repeat"
	}
	return c.Kind.String()
}

// Digit builds a CmdDigit command.
func Digit(d int) Command { return Command{Kind: CmdDigit, Digit: d} }

// Key builds a command without payload.
func Key(k CommandKind) Command { return Command{Kind: k} }

// Repeated marks c as an auto-repeat.
func Repeated(k CommandKind) Command { return Command{Kind: k, Repeat: true} }
