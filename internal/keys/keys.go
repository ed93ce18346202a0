// Package keys contains keybinding definitions and maps key presses to
// editor commands.
package keys

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/currencybox/internal/numedit"
)

// KeyMap defines the keybindings for the number editor.
type KeyMap struct {
	// Editing
	Digit        key.Binding
	Backspace    key.Binding
	Delete       key.Binding
	DecimalPoint key.Binding
	Minus        key.Binding
	Plus         key.Binding

	// Navigation
	Up         key.Binding
	Down       key.Binding
	RepeatUp   key.Binding
	RepeatDown key.Binding
	Left       key.Binding
	Right      key.Binding

	// History and clipboard
	Undo  key.Binding
	Redo  key.Binding
	Copy  key.Binding
	Paste key.Binding

	// Application
	Save       key.Binding
	NextFormat key.Binding
	NextMode   key.Binding

	// General
	Enter  key.Binding
	Escape key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Editing
		Digit: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "type digit"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "remove digit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("del", "clear"),
		),
		DecimalPoint: key.NewBinding(
			key.WithKeys(".", ","),
			key.WithHelp(".", "fraction"),
		),
		Minus: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "invert sign"),
		),
		Plus: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "add"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "step up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "step down"),
		),
		RepeatUp: key.NewBinding(
			key.WithKeys("shift+up", "pgup", "K"),
			key.WithHelp("pgup", "big step up"),
		),
		RepeatDown: key.NewBinding(
			key.WithKeys("shift+down", "pgdown", "J"),
			key.WithHelp("pgdn", "big step down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "integer part"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "fraction part"),
		),

		// History and clipboard
		Undo: key.NewBinding(
			key.WithKeys("ctrl+z", "u"),
			key.WithHelp("u", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+r", "ctrl+y"),
			key.WithHelp("ctrl+r", "redo"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y", "alt+c"),
			key.WithHelp("y", "copy"),
		),
		Paste: key.NewBinding(
			key.WithKeys("p", "ctrl+v"),
			key.WithHelp("p", "paste"),
		),

		// General
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "commit"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save settings"),
		),
		NextFormat: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "next format"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "next input mode"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Editor is the keymap used by the number box.
var Editor = DefaultKeyMap()

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Digit, k.Up, k.Minus, k.Undo, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Digit, k.Backspace, k.Delete, k.DecimalPoint, k.Minus, k.Plus}, // Editing
		{k.Up, k.Down, k.RepeatUp, k.RepeatDown, k.Left, k.Right},         // Navigation
		{k.Undo, k.Redo, k.Copy, k.Paste},                                 // History
		{k.Save, k.NextFormat, k.NextMode},                                // Application
		{k.Enter, k.Escape, k.Help, k.Quit},                               // General
	}
}

// Classify maps a key press to an editor command. Keys the editor does
// not handle, including bracketed pastes, become CmdIgnored.
func (k KeyMap) Classify(msg tea.KeyMsg) numedit.Command {
	if msg.Paste {
		return numedit.Key(numedit.CmdIgnored)
	}

	switch {
	case key.Matches(msg, k.Digit):
		return numedit.Digit(int(msg.Runes[0] - '0'))
	case key.Matches(msg, k.Backspace):
		return numedit.Key(numedit.CmdBackspace)
	case key.Matches(msg, k.Delete):
		return numedit.Key(numedit.CmdDelete)
	case key.Matches(msg, k.DecimalPoint):
		return numedit.Key(numedit.CmdDecimalPoint)
	case key.Matches(msg, k.Minus):
		return numedit.Key(numedit.CmdMinus)
	case key.Matches(msg, k.Plus):
		return numedit.Key(numedit.CmdPlus)
	case key.Matches(msg, k.Up):
		return numedit.Key(numedit.CmdArrowUp)
	case key.Matches(msg, k.Down):
		return numedit.Key(numedit.CmdArrowDown)
	case key.Matches(msg, k.RepeatUp):
		return numedit.Repeated(numedit.CmdArrowUp)
	case key.Matches(msg, k.RepeatDown):
		return numedit.Repeated(numedit.CmdArrowDown)
	case key.Matches(msg, k.Left):
		return numedit.Key(numedit.CmdArrowLeft)
	case key.Matches(msg, k.Right):
		return numedit.Key(numedit.CmdArrowRight)
	case key.Matches(msg, k.Undo):
		return numedit.Key(numedit.CmdUndo)
	case key.Matches(msg, k.Redo):
		return numedit.Key(numedit.CmdRedo)
	case key.Matches(msg, k.Copy):
		return numedit.Key(numedit.CmdCopy)
	case key.Matches(msg, k.Paste):
		return numedit.Key(numedit.CmdPaste)
	case key.Matches(msg, k.Enter):
		return numedit.Key(numedit.CmdEnter)
	}
	return numedit.Key(numedit.CmdIgnored)
}
