// Package numberbox provides a single-line Bubble Tea input for decimal
// values. Editing is delegated to a numedit.Controller; the model classifies
// keys, relocates the caret on mouse clicks and draws the formatted text.
package numberbox

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/govalues/decimal"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/currencybox/internal/keys"
	"github.com/zjrosen/currencybox/internal/log"
	"github.com/zjrosen/currencybox/internal/numedit"
)

const zonePrefix = "numberbox:"

// ValueChangedMsg is sent after a key or paste changed the value.
type ValueChangedMsg struct {
	ID       string
	Value    decimal.Decimal
	Previous decimal.Decimal
}

// SubmitMsg is sent when Enter is pressed with no add panel open.
type SubmitMsg struct {
	ID    string
	Value decimal.Decimal
}

// PanelOpenedMsg is sent when '+' opened an add panel.
type PanelOpenedMsg struct {
	ID    string
	Panel *numedit.AddPanel
}

// PanelClosedMsg is sent when the add panel closed. Value is the parent's
// value after the final fold.
type PanelClosedMsg struct {
	ID    string
	Value decimal.Decimal
}

// Config configures a number box.
type Config struct {
	Label string
	Width int // minimum value width in cells; the text is right-aligned
	// KeyMap overrides keys.Editor.
	KeyMap *keys.KeyMap
}

// Model is the number box state. The controller is shared, so copies of a
// Model edit the same value.
type Model struct {
	ctrl    *numedit.Controller
	keyMap  keys.KeyMap
	label   string
	width   int
	zoneID  string
	focused bool

	lastCmd numedit.Command
	last    numedit.Result
}

// New creates a number box editing ctrl.
func New(ctrl *numedit.Controller, cfg Config) Model {
	km := keys.Editor
	if cfg.KeyMap != nil {
		km = *cfg.KeyMap
	}
	return Model{
		ctrl:   ctrl,
		keyMap: km,
		label:  cfg.Label,
		width:  cfg.Width,
		zoneID: zonePrefix + ctrl.ID(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Controller returns the controller being edited.
func (m Model) Controller() *numedit.Controller { return m.ctrl }

// Focused reports whether the box accepts keys and shows its caret.
func (m Model) Focused() bool { return m.focused }

// ZoneID is the bubblezone ID wrapping the value line.
func (m Model) ZoneID() string { return m.zoneID }

// LastCommand returns the most recently applied command.
func (m Model) LastCommand() numedit.Command { return m.lastCmd }

// LastResult returns the outcome of the most recently applied command.
func (m Model) LastResult() numedit.Result { return m.last }

// Focus gives the box keyboard focus and re-derives the editing zone.
func (m Model) Focus() Model {
	m.focused = true
	m.ctrl.Focus()
	return m
}

// Blur removes keyboard focus.
func (m Model) Blur() Model {
	m.focused = false
	return m
}

// SetWidth sets the minimum value width.
func (m Model) SetWidth(width int) Model {
	m.width = width
	return m
}

// SetLabel sets the label drawn above the box.
func (m Model) SetLabel(label string) Model {
	m.label = label
	return m
}

// Update handles key and mouse messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	before := m.ctrl.Value()
	panel := m.ctrl.Panel()

	// Bracketed paste delivers the text directly; the clipboard is not read.
	if msg.Paste {
		target := m.ctrl
		if panel != nil {
			target = panel.Child()
		}
		m.lastCmd = numedit.Key(numedit.CmdPaste)
		m.last = target.PasteText(string(msg.Runes))
		return m, m.changes(before, panel)
	}

	cmd := m.keyMap.Classify(msg)
	m.lastCmd = cmd
	m.last = m.ctrl.Apply(cmd)

	if cmd.Kind == numedit.CmdEnter && panel == nil && m.last.Outcome == numedit.PassThrough {
		id, v := m.ctrl.ID(), m.ctrl.Value()
		return m, tea.Batch(m.changes(before, panel), func() tea.Msg {
			return SubmitMsg{ID: id, Value: v}
		})
	}
	return m, m.changes(before, panel)
}

// changes reports what the last command did to the value and the panel.
func (m Model) changes(before decimal.Decimal, panel *numedit.AddPanel) tea.Cmd {
	var cmds []tea.Cmd
	id := m.ctrl.ID()

	if after := m.ctrl.Value(); after.Cmp(before) != 0 {
		cmds = append(cmds, func() tea.Msg {
			return ValueChangedMsg{ID: id, Value: after, Previous: before}
		})
	}

	now := m.ctrl.Panel()
	switch {
	case panel == nil && now != nil:
		cmds = append(cmds, func() tea.Msg { return PanelOpenedMsg{ID: id, Panel: now} })
	case panel != nil && now == nil:
		v := m.ctrl.Value()
		cmds = append(cmds, func() tea.Msg { return PanelClosedMsg{ID: id, Value: v} })
	}
	return tea.Batch(cmds...)
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	z := zone.Get(m.zoneID)
	if z == nil || !z.InBounds(msg) {
		return m, nil
	}
	// The panel owns editing while it is open.
	if m.ctrl.Panel() != nil {
		return m, nil
	}
	m.focused = true
	return m.clickAt(msg.X - z.StartX), nil
}

// clickAt relocates the caret to the grapheme under cell x of the value
// line, padding included.
func (m Model) clickAt(x int) Model {
	text := m.ctrl.Text()
	idx := graphemeAtCell(text, x-m.padding(text))
	m.ctrl.MoveCaret(idx)
	log.Debug(log.CatUI, "caret moved", "id", m.ctrl.ID(), "cell", x, "caret", m.ctrl.Caret(), "zone", m.ctrl.Zone())
	return m
}
