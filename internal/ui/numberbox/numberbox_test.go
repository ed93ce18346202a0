package numberbox

import (
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/govalues/decimal"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/currencybox/internal/numedit"
)

// TestMain initializes the global zone manager for all tests in this package.
func TestMain(m *testing.M) {
	// Force ANSI color output in tests (lipgloss disables colors when no TTY)
	lipgloss.SetColorProfile(termenv.ANSI256)
	zone.NewGlobal()
	os.Exit(m.Run())
}

func newController(t *testing.T, cfg numedit.Config) *numedit.Controller {
	t.Helper()
	c, err := numedit.New(cfg)
	require.NoError(t, err)
	return c
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends each rune of s as its own key message.
func press(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(runeKey(string(r)))
	}
	return m
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// ============================================================================
// Keys
// ============================================================================

func TestUpdate_IgnoresKeysWhenBlurred(t *testing.T) {
	m := New(newController(t, numedit.Config{}), Config{})
	m = press(m, "12")
	require.True(t, m.Controller().Value().IsZero())
}

func TestUpdate_TypesDigits(t *testing.T) {
	m := New(newController(t, numedit.Config{}), Config{}).Focus()
	m = press(m, "1250")
	require.Equal(t, "¤12.50", m.Controller().Text())
	require.Equal(t, numedit.CmdDigit, m.LastCommand().Kind)
	require.Equal(t, numedit.Executed, m.LastResult().Outcome)
}

func TestUpdate_ValueChangedMsg(t *testing.T) {
	m := New(newController(t, numedit.Config{Format: "N0"}), Config{}).Focus()

	m, cmd := m.Update(runeKey("7"))
	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	changed, ok := msgs[0].(ValueChangedMsg)
	require.True(t, ok, "expected ValueChangedMsg, got %T", msgs[0])
	require.Equal(t, m.Controller().ID(), changed.ID)
	requireValue(t, "7", changed.Value)
	require.True(t, changed.Previous.IsZero())

	// Backspace at zero changes nothing.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	require.Empty(t, collect(cmd))
}

func TestUpdate_SubmitOnEnter(t *testing.T) {
	m := New(newController(t, numedit.Config{Value: decimal.MustParse("3")}), Config{}).Focus()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	submit, ok := msgs[0].(SubmitMsg)
	require.True(t, ok)
	requireValue(t, "3", submit.Value)
}

func TestUpdate_BracketedPaste(t *testing.T) {
	m := New(newController(t, numedit.Config{Format: "N2"}), Config{}).Focus()

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1,234.567"), Paste: true})
	require.Equal(t, "1,234.57", m.Controller().Text())
	require.Equal(t, numedit.CmdPaste, m.LastCommand().Kind)
	require.Len(t, collect(cmd), 1)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("garbage"), Paste: true})
	require.Equal(t, numedit.RecoveryParseIgnored, m.LastResult().Recovery)
	require.Equal(t, "1,234.57", m.Controller().Text())
}

func TestUpdate_AddPanelMessages(t *testing.T) {
	ctrl := newController(t, numedit.Config{Format: "N0", AddPanel: true, Value: decimal.MustParse("10")})
	m := New(ctrl, Config{}).Focus()

	m, cmd := m.Update(runeKey("+"))
	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	opened, ok := msgs[0].(PanelOpenedMsg)
	require.True(t, ok)
	require.Same(t, ctrl.Panel(), opened.Panel)

	// Digits go to the child; the parent is untouched until the fold.
	m = press(m, "5")
	requireValue(t, "10", ctrl.Value())
	requireValue(t, "5", opened.Panel.Child().Value())

	// Pasted text lands in the child too.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("7"), Paste: true})
	requireValue(t, "7", opened.Panel.Child().Value())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	var closed *PanelClosedMsg
	for _, msg := range collect(cmd) {
		if c, ok := msg.(PanelClosedMsg); ok {
			closed = &c
		}
		_, isSubmit := msg.(SubmitMsg)
		require.False(t, isSubmit, "enter inside the panel must not submit")
	}
	require.NotNil(t, closed)
	requireValue(t, "17", closed.Value)
	require.Nil(t, ctrl.Panel())
}

// ============================================================================
// Mouse
// ============================================================================

func TestClickAt_SelectsZone(t *testing.T) {
	ctrl := newController(t, numedit.Config{Format: "N2", InputMode: numedit.ModeExtended, Value: decimal.MustParse("12.5")})
	m := New(ctrl, Config{})

	m = m.clickAt(4)
	require.Equal(t, numedit.ZoneDecimal, ctrl.Zone())
	require.Equal(t, 5, ctrl.Caret())

	m.clickAt(0)
	require.Equal(t, numedit.ZoneInteger, ctrl.Zone())
	require.Equal(t, 2, ctrl.Caret())
}

func TestClickAt_AccountsForPadding(t *testing.T) {
	ctrl := newController(t, numedit.Config{Format: "N2", InputMode: numedit.ModeExtended, Value: decimal.MustParse("12.5")})
	m := New(ctrl, Config{Width: 10})

	// "12.50" is five cells, right-aligned in ten.
	m.clickAt(9)
	require.Equal(t, numedit.ZoneDecimal, ctrl.Zone())

	m.clickAt(2)
	require.Equal(t, numedit.ZoneInteger, ctrl.Zone())
}

func TestUpdate_MouseClickMovesCaret(t *testing.T) {
	ctrl := newController(t, numedit.Config{InputMode: numedit.ModeExtended, Format: "N2", Value: decimal.MustParse("12.5")})
	m := New(ctrl, Config{})

	var z *zone.ZoneInfo
	for retries := 0; retries < 10; retries++ {
		_ = zone.Scan(m.View())
		z = zone.Get(m.ZoneID())
		if z != nil && !z.IsZero() {
			break
		}
		// Zone registration is asynchronous via a channel worker in bubblezone.
		time.Sleep(time.Millisecond)
	}
	require.NotNil(t, z, "zone should be registered")
	require.False(t, z.IsZero(), "zone should not be zero")

	// "12.50": cell 4 is the last fraction digit.
	m, _ = m.Update(tea.MouseMsg{
		X:      z.StartX + 4,
		Y:      z.StartY,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	require.True(t, m.Focused(), "click focuses the box")
	require.Equal(t, numedit.ZoneDecimal, ctrl.Zone())

	// Releases are ignored.
	m, _ = m.Update(tea.MouseMsg{
		X:      z.StartX,
		Y:      z.StartY,
		Action: tea.MouseActionRelease,
		Button: tea.MouseButtonLeft,
	})
	require.Equal(t, numedit.ZoneDecimal, ctrl.Zone())
}

// ============================================================================
// View
// ============================================================================

func TestView_Blurred(t *testing.T) {
	m := New(newController(t, numedit.Config{Value: decimal.MustParse("1234.5")}), Config{})
	view := zone.Scan(m.View())
	require.Contains(t, ansi.Strip(view), "¤1,234.50")
	require.NotContains(t, view, cursorOn)
}

func TestView_CaretAfterLastDigit(t *testing.T) {
	m := New(newController(t, numedit.Config{Format: "N2", Value: decimal.MustParse("1.5")}), Config{}).Focus()
	view := zone.Scan(m.View())
	require.Contains(t, view, cursorOn+" "+cursorOff)
	require.Contains(t, ansi.Strip(view), "1.50 ")
}

func TestView_CaretOnSeparator(t *testing.T) {
	ctrl := newController(t, numedit.Config{Format: "N2", InputMode: numedit.ModeExtended, Value: decimal.MustParse("1.5")})
	m := New(ctrl, Config{}).Focus()
	view := zone.Scan(m.View())
	require.Contains(t, view, cursorOn+"."+cursorOff)
}

func TestView_LabelAndWidth(t *testing.T) {
	m := New(newController(t, numedit.Config{Format: "N0"}), Config{Label: "Amount", Width: 8})
	lines := splitLines(ansi.Strip(zone.Scan(m.View())))
	require.Equal(t, "Amount", trimRight(lines[0]))
	require.Contains(t, lines[2], "       0")
}

func TestView_NegativeStyled(t *testing.T) {
	m := New(newController(t, numedit.Config{Format: "N0", Value: decimal.MustParse("-4")}), Config{})
	view := zone.Scan(m.View())
	require.Contains(t, ansi.Strip(view), "-4")
	require.NotEqual(t, ansi.Strip(view), view, "negative values are coloured")
}
