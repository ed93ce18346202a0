package numberbox

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/currencybox/internal/ui/styles"
)

// Caret uses reverse video so it stays visible on any background.
const (
	cursorOn  = "\x1b[7m"
	cursorOff = "\x1b[27m"
)

var (
	labelStyle    = lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)
	valueStyle    = lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)
	negativeStyle = lipgloss.NewStyle().Foreground(styles.NegativeColor)
	readOnlyStyle = lipgloss.NewStyle().Foreground(styles.TextMutedColor)
)

// View renders the label and the boxed value line.
func (m Model) View() string {
	box := styles.InputStyle
	if m.focused {
		box = styles.InputFocusedStyle
	}
	rendered := box.Render(zone.Mark(m.zoneID, m.renderValue()))
	if m.label == "" {
		return rendered
	}
	return lipgloss.JoinVertical(lipgloss.Left, labelStyle.Render(m.label), rendered)
}

// renderValue draws the formatted text, right-aligned within the width,
// with the caret on the grapheme at the controller's caret offset.
func (m Model) renderValue() string {
	text := m.ctrl.Text()
	clusters := splitGraphemes(text)

	style := valueStyle
	switch {
	case m.ctrl.ReadOnly():
		style = readOnlyStyle
	case m.ctrl.IsNegative():
		style = negativeStyle
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", m.padding(text)))

	if !m.focused {
		sb.WriteString(style.Render(text))
		return sb.String()
	}

	caret := min(max(m.ctrl.Caret(), 0), len(clusters))
	if before := strings.Join(clusters[:caret], ""); before != "" {
		sb.WriteString(style.Render(before))
	}
	if caret == len(clusters) {
		sb.WriteString(cursorOn + " " + cursorOff)
		return sb.String()
	}
	sb.WriteString(cursorOn + clusters[caret] + cursorOff)
	if after := strings.Join(clusters[caret+1:], ""); after != "" {
		sb.WriteString(style.Render(after))
	}
	return sb.String()
}

// padding is the number of blank cells placed before the text.
func (m Model) padding(text string) int {
	w := displayWidth(text)
	if m.focused && m.ctrl.Caret() >= len(splitGraphemes(text)) {
		w++
	}
	return max(m.width-w, 0)
}
