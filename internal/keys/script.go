package keys

import (
	"fmt"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/currencybox/internal/numedit"
)

// namedKeys are the special keys a script can spell as <name>.
var namedKeys = map[string]tea.KeyType{
	"up":         tea.KeyUp,
	"down":       tea.KeyDown,
	"left":       tea.KeyLeft,
	"right":      tea.KeyRight,
	"shift+up":   tea.KeyShiftUp,
	"shift+down": tea.KeyShiftDown,
	"pgup":       tea.KeyPgUp,
	"pgdown":     tea.KeyPgDown,
	"backspace":  tea.KeyBackspace,
	"bs":         tea.KeyBackspace,
	"delete":     tea.KeyDelete,
	"del":        tea.KeyDelete,
	"enter":      tea.KeyEnter,
	"cr":         tea.KeyEnter,
	"esc":        tea.KeyEsc,
	"tab":        tea.KeyTab,
	"space":      tea.KeySpace,
	"ctrl+c":     tea.KeyCtrlC,
	"ctrl+r":     tea.KeyCtrlR,
	"ctrl+v":     tea.KeyCtrlV,
	"ctrl+y":     tea.KeyCtrlY,
	"ctrl+z":     tea.KeyCtrlZ,
}

// ParseScript parses a key script and classifies each key with the
// Editor keymap.
func ParseScript(script string) ([]numedit.Command, error) {
	msgs, err := ParseKeys(script)
	if err != nil {
		return nil, err
	}
	cmds := make([]numedit.Command, len(msgs))
	for i, m := range msgs {
		cmds[i] = Editor.Classify(m)
	}
	return cmds, nil
}

// ParseKeys turns a key script into key presses. Plain characters are
// typed as is, whitespace outside <...> is ignored, and special keys are
// written as <name> (e.g. "12<bs>3<up><alt+c>").
func ParseKeys(script string) ([]tea.KeyMsg, error) {
	var msgs []tea.KeyMsg
	rs := []rune(script)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			continue
		case r == '<':
			end := indexRune(rs[i+1:], '>')
			if end < 0 {
				return nil, fmt.Errorf("unterminated key name at offset %d", i)
			}
			name := string(rs[i+1 : i+1+end])
			msg, err := namedKey(name)
			if err != nil {
				return nil, err
			}
			msgs = append(msgs, msg)
			i += end + 1
		default:
			msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		}
	}
	return msgs, nil
}

func namedKey(name string) (tea.KeyMsg, error) {
	lower := strings.ToLower(name)
	if t, ok := namedKeys[lower]; ok {
		return tea.KeyMsg{Type: t}, nil
	}
	if rest, ok := strings.CutPrefix(lower, "alt+"); ok {
		if rs := []rune(rest); len(rs) == 1 {
			return tea.KeyMsg{Type: tea.KeyRunes, Runes: rs, Alt: true}, nil
		}
	}
	if name == "lt" {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'<'}}, nil
	}
	return tea.KeyMsg{}, fmt.Errorf("unknown key <%s>", name)
}

func indexRune(rs []rune, target rune) int {
	for i, r := range rs {
		if r == target {
			return i
		}
	}
	return -1
}
