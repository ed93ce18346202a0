// Package clipboard provides the text clipboards used by copy and paste.
package clipboard

import (
	"fmt"
	"io"
	"os"
	"sync"

	sysclip "github.com/atotto/clipboard"
	osc52seq "github.com/aymanbagabas/go-osc52/v2"
)

// Clipboard is a text clipboard.
type Clipboard interface {
	Text() (string, error)
	SetText(text string) error
	Clear() error
}

// System uses the desktop clipboard through pbcopy/xclip/xsel/wl-copy.
// Over SSH or inside tmux/screen, where the desktop clipboard is out of
// reach, writes are sent as an OSC 52 escape sequence to the terminal
// instead and reads come from the last value written.
type System struct {
	mu   sync.Mutex
	out  io.Writer
	last string
}

// NewSystem returns a System clipboard that emits OSC 52 sequences to out
// when running remotely. A nil out means os.Stdout.
func NewSystem(out io.Writer) *System {
	if out == nil {
		out = os.Stdout
	}
	return &System{out: out}
}

// Text reads the clipboard.
func (s *System) Text() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if shouldUseOSC52() || sysclip.Unsupported {
		return s.last, nil
	}
	text, err := sysclip.ReadAll()
	if err != nil {
		return "", fmt.Errorf("reading clipboard: %w", err)
	}
	return text, nil
}

// SetText replaces the clipboard contents.
func (s *System) SetText(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.last = text
	if shouldUseOSC52() || sysclip.Unsupported {
		_, err := io.WriteString(s.out, osc52(text, os.Getenv("TMUX") != ""))
		return err
	}
	if err := sysclip.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// Clear empties the clipboard.
func (s *System) Clear() error {
	return s.SetText("")
}

// shouldUseOSC52 reports whether the session is remote or multiplexed.
func shouldUseOSC52() bool {
	for _, env := range []string{"SSH_TTY", "SSH_CLIENT", "SSH_CONNECTION", "TMUX", "STY"} {
		if os.Getenv(env) != "" {
			return true
		}
	}
	return false
}

// osc52 builds the escape sequence that asks the terminal to set its
// clipboard. Inside tmux it is wrapped in a DCS passthrough.
func osc52(text string, tmux bool) string {
	seq := osc52seq.New(text)
	if tmux {
		seq = seq.Tmux()
	}
	return seq.String()
}

// Memory is an in-process clipboard, used by tests and the replay command.
type Memory struct {
	mu   sync.Mutex
	text string
}

// NewMemory returns a Memory clipboard holding text.
func NewMemory(text string) *Memory {
	return &Memory{text: text}
}

func (m *Memory) Text() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) SetText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

func (m *Memory) Clear() error { return m.SetText("") }
