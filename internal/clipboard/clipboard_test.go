package clipboard

import (
	"bytes"
	"encoding/base64"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/currencybox/internal/numedit"
)

var (
	_ numedit.Clipboard = (*System)(nil)
	_ numedit.Clipboard = (*Memory)(nil)
)

func TestShouldUseOSC52(t *testing.T) {
	// Helper to clear all relevant env vars
	clearEnv := func() {
		os.Unsetenv("SSH_TTY")
		os.Unsetenv("SSH_CLIENT")
		os.Unsetenv("SSH_CONNECTION")
		os.Unsetenv("TMUX")
		os.Unsetenv("STY")
	}

	tests := []struct {
		name     string
		envVars  map[string]string
		expected bool
	}{
		{
			name:     "no env vars set",
			envVars:  map[string]string{},
			expected: false,
		},
		{
			name:     "SSH_TTY set",
			envVars:  map[string]string{"SSH_TTY": "/dev/pts/0"},
			expected: true,
		},
		{
			name:     "SSH_CONNECTION set",
			envVars:  map[string]string{"SSH_CONNECTION": "192.168.1.1 12345 192.168.1.2 22"},
			expected: true,
		},
		{
			name:     "TMUX set",
			envVars:  map[string]string{"TMUX": "/tmp/tmux-1000/default,12345,0"},
			expected: true,
		},
		{
			name:     "STY set (GNU screen)",
			envVars:  map[string]string{"STY": "12345.pts-0.hostname"},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv()
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}
			t.Cleanup(clearEnv)

			require.Equal(t, tt.expected, shouldUseOSC52())
		})
	}
}

func TestOSC52SequenceFormat(t *testing.T) {
	require.Equal(t, "\x1b]52;c;MTIzNC41\x07", osc52("1234.5", false))
	tmux := osc52("1234.5", true)
	require.True(t, strings.HasPrefix(tmux, "\x1bPtmux;"), "tmux passthrough prefix: %q", tmux)
	require.True(t, strings.HasSuffix(tmux, "\x1b\\"), "tmux passthrough suffix: %q", tmux)
	require.Contains(t, tmux, "]52;c;MTIzNC41\x07")
}

func TestSystem_RemoteWritesOSC52(t *testing.T) {
	t.Setenv("SSH_TTY", "/dev/pts/0")
	t.Setenv("TMUX", "")

	var out bytes.Buffer
	cb := NewSystem(&out)

	require.NoError(t, cb.SetText("-12,5"))
	encoded := base64.StdEncoding.EncodeToString([]byte("-12,5"))
	require.Equal(t, "\x1b]52;c;"+encoded+"\x07", out.String())

	text, err := cb.Text()
	require.NoError(t, err)
	require.Equal(t, "-12,5", text)

	require.NoError(t, cb.Clear())
	text, _ = cb.Text()
	require.Empty(t, text)
}

func TestMemory(t *testing.T) {
	cb := NewMemory("42")
	text, err := cb.Text()
	require.NoError(t, err)
	require.Equal(t, "42", text)

	require.NoError(t, cb.SetText("7.5"))
	text, _ = cb.Text()
	require.Equal(t, "7.5", text)

	require.NoError(t, cb.Clear())
	text, _ = cb.Text()
	require.Empty(t, text)
}

func TestMemory_DrivesPaste(t *testing.T) {
	cb := NewMemory("1,234.5")
	c, err := numedit.New(numedit.Config{Clipboard: cb})
	require.NoError(t, err)

	res := c.Apply(numedit.Key(numedit.CmdPaste))
	require.Equal(t, numedit.Executed, res.Outcome)
	require.Equal(t, "¤1,234.50", c.Text())

	c.Apply(numedit.Key(numedit.CmdCopy))
	text, _ := cb.Text()
	require.Equal(t, "1234.5", text)
}
