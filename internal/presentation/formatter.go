package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatReplayJSON formats a replay result as JSON
func (f *Formatter) FormatReplayJSON(result ReplayDTO) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// FormatReplay writes a replay result as plain text: one line per step
// when steps were recorded, then the final text, value and caret.
func (f *Formatter) FormatReplay(result ReplayDTO) error {
	if len(result.Steps) > 0 {
		tw := tabwriter.NewWriter(f.writer, 0, 4, 2, ' ', 0)
		for i, s := range result.Steps {
			outcome := s.Outcome
			if s.Recovery != "" {
				outcome += " (" + s.Recovery + ")"
			}
			if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, s.Command, outcome, s.Text); err != nil {
				return err
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(f.writer, "text:  %s\nvalue: %s\ncaret: %d (%s)\n",
		result.Text, result.Value, result.Caret, result.Zone)
	return err
}
