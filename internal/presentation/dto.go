package presentation

import (
	"github.com/zjrosen/currencybox/internal/numedit"
)

// ReplayDTO is the editor state after a replayed key script.
type ReplayDTO struct {
	Text     string    `json:"text"`
	Value    string    `json:"value"`
	Caret    int       `json:"caret"`
	Zone     string    `json:"zone"`
	Negative bool      `json:"negative"`
	Steps    []StepDTO `json:"steps,omitempty"`
}

// StepDTO records one applied command.
type StepDTO struct {
	Command  string `json:"command"`
	Outcome  string `json:"outcome"`
	Recovery string `json:"recovery,omitempty"`
	Text     string `json:"text"`
}

// FromController captures the controller's current state. Value is the
// clipboard rendering: full precision, no grouping.
func FromController(c *numedit.Controller) ReplayDTO {
	return ReplayDTO{
		Text:     c.Text(),
		Value:    numedit.RenderClipboard(c.Value(), c.Locale()),
		Caret:    c.Caret(),
		Zone:     c.Zone().String(),
		Negative: c.IsNegative(),
	}
}

// FromStep converts the outcome of one command, reading the text the
// command left behind.
func FromStep(cmd numedit.Command, res numedit.Result, c *numedit.Controller) StepDTO {
	step := StepDTO{
		Command: cmd.String(),
		Outcome: res.Outcome.String(),
		Text:    c.Text(),
	}
	if res.Recovery != numedit.RecoveryNone {
		step.Recovery = res.Recovery.String()
	}
	return step
}
