package numedit

import (
	"fmt"

	"github.com/govalues/decimal"

	"github.com/zjrosen/currencybox/internal/log"
)

// AddPanel is a child editor whose value is added to its parent. '+'
// inside the panel folds the child into the parent and starts a new
// addend; Enter folds and closes.
type AddPanel struct {
	parent   *Controller
	child    *Controller
	onClosed []func(decimal.Decimal)
}

// OpenAddPanel opens an add panel, or returns the one already open. The
// child shares the parent's format, locale and input mode.
func (c *Controller) OpenAddPanel() (*AddPanel, error) {
	if !c.addPanel || c.inPanel {
		return nil, fmt.Errorf("add panel not available: %w", ErrValidation)
	}
	if c.panel != nil {
		return c.panel, nil
	}

	child, err := New(Config{
		Format:       c.format.String(),
		Locale:       c.locale,
		InputMode:    c.mode,
		RepeatAmount: c.repeatAmount,
		UndoLimit:    c.history.limit,
		Clipboard:    c.clipboard,
	})
	if err != nil {
		return nil, err
	}
	child.inPanel = true

	c.panel = &AddPanel{parent: c, child: child}
	log.Debug(log.CatEdit, "add panel opened", "id", c.id, "child", child.id)
	return c.panel, nil
}

// Child is the controller editing the addend.
func (p *AddPanel) Child() *Controller { return p.child }

// Sign is "+" for a non-negative addend and "-" otherwise.
func (p *AddPanel) Sign() string {
	if p.child.IsNegative() {
		return "-"
	}
	return "+"
}

// Preview is the parent value the panel would commit now.
func (p *AddPanel) Preview() decimal.Decimal {
	sum, err := p.parent.value.Add(p.child.value)
	if err != nil {
		return extreme(p.child.IsNegative())
	}
	return p.parent.bounds.Clamp(sum)
}

// Open reports whether the panel is still attached to its parent.
func (p *AddPanel) Open() bool { return p.parent.panel == p }

// OnClosed registers fn to run with the parent's value when the panel
// closes.
func (p *AddPanel) OnClosed(fn func(decimal.Decimal)) {
	p.onClosed = append(p.onClosed, fn)
}

// Fold commits the addend into the parent and resets the child to zero.
func (p *AddPanel) Fold() Result {
	if p.child.value.IsZero() {
		return skipped
	}
	res := p.parent.FoldChildDelta(p.child.value)
	p.child.SetValue(zero)
	p.child.Focus()
	return res
}

// Close folds any pending addend and detaches the panel.
func (p *AddPanel) Close() Result {
	if !p.Open() {
		return skipped
	}
	res := p.Fold()
	if res.Outcome == Skipped {
		res = executed
	}
	p.parent.panel = nil
	log.Debug(log.CatEdit, "add panel closed", "id", p.parent.id, "value", p.parent.value)
	for _, fn := range p.onClosed {
		fn(p.parent.value)
	}
	return res
}

// Apply routes a command to the child, handling '+' and Enter itself.
func (p *AddPanel) Apply(cmd Command) Result {
	switch cmd.Kind {
	case CmdPlus:
		res := p.Fold()
		res.Outcome = Executed
		return res
	case CmdEnter:
		return p.Close()
	}
	return p.child.Apply(cmd)
}
