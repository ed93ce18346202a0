package numedit

import (
	"testing"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPanel_FoldAndClose(t *testing.T) {
	parent := newTestController(t, Config{AddPanel: true, Value: dec("10")})

	res := parent.Apply(Key(CmdPlus))
	require.Equal(t, Executed, res.Outcome)
	panel := parent.Panel()
	require.NotNil(t, panel)
	assert.True(t, panel.Open())

	var closedWith []decimal.Decimal
	panel.OnClosed(func(v decimal.Decimal) { closedWith = append(closedWith, v) })

	typeDigits(parent, "500")
	requireValue(t, "5", panel.Child().Value())
	requireValue(t, "10", parent.Value(), "parent changes only on fold")
	requireValue(t, "15", panel.Preview())
	assert.Equal(t, "+", panel.Sign())

	require.Equal(t, Executed, parent.Apply(Key(CmdPlus)).Outcome)
	requireValue(t, "15", parent.Value())
	requireValue(t, "0", panel.Child().Value())

	typeDigits(parent, "200")
	parent.Apply(Key(CmdMinus))
	assert.Equal(t, "-", panel.Sign())
	requireValue(t, "13", panel.Preview())

	require.Equal(t, Executed, parent.Apply(Key(CmdEnter)).Outcome)
	requireValue(t, "13", parent.Value())
	assert.Nil(t, parent.Panel())
	assert.False(t, panel.Open())
	require.Len(t, closedWith, 1)
	requireValue(t, "13", closedWith[0])

	parent.Undo()
	requireValue(t, "15", parent.Value())
	parent.Undo()
	requireValue(t, "10", parent.Value())
}

func TestAddPanel_EmptyCloseKeepsValue(t *testing.T) {
	parent := newTestController(t, Config{AddPanel: true, Value: dec("3")})
	parent.Apply(Key(CmdPlus))
	panel := parent.Panel()

	assert.Equal(t, Executed, parent.Apply(Key(CmdPlus)).Outcome, "'+' on an empty addend is still consumed")
	assert.Equal(t, Executed, parent.Apply(Key(CmdEnter)).Outcome)
	requireValue(t, "3", parent.Value())
	assert.False(t, parent.CanUndo())
	assert.Equal(t, Skipped, panel.Close().Outcome)
}

func TestAddPanel_RespectsParentBounds(t *testing.T) {
	parent := newTestController(t, Config{AddPanel: true, Maximum: dec("20"), Value: dec("10")})
	panel, err := parent.OpenAddPanel()
	require.NoError(t, err)

	typeDigits(parent, "5000")
	requireValue(t, "20", panel.Preview())

	res := panel.Close()
	assert.Equal(t, RecoveryBoundsClamp, res.Recovery)
	requireValue(t, "20", parent.Value())
}

func TestAddPanel_Unavailable(t *testing.T) {
	plain := newTestController(t, Config{})
	_, err := plain.OpenAddPanel()
	require.ErrorIs(t, err, ErrValidation)

	parent := newTestController(t, Config{AddPanel: true})
	panel, err := parent.OpenAddPanel()
	require.NoError(t, err)

	again, err := parent.OpenAddPanel()
	require.NoError(t, err)
	assert.Same(t, panel, again)

	_, err = panel.Child().OpenAddPanel()
	require.ErrorIs(t, err, ErrValidation, "panels do not nest")
}

func TestAddPanel_ReadOnlyParent(t *testing.T) {
	parent := newTestController(t, Config{AddPanel: true, ReadOnly: true})
	assert.Equal(t, PassThrough, parent.Apply(Key(CmdPlus)).Outcome)
	assert.Nil(t, parent.Panel())
}

func TestAddPanel_ReadOnlyParentIgnoresFold(t *testing.T) {
	parent := newTestController(t, Config{AddPanel: true})
	parent.Apply(Key(CmdPlus))
	panel := parent.Panel()
	require.NotNil(t, panel)

	parent.SetReadOnly(true)
	typeDigits(parent, "5")
	requireValue(t, "0.05", panel.Child().Value())

	parent.Apply(Key(CmdEnter))
	requireValue(t, "0", parent.Value())
	assert.False(t, panel.Open())
	assert.False(t, parent.CanUndo())

	assert.Equal(t, Skipped, parent.FoldChildDelta(dec("1")).Outcome)
	requireValue(t, "0", parent.Value())
}
