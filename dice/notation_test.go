package dice_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/duelcore/resolver/dice"
)

func TestParseNotationSimple(t *testing.T) {
	p, err := dice.ParseNotation("2d6+3")
	require.NoError(t, err)
	require.Equal(t, []dice.Spec{{Count: 2, Size: 6}}, p.Dice)
	require.Equal(t, 3, p.Modifier)
}

func TestParseNotationBareDie(t *testing.T) {
	p, err := dice.ParseNotation("d20")
	require.NoError(t, err)
	require.Equal(t, []dice.Spec{{Count: 1, Size: 20}}, p.Dice)
	require.Equal(t, 0, p.Modifier)
}

func TestParseNotationComplex(t *testing.T) {
	p, err := dice.ParseNotation("2d6+1d4+3")
	require.NoError(t, err)
	require.Equal(t, []dice.Spec{{Count: 2, Size: 6}, {Count: 1, Size: 4}}, p.Dice)
	require.Equal(t, 3, p.Modifier)
}

func TestParseNotationInvalid(t *testing.T) {
	_, err := dice.ParseNotation("not-dice")
	require.ErrorIs(t, err, dice.ErrInvalidNotation)
}

func TestRollPool(t *testing.T) {
	r := dice.NewMockRoller(3, 4, 5)
	total, rolls, err := dice.RollPool(r, dice.SimplePool(2, 6, 1))
	require.NoError(t, err)
	require.Equal(t, []int{3, 4}, rolls)
	require.Equal(t, 8, total)
}
