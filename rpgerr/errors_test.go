package rpgerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/duelcore/resolver/rpgerr"
)

func TestNewCarriesCodeAndMessage(t *testing.T) {
	err := rpgerr.New(rpgerr.CodeCooldownActive, "p1 tries to use Blink but it is still on cooldown.")
	require.Equal(t, rpgerr.CodeCooldownActive, rpgerr.GetCode(err))
	require.Equal(t, "p1 tries to use Blink but it is still on cooldown.", err.Error())
}

func TestNewfFormats(t *testing.T) {
	err := rpgerr.Newf(rpgerr.CodeUnknownAbility, "%s fumbles (unknown ability).", "p1")
	require.Equal(t, "p1 fumbles (unknown ability).", err.Error())
}

func TestWrapPreservesInnerCode(t *testing.T) {
	inner := rpgerr.New(rpgerr.CodeResourceExhausted, "not enough mana")
	wrapped := rpgerr.Wrap(inner, "resolving p1's intent")

	require.Equal(t, rpgerr.CodeResourceExhausted, rpgerr.GetCode(wrapped))
	require.ErrorIs(t, wrapped, inner)
	require.Contains(t, wrapped.Error(), "resolving p1's intent")
}

func TestWrapPlainErrorDefaultsToUnknown(t *testing.T) {
	wrapped := rpgerr.Wrap(fmt.Errorf("disk on fire"), "loading content")
	require.Equal(t, rpgerr.CodeUnknown, rpgerr.GetCode(wrapped))
}

func TestGetCodeOnForeignError(t *testing.T) {
	require.Equal(t, rpgerr.CodeUnknown, rpgerr.GetCode(errors.New("plain")))
	require.Equal(t, rpgerr.CodeUnknown, rpgerr.GetCode(nil))
}

func TestIsMatchesCode(t *testing.T) {
	err := rpgerr.New(rpgerr.CodeStunned, "p1 is stunned and cannot act")
	require.True(t, rpgerr.Is(err, rpgerr.CodeStunned))
	require.False(t, rpgerr.Is(err, rpgerr.CodeImmune))
}

func TestWithMeta(t *testing.T) {
	err := rpgerr.New(rpgerr.CodeClassGated, "wrong class",
		rpgerr.WithMeta("ability", "fireball"),
		rpgerr.WithMeta("class", "warrior"),
	)
	require.Equal(t, "fireball", err.Meta["ability"])
	require.Equal(t, "warrior", err.Meta["class"])
}

func TestErrorsAsThroughFmtWrap(t *testing.T) {
	inner := rpgerr.New(rpgerr.CodeImmune, "target is immune")
	chained := fmt.Errorf("turn 4: %w", inner)

	var e *rpgerr.Error
	require.True(t, errors.As(chained, &e))
	require.Equal(t, rpgerr.CodeImmune, e.Code)
}
