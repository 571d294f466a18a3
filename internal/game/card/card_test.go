package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCycleColorUp(t *testing.T) {
	t.Parallel()

	c := NewWild()
	assert.Equal(t, ColorNone, c.Color)

	want := []Color{Red, Green, Blue, Yellow, Red}
	for _, color := range want {
		c.CycleColorUp()
		assert.Equal(t, color, c.Color)
	}
}

func TestCycleColorDown(t *testing.T) {
	t.Parallel()

	c := NewWildPlusFour()
	want := []Color{Red, Yellow, Blue, Green, Red}
	for _, color := range want {
		c.CycleColorDown()
		assert.Equal(t, color, c.Color)
	}
}

func TestCycleColor_NonWildUnchanged(t *testing.T) {
	t.Parallel()

	tests := []Card{
		Number(5, Blue),
		New(Skip, Red),
		New(Reverse, Green),
		New(PlusTwo, Yellow),
	}
	for _, c := range tests {
		orig := c
		c.CycleColorUp()
		assert.Equal(t, orig, c)
		c.CycleColorDown()
		assert.Equal(t, orig, c)
	}
}

func TestPenalty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2, New(PlusTwo, Red).Penalty())
	assert.Equal(t, 4, NewWildPlusFour().Penalty())
	assert.Zero(t, NewWild().Penalty())
	assert.Zero(t, Number(0, Red).Penalty())
}

func TestParseValueAndColor(t *testing.T) {
	t.Parallel()

	for v := Value(0); v <= WildPlusFour; v++ {
		got, err := ParseValue(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	for _, c := range append(PlayColors[:], ColorNone) {
		got, err := ParseColor(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseValue("10")
	assert.Error(t, err)
	_, err = ParseValue("draw_ten")
	assert.Error(t, err)
	_, err = ParseColor("purple")
	assert.Error(t, err)
}
