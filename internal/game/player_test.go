package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/uno-online/internal/apperrors"
	"github.com/palemoky/uno-online/internal/game/card"
)

func TestPlayer_Hand(t *testing.T) {
	t.Parallel()

	p := NewPlayer("alice")
	assert.True(t, p.HasWon())

	p.AddCard(card.Number(1, card.Red))
	p.AddCard(card.Number(2, card.Blue))
	p.AddCard(card.NewWild())
	assert.Equal(t, 3, p.HandSize())
	assert.False(t, p.HasWon())

	c, err := p.TakeCard(1)
	require.NoError(t, err)
	assert.Equal(t, card.Number(2, card.Blue), c)
	assert.Equal(t, []card.Card{card.Number(1, card.Red), card.NewWild()}, p.Hand())

	_, err = p.TakeCard(2)
	assert.ErrorIs(t, err, apperrors.ErrInvalidIndex)
	_, err = p.TakeCard(-1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidIndex)
}

func TestPlayer_HandIsCopy(t *testing.T) {
	t.Parallel()

	p := NewPlayer("bob")
	p.AddCard(card.Number(4, card.Green))
	hand := p.Hand()
	hand[0] = card.Number(9, card.Yellow)

	c, err := p.Card(0)
	require.NoError(t, err)
	assert.Equal(t, card.Number(4, card.Green), c)
}

func TestPlayer_CycleColor(t *testing.T) {
	t.Parallel()

	p := NewPlayer("carol")
	p.AddCard(card.NewWild())
	require.NoError(t, p.CycleColor(0, false))
	require.NoError(t, p.CycleColor(0, false))
	c, _ := p.Card(0)
	assert.Equal(t, card.Green, c.Color)

	assert.ErrorIs(t, p.CycleColor(1, true), apperrors.ErrInvalidIndex)
}
