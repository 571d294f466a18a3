package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/uno-online/internal/game/card"
	"github.com/palemoky/uno-online/internal/protocol"
)

func TestCardRoundTrip(t *testing.T) {
	t.Parallel()

	originals := []card.Card{
		card.Number(0, card.Red),
		card.New(card.Reverse, card.Green),
		card.NewWild(),
		{Value: card.WildPlusFour, Color: card.Yellow},
	}

	infos := CardsToInfos(originals)
	assert.Equal(t, protocol.CardInfo{Value: "reverse", Color: "green"}, infos[1])

	results, err := InfosToCards(infos)
	require.NoError(t, err)
	assert.Equal(t, originals, results)
}

func TestInfoToCard_Invalid(t *testing.T) {
	t.Parallel()

	_, err := InfoToCard(protocol.CardInfo{Value: "11", Color: "red"})
	assert.Error(t, err)
	_, err = InfoToCard(protocol.CardInfo{Value: "3", Color: "pink"})
	assert.Error(t, err)
	_, err = InfosToCards([]protocol.CardInfo{{Value: "3", Color: "red"}, {Value: "x", Color: "red"}})
	assert.ErrorContains(t, err, "card 1")
}
