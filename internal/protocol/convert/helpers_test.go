package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/uno-online/internal/game"
	"github.com/palemoky/uno-online/internal/game/card"
	"github.com/palemoky/uno-online/internal/protocol"
)

func TestPlayersToInfos(t *testing.T) {
	t.Parallel()

	a := game.NewPlayer("alice")
	a.AddCard(card.Number(1, card.Red))
	a.AddCard(card.Number(2, card.Red))
	b := game.NewPlayer("bob")

	infos := PlayersToInfos([]*game.Player{a, b})
	assert.Equal(t, []protocol.PlayerInfo{
		{Seat: 0, Name: "alice", HandSize: 2},
		{Seat: 1, Name: "bob", HandSize: 0, Won: true},
	}, infos)
}
