package client

import (
	"github.com/palemoky/uno-online/internal/game/card"
	"github.com/palemoky/uno-online/internal/game/rule"
	"github.com/palemoky/uno-online/internal/protocol"
)

// GameState is one polled view of the table from a player's seat.
type GameState struct {
	Name string

	Hand        []card.Card
	Players     []protocol.PlayerInfo
	TopCard     card.Card
	Pending     int
	CurrentTurn string

	CardCounter *CardCounter
}

// NewGameState creates an empty view for name.
func NewGameState(name string) *GameState {
	return &GameState{
		Name:        name,
		CardCounter: NewCardCounter(),
	}
}

// IsMyTurn reports whether the viewing player holds the turn.
func (gs *GameState) IsMyTurn() bool {
	return gs.Name != "" && gs.CurrentTurn == gs.Name
}

// Winner returns the first player with an empty hand.
func (gs *GameState) Winner() (string, bool) {
	for _, p := range gs.Players {
		if p.Won {
			return p.Name, true
		}
	}
	return "", false
}

// Playable lists the hand indexes that could be played right now.
func (gs *GameState) Playable() []int {
	return rule.Playable(gs.TopCard, gs.Pending, gs.Hand)
}

// Reset clears all game state
func (gs *GameState) Reset() {
	gs.Hand = nil
	gs.Players = nil
	gs.TopCard = card.Card{}
	gs.Pending = 0
	gs.CurrentTurn = ""
	gs.CardCounter = NewCardCounter()
}
