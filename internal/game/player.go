package game

import (
	"github.com/palemoky/uno-online/internal/apperrors"
	"github.com/palemoky/uno-online/internal/game/card"
)

// Player 玩家. Hand order is draw order and is what the client indexes into.
type Player struct {
	Name   string
	Frozen bool // reserved, no current rule sets it

	hand []card.Card
}

// NewPlayer creates a player with an empty hand.
func NewPlayer(name string) *Player {
	return &Player{Name: name}
}

// AddCard appends c to the hand.
func (p *Player) AddCard(c card.Card) {
	p.hand = append(p.hand, c)
}

// Card returns the card at index i.
func (p *Player) Card(i int) (card.Card, error) {
	if i < 0 || i >= len(p.hand) {
		return card.Card{}, apperrors.ErrInvalidIndex
	}
	return p.hand[i], nil
}

// TakeCard removes and returns the card at index i.
func (p *Player) TakeCard(i int) (card.Card, error) {
	c, err := p.Card(i)
	if err != nil {
		return c, err
	}
	p.hand = append(p.hand[:i], p.hand[i+1:]...)
	return c, nil
}

// CycleColor steps the color of the wild card at index i.
func (p *Player) CycleColor(i int, down bool) error {
	if i < 0 || i >= len(p.hand) {
		return apperrors.ErrInvalidIndex
	}
	if down {
		p.hand[i].CycleColorDown()
	} else {
		p.hand[i].CycleColorUp()
	}
	return nil
}

// Hand returns a copy of the hand.
func (p *Player) Hand() []card.Card {
	return append([]card.Card(nil), p.hand...)
}

// HandSize 手牌数
func (p *Player) HandSize() int { return len(p.hand) }

// HasWon reports whether the hand is empty.
func (p *Player) HasWon() bool { return len(p.hand) == 0 }
