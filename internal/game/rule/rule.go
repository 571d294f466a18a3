// Package rule holds the card legality rules, kept free of game state.
package rule

import (
	"github.com/palemoky/uno-online/internal/game/card"
)

// CanPlay reports whether c may be played on top while pending penalty cards are owed.
//
// An uncolored wild is never playable. With a pending penalty only a PlusTwo
// or WildPlusFour matching the top card by value or color may be stacked.
// Otherwise a colored wild always plays and any other card must match the
// top card by value or color.
func CanPlay(top card.Card, pending int, c card.Card) bool {
	if c.IsWild() && c.Color == card.ColorNone {
		return false
	}

	if pending > 0 {
		return (c.Value == card.PlusTwo || c.Value == card.WildPlusFour) &&
			(c.Value == top.Value || c.Color == top.Color)
	}

	if c.IsWild() {
		return true
	}

	return c.Value == top.Value || c.Color == top.Color
}

// Playable returns the indexes of the cards in hand that CanPlay accepts.
func Playable(top card.Card, pending int, hand []card.Card) []int {
	var out []int
	for i, c := range hand {
		if CanPlay(top, pending, c) {
			out = append(out, i)
		}
	}
	return out
}
