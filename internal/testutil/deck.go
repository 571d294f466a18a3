//go:build !production

package testutil

import (
	"github.com/palemoky/uno-online/internal/game/card"
)

// ArrangedDeck returns an unshuffled full deck whose first draws are front,
// followed by the rest of the universe in its fixed order. It panics if front
// asks for more copies of a card than the universe holds.
func ArrangedDeck(front ...card.Card) *card.Deck {
	rest := card.Universe()
	for _, c := range front {
		i := indexOf(rest, c)
		if i < 0 {
			panic("testutil: card not in universe: " + c.String())
		}
		rest = append(rest[:i], rest[i+1:]...)
	}
	return card.NewDeckFrom(append(append([]card.Card(nil), front...), rest...))
}

func indexOf(cards []card.Card, c card.Card) int {
	for i, x := range cards {
		if x == c {
			return i
		}
	}
	return -1
}
