package client

import "github.com/palemoky/uno-online/internal/game/card"

// CardCounter tracks how many cards of each value are out of sight: not in
// the player's hand and not on the discard pile.
type CardCounter struct {
	remaining map[card.Value]int
}

// NewCardCounter creates and initializes a new card counter
func NewCardCounter() *CardCounter {
	cc := &CardCounter{
		remaining: make(map[card.Value]int),
	}
	cc.Reset()
	return cc
}

// Reset initializes counter with a full deck (108 cards)
func (cc *CardCounter) Reset() {
	clear(cc.remaining)
	for _, c := range card.Universe() {
		cc.remaining[c.Value]++
	}
}

// Deduct removes seen cards from the counter
func (cc *CardCounter) Deduct(cards []card.Card) {
	for _, c := range cards {
		if cc.remaining[c.Value] > 0 {
			cc.remaining[c.Value]--
		}
	}
}

// Remaining returns the unseen count for v.
func (cc *CardCounter) Remaining(v card.Value) int {
	return cc.remaining[v]
}

// Penalties is the number of unseen +2 and +4 cards, the ones that can stack.
func (cc *CardCounter) Penalties() int {
	return cc.remaining[card.PlusTwo] + cc.remaining[card.WildPlusFour]
}
