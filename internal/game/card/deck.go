package card

import (
	"math/rand/v2"

	"github.com/palemoky/uno-online/internal/apperrors"
)

// UniverseSize is the number of cards in a full Uno deck.
const UniverseSize = 108

// Universe returns the full 108-card set in a fixed order.
func Universe() []Card {
	cards := make([]Card, 0, UniverseSize)
	for _, c := range PlayColors {
		cards = append(cards, Number(0, c))
		for n := 1; n <= 9; n++ {
			cards = append(cards, Number(n, c), Number(n, c))
		}
		for _, v := range []Value{Skip, Reverse, PlusTwo} {
			cards = append(cards, New(v, c), New(v, c))
		}
	}
	for range 4 {
		cards = append(cards, NewWild(), NewWildPlusFour())
	}
	return cards
}

// Receiver takes dealt cards.
type Receiver interface {
	AddCard(Card)
}

// Deck is a draw pile drawn from the front plus a discard pile that is
// reshuffled into the draw pile when it runs out.
type Deck struct {
	cards   []Card
	discard []Card
	rng     *rand.Rand
}

// NewDeck returns a freshly shuffled full deck.
func NewDeck() *Deck {
	return newDeck(nil)
}

// NewSeededDeck returns a full deck shuffled with a deterministic source.
func NewSeededDeck(seed uint64) *Deck {
	return newDeck(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewDeckFrom builds an unshuffled deck whose draw order is exactly cards.
func NewDeckFrom(cards []Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...)}
}

func newDeck(rng *rand.Rand) *Deck {
	d := &Deck{cards: Universe(), rng: rng}
	d.Shuffle()
	return d
}

// Shuffle applies a uniform random permutation to the draw pile.
func (d *Deck) Shuffle() {
	d.shuffle(d.cards)
}

func (d *Deck) shuffle(cards []Card) {
	swap := func(i, j int) { cards[i], cards[j] = cards[j], cards[i] }
	if d.rng != nil {
		d.rng.Shuffle(len(cards), swap)
		return
	}
	rand.Shuffle(len(cards), swap)
}

// Draw removes and returns the front card. An exhausted draw pile is refilled
// from the shuffled discard pile first.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		d.Reshuffle()
	}
	if len(d.cards) == 0 {
		return Card{}, apperrors.ErrDeckEmpty
	}
	c := d.cards[0]
	d.cards[0] = Card{}
	d.cards = d.cards[1:]
	return c, nil
}

// Return puts a card on the discard pile. Wild cards lose their chosen color.
func (d *Deck) Return(c Card) {
	if c.IsWild() {
		c.Color = ColorNone
	}
	d.discard = append(d.discard, c)
}

// Reshuffle shuffles the discard pile and moves it behind the draw pile.
// Cards already on the draw pile keep their order.
func (d *Deck) Reshuffle() {
	if len(d.discard) == 0 {
		return
	}
	d.shuffle(d.discard)
	d.cards = append(d.cards, d.discard...)
	d.discard = nil
}

// Deal draws count cards into r. It deals all of them or, when the deck
// holds fewer than count cards, none.
func (d *Deck) Deal(r Receiver, count int) error {
	if count > d.Len() {
		return apperrors.ErrDeckEmpty
	}
	for range count {
		c, err := d.Draw()
		if err != nil {
			return err
		}
		r.AddCard(c)
	}
	return nil
}

// Len is the number of cards held by the deck, draw and discard piles together.
func (d *Deck) Len() int { return len(d.cards) + len(d.discard) }

// DrawPileLen is the number of cards that can be drawn without a reshuffle.
func (d *Deck) DrawPileLen() int { return len(d.cards) }

// DiscardLen is the number of cards waiting on the discard pile.
func (d *Deck) DiscardLen() int { return len(d.discard) }

// Cards returns a copy of every card held by the deck.
func (d *Deck) Cards() []Card {
	out := make([]Card, 0, d.Len())
	out = append(out, d.cards...)
	return append(out, d.discard...)
}
