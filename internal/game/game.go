// Package game implements the Uno state machine: seating, legality, turn
// order and penalty stacking. It is not safe for concurrent use; the session
// server serializes every call.
package game

import (
	"fmt"

	"github.com/palemoky/uno-online/internal/apperrors"
	"github.com/palemoky/uno-online/internal/game/card"
	"github.com/palemoky/uno-online/internal/game/rule"
)

// DefaultHandSize is the number of cards dealt on join.
const DefaultHandSize = 7

// Direction is the seating order turns advance in.
type Direction int

const (
	Right Direction = iota // towards lower seat indexes
	Left                   // towards higher seat indexes
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Right {
		return Left
	}
	return Right
}

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Game 定义游戏状态
type Game struct {
	players     []*Player
	deck        *card.Deck
	direction   Direction
	currentTurn int
	lastCard    card.Card
	pending     int

	handSize   int
	maxPlayers int
}

// Option configures a Game.
type Option func(*Game)

// WithDeck replaces the freshly shuffled deck.
func WithDeck(d *card.Deck) Option {
	return func(g *Game) { g.deck = d }
}

// WithHandSize sets how many cards a joining player receives. Values below
// one keep the default, since an empty hand would win on arrival.
func WithHandSize(n int) Option {
	return func(g *Game) {
		if n > 0 {
			g.handSize = n
		}
	}
}

// WithMaxPlayers caps the number of seats. Zero means no cap.
func WithMaxPlayers(n int) Option {
	return func(g *Game) { g.maxPlayers = n }
}

// New creates a game with no players, direction Right and the first drawn
// card on the discard pile. An uncolored wild starting card is colored Red.
func New(opts ...Option) (*Game, error) {
	g := &Game{
		direction: Right,
		handSize:  DefaultHandSize,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.deck == nil {
		g.deck = card.NewDeck()
	}

	first, err := g.deck.Draw()
	if err != nil {
		return nil, fmt.Errorf("draw starting card: %w", err)
	}
	if first.Color == card.ColorNone {
		first.Color = card.Red
	}
	g.lastCard = first

	return g, nil
}

// --- state reads ---

// Players returns the seated players in join order.
func (g *Game) Players() []*Player {
	return append([]*Player(nil), g.players...)
}

// PlayerIndex returns the seat of the named player.
func (g *Game) PlayerIndex(name string) (int, bool) {
	for i, p := range g.players {
		if p.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Player returns the named player.
func (g *Game) Player(name string) (*Player, bool) {
	i, ok := g.PlayerIndex(name)
	if !ok {
		return nil, false
	}
	return g.players[i], true
}

// CurrentTurn is the seat index of the player who must act.
func (g *Game) CurrentTurn() int { return g.currentTurn }

// CurrentPlayer returns the player holding the turn, or nil with no players.
func (g *Game) CurrentPlayer() *Player {
	if len(g.players) == 0 {
		return nil
	}
	return g.players[g.currentTurn]
}

// LastCard is the top of the discard pile.
func (g *Game) LastCard() card.Card { return g.lastCard }

// Pending is the number of penalty cards owed.
func (g *Game) Pending() int { return g.pending }

// ResetPending clears the penalty without dealing it.
func (g *Game) ResetPending() { g.pending = 0 }

// Direction 出牌方向
func (g *Game) Direction() Direction { return g.direction }

// DeckLen is the number of cards held by the deck.
func (g *Game) DeckLen() int { return g.deck.Len() }

// Winner returns the first seated player with an empty hand.
func (g *Game) Winner() (*Player, bool) {
	for _, p := range g.players {
		if p.HasWon() {
			return p, true
		}
	}
	return nil, false
}

// --- turn order ---

// NextPlayer computes the seat after the current one in the current direction.
func (g *Game) NextPlayer() int {
	n := len(g.players)
	if n == 0 {
		return 0
	}
	if g.direction == Left {
		return (g.currentTurn + 1) % n
	}
	return (g.currentTurn - 1 + n) % n
}

// CycleTurn passes the turn to NextPlayer.
func (g *Game) CycleTurn() {
	g.currentTurn = g.NextPlayer()
}

// --- rules ---

// CanPlay reports whether c is legal on the current discard pile.
func (g *Game) CanPlay(c card.Card) bool {
	return rule.CanPlay(g.lastCard, g.pending, c)
}

// Play puts c on the discard pile and applies its effect. It reports false
// and changes nothing when c is illegal. The displaced top card goes back to
// the deck.
func (g *Game) Play(c card.Card) bool {
	if !g.CanPlay(c) {
		return false
	}

	displaced := g.lastCard
	g.lastCard = c

	switch c.Value {
	case card.PlusTwo, card.WildPlusFour:
		g.pending += c.Penalty()
	case card.Reverse:
		g.direction = g.direction.Flip()
		if len(g.players) == 2 {
			// two seats: reverse acts as skip
			g.CycleTurn()
		}
	case card.Skip:
		g.CycleTurn()
	}

	g.deck.Return(displaced)
	g.CycleTurn()
	return true
}

// --- player operations ---

// AddPlayer deals p a full hand and seats it. Nothing changes when the deck
// cannot cover the hand.
func (g *Game) AddPlayer(p *Player) error {
	if p.Name == "" {
		return apperrors.ErrEmptyName
	}
	if _, ok := g.PlayerIndex(p.Name); ok {
		return apperrors.ErrNameTaken
	}
	if g.maxPlayers > 0 && len(g.players) >= g.maxPlayers {
		return apperrors.ErrGameFull
	}

	if err := g.deck.Deal(p, g.handSize); err != nil {
		return err
	}
	g.players = append(g.players, p)
	return nil
}

// Join seats a new player with the given name.
func (g *Game) Join(name string) (*Player, error) {
	p := NewPlayer(name)
	if err := g.AddPlayer(p); err != nil {
		return nil, err
	}
	return p, nil
}

// seatOnTurn returns the seat of name, failing unless it holds the turn.
func (g *Game) seatOnTurn(name string) (int, error) {
	i, ok := g.PlayerIndex(name)
	if !ok {
		return -1, apperrors.ErrNotSeated
	}
	if i != g.currentTurn {
		return -1, apperrors.ErrNotYourTurn
	}
	return i, nil
}

// TakeCards deals n cards to the named player, who must hold the turn, then
// passes the turn. When the deck holds fewer than n cards nothing changes.
func (g *Game) TakeCards(name string, n int) error {
	if n < 0 {
		return apperrors.ErrBadRequest
	}
	i, err := g.seatOnTurn(name)
	if err != nil {
		return err
	}
	if err := g.deck.Deal(g.players[i], n); err != nil {
		return err
	}
	g.CycleTurn()
	return nil
}

// DrawPenalty resolves the pending penalty for the player holding the turn:
// it deals the penalty (one card when none is pending), clears it and passes
// the turn. It returns the number of cards dealt. When the deck cannot cover
// the penalty nothing changes.
func (g *Game) DrawPenalty(name string) (int, error) {
	i, err := g.seatOnTurn(name)
	if err != nil {
		return 0, err
	}
	n := max(g.pending, 1)
	if err := g.deck.Deal(g.players[i], n); err != nil {
		return 0, err
	}
	g.pending = 0
	g.CycleTurn()
	return n, nil
}

// UseCard plays the card at index from the named player's hand.
func (g *Game) UseCard(name string, index int) (card.Card, error) {
	if _, over := g.Winner(); over {
		return card.Card{}, apperrors.ErrGameOver
	}
	i, err := g.seatOnTurn(name)
	if err != nil {
		return card.Card{}, err
	}
	p := g.players[i]

	c, err := p.Card(index)
	if err != nil {
		return card.Card{}, err
	}
	if !g.CanPlay(c) {
		return card.Card{}, apperrors.ErrIllegalCard
	}

	if _, err := p.TakeCard(index); err != nil {
		return card.Card{}, err
	}
	g.Play(c)
	return c, nil
}

// CycleColor steps the color of a wild card in the named player's hand.
// With requireTurn the player must also hold the turn.
func (g *Game) CycleColor(name string, index int, down, requireTurn bool) error {
	i, ok := g.PlayerIndex(name)
	if !ok {
		return apperrors.ErrNotSeated
	}
	if requireTurn && i != g.currentTurn {
		return apperrors.ErrNotYourTurn
	}
	return g.players[i].CycleColor(index, down)
}
