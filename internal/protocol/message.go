package protocol

import (
	"errors"
	"fmt"
	"strings"
)

// Kind names a request operation on the wire ("request_type").
type Kind string

// Request kinds
const (
	KindJoin           Kind = "join"
	KindGetPlayers     Kind = "get_players"
	KindTakeCards      Kind = "take_cards"
	KindUseCard        Kind = "use_card"
	KindGetCards       Kind = "get_cards"
	KindGetCardNum     Kind = "get_card_num"
	KindGetPlus        Kind = "get_plus"
	KindResetPlus      Kind = "reset_plus"
	KindCurrentTurn    Kind = "current_turn"
	KindTopCard        Kind = "top_card"
	KindCycleColorUp   Kind = "cycle_color_up"
	KindCycleColorDown Kind = "cycle_color_down"
	KindDraw           Kind = "draw"
)

var kinds = map[Kind]bool{
	KindJoin: true, KindGetPlayers: true, KindTakeCards: true, KindUseCard: true,
	KindGetCards: true, KindGetCardNum: true, KindGetPlus: true, KindResetPlus: true,
	KindCurrentTurn: true, KindTopCard: true, KindCycleColorUp: true,
	KindCycleColorDown: true, KindDraw: true,
}

// Valid reports whether k is a known request kind.
func (k Kind) Valid() bool { return kinds[k] }

// ErrMalformed is returned when a payload cannot be turned into a Request.
var ErrMalformed = errors.New("malformed request")

// Request is the closed set of operations a client may send.
type Request interface {
	Kind() Kind
}

// JoinRequest seats a new player.
type JoinRequest struct{ Name string }

// GetPlayersRequest lists the seated players.
type GetPlayersRequest struct{}

// TakeCardsRequest draws Num cards for the player holding the turn.
type TakeCardsRequest struct {
	Name string
	Num  int
}

// UseCardRequest plays the card at CardIndex of the caller's hand.
type UseCardRequest struct {
	Name      string
	CardIndex int
}

// GetCardsRequest returns the caller's hand.
type GetCardsRequest struct{ Name string }

// GetCardNumRequest returns the size of a player's hand.
type GetCardNumRequest struct{ Name string }

// GetPlusRequest returns the pending penalty.
type GetPlusRequest struct{}

// ResetPlusRequest clears the pending penalty.
type ResetPlusRequest struct{}

// CurrentTurnRequest returns the name of the player holding the turn.
type CurrentTurnRequest struct{}

// TopCardRequest returns the card on top of the discard pile.
type TopCardRequest struct{}

// CycleColorRequest steps the color of a wild card in the caller's hand.
type CycleColorRequest struct {
	Name      string
	CardIndex int
	Down      bool
}

// DrawRequest resolves the pending penalty (or draws one card) and passes the turn.
type DrawRequest struct{ Name string }

func (JoinRequest) Kind() Kind        { return KindJoin }
func (GetPlayersRequest) Kind() Kind  { return KindGetPlayers }
func (TakeCardsRequest) Kind() Kind   { return KindTakeCards }
func (UseCardRequest) Kind() Kind     { return KindUseCard }
func (GetCardsRequest) Kind() Kind    { return KindGetCards }
func (GetCardNumRequest) Kind() Kind  { return KindGetCardNum }
func (GetPlusRequest) Kind() Kind     { return KindGetPlus }
func (ResetPlusRequest) Kind() Kind   { return KindResetPlus }
func (CurrentTurnRequest) Kind() Kind { return KindCurrentTurn }
func (TopCardRequest) Kind() Kind     { return KindTopCard }
func (DrawRequest) Kind() Kind        { return KindDraw }

func (r CycleColorRequest) Kind() Kind {
	if r.Down {
		return KindCycleColorDown
	}
	return KindCycleColorUp
}

// Envelope is the field-tagged mapping every codec reads and writes.
// Pointer fields distinguish a missing field from a zero value.
type Envelope struct {
	RequestType string  `json:"request_type"`
	Name        *string `json:"name,omitempty"`
	Num         *int    `json:"num,omitempty"`
	CardIndex   *int    `json:"card_index,omitempty"`
}

// ToEnvelope flattens a typed request into its wire mapping.
func ToEnvelope(req Request) Envelope {
	env := Envelope{RequestType: string(req.Kind())}
	switch r := req.(type) {
	case JoinRequest:
		env.Name = &r.Name
	case TakeCardsRequest:
		env.Name, env.Num = &r.Name, &r.Num
	case UseCardRequest:
		env.Name, env.CardIndex = &r.Name, &r.CardIndex
	case GetCardsRequest:
		env.Name = &r.Name
	case GetCardNumRequest:
		env.Name = &r.Name
	case CycleColorRequest:
		env.Name, env.CardIndex = &r.Name, &r.CardIndex
	case DrawRequest:
		env.Name = &r.Name
	}
	return env
}

// FromEnvelope validates the mapping and builds the typed request.
// Missing or out-of-range fields produce an error wrapping ErrMalformed.
func FromEnvelope(env Envelope) (Request, error) {
	kind := Kind(env.RequestType)
	switch kind {
	case KindGetPlayers:
		return GetPlayersRequest{}, nil
	case KindGetPlus:
		return GetPlusRequest{}, nil
	case KindResetPlus:
		return ResetPlusRequest{}, nil
	case KindCurrentTurn:
		return CurrentTurnRequest{}, nil
	case KindTopCard:
		return TopCardRequest{}, nil
	}

	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown request_type %q", ErrMalformed, env.RequestType)
	}

	name, err := env.name(kind)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindJoin:
		return JoinRequest{Name: name}, nil
	case KindGetCards:
		return GetCardsRequest{Name: name}, nil
	case KindGetCardNum:
		return GetCardNumRequest{Name: name}, nil
	case KindDraw:
		return DrawRequest{Name: name}, nil
	case KindTakeCards:
		if env.Num == nil || *env.Num < 0 {
			return nil, fmt.Errorf("%w: %s needs a non-negative num", ErrMalformed, kind)
		}
		return TakeCardsRequest{Name: name, Num: *env.Num}, nil
	case KindUseCard, KindCycleColorUp, KindCycleColorDown:
		if env.CardIndex == nil || *env.CardIndex < 0 {
			return nil, fmt.Errorf("%w: %s needs a non-negative card_index", ErrMalformed, kind)
		}
		if kind == KindUseCard {
			return UseCardRequest{Name: name, CardIndex: *env.CardIndex}, nil
		}
		return CycleColorRequest{Name: name, CardIndex: *env.CardIndex, Down: kind == KindCycleColorDown}, nil
	}
	return nil, fmt.Errorf("%w: unknown request_type %q", ErrMalformed, env.RequestType)
}

func (env Envelope) name(kind Kind) (string, error) {
	if env.Name == nil {
		return "", fmt.Errorf("%w: %s needs a name", ErrMalformed, kind)
	}
	name := strings.TrimSpace(strings.Trim(*env.Name, `"`))
	if name == "" {
		return "", fmt.Errorf("%w: %s needs a non-empty name", ErrMalformed, kind)
	}
	return name, nil
}
