package client

import (
	"github.com/palemoky/uno-online/internal/game/card"
	"github.com/palemoky/uno-online/internal/protocol"
	"github.com/palemoky/uno-online/internal/protocol/convert"
)

// --- 便捷方法 ---

// Join takes a seat under name.
func (c *Client) Join(name string) error {
	return c.status(protocol.JoinRequest{Name: name})
}

// GetPlayers lists the seated players.
func (c *Client) GetPlayers() ([]protocol.PlayerInfo, error) {
	var players []protocol.PlayerInfo
	if err := c.value(protocol.GetPlayersRequest{}, &players); err != nil {
		return nil, err
	}
	return players, nil
}

// TakeCards draws n cards and passes the turn.
func (c *Client) TakeCards(name string, n int) error {
	return c.status(protocol.TakeCardsRequest{Name: name, Num: n})
}

// UseCard plays the card at index. A refused play is a StatusError with
// StatusRejected.
func (c *Client) UseCard(name string, index int) error {
	return c.status(protocol.UseCardRequest{Name: name, CardIndex: index})
}

// GetCards returns name's hand in draw order.
func (c *Client) GetCards(name string) ([]card.Card, error) {
	var infos []protocol.CardInfo
	if err := c.value(protocol.GetCardsRequest{Name: name}, &infos); err != nil {
		return nil, err
	}
	return convert.InfosToCards(infos)
}

// GetCardNum returns the size of name's hand.
func (c *Client) GetCardNum(name string) (int, error) {
	return c.count(protocol.GetCardNumRequest{Name: name})
}

// GetPlus returns the pending penalty.
func (c *Client) GetPlus() (int, error) {
	return c.count(protocol.GetPlusRequest{})
}

// ResetPlus clears the pending penalty.
func (c *Client) ResetPlus() error {
	return c.status(protocol.ResetPlusRequest{})
}

// CurrentTurn returns the name of the player holding the turn, empty when
// nobody is seated.
func (c *Client) CurrentTurn() (string, error) {
	resp, err := c.roundTrip(protocol.CurrentTurnRequest{})
	if err != nil {
		return "", err
	}
	return string(resp), nil
}

// TopCard returns the top of the discard pile.
func (c *Client) TopCard() (card.Card, error) {
	var info protocol.CardInfo
	if err := c.value(protocol.TopCardRequest{}, &info); err != nil {
		return card.Card{}, err
	}
	return convert.InfoToCard(info)
}

// CycleColorUp steps the wild card at index to the next color.
func (c *Client) CycleColorUp(name string, index int) error {
	return c.status(protocol.CycleColorRequest{Name: name, CardIndex: index})
}

// CycleColorDown steps the wild card at index to the previous color.
func (c *Client) CycleColorDown(name string, index int) error {
	return c.status(protocol.CycleColorRequest{Name: name, CardIndex: index, Down: true})
}

// Draw takes the pending penalty, or one card when none is pending, and
// passes the turn.
func (c *Client) Draw(name string) error {
	return c.status(protocol.DrawRequest{Name: name})
}

// Refresh polls every read-only view for name into a fresh GameState.
func (c *Client) Refresh(name string) (*GameState, error) {
	gs := NewGameState(name)
	var err error

	if gs.Players, err = c.GetPlayers(); err != nil {
		return nil, err
	}
	if gs.Hand, err = c.GetCards(name); err != nil {
		return nil, err
	}
	if gs.TopCard, err = c.TopCard(); err != nil {
		return nil, err
	}
	if gs.Pending, err = c.GetPlus(); err != nil {
		return nil, err
	}
	if gs.CurrentTurn, err = c.CurrentTurn(); err != nil {
		return nil, err
	}

	gs.CardCounter.Deduct(gs.Hand)
	gs.CardCounter.Deduct([]card.Card{gs.TopCard})
	return gs, nil
}
