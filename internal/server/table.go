package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/palemoky/uno-online/internal/apperrors"
	"github.com/palemoky/uno-online/internal/game"
	"github.com/palemoky/uno-online/internal/protocol"
	"github.com/palemoky/uno-online/internal/protocol/codec"
	"github.com/palemoky/uno-online/internal/protocol/convert"
	"github.com/palemoky/uno-online/internal/server/storage"
)

// Result is the outcome of one request: the response payload, the events to
// publish once the lock is released, and the error behind a rejection.
type Result struct {
	Payload []byte
	Events  []storage.Event
	Err     error
}

// handlerFunc 统一的处理器函数签名. It runs with the table lock held.
type handlerFunc func(req protocol.Request) Result

// Table owns the single shared game. Every request is applied under one lock.
type Table struct {
	mu       sync.Mutex
	game     *game.Game
	codec    codec.Codec
	handlers map[protocol.Kind]handlerFunc

	strictColorCycle bool
	now              func() time.Time
}

// NewTable wraps g. Structured responses are encoded with c.
func NewTable(g *game.Game, c codec.Codec, strictColorCycle bool) *Table {
	t := &Table{
		game:             g,
		codec:            c,
		strictColorCycle: strictColorCycle,
		now:              time.Now,
	}
	t.initHandlers()
	return t
}

// initHandlers 初始化请求处理器映射
func (t *Table) initHandlers() {
	t.handlers = map[protocol.Kind]handlerFunc{
		protocol.KindJoin:           t.handleJoin,
		protocol.KindGetPlayers:     t.handleGetPlayers,
		protocol.KindTakeCards:      t.handleTakeCards,
		protocol.KindUseCard:        t.handleUseCard,
		protocol.KindGetCards:       t.handleGetCards,
		protocol.KindGetCardNum:     t.handleGetCardNum,
		protocol.KindGetPlus:        t.handleGetPlus,
		protocol.KindResetPlus:      t.handleResetPlus,
		protocol.KindCurrentTurn:    t.handleCurrentTurn,
		protocol.KindTopCard:        t.handleTopCard,
		protocol.KindCycleColorUp:   t.handleCycleColor,
		protocol.KindCycleColorDown: t.handleCycleColor,
		protocol.KindDraw:           t.handleDraw,
	}
}

// Apply runs req against the game. It never fails: every outcome, including
// an unknown request, is encoded in the returned payload.
func (t *Table) Apply(req protocol.Request) Result {
	t.mu.Lock()
	defer t.mu.Unlock()

	h, ok := t.handlers[req.Kind()]
	if !ok {
		return statusResult(apperrors.ErrBadRequest)
	}
	return h(req)
}

// View runs fn with the lock held. fn must not retain g.
func (t *Table) View(fn func(g *game.Game)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.game)
}

// --- handlers ---

func (t *Table) handleJoin(req protocol.Request) Result {
	r := req.(protocol.JoinRequest)
	if _, err := t.game.Join(r.Name); err != nil {
		return statusResult(err)
	}
	res := statusResult(nil)
	res.Events = []storage.Event{t.event(storage.EventJoin, r.Name)}
	return res
}

func (t *Table) handleGetPlayers(protocol.Request) Result {
	return t.value(convert.PlayersToInfos(t.game.Players()))
}

func (t *Table) handleTakeCards(req protocol.Request) Result {
	r := req.(protocol.TakeCardsRequest)
	if err := t.game.TakeCards(r.Name, r.Num); err != nil {
		return statusResult(err)
	}
	ev := t.event(storage.EventTake, r.Name)
	ev.Count = r.Num
	res := statusResult(nil)
	res.Events = []storage.Event{ev}
	return res
}

// handleUseCard answers 0 or 1 only.
func (t *Table) handleUseCard(req protocol.Request) Result {
	r := req.(protocol.UseCardRequest)
	c, err := t.game.UseCard(r.Name, r.CardIndex)
	if err != nil {
		return Result{Payload: protocol.StatusRejected.Bytes(), Err: err}
	}

	info := convert.CardToInfo(c)
	ev := t.event(storage.EventPlay, r.Name)
	ev.Card = &info
	res := Result{Payload: protocol.StatusOK.Bytes(), Events: []storage.Event{ev}}

	if p, ok := t.game.Player(r.Name); ok && p.HasWon() {
		res.Events = append(res.Events, t.event(storage.EventWinner, r.Name))
	}
	return res
}

// handleGetCards returns an empty list for unknown names.
func (t *Table) handleGetCards(req protocol.Request) Result {
	r := req.(protocol.GetCardsRequest)
	infos := []protocol.CardInfo{}
	if p, ok := t.game.Player(r.Name); ok {
		infos = convert.CardsToInfos(p.Hand())
	}
	return t.value(infos)
}

// handleGetCardNum answers one byte; unknown names read as 0.
func (t *Table) handleGetCardNum(req protocol.Request) Result {
	r := req.(protocol.GetCardNumRequest)
	n := 0
	if p, ok := t.game.Player(r.Name); ok {
		n = p.HandSize()
	}
	return Result{Payload: []byte{clampByte(n)}}
}

func (t *Table) handleGetPlus(protocol.Request) Result {
	return Result{Payload: []byte{clampByte(t.game.Pending())}}
}

func (t *Table) handleResetPlus(protocol.Request) Result {
	t.game.ResetPending()
	res := statusResult(nil)
	res.Events = []storage.Event{t.event(storage.EventReset, "")}
	return res
}

// handleCurrentTurn answers the raw name, empty with no players.
func (t *Table) handleCurrentTurn(protocol.Request) Result {
	p := t.game.CurrentPlayer()
	if p == nil {
		return Result{Payload: []byte{}}
	}
	return Result{Payload: []byte(p.Name)}
}

func (t *Table) handleTopCard(protocol.Request) Result {
	return t.value(convert.CardToInfo(t.game.LastCard()))
}

func (t *Table) handleCycleColor(req protocol.Request) Result {
	r := req.(protocol.CycleColorRequest)
	return statusResult(t.game.CycleColor(r.Name, r.CardIndex, r.Down, t.strictColorCycle))
}

func (t *Table) handleDraw(req protocol.Request) Result {
	r := req.(protocol.DrawRequest)
	n, err := t.game.DrawPenalty(r.Name)
	if err != nil {
		return statusResult(err)
	}
	ev := t.event(storage.EventDraw, r.Name)
	ev.Count = n
	res := statusResult(nil)
	res.Events = []storage.Event{ev}
	return res
}

// --- helpers ---

func statusResult(err error) Result {
	return Result{Payload: apperrors.StatusOf(err).Bytes(), Err: err}
}

func (t *Table) value(v any) Result {
	data, err := t.codec.EncodeValue(v)
	if err != nil {
		err = fmt.Errorf("encode response: %w", err)
		return Result{Payload: protocol.StatusServerError.Bytes(), Err: err}
	}
	return Result{Payload: data}
}

// event snapshots the state every event carries. Called with the lock held.
func (t *Table) event(typ, player string) storage.Event {
	ev := storage.Event{
		Type:    typ,
		Player:  player,
		Pending: t.game.Pending(),
		At:      t.now().UnixMilli(),
	}
	if p := t.game.CurrentPlayer(); p != nil {
		ev.Turn = p.Name
	}
	return ev
}

func clampByte(n int) byte {
	return byte(min(max(n, 0), 255))
}
