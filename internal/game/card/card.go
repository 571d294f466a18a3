package card

import (
	"fmt"
	"strconv"
)

// Color 牌的颜色
type Color int

// ColorNone is the color of a wild card that has not been assigned a play color.
const (
	ColorNone Color = iota
	Red
	Green
	Blue
	Yellow
)

// PlayColors is the cycling order of the four play colors.
var PlayColors = [...]Color{Red, Green, Blue, Yellow}

var colorNames = map[Color]string{
	ColorNone: "none",
	Red:       "red",
	Green:     "green",
	Blue:      "blue",
	Yellow:    "yellow",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "color(" + strconv.Itoa(int(c)) + ")"
}

// ParseColor is the inverse of Color.String.
func ParseColor(s string) (Color, error) {
	for c, name := range colorNames {
		if name == s {
			return c, nil
		}
	}
	return ColorNone, fmt.Errorf("unknown color: %q", s)
}

// Value 牌面值. 0-9 are numbered cards.
type Value int

const (
	Skip Value = iota + 10
	Reverse
	PlusTwo
	Wild
	WildPlusFour
)

var valueNames = map[Value]string{
	Skip:         "skip",
	Reverse:      "reverse",
	PlusTwo:      "plus_two",
	Wild:         "wild",
	WildPlusFour: "wild_plus_four",
}

// IsNumber reports whether v is a numbered card value.
func (v Value) IsNumber() bool { return v >= 0 && v <= 9 }

func (v Value) String() string {
	if v.IsNumber() {
		return strconv.Itoa(int(v))
	}
	if name, ok := valueNames[v]; ok {
		return name
	}
	return "value(" + strconv.Itoa(int(v)) + ")"
}

// Symbol is the short label used when rendering a card face.
func (v Value) Symbol() string {
	switch v {
	case Skip:
		return "⛔"
	case Reverse:
		return "🔃"
	case PlusTwo:
		return "+2"
	case Wild:
		return "Wild"
	case WildPlusFour:
		return "+4"
	}
	return v.String()
}

// ParseValue is the inverse of Value.String.
func ParseValue(s string) (Value, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if v := Value(n); v.IsNumber() {
			return v, nil
		}
		return 0, fmt.Errorf("card number out of range: %d", n)
	}
	for v, name := range valueNames {
		if name == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown card value: %q", s)
}

// Card 定义一张牌
type Card struct {
	Value Value
	Color Color
}

// New returns a numbered or action card of the given color.
func New(v Value, c Color) Card { return Card{Value: v, Color: c} }

// Number returns the numbered card n of color c.
func Number(n int, c Color) Card { return Card{Value: Value(n), Color: c} }

// NewWild returns an uncolored wild card.
func NewWild() Card { return Card{Value: Wild, Color: ColorNone} }

// NewWildPlusFour returns an uncolored wild plus four card.
func NewWildPlusFour() Card { return Card{Value: WildPlusFour, Color: ColorNone} }

// IsWild reports whether the card's color can be chosen by the player.
func (c Card) IsWild() bool { return c.Value == Wild || c.Value == WildPlusFour }

// Penalty is the number of cards the card adds to the pending penalty.
func (c Card) Penalty() int {
	switch c.Value {
	case PlusTwo:
		return 2
	case WildPlusFour:
		return 4
	}
	return 0
}

// CycleColorUp steps a wild card to the next play color. None goes to Red.
// Non-wild cards are left untouched.
func (c *Card) CycleColorUp() { c.cycle(1) }

// CycleColorDown steps a wild card to the previous play color. None goes to Red.
func (c *Card) CycleColorDown() { c.cycle(-1) }

func (c *Card) cycle(step int) {
	if !c.IsWild() {
		return
	}
	if c.Color == ColorNone {
		c.Color = Red
		return
	}
	n := len(PlayColors)
	i := int(c.Color - Red)
	c.Color = PlayColors[((i+step)%n+n)%n]
}

func (c Card) String() string {
	return c.Color.String() + " " + c.Value.Symbol()
}
