package protocol

// --- Response payloads ---

// PlayerInfo is the public view of a seated player. Hands are never exposed
// to other players, only their size.
type PlayerInfo struct {
	Seat     int    `json:"seat"`
	Name     string `json:"name"`
	HandSize int    `json:"hand_size"`
	Won      bool   `json:"won"`
}

// CardInfo is the wire form of a card.
type CardInfo struct {
	Value string `json:"value"` // "0".."9", skip, reverse, plus_two, wild, wild_plus_four
	Color string `json:"color"` // red, green, blue, yellow, none
}
