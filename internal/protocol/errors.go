package protocol

import "fmt"

// Status is the one-byte result code returned for every mutating request.
type Status byte

// Status codes
const (
	StatusOK          Status = 0
	StatusRejected    Status = 1 // rule violation: not your turn, illegal card, bad index
	StatusNameTaken   Status = 2
	StatusNotSeated   Status = 3
	StatusMalformed   Status = 4
	StatusDeckEmpty   Status = 5
	StatusGameFull    Status = 6
	StatusServerError Status = 7
)

// StatusMessages status code descriptions
var StatusMessages = map[Status]string{
	StatusOK:          "ok",
	StatusRejected:    "request rejected by the rules",
	StatusNameTaken:   "name already taken",
	StatusNotSeated:   "player is not seated",
	StatusMalformed:   "malformed request",
	StatusDeckEmpty:   "deck is empty",
	StatusGameFull:    "game is full",
	StatusServerError: "internal server error",
}

func (s Status) String() string {
	if msg, ok := StatusMessages[s]; ok {
		return msg
	}
	return fmt.Sprintf("status(%d)", byte(s))
}

// Bytes returns the single-byte wire form of the status.
func (s Status) Bytes() []byte {
	return []byte{byte(s)}
}
