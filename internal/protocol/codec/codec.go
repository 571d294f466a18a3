// Package codec turns protocol requests and response values into bytes and
// frames them on a stream.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/palemoky/uno-online/internal/protocol"
)

// Codec encodes requests and structured response values.
type Codec interface {
	Name() string
	EncodeRequest(req protocol.Request) ([]byte, error)
	DecodeRequest(data []byte) (protocol.Request, error)
	EncodeValue(v any) ([]byte, error)
	DecodeValue(data []byte, v any) error
}

// Codec names
const (
	NameJSON  = "json"
	NameProto = "proto"
)

// ByName returns the codec registered under name.
func ByName(name string) (Codec, error) {
	switch name {
	case "", NameJSON:
		return JSON{}, nil
	case NameProto:
		return Proto{}, nil
	}
	return nil, fmt.Errorf("unknown codec %q", name)
}

// decodeEnvelope parses the JSON form of an envelope and validates it.
// Any failure wraps protocol.ErrMalformed.
func decodeEnvelope(data []byte) (protocol.Request, error) {
	var env protocol.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", protocol.ErrMalformed, err)
	}
	return protocol.FromEnvelope(env)
}
