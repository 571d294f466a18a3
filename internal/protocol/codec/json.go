package codec

import (
	"encoding/json"

	"github.com/palemoky/uno-online/internal/protocol"
)

// JSON is the default codec: requests are JSON objects keyed by field name.
type JSON struct{}

func (JSON) Name() string { return NameJSON }

func (JSON) EncodeRequest(req protocol.Request) ([]byte, error) {
	return json.Marshal(protocol.ToEnvelope(req))
}

func (JSON) DecodeRequest(data []byte) (protocol.Request, error) {
	return decodeEnvelope(data)
}

func (JSON) EncodeValue(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSON) DecodeValue(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
