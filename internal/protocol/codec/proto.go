package codec

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/palemoky/uno-online/internal/protocol"
)

// Proto carries the same field-tagged mapping as JSON inside a protobuf
// google.protobuf.Struct, and response values inside a google.protobuf.Value.
type Proto struct{}

func (Proto) Name() string { return NameProto }

func (Proto) EncodeRequest(req protocol.Request) ([]byte, error) {
	env := protocol.ToEnvelope(req)
	fields := map[string]any{"request_type": env.RequestType}
	if env.Name != nil {
		fields["name"] = *env.Name
	}
	if env.Num != nil {
		fields["num"] = *env.Num
	}
	if env.CardIndex != nil {
		fields["card_index"] = *env.CardIndex
	}

	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

func (Proto) DecodeRequest(data []byte) (protocol.Request, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", protocol.ErrMalformed, err)
	}
	raw, err := s.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", protocol.ErrMalformed, err)
	}
	return decodeEnvelope(raw)
}

func (Proto) EncodeValue(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var pv structpb.Value
	if err := pv.UnmarshalJSON(raw); err != nil {
		return nil, err
	}
	return proto.Marshal(&pv)
}

func (Proto) DecodeValue(data []byte, v any) error {
	var pv structpb.Value
	if err := proto.Unmarshal(data, &pv); err != nil {
		return err
	}
	raw, err := pv.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
