package rpcapi

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// codecName is advertised as the gRPC content-subtype, requested by clients
// via grpc.CallContentSubtype and looked up by servers in the codec
// registry. Using "json" instead of the
// default "proto" lets every service in this package move structs without a
// protoc-generated marshaler.
const codecName = "json"

// jsonCodec implements encoding.Codec by delegating straight to
// encoding/json; registered once via init so every client/server dial
// option in this package can request it by name.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("rpcapi: json marshal: %w", err)
	}
	return b, nil
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("rpcapi: json unmarshal: %w", err)
	}
	return nil
}

func (jsonCodec) Name() string { return codecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
