package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// jsonCodec lets Connect carry plain Go structs as JSON. It is registered
// under the name "json", replacing the protobuf-JSON codec, so clients use
// the usual application/json content type.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(msg); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// Codec returns the codec clients must register with connect.WithCodec.
func Codec() connect.Codec {
	return jsonCodec{}
}
