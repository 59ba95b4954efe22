package todo

import "github.com/goccy/go-json"

// Codec encodes request payloads and decodes response bodies.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// DefaultCodec returns the JSON codec used when none is configured.
func DefaultCodec() Codec { return jsonCodec{} }
