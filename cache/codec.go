package cache

import (
	"encoding/base64"
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec turns values into the strings a Storage holds.
type Codec interface {
	Marshal(v any) (string, error)
	Unmarshal(data string, v any) error
}

// JSON stores values as JSON text, readable from page scripts.
type JSON struct{}

func (JSON) Marshal(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (JSON) Unmarshal(data string, v any) error {
	return json.Unmarshal([]byte(data), v)
}

// Msgpack stores values as base64 encoded MessagePack, which is smaller
// for numeric payloads.
type Msgpack struct{}

func (Msgpack) Marshal(v any) (string, error) {
	b, err := msgpack.Marshal(v)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (Msgpack) Unmarshal(data string, v any) error {
	b, err := base64.RawURLEncoding.DecodeString(data)
	if err != nil {
		return err
	}
	return msgpack.Unmarshal(b, v)
}
