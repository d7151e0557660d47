// Package codec centralizes payload encoding.
//
// Collections store payloads as encoded bytes and decode a fresh value for
// every retrieval, so callers can never mutate stored state through a record.
package codec

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}
