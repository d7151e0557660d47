package model

// DefaultVectorName is the name of the unnamed vector of a point.
const DefaultVectorName = ""

// Payload is the JSON-like document attached to a point.
type Payload map[string]any

// Vectors maps vector names to vector data.
type Vectors map[string][]float32

// DefaultVector wraps a single unnamed vector.
func DefaultVector(v []float32) Vectors {
	return Vectors{DefaultVectorName: v}
}

// PointStruct is a point to be written to a collection.
type PointStruct struct {
	ID      PointID `json:"id"`
	Vectors Vectors `json:"vector"`
	Payload Payload `json:"payload,omitempty"`
}

// Record is a point as returned by a retrieval.
// Payload and Vectors are nil unless requested.
type Record struct {
	ID      PointID `json:"id"`
	Payload Payload `json:"payload,omitempty"`
	Vectors Vectors `json:"vector,omitempty"`
}

// Vector returns the unnamed vector, if present.
func (r Record) Vector() []float32 {
	return r.Vectors[DefaultVectorName]
}
