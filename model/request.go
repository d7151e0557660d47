package model

import "slices"

// WithPayload selects which payload keys are attached to retrieved records.
//
// If Include is non-empty only those keys are returned; otherwise keys listed
// in Exclude are dropped.
type WithPayload struct {
	Enable  bool
	Include []string
	Exclude []string
}

// PayloadAll requests the full payload.
func PayloadAll() WithPayload { return WithPayload{Enable: true} }

// PayloadNone requests no payload.
func PayloadNone() WithPayload { return WithPayload{} }

// PayloadInclude requests only the given payload keys.
func PayloadInclude(keys ...string) WithPayload {
	return WithPayload{Enable: true, Include: keys}
}

// PayloadExclude requests the payload without the given keys.
func PayloadExclude(keys ...string) WithPayload {
	return WithPayload{Enable: true, Exclude: keys}
}

// Select returns the subset of p described by the selector.
// The result never aliases p.
func (w WithPayload) Select(p Payload) Payload {
	if !w.Enable || p == nil {
		return nil
	}
	out := make(Payload, len(p))
	if len(w.Include) > 0 {
		for _, k := range w.Include {
			if v, ok := p[k]; ok {
				out[k] = v
			}
		}
		return out
	}
	for k, v := range p {
		if !slices.Contains(w.Exclude, k) {
			out[k] = v
		}
	}
	return out
}

// WithVector selects which vectors are attached to retrieved records.
// An empty Names list means all vectors.
type WithVector struct {
	Enable bool
	Names  []string
}

// VectorsAll requests every vector.
func VectorsAll() WithVector { return WithVector{Enable: true} }

// VectorsNone requests no vectors.
func VectorsNone() WithVector { return WithVector{} }

// VectorsNamed requests only the named vectors.
func VectorsNamed(names ...string) WithVector {
	return WithVector{Enable: true, Names: names}
}

// Select returns copies of the selected vectors.
func (w WithVector) Select(v Vectors) Vectors {
	if !w.Enable || v == nil {
		return nil
	}
	out := make(Vectors, len(v))
	for name, vec := range v {
		if len(w.Names) > 0 && !slices.Contains(w.Names, name) {
			continue
		}
		out[name] = slices.Clone(vec)
	}
	return out
}

// PointRequest is a batched retrieval of points by id.
type PointRequest struct {
	IDs         []PointID
	WithPayload WithPayload
	WithVector  WithVector
}

// ShardID identifies a partition of a collection.
type ShardID uint32

// ConsistencyType is the kind of replica agreement a read demands.
type ConsistencyType uint8

const (
	// ConsistencyFactor requires Factor replicas to answer.
	ConsistencyFactor ConsistencyType = iota
	// ConsistencyMajority requires a majority of replicas.
	ConsistencyMajority
	// ConsistencyQuorum requires floor(n/2)+1 replicas.
	ConsistencyQuorum
	// ConsistencyAll requires every replica.
	ConsistencyAll
)

// ReadConsistency controls how many replicas must agree on a read.
// It is interpreted by the storage layer only.
type ReadConsistency struct {
	Type   ConsistencyType
	Factor int
}

// Factor returns a consistency directive requiring n replicas.
func Factor(n int) ReadConsistency {
	return ReadConsistency{Type: ConsistencyFactor, Factor: n}
}

// Required returns the number of replicas needed out of replicas available.
func (c ReadConsistency) Required(replicas int) int {
	switch c.Type {
	case ConsistencyMajority, ConsistencyQuorum:
		return replicas/2 + 1
	case ConsistencyAll:
		return replicas
	default:
		if c.Factor < 1 {
			return 1
		}
		return c.Factor
	}
}
