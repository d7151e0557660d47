package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/hupe1980/pointstore/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewSource(r.seed))
}

// UniformVectors generates num vectors with values in [0, 1).
func (r *RNG) UniformVectors(num int, dimensions int) [][]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	vectors := make([][]float32, num)
	for i := range vectors {
		vectors[i] = make([]float32, dimensions)
		for j := range vectors[i] {
			vectors[i][j] = r.rand.Float32()
		}
	}
	return vectors
}

// UUID returns a pseudo-random UUID built from 16 random bytes.
func (r *RNG) UUID() uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	var u uuid.UUID
	_, _ = r.rand.Read(u[:])
	return u
}

// UUIDs returns n pseudo-random UUIDs.
func (r *RNG) UUIDs(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = r.UUID()
	}
	return out
}

// Fixture is a deterministic set of points with integer and UUID ids.
type Fixture struct {
	IntIDs  []model.PointID
	UUIDIDs []model.PointID
	Points  []model.PointStruct
	byID    map[model.PointID]model.PointStruct
}

// NewFixture builds numInts integer points (ids 0..numInts-1) followed by
// numUUIDs UUID points. Every point has an unnamed vector of dim values and
// the payload {"foo": "bar <id>"}.
func NewFixture(r *RNG, numInts, numUUIDs, dim int) *Fixture {
	f := &Fixture{byID: make(map[model.PointID]model.PointStruct, numInts+numUUIDs)}

	for i := 0; i < numInts; i++ {
		f.IntIDs = append(f.IntIDs, model.NumID(uint64(i)))
	}
	for _, u := range r.UUIDs(numUUIDs) {
		f.UUIDIDs = append(f.UUIDIDs, model.UUIDID(u))
	}

	ids := append(append([]model.PointID{}, f.IntIDs...), f.UUIDIDs...)
	vectors := r.UniformVectors(len(ids), dim)
	for i, id := range ids {
		p := model.PointStruct{
			ID:      id,
			Vectors: model.DefaultVector(vectors[i]),
			Payload: FooPayload(id),
		}
		f.Points = append(f.Points, p)
		f.byID[id] = p
	}
	return f
}

// Point returns the fixture point for id.
func (f *Fixture) Point(id model.PointID) (model.PointStruct, bool) {
	p, ok := f.byID[id]
	return p, ok
}

// FooPayload returns the fixture payload for id.
func FooPayload(id model.PointID) model.Payload {
	return model.Payload{"foo": fmt.Sprintf("bar %s", id)}
}
