package collection

import (
	"context"
	"slices"
	"sync"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/pointstore/codec"
	"github.com/hupe1980/pointstore/internal/compress"
	"github.com/hupe1980/pointstore/model"
)

type storedPoint struct {
	vectors model.Vectors
	payload []byte // encoded and compressed, nil if none
}

// shard holds one partition of a collection.
type shard struct {
	id model.ShardID

	mu     sync.RWMutex
	points map[model.PointID]storedPoint
	// numIDs tracks integer ids present, so absent ids skip the map lookup.
	numIDs *roaring64.Bitmap

	codec       codec.Codec
	compression compress.Type
}

func newShard(id model.ShardID, c codec.Codec, compression compress.Type) *shard {
	return &shard{
		id:          id,
		points:      make(map[model.PointID]storedPoint),
		numIDs:      roaring64.New(),
		codec:       c,
		compression: compression,
	}
}

func (s *shard) encodePayload(p model.Payload) ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	b, err := s.codec.Marshal(p)
	if err != nil {
		return nil, err
	}
	return compress.Encode(s.compression, b)
}

func (s *shard) decodePayload(b []byte) (model.Payload, error) {
	if b == nil {
		return nil, nil
	}
	raw, err := compress.Decode(s.compression, b)
	if err != nil {
		return nil, err
	}
	var p model.Payload
	if err := s.codec.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// prepare encodes a point for storage without touching shard state.
func (s *shard) prepare(p model.PointStruct) (storedPoint, error) {
	payload, err := s.encodePayload(p.Payload)
	if err != nil {
		return storedPoint{}, err
	}
	vectors := make(model.Vectors, len(p.Vectors))
	for name, v := range p.Vectors {
		vectors[name] = slices.Clone(v)
	}
	return storedPoint{vectors: vectors, payload: payload}, nil
}

// put stores prepared points. ids and points are parallel.
func (s *shard) put(ids []model.PointID, points []storedPoint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, id := range ids {
		s.points[id] = points[i]
		if n, ok := id.Num(); ok {
			s.numIDs.Add(n)
		}
	}
}

func (s *shard) delete(ids []model.PointID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, id := range ids {
		if _, ok := s.points[id]; !ok {
			continue
		}
		delete(s.points, id)
		if n, ok := id.Num(); ok {
			s.numIDs.Remove(n)
		}
		removed++
	}
	return removed
}

func (s *shard) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}

func (s *shard) numericCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.numIDs.GetCardinality()
}

// retrieve returns records for the stored ids among ids, at most one per id.
func (s *shard) retrieve(ctx context.Context, ids []model.PointID, withPayload model.WithPayload, withVector model.WithVector) ([]model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]model.Record, 0, len(ids))
	seen := make(map[model.PointID]struct{}, len(ids))
	for i, id := range ids {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if n, ok := id.Num(); ok && !s.numIDs.Contains(n) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		sp, ok := s.points[id]
		if !ok {
			continue
		}
		seen[id] = struct{}{}

		rec := model.Record{ID: id, Vectors: withVector.Select(sp.vectors)}
		if withPayload.Enable {
			p, err := s.decodePayload(sp.payload)
			if err != nil {
				return nil, err
			}
			rec.Payload = withPayload.Select(p)
			if rec.Payload == nil {
				rec.Payload = model.Payload{}
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
