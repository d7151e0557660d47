package pointstore

import (
	"context"
	"time"

	"github.com/hupe1980/pointstore/internal/resource"
	"github.com/hupe1980/pointstore/model"
)

// Handle is a read-locked reference to a collection. It is valid until
// Release is called.
type Handle interface {
	Retrieve(ctx context.Context, req model.PointRequest, consistency *model.ReadConsistency, shard *model.ShardID) ([]model.Record, error)
	Release()
}

// Resolver finds a collection by name and returns a read-locked handle to
// it, or false if there is no such collection. A nil handle is reported as
// not found. Timeouts are the resolver's concern.
type Resolver func(ctx context.Context, name string) (Handle, bool)

// ResolverOf adapts a resolver returning a concrete handle type, such as
// collection.Registry.Acquire.
func ResolverOf[H Handle](fn func(ctx context.Context, name string) (H, bool)) Resolver {
	return func(ctx context.Context, name string) (Handle, bool) {
		h, ok := fn(ctx, name)
		if !ok {
			return nil, false
		}
		return h, true
	}
}

// LookupRequest asks for the records of a collection by external id values.
type LookupRequest struct {
	CollectionName string
	Values         []model.PseudoID
	WithPayload    model.WithPayload
	WithVector     model.WithVector
}

// NormalizeIDs converts values to point ids, preserving order and dropping
// values that do not convert.
func NormalizeIDs(values []model.PseudoID) []model.PointID {
	ids := make([]model.PointID, 0, len(values))
	for _, v := range values {
		if id, err := v.PointID(); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// Service runs lookups with shared logging, metrics and admission control.
// It holds no per-lookup state and is safe for concurrent use.
type Service struct {
	opts      options
	resources *resource.Controller
}

// New creates a Service.
func New(optFns ...Option) *Service {
	opts := applyOptions(optFns)
	return &Service{
		opts:      opts,
		resources: resource.NewController(opts.resources),
	}
}

var defaultService = New()

// LookupIDs runs a lookup with the default Service.
func LookupIDs(ctx context.Context, req LookupRequest, resolve Resolver, consistency *model.ReadConsistency, shard *model.ShardID) (map[model.PseudoID]model.Record, error) {
	return defaultService.LookupIDs(ctx, req, resolve, consistency, shard)
}

// LookupIDs resolves req.Values against the named collection.
//
// The resolver is called exactly once and the handle it returns is released
// before LookupIDs returns. The result is keyed by the canonical external
// form of each found id. Consistency and shard are passed to the collection
// unchanged.
func (s *Service) LookupIDs(ctx context.Context, req LookupRequest, resolve Resolver, consistency *model.ReadConsistency, shard *model.ShardID) (map[model.PseudoID]model.Record, error) {
	start := time.Now()
	stats := LookupStats{Collection: req.CollectionName, Requested: len(req.Values)}

	res, err := s.lookup(ctx, req, resolve, consistency, shard, &stats)

	stats.Found = len(res)
	stats.Duration = time.Since(start)
	s.opts.logger.LogLookup(ctx, stats, err)
	s.opts.metricsCollector.RecordLookup(stats, err)
	return res, err
}

func (s *Service) lookup(ctx context.Context, req LookupRequest, resolve Resolver, consistency *model.ReadConsistency, shard *model.ShardID, stats *LookupStats) (map[model.PseudoID]model.Record, error) {
	if err := s.resources.AcquireLookup(ctx); err != nil {
		return nil, err
	}
	defer s.resources.ReleaseLookup()

	ids := NormalizeIDs(req.Values)
	stats.Valid = len(ids)

	if err := s.resources.WaitIDs(ctx, len(ids)); err != nil {
		return nil, err
	}

	h, ok := resolve(ctx, req.CollectionName)
	// A nil handle cannot be read or released; treat it as unresolved.
	ok = ok && h != nil
	if err := ctx.Err(); err != nil {
		if ok {
			h.Release()
		}
		return nil, err
	}
	if !ok {
		return nil, &CollectionNotFoundError{Name: req.CollectionName}
	}
	defer h.Release()

	if len(ids) == 0 {
		return map[model.PseudoID]model.Record{}, nil
	}

	records, err := h.Retrieve(ctx, model.PointRequest{
		IDs:         ids,
		WithPayload: req.WithPayload,
		WithVector:  req.WithVector,
	}, consistency, shard)
	if err != nil {
		return nil, &RetrievalError{Collection: req.CollectionName, cause: err}
	}

	result := make(map[model.PseudoID]model.Record, len(records))
	for _, rec := range records {
		result[model.PseudoFromPointID(rec.ID)] = rec
	}
	return result, nil
}
