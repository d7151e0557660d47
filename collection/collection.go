package collection

import (
	"context"
	"fmt"

	"github.com/hupe1980/pointstore/internal/compress"
	"github.com/hupe1980/pointstore/internal/hash"
	"github.com/hupe1980/pointstore/model"
	"golang.org/x/sync/errgroup"
)

// Collection is a named set of points partitioned across shards.
// It is safe for concurrent use.
type Collection struct {
	name   string
	cfg    Config
	shards []*shard
	opts   options
}

// New creates an empty collection.
func New(name string, cfg Config, optFns ...Option) (*Collection, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	compression, err := compress.ParseType(cfg.PayloadCompression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	opts := applyOptions(optFns)

	shards := make([]*shard, cfg.ShardNumber)
	for i := range shards {
		shards[i] = newShard(model.ShardID(i), opts.codec, compression)
	}

	return &Collection{
		name:   name,
		cfg:    cfg,
		shards: shards,
		opts:   opts,
	}, nil
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// Config returns the collection config.
func (c *Collection) Config() Config { return c.cfg }

// NumShards returns the number of shards.
func (c *Collection) NumShards() int { return len(c.shards) }

// ShardFor returns the shard a point id is routed to.
func (c *Collection) ShardFor(id model.PointID) model.ShardID {
	return model.ShardID(c.shardIndex(id))
}

func (c *Collection) shardIndex(id model.PointID) int {
	var buf [17]byte
	return hash.Bucket(id.AppendBinary(buf[:0]), len(c.shards))
}

func (c *Collection) validate(p model.PointStruct) error {
	for name, v := range p.Vectors {
		vc, ok := c.cfg.Segment.VectorData[name]
		if !ok {
			return fmt.Errorf("point %s: %w %q", p.ID, ErrUnknownVector, name)
		}
		if len(v) != vc.Size {
			return &ErrDimensionMismatch{Vector: name, Expected: vc.Size, Actual: len(v)}
		}
	}
	return nil
}

// Upsert inserts or replaces points. Every point is validated and encoded
// before any shard is written, so a failing batch leaves the collection
// unchanged.
func (c *Collection) Upsert(ctx context.Context, points []model.PointStruct) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ids := make([][]model.PointID, len(c.shards))
	prepared := make([][]storedPoint, len(c.shards))
	for _, p := range points {
		if err := c.validate(p); err != nil {
			return err
		}
		idx := c.shardIndex(p.ID)
		sp, err := c.shards[idx].prepare(p)
		if err != nil {
			return fmt.Errorf("point %s: %w", p.ID, err)
		}
		ids[idx] = append(ids[idx], p.ID)
		prepared[idx] = append(prepared[idx], sp)
	}

	for idx := range c.shards {
		if len(ids[idx]) > 0 {
			c.shards[idx].put(ids[idx], prepared[idx])
		}
	}

	c.opts.logger.DebugContext(ctx, "upsert completed", "collection", c.name, "count", len(points))
	return nil
}

// Delete removes points and returns how many existed.
func (c *Collection) Delete(ctx context.Context, ids []model.PointID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	groups := c.group(ids)
	removed := 0
	for idx, group := range groups {
		if len(group) > 0 {
			removed += c.shards[idx].delete(group)
		}
	}

	c.opts.logger.DebugContext(ctx, "delete completed", "collection", c.name, "requested", len(ids), "removed", removed)
	return removed, nil
}

// Count returns the number of stored points.
func (c *Collection) Count() int {
	n := 0
	for _, s := range c.shards {
		n += s.count()
	}
	return n
}

// ShardInfo describes one shard.
type ShardInfo struct {
	ID         model.ShardID
	Points     int
	NumericIDs uint64
}

// Info returns per-shard statistics.
func (c *Collection) Info() []ShardInfo {
	out := make([]ShardInfo, len(c.shards))
	for i, s := range c.shards {
		out[i] = ShardInfo{ID: s.id, Points: s.count(), NumericIDs: s.numericCount()}
	}
	return out
}

func (c *Collection) group(ids []model.PointID) [][]model.PointID {
	groups := make([][]model.PointID, len(c.shards))
	for _, id := range ids {
		idx := c.shardIndex(id)
		groups[idx] = append(groups[idx], id)
	}
	return groups
}

func (c *Collection) checkConsistency(rc *model.ReadConsistency) error {
	if rc == nil {
		return nil
	}
	if need := rc.Required(c.cfg.ReplicationFactor); need > c.cfg.ReplicationFactor {
		return fmt.Errorf("%w: %d replicas required, collection %s has %d",
			ErrConsistencyUnsatisfiable, need, c.name, c.cfg.ReplicationFactor)
	}
	return nil
}

// Retrieve returns the stored records for the requested ids.
//
// Ids that are not stored are omitted and duplicates yield one record. The
// order of the returned records is unspecified. If shard is non-nil only that
// shard is read. Consistency is checked against the replication factor.
func (c *Collection) Retrieve(ctx context.Context, req model.PointRequest, consistency *model.ReadConsistency, shard *model.ShardID) ([]model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.checkConsistency(consistency); err != nil {
		return nil, err
	}

	var groups [][]model.PointID
	if shard != nil {
		if int(*shard) >= len(c.shards) {
			return nil, fmt.Errorf("%w: %d (collection %s has %d shards)", ErrShardNotFound, *shard, c.name, len(c.shards))
		}
		groups = make([][]model.PointID, len(c.shards))
		groups[*shard] = req.IDs
	} else {
		groups = c.group(req.IDs)
	}

	results := make([][]model.Record, len(groups))
	g, gctx := errgroup.WithContext(ctx)
	for idx, ids := range groups {
		if len(ids) == 0 {
			continue
		}
		g.Go(func() error {
			recs, err := c.shards[idx].retrieve(gctx, ids, req.WithPayload, req.WithVector)
			if err != nil {
				return fmt.Errorf("shard %d: %w", idx, err)
			}
			results[idx] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	out := make([]model.Record, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}
