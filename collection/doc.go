// Package collection implements named, sharded in-memory point collections
// and a registry that hands out read-locked handles to them.
//
// # Retrieval
//
// A Collection partitions points across shards by a hash of the canonical id.
// Retrieve groups the requested ids by shard and reads the involved shards
// concurrently. Ids that are not stored are omitted from the result.
//
//	recs, err := coll.Retrieve(ctx, model.PointRequest{
//	    IDs:         []model.PointID{model.NumID(1)},
//	    WithPayload: model.PayloadAll(),
//	    WithVector:  model.VectorsAll(),
//	}, nil, nil)
//
// # Registry
//
// Registry maps names to collections. Acquire takes a shared read lock that
// is held until ReadGuard.Release; Drop takes the exclusive lock and waits
// for outstanding readers.
//
// # Configuration
//
// Collection configs are YAML (or JSON) documents. Files written before
// config version 6 carry the legacy segment layout and are migrated on load.
package collection
