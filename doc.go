// Package pointstore resolves caller-supplied identifiers against a named
// point collection and returns the matching records keyed by the identifier
// values the caller sent.
//
// # Quick Start
//
//	reg := collection.NewRegistry()
//	coll, _ := reg.Create("docs", collection.DefaultConfig(4, collection.DistanceCosine))
//	_ = coll.Upsert(ctx, points)
//
//	res, err := pointstore.LookupIDs(ctx, pointstore.LookupRequest{
//	    CollectionName: "docs",
//	    Values:         []model.PseudoID{model.PseudoUint(1), model.PseudoText("not-a-uuid")},
//	    WithPayload:    model.PayloadAll(),
//	    WithVector:     model.VectorsAll(),
//	}, pointstore.ResolverOf(reg.Acquire), nil, nil)
//
// # Identifier Handling
//
// Values that are neither non-negative integers nor UUID strings are dropped
// silently; a batch with some malformed keys still succeeds. Values that are
// valid but not stored are simply absent from the result.
//
// The result is keyed by the canonical form of each value: integers stay
// integers and UUIDs are rendered lower-case and hyphenated.
//
// # Errors
//
// LookupIDs fails with a *CollectionNotFoundError (matching ErrNotFound) when
// the resolver finds no collection, and with a *RetrievalError wrapping the
// storage error when retrieval fails. There is no partial result.
package pointstore
