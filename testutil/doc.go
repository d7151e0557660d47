// Package testutil provides testing utilities for pointstore.
//
// This package is intended for use in tests only. It generates deterministic
// identifiers, vectors and point fixtures from a seed.
//
//	rng := testutil.NewRNG(42)
//	fx := testutil.NewFixture(rng, 1000, 1000, 4)
//	coll.Upsert(ctx, fx.Points)
package testutil
