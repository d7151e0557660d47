// Package model defines the core types shared by the lookup core and the
// storage layer.
//
// # Identity Types
//
//   - PointID: canonical, strictly-typed point identifier (uint64 or UUID)
//   - PseudoID: externally supplied, loosely-typed candidate identifier
//   - ShardID: partition index within a collection
//
// A PseudoID converts to a PointID only if it is a non-negative integer or a
// valid UUID string. The inverse conversion is total:
//
//	pid, err := model.PseudoText("936DA01F-9ABD-4D9D-80C7-02AF85C822A8").PointID()
//	key := model.PseudoFromPointID(pid) // PseudoText("936da01f-9abd-4d9d-80c7-02af85c822a8")
//
// # Data Types
//
//   - Record: retrieved point with optional payload and vectors
//   - PointStruct: point to upsert
//   - PointRequest: batched retrieval request
//   - WithPayload / WithVector: inclusion selectors
//   - ReadConsistency: replica agreement directive
package model
