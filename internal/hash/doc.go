// Package hash provides CRC32-Castagnoli hashing for routing points to shards.
//
// Go's crc32 package uses hardware instructions (SSE4.2, ARM CRC) when
// available, so routing costs a few nanoseconds per id.
package hash
