// Package resource provides admission control for lookups: a bound on
// concurrently running lookups and a token bucket on identifiers per second.
package resource
