// Command pointlookup loads a collection from files and resolves ids against it.
//
// Usage:
//
//	pointlookup lookup --config collection.yaml --points points.json -- 1 2 8f1c9b8e-4d3a-4f0e-9a5e-2c7b1d6e3f40
//	pointlookup migrate-config --in old.yaml --out new.yaml
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
