// Command carboncue is a small CLI over the carboncue library: look up grid
// carbon intensity for a cloud region, compute SCI scores, and inspect the
// supported region/provider tables.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
