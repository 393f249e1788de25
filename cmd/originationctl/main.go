// Command originationctl runs the origination decision rules offline against
// the seeded customer book. Nothing it does touches a store or a broker.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
