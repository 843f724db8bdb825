// Command tmcorectl drives the consensus core (tm/tmconsensus,
// tm/tmvotekeeper, tm/tmproposal, tm/tmproposer, tm/tmround,
// tm/tmdriver) end to end through tm/tmhost, either by replaying the
// happy-path scenario (scenario 1 of §8) across a simulated network or
// by serving a read-only HTTP inspector over one validator's driver.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
