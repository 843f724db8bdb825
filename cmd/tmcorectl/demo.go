package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gordian-engine/tmcore/tm/tmconsensus"
	"github.com/gordian-engine/tmcore/tm/tmdriver"
	"github.com/gordian-engine/tmcore/tm/tmproposer"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the happy-path scenario across a simulated 4-validator network",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHappyPathDemo(cmd)
		},
	}
}

// runHappyPathDemo replays scenario 1 (happy path, proposer) end to end:
// four validators, round 0, proposer chosen by tmproposer.RoundRobin
// (the second validator at height 1), a single round to decision.
func runHappyPathDemo(cmd *cobra.Command) error {
	timeouts := tmdriver.TimeoutParams{
		Propose:   2 * time.Second,
		Prevote:   2 * time.Second,
		Precommit: 2 * time.Second,
	}
	nw := newNetwork(4, tmconsensus.Height(1), timeouts)

	value := tmconsensus.Value{ID: "X"}

	for i, n := range nw.nodes {
		outs := n.driver.Process(tmdriver.InputNewRound{Height: 1, Round: 0})
		fmt.Fprintf(cmd.OutOrStdout(), "%s: NewRound(1,0) -> %d outputs\n", nw.fixture.NameOf(n.addr), len(outs))
		nw.broadcast(i, outs)
	}

	proposerAddr := (tmproposer.RoundRobin{}).SelectProposer(1, 0, nw.fixture.ValidatorSet)
	proposerIdx := nw.fixture.ValidatorSet.IndexOf(proposerAddr)

	outs := nw.nodes[proposerIdx].driver.Process(tmdriver.InputProposeValue{Height: 1, Round: 0, Value: value})
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ProposeValue(X) -> %d outputs\n", nw.fixture.NameOf(nw.nodes[proposerIdx].addr), len(outs))
	nw.broadcast(proposerIdx, outs)

	for _, n := range nw.nodes {
		if n.driver.Decided() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: decided at round %d\n", nw.fixture.NameOf(n.addr), n.driver.Round())
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: NOT decided (step=%s)\n", nw.fixture.NameOf(n.addr), n.driver.State().Step)
		}
	}

	return nil
}
