package main

import (
	"fmt"
	"log/slog"

	"github.com/gordian-engine/tmcore/gcrypto"
	"github.com/gordian-engine/tmcore/tm/tmconsensus"
	"github.com/gordian-engine/tmcore/tm/tmconsensus/tmconsensustest"
	"github.com/gordian-engine/tmcore/tm/tmdriver"
	"github.com/gordian-engine/tmcore/tm/tmhost"
	"github.com/gordian-engine/tmcore/tm/tmproposer"
	"github.com/gordian-engine/tmcore/tm/tmstore"
	"github.com/gordian-engine/tmcore/tm/tmstore/tmmemstore"
)

func decisionOf(o tmdriver.OutputDecide) tmstore.Decision {
	return tmstore.Decision{Round: o.Round, Value: o.Value}
}

// node pairs a Driver with the Host signing and verifying on its behalf.
type node struct {
	addr   tmconsensus.Address
	driver *tmdriver.Driver
	host   *tmhost.Host
}

// network is a fully in-process simulation of a validator set: every
// node's Driver.Process output is delivered to every other node (and
// itself, for votes and proposals it produced) as an Input, with no
// real transport. This is what cmd/tmcorectl uses to replay the
// end-to-end scenarios.
type network struct {
	fixture tmconsensustest.Fixture
	nodes   []*node
	log     *slog.Logger
}

func newNetwork(n int, height tmconsensus.Height, timeouts tmdriver.TimeoutParams) *network {
	log := slog.Default()
	fx := tmconsensustest.NewFixture(n)

	pubKeys := make(map[tmconsensus.Address]gcrypto.PubKey, n)
	for _, s := range fx.Signers {
		pubKeys[tmconsensus.Address(s.PubKey().Address())] = s.PubKey()
	}

	selector := tmproposer.RoundRobin{}

	nodes := make([]*node, n)
	for i, s := range fx.Signers {
		addr := fx.Addr(i)
		h := tmhost.New(
			fx.ValidatorSet,
			s,
			pubKeys,
			selector,
			tmmemstore.NewActionStore(),
			tmmemstore.NewDecisionStore(),
			log.With("validator", fx.NameOf(addr)),
		)
		d := tmdriver.New(height, fx.ValidatorSet, addr, selector, timeouts, log.With("validator", fx.NameOf(addr)))
		nodes[i] = &node{addr: addr, driver: d, host: h}
	}

	return &network{fixture: fx, nodes: nodes, log: log}
}

// broadcast delivers outs, produced by the node at index from, to every
// node in the network (including from itself), translating each driver
// Output into the Input it causes on the receiving end. Outputs produced
// by a receiving node are queued as that node's own and delivered in
// turn. It returns once no node has any further work queued, i.e. the
// network has quiesced.
func (nw *network) broadcast(from int, outs []tmdriver.Output) {
	type queued struct {
		from int
		out  tmdriver.Output
	}
	var pending []queued
	for _, o := range outs {
		pending = append(pending, queued{from: from, out: o})
	}

	for len(pending) > 0 {
		q := pending[0]
		pending = pending[1:]
		from := q.from

		switch v := q.out.(type) {
		case tmdriver.OutputPropose:
			sp, err := nw.nodes[from].host.SignProposal(v.Proposal)
			if err != nil {
				panic(fmt.Errorf("tmcorectl: signing proposal: %w", err))
			}
			for i, n := range nw.nodes {
				p, ok := n.host.VerifyProposal(sp)
				if !ok {
					continue
				}
				valid := tmconsensus.ValidityValid
				outs := n.driver.Process(tmdriver.InputProposal{Proposal: p, Validity: valid})
				for _, o := range outs {
					pending = append(pending, queued{from: i, out: o})
				}
			}

		case tmdriver.OutputVote:
			sv, err := nw.nodes[from].host.SignVote(v.Vote)
			if err != nil {
				panic(fmt.Errorf("tmcorectl: signing vote: %w", err))
			}
			for i, n := range nw.nodes {
				vote, ok := n.host.VerifyVote(sv)
				if !ok {
					continue
				}
				outs := n.driver.Process(tmdriver.InputVote{Vote: vote})
				for _, o := range outs {
					pending = append(pending, queued{from: i, out: o})
				}
			}

		case tmdriver.OutputDecide:
			if err := nw.nodes[from].host.SaveDecision(nw.nodes[from].driver.Height(), decisionOf(v)); err != nil {
				panic(fmt.Errorf("tmcorectl: saving decision: %w", err))
			}
			nw.log.Info("decided", "validator", nw.fixture.NameOf(nw.nodes[from].addr), "round", v.Round, "value", v.Value.ID)

		case tmdriver.OutputGetValue:
			// The demo supplies the value directly instead of running a
			// mempool; see the scenario drivers in demo.go.

		case tmdriver.OutputScheduleTimeout, tmdriver.OutputNewRound:
			// No real clock in the demo network; scenarios fire timeouts
			// explicitly where the scenario calls for it.
		}
	}
}
