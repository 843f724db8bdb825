package tmdriver

import (
	"log/slog"

	"github.com/gordian-engine/tmcore/tm/tmconsensus"
	"github.com/gordian-engine/tmcore/tm/tmproposal"
	"github.com/gordian-engine/tmcore/tm/tmproposer"
	"github.com/gordian-engine/tmcore/tm/tmround"
	"github.com/gordian-engine/tmcore/tm/tmvotekeeper"
)

// Driver orchestrates the vote keeper, the proposal keeper, and the
// round state machine for a single height, per spec §3 and §4.6. It is
// owned exclusively by its caller; like every other core entry point, it
// is not safe for concurrent use (spec §5).
//
// A Driver is scoped to one height and one ValidatorSet. Once it emits
// OutputDecide, the host persists the decision and constructs a fresh
// Driver for the next height.
type Driver struct {
	height   tmconsensus.Height
	vs       tmconsensus.ValidatorSet
	address  tmconsensus.Address
	selector tmproposer.Selector
	timeouts TimeoutParams
	log      *slog.Logger

	round        tmconsensus.Round
	state        tmconsensus.RoundState
	lastProposer tmconsensus.Address

	votes     *tmvotekeeper.Keeper
	proposals *tmproposal.Keeper

	// validity records the validity this validator stamped on the first
	// proposal seen for each round, since tmproposal.Keeper itself only
	// tracks the proposal and its equivocation evidence (spec §3).
	validity map[tmconsensus.Round]tmconsensus.Validity

	decided bool
}

// New returns a Driver for height, ready to receive an InputNewRound.
func New(
	height tmconsensus.Height,
	vs tmconsensus.ValidatorSet,
	address tmconsensus.Address,
	selector tmproposer.Selector,
	timeouts TimeoutParams,
	log *slog.Logger,
) *Driver {
	if log == nil {
		log = slog.Default()
	}
	return &Driver{
		height:   height,
		vs:       vs,
		address:  address,
		selector: selector,
		timeouts: timeouts,
		log:      log,

		round: tmconsensus.RoundNil,

		votes:     tmvotekeeper.NewKeeper(height, vs),
		proposals: tmproposal.NewKeeper(height),
		validity:  make(map[tmconsensus.Round]tmconsensus.Validity),
	}
}

// Height returns the height this Driver is deciding.
func (d *Driver) Height() tmconsensus.Height { return d.height }

// Round returns the driver's current round (I3: non-decreasing).
func (d *Driver) Round() tmconsensus.Round { return d.round }

// State returns the current RoundState, for inspection by the host or
// tests. Callers must not mutate the returned value's pointer fields.
func (d *Driver) State() tmconsensus.RoundState { return d.state }

// Decided reports whether this Driver has already emitted OutputDecide.
func (d *Driver) Decided() bool { return d.decided }

// VoteEvidence returns the equivocating vote pairs detected so far.
func (d *Driver) VoteEvidence() []tmvotekeeper.Equivocation { return d.votes.Evidence() }

// ProposalEvidence returns the equivocating proposal pairs detected so far.
func (d *Driver) ProposalEvidence() []tmproposal.Equivocation { return d.proposals.Evidence() }

// roundWork is one tmround.Input queued to be applied, paired with the
// round it is considered to address (tmround.Info.InputRound).
type roundWork struct {
	input tmround.Input
	round tmconsensus.Round
}

// Process implements the driver algorithm of spec §4.6: admissibility,
// side-store update, input lifting, apply, and round change, returning
// the ordered list of DriverOutputs the host must act on.
func (d *Driver) Process(in Input) []Output {
	if d.decided {
		// A decided height is done; the host should have already moved
		// to a fresh Driver for the next height.
		return nil
	}

	queue, ok := d.admitAndLift(in)
	if !ok {
		d.log.Info("tmdriver: dropped inadmissible input", "input", in)
		return nil
	}

	var outs []Output

	for len(queue) > 0 {
		w := queue[0]
		queue = queue[1:]

		info := tmround.Info{
			Height:     d.height,
			InputRound: w.round,
			Address:    d.address,
			Proposer:   d.lastProposer,
		}

		tr := tmround.Apply(d.state, info, w.input)
		d.state = tr.Next

		if tr.Output == nil {
			continue
		}

		d.log.Debug("tmdriver: round output", "output", tr.Output)

		dOuts, follow := d.translateOutput(tr.Output)
		outs = append(outs, dOuts...)
		if follow != nil {
			queue = append(queue, *follow)
		}
		if _, isDecision := tr.Output.(tmround.OutputDecision); isDecision {
			d.decided = true
		}
	}

	return outs
}

// admitAndLift performs admissibility (step 1), the side-store update
// (step 2), and input lifting (step 3) of the driver algorithm. It
// returns ok=false for an inadmissible input, matching spec §7's
// "silently discard, no output" rule.
func (d *Driver) admitAndLift(in Input) ([]roundWork, bool) {
	switch v := in.(type) {
	case InputNewRound:
		if v.Height != d.height {
			return nil, false
		}
		return []roundWork{d.beginRound(v.Round)}, true

	case InputProposeValue:
		if v.Height != d.height || v.Round != d.round {
			return nil, false
		}
		return []roundWork{{tmround.InputProposeValue{Value: v.Value}, d.round}}, true

	case InputProposal:
		if v.Proposal.Height != d.height {
			return nil, false
		}
		if _, ok := d.vs.ByAddress(v.Proposal.ValidatorAddr); !ok {
			return nil, false
		}
		before := len(d.proposals.Evidence())
		d.recordProposal(v.Proposal, v.Validity)
		if len(d.proposals.Evidence()) > before {
			d.log.Warn("tmdriver: proposal equivocation detected", "validator", v.Proposal.ValidatorAddr)
		}
		return d.liftProposal(v.Proposal, v.Validity), true

	case InputVote:
		if v.Vote.Height != d.height {
			return nil, false
		}
		val, ok := d.vs.ByAddress(v.Vote.ValidatorAddr)
		if !ok {
			return nil, false
		}
		before := len(d.votes.Evidence())
		events, err := d.votes.ApplyVote(v.Vote, val.Power)
		if err != nil {
			return nil, false
		}
		if len(d.votes.Evidence()) > before {
			d.log.Warn("tmdriver: vote equivocation detected", "validator", v.Vote.ValidatorAddr)
		}
		var queue []roundWork
		for _, ev := range events {
			queue = append(queue, d.liftThresholdEvent(ev)...)
		}
		return queue, true

	case InputTimeoutElapsed:
		return []roundWork{{timeoutInput(v.Step), v.Round}}, true

	case InputSkipRound:
		return []roundWork{{tmround.InputSkipRound{Round: v.Round}, v.Round}}, true

	default:
		return nil, false
	}
}

func timeoutInput(step tmconsensus.Step) tmround.Input {
	switch step {
	case tmconsensus.StepPropose:
		return tmround.InputTimeoutPropose{}
	case tmconsensus.StepPrevote:
		return tmround.InputTimeoutPrevote{}
	case tmconsensus.StepPrecommit:
		return tmround.InputTimeoutPrecommit{}
	default:
		// No matching round input; the round machine will no-op it.
		return nil
	}
}

// beginRound starts round r: it selects the proposer, resets RoundState
// to Unstarted while preserving locked/valid/decision, and returns the
// queued InputNewRound that drives the state machine's own Unstarted
// handling. Used both for the externally-delivered height-start
// InputNewRound and internally after every round_skip.
func (d *Driver) beginRound(r tmconsensus.Round) roundWork {
	d.round = r
	d.lastProposer = d.selector.SelectProposer(d.height, r, d.vs)
	d.state = tmconsensus.NewRoundState(r, d.state.Locked, d.state.Valid, d.state.Decision)
	return roundWork{tmround.InputNewRound{Round: r}, r}
}

// recordProposal stores p in the proposal keeper and remembers the
// validity stamped on the first proposal recorded for its round.
func (d *Driver) recordProposal(p tmconsensus.Proposal, validity tmconsensus.Validity) {
	if _, exists := d.proposals.Get(p.Round); !exists {
		d.validity[p.Round] = validity
	}
	d.proposals.ApplyProposal(p)
}

// liftProposal implements the "on a new Proposal p" lifting rule of
// spec §4.6.
func (d *Driver) liftProposal(p tmconsensus.Proposal, validity tmconsensus.Validity) []roundWork {
	if d.hasEmitted(p.Round, tmvotekeeper.ThresholdPrecommitValue, p.Value.ID) {
		return []roundWork{{tmround.InputProposalAndPrecommitValue{Proposal: p}, p.Round}}
	}

	if p.Round == d.round && d.hasEmitted(d.round, tmvotekeeper.ThresholdPolkaValue, p.Value.ID) {
		return []roundWork{{tmround.InputProposalAndPolkaCurrent{Proposal: p}, d.round}}
	}

	if p.PolRound.IsDefined() && d.hasEmitted(p.PolRound, tmvotekeeper.ThresholdPolkaValue, p.Value.ID) {
		if validity == tmconsensus.ValidityInvalid {
			return []roundWork{{tmround.InputInvalidProposalAndPolkaPrevious{Proposal: p}, p.Round}}
		}
		return []roundWork{{tmround.InputProposalAndPolkaPrevious{Proposal: p}, p.Round}}
	}

	if validity == tmconsensus.ValidityInvalid {
		return []roundWork{{tmround.InputInvalidProposal{}, p.Round}}
	}
	return []roundWork{{tmround.InputProposal{Proposal: p}, p.Round}}
}

// liftThresholdEvent implements the "on a new threshold event, lookup a
// matching stored proposal" lifting rule of spec §4.6.
func (d *Driver) liftThresholdEvent(ev tmvotekeeper.ThresholdEvent) []roundWork {
	switch ev.Kind {
	case tmvotekeeper.ThresholdPrecommitValue:
		if p, ok := d.proposals.Get(ev.Round); ok && p.Value.ID == ev.Value {
			return []roundWork{{tmround.InputProposalAndPrecommitValue{Proposal: p}, ev.Round}}
		}

	case tmvotekeeper.ThresholdPolkaValue:
		if p, ok := d.proposals.Get(ev.Round); ok && ev.Round == d.round && p.Value.ID == ev.Value {
			return []roundWork{{tmround.InputProposalAndPolkaCurrent{Proposal: p}, ev.Round}}
		}
		if p, ok := d.proposals.Get(d.round); ok && p.PolRound == ev.Round && p.Value.ID == ev.Value {
			if d.validity[p.Round] == tmconsensus.ValidityInvalid {
				return []roundWork{{tmround.InputInvalidProposalAndPolkaPrevious{Proposal: p}, d.round}}
			}
			return []roundWork{{tmround.InputProposalAndPolkaPrevious{Proposal: p}, d.round}}
		}

	case tmvotekeeper.ThresholdPolkaNil:
		return []roundWork{{tmround.InputPolkaNil{}, ev.Round}}

	case tmvotekeeper.ThresholdPolkaAny:
		return []roundWork{{tmround.InputPolkaAny{}, ev.Round}}

	case tmvotekeeper.ThresholdPrecommitAny:
		return []roundWork{{tmround.InputPrecommitAny{}, ev.Round}}

	case tmvotekeeper.ThresholdSkipRound:
		return []roundWork{{tmround.InputSkipRound{Round: ev.Round}, ev.Round}}
	}
	return nil
}

func (d *Driver) hasEmitted(r tmconsensus.Round, kind tmvotekeeper.ThresholdKind, id tmconsensus.ValueID) bool {
	pr := d.votes.PerRound(r)
	if pr == nil {
		return false
	}
	return pr.HasEmitted(tmvotekeeper.ThresholdEvent{Kind: kind, Round: r, Value: id})
}

// translateOutput converts a single tmround.Output into driver-level
// outputs, per the table in spec §6. When the round state machine signals
// a round change, translateOutput also performs the round-change
// bookkeeping (step 5 of §4.6) and returns the follow-up roundWork that
// feeds InputNewRound back into the state machine.
func (d *Driver) translateOutput(o tmround.Output) ([]Output, *roundWork) {
	switch v := o.(type) {
	case tmround.OutputNewRound:
		out := OutputNewRound{Height: d.height, Round: v.Round}
		follow := d.beginRound(v.Round)
		return []Output{out}, &follow

	case tmround.OutputProposal:
		p := tmconsensus.Proposal{
			Height:        v.Height,
			Round:         v.Round,
			Value:         v.Value,
			PolRound:      v.PolRound,
			ValidatorAddr: d.address,
		}
		return []Output{OutputPropose{Proposal: p}}, nil

	case tmround.OutputVote:
		vote := tmconsensus.Vote{
			Height:        v.Height,
			Round:         v.Round,
			Type:          v.Type,
			Value:         v.Value,
			ValidatorAddr: v.ValidatorAddr,
		}
		return []Output{OutputVote{Vote: vote}}, nil

	case tmround.OutputScheduleTimeout:
		return []Output{OutputScheduleTimeout{
			Round: v.Round, Step: v.Step, Duration: d.timeouts.For(v.Step),
		}}, nil

	case tmround.OutputGetValueAndScheduleTimeout:
		return []Output{
			OutputGetValue{Height: d.height, Round: v.Round, Timeout: d.timeouts.For(v.Step)},
			OutputScheduleTimeout{Round: v.Round, Step: v.Step, Duration: d.timeouts.For(v.Step)},
		}, nil

	case tmround.OutputDecision:
		return []Output{OutputDecide{Round: v.Round, Value: v.Value}}, nil

	default:
		return nil, nil
	}
}
