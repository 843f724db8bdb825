package tmround

import "github.com/gordian-engine/tmcore/tm/tmconsensus"

// Apply is the pure function at the heart of the core: it takes the
// current RoundState, the Info describing which round and validator the
// input addresses, and one Input, and returns a Transition. It performs
// no I/O and holds no state of its own; calling it twice with the same
// arguments always returns the same Transition.
//
// Inputs that don't match any rule in spec §4.5 -- wrong round, wrong
// step, or simply an unlisted combination -- are invalid transitions:
// Apply returns the state unchanged and no Output (see Transition's doc
// comment).
func Apply(state tmconsensus.RoundState, info Info, input Input) Transition {
	if state.Step == tmconsensus.StepCommit {
		// Commit is terminal; every input is invalid from here (I1, I2).
		return noop(state)
	}

	switch in := input.(type) {
	case InputNewRound:
		return applyNewRound(state, info, in)
	case InputProposeValue:
		return applyProposeValue(state, info, in)
	case InputProposal:
		return applyFirstProposal(state, info, in.Proposal)
	case InputProposalAndPolkaPrevious:
		return applyProposalAndPolkaPrevious(state, info, in.Proposal)
	case InputInvalidProposalAndPolkaPrevious:
		return applyProposeTimeoutOrInvalid(state, info)
	case InputInvalidProposal:
		return applyProposeTimeoutOrInvalid(state, info)
	case InputTimeoutPropose:
		return applyProposeTimeoutOrInvalid(state, info)
	case InputPolkaAny:
		return applyPolkaAny(state, info)
	case InputPolkaNil:
		return applyPolkaNil(state, info)
	case InputProposalAndPolkaCurrent:
		return applyProposalAndPolkaCurrent(state, info, in.Proposal)
	case InputTimeoutPrevote:
		return applyTimeoutPrevote(state, info)
	case InputPrecommitAny:
		return applyPrecommitAny(state, info)
	case InputTimeoutPrecommit:
		return applyTimeoutPrecommit(state, info)
	case InputSkipRound:
		return applySkipRound(state, in)
	case InputProposalAndPrecommitValue:
		return decide(state, info, in.Proposal.Value)
	default:
		return noop(state)
	}
}

func noop(state tmconsensus.RoundState) Transition {
	return Transition{Next: state}
}

func thisRound(state tmconsensus.RoundState, info Info) bool {
	return state.Round == info.InputRound
}

func applyNewRound(state tmconsensus.RoundState, info Info, in InputNewRound) Transition {
	if state.Step != tmconsensus.StepUnstarted {
		return noop(state)
	}

	next := state
	next.Round = in.Round
	next.Step = tmconsensus.StepPropose

	if info.Address != info.Proposer {
		return Transition{
			Next:   next,
			Output: OutputScheduleTimeout{Round: in.Round, Step: tmconsensus.StepPropose},
		}
	}

	if state.Valid != nil {
		return Transition{
			Next: next,
			Output: OutputProposal{
				Height:   info.Height,
				Round:    in.Round,
				Value:    state.Valid.Value,
				PolRound: state.Valid.Round,
			},
		}
	}

	return Transition{
		Next:   next,
		Output: OutputGetValueAndScheduleTimeout{Round: in.Round, Step: tmconsensus.StepPropose},
	}
}

func applyProposeValue(state tmconsensus.RoundState, info Info, in InputProposeValue) Transition {
	if state.Step != tmconsensus.StepPropose || !thisRound(state, info) || info.Address != info.Proposer {
		return noop(state)
	}
	return Transition{
		Next: state,
		Output: OutputProposal{
			Height:   info.Height,
			Round:    state.Round,
			Value:    in.Value,
			PolRound: tmconsensus.RoundNil,
		},
	}
}

func applyFirstProposal(state tmconsensus.RoundState, info Info, p tmconsensus.Proposal) Transition {
	if state.Step != tmconsensus.StepPropose || !thisRound(state, info) || !p.PolRound.IsNil() {
		return noop(state)
	}

	value := tmconsensus.VoteForNil[tmconsensus.ValueID]()
	if state.Locked == nil || state.Locked.Value.Equal(p.Value) {
		value = tmconsensus.VoteForValue(p.Value.ID)
	}

	next := state
	next.Step = tmconsensus.StepPrevote
	return Transition{
		Next:   next,
		Output: voteOutput(info, tmconsensus.VoteTypePrevote, state.Round, value),
	}
}

func applyProposalAndPolkaPrevious(state tmconsensus.RoundState, info Info, p tmconsensus.Proposal) Transition {
	if state.Step != tmconsensus.StepPropose || !thisRound(state, info) {
		return noop(state)
	}
	if p.PolRound.IsNil() || !(p.PolRound < state.Round) {
		return noop(state)
	}

	value := tmconsensus.VoteForNil[tmconsensus.ValueID]()
	if state.Locked == nil || (state.Locked.Round <= p.PolRound && state.Locked.Value.Equal(p.Value)) {
		value = tmconsensus.VoteForValue(p.Value.ID)
	}

	next := state
	next.Step = tmconsensus.StepPrevote
	return Transition{
		Next:   next,
		Output: voteOutput(info, tmconsensus.VoteTypePrevote, state.Round, value),
	}
}

// applyProposeTimeoutOrInvalid handles the three Propose-step inputs that
// all do the same thing: InvalidProposalAndPolkaPrevious, InvalidProposal,
// and TimeoutPropose all prevote Nil.
func applyProposeTimeoutOrInvalid(state tmconsensus.RoundState, info Info) Transition {
	if state.Step != tmconsensus.StepPropose || !thisRound(state, info) {
		return noop(state)
	}
	next := state
	next.Step = tmconsensus.StepPrevote
	return Transition{
		Next:   next,
		Output: voteOutput(info, tmconsensus.VoteTypePrevote, state.Round, tmconsensus.VoteForNil[tmconsensus.ValueID]()),
	}
}

func applyPolkaAny(state tmconsensus.RoundState, info Info) Transition {
	if state.Step != tmconsensus.StepPrevote || !thisRound(state, info) {
		return noop(state)
	}
	return Transition{
		Next:   state,
		Output: OutputScheduleTimeout{Round: state.Round, Step: tmconsensus.StepPrevote},
	}
}

func applyPolkaNil(state tmconsensus.RoundState, info Info) Transition {
	if state.Step != tmconsensus.StepPrevote || !thisRound(state, info) {
		return noop(state)
	}
	next := state
	next.Step = tmconsensus.StepPrecommit
	return Transition{
		Next:   next,
		Output: voteOutput(info, tmconsensus.VoteTypePrecommit, state.Round, tmconsensus.VoteForNil[tmconsensus.ValueID]()),
	}
}

func applyProposalAndPolkaCurrent(state tmconsensus.RoundState, info Info, p tmconsensus.Proposal) Transition {
	if !thisRound(state, info) {
		return noop(state)
	}
	if state.Step != tmconsensus.StepPrevote && state.Step != tmconsensus.StepPrecommit {
		return noop(state)
	}

	next := state
	rv := &tmconsensus.RoundValue{Round: state.Round, Value: p.Value}
	next.Valid = rv

	if state.Step == tmconsensus.StepPrevote {
		next.Locked = rv
		next.Step = tmconsensus.StepPrecommit
		return Transition{
			Next:   next,
			Output: voteOutput(info, tmconsensus.VoteTypePrecommit, state.Round, tmconsensus.VoteForValue(p.Value.ID)),
		}
	}

	// Precommit step: only Valid moves; no output.
	return Transition{Next: next}
}

func applyTimeoutPrevote(state tmconsensus.RoundState, info Info) Transition {
	if state.Step != tmconsensus.StepPrevote || !thisRound(state, info) {
		return noop(state)
	}
	next := state
	next.Step = tmconsensus.StepPrecommit
	return Transition{
		Next:   next,
		Output: voteOutput(info, tmconsensus.VoteTypePrecommit, state.Round, tmconsensus.VoteForNil[tmconsensus.ValueID]()),
	}
}

func applyPrecommitAny(state tmconsensus.RoundState, info Info) Transition {
	if !thisRound(state, info) {
		return noop(state)
	}
	return Transition{
		Next:   state,
		Output: OutputScheduleTimeout{Round: state.Round, Step: tmconsensus.StepPrecommit},
	}
}

func applyTimeoutPrecommit(state tmconsensus.RoundState, info Info) Transition {
	if !thisRound(state, info) {
		return noop(state)
	}
	return roundSkip(state, info.InputRound.Increment())
}

func applySkipRound(state tmconsensus.RoundState, in InputSkipRound) Transition {
	if !(in.Round > state.Round) {
		return noop(state)
	}
	return roundSkip(state, in.Round)
}

// roundSkip advances to newRound, resetting Step to Unstarted while
// preserving Locked, Valid, and Decision, and emits OutputNewRound.
func roundSkip(state tmconsensus.RoundState, newRound tmconsensus.Round) Transition {
	next := tmconsensus.NewRoundState(newRound, state.Locked, state.Valid, state.Decision)
	return Transition{
		Next:   next,
		Output: OutputNewRound{Round: newRound},
	}
}

// decide moves the round to Commit at info.InputRound, recording value as
// the decision. Per I1, Decision is set exactly once; callers (the
// driver) must not invoke Apply again for a height once this has fired.
func decide(state tmconsensus.RoundState, info Info, value tmconsensus.Value) Transition {
	next := state
	next.Round = info.InputRound
	next.Step = tmconsensus.StepCommit
	v := value
	next.Decision = &v
	return Transition{
		Next:   next,
		Output: OutputDecision{Round: info.InputRound, Value: value},
	}
}

func voteOutput(
	info Info, t tmconsensus.VoteType, round tmconsensus.Round, value tmconsensus.NilOrVal[tmconsensus.ValueID],
) Output {
	return OutputVote{
		Type:          t,
		Height:        info.Height,
		Round:         round,
		Value:         value,
		ValidatorAddr: info.Address,
	}
}
