package tmconsensus

import "errors"

// ErrHeightMismatch names the condition of an Input's height not matching
// the driver's current height. The driver itself never returns it: per
// §7 it drops such inputs silently. The sentinel is exposed so hosts can
// log or assert on the condition themselves.
var ErrHeightMismatch = errors.New("tmconsensus: height mismatch")

// ErrUnknownValidator is returned when a vote or proposal names a
// validator address absent from the current ValidatorSet.
var ErrUnknownValidator = errors.New("tmconsensus: unknown validator")
