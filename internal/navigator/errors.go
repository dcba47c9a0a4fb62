package navigator

import (
	"errors"
	"fmt"
)

// Kind classifies why a navigation run failed.
type Kind string

const (
	// KindMalformedInput covers empty documents, blank questions, and
	// negative depth limits. Nothing was asked of the oracle.
	KindMalformedInput Kind = "malformed_input"
	// KindOracleUnavailable covers oracle calls that errored or timed out
	// after retries were exhausted.
	KindOracleUnavailable Kind = "oracle_unavailable"
	// KindContractViolation covers oracle replies that break the routing
	// contract: ids that were never offered, or an empty selection without
	// declaring that nothing was relevant.
	KindContractViolation Kind = "contract_violation"
)

// NavError is the single failure a navigation run surfaces. It carries the
// scratchpad accumulated before the failure so callers can see how far the
// run got.
type NavError struct {
	Kind       Kind
	Depth      int // Depth being routed when the run failed; -1 before routing started.
	Scratchpad []ScratchpadEntry
	Err        error
}

func (e *NavError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("navigation failed (%s) at depth %d", e.Kind, e.Depth)
	}
	return fmt.Sprintf("navigation failed (%s) at depth %d: %v", e.Kind, e.Depth, e.Err)
}

func (e *NavError) Unwrap() error { return e.Err }

// AsNavError unwraps err to the NavError inside it, if any.
func AsNavError(err error) (*NavError, bool) {
	var ne *NavError
	if errors.As(err, &ne) {
		return ne, true
	}
	return nil, false
}
