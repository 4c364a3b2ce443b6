package domain

import (
	"fmt"

	"github.com/gofrs/uuid/v5"
)

// State is a step of the dispatch pipeline.
type State int

const (
	StateReceived State = iota
	StatePrefixMatched
	StateTokenized
	StateCommandResolved
	StatePermissionChecked
	StateCooldownChecked
	StateArgumentsBound
	StateInvoking
	StateCompleted
	StateFailed
)

var stateNames = [...]string{
	"received",
	"prefix_matched",
	"tokenized",
	"command_resolved",
	"permission_checked",
	"cooldown_checked",
	"arguments_bound",
	"invoking",
	"completed",
	"failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}

	return stateNames[s]
}

// Result is the last state a dispatch reached. Err is set when the pipeline stopped early or the handler failed.
// A pooled command that is still running reports StateInvoking.
type Result struct {
	State        State
	Command      string
	InvocationID uuid.UUID
	Err          error
}

// Matched reports whether the message resolved to a command.
func (r Result) Matched() bool {
	return r.Command != ""
}
