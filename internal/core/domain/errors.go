package domain

import (
	"fmt"
	"time"
)

type DenialReason int

const (
	NotDeveloper DenialReason = iota + 1
	GuildOnly
	NotSafeForChannel
	MissingCallerPermission
	MissingBotPermission
)

func (r DenialReason) String() string {
	switch r {
	case NotDeveloper:
		return "not a developer"
	case GuildOnly:
		return "guild only"
	case NotSafeForChannel:
		return "not safe for channel"
	case MissingCallerPermission:
		return "missing caller permission"
	case MissingBotPermission:
		return "missing bot permission"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// PermissionDenied is returned by the permission gate. Missing is set for the two permission reasons.
type PermissionDenied struct {
	Reason  DenialReason
	Missing Permissions
}

func (e *PermissionDenied) Error() string {
	if e.Missing != 0 {
		return fmt.Sprintf("permission denied: %s (%#x)", e.Reason, int64(e.Missing))
	}

	return "permission denied: " + e.Reason.String()
}

type CooldownActive struct {
	Key       CooldownKey
	Remaining time.Duration
}

func (e *CooldownActive) Error() string {
	return fmt.Sprintf("cooldown active for %s: %s remaining", e.Key, e.Remaining)
}

func (e *CooldownActive) RemainingMillis() int64 {
	return e.Remaining.Milliseconds()
}

type MissingArgument struct {
	Param ParameterSpec
}

func (e *MissingArgument) Error() string {
	return fmt.Sprintf("missing argument %s (%s)", e.Param.Name, e.Param.Type)
}

func (e *MissingArgument) Unwrap() error {
	return ErrMissingArgument
}

type InvalidFormat struct {
	Param ParameterSpec
	Token string
	Cause error
}

func (e *InvalidFormat) Error() string {
	return fmt.Sprintf("invalid %s for argument %s: %q", e.Param.Type, e.Param.Name, e.Token)
}

func (e *InvalidFormat) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalidFormat}
	}

	return []error{ErrInvalidFormat, e.Cause}
}

// ExecutionFailure wraps an error or panic raised by a handler, or a failure to schedule it.
type ExecutionFailure struct {
	Command string
	Cause   error
}

func (e *ExecutionFailure) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Cause)
}

func (e *ExecutionFailure) Unwrap() error {
	return e.Cause
}
