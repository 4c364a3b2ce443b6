package domain

import "errors"

var (
	ErrNoPrefixMatch      = errors.New("no prefix match")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrIgnoredAuthor      = errors.New("author is ignored")
	ErrDuplicateCommand   = errors.New("duplicate command")
	ErrInvalidDefinition  = errors.New("invalid command definition")
	ErrUnknownType        = errors.New("no parser for type")
	ErrMissingArgument    = errors.New("missing argument")
	ErrInvalidFormat      = errors.New("invalid format")
	ErrPoolSaturated      = errors.New("execution pool saturated")
	ErrExecutorClosed     = errors.New("executor closed")
	ErrSendingReplyFailed = errors.New("failed to send reply")
)

const DefaultDelimiter = ' '
