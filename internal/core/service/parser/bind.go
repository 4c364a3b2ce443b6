package parser

import (
	"errors"
	"flight/internal/core/domain"
	"strings"
)

// Bind maps tokens onto the parameters of the invoked command, left to right.
//
// An optional parameter keeps its default without consuming a token when its token does not parse, or when the
// remaining tokens are all needed by required parameters after it. A greedy parameter takes the raw rest of the
// arguments from its token on. Tokens left over at the end are ignored.
func (r *Registry) Bind(inv *domain.InvocationContext, tokens []domain.Token) (*domain.Arguments, error) {
	params := inv.Command.Parameters
	args := domain.NewArguments(len(params))
	delim := string(inv.Command.ArgDelimiter())

	next := 0
	for i, param := range params {
		remaining := len(tokens) - next

		if remaining == 0 {
			if !param.Optional {
				return nil, &domain.MissingArgument{Param: param}
			}
			args.Bind(param, param.Default)
			continue
		}

		if param.Optional && remaining <= requiredAfter(params, i) {
			args.Bind(param, param.Default)
			continue
		}

		tok := tokens[next]
		text := tok.Text
		if param.Greedy && tok.Offset < len(inv.RawArgs) {
			text = strings.TrimRight(inv.RawArgs[tok.Offset:], delim)
		}

		value, err := r.Parse(param.Type, inv, text)
		if err != nil {
			if errors.Is(err, domain.ErrUnknownType) {
				return nil, err
			}
			if param.Optional {
				args.Bind(param, param.Default)
				continue
			}

			return nil, &domain.InvalidFormat{Param: param, Token: text, Cause: err}
		}

		args.Bind(param, value)
		if param.Greedy {
			next = len(tokens)
		} else {
			next++
		}
	}

	return args, nil
}

func requiredAfter(params []domain.ParameterSpec, i int) int {
	n := 0
	for _, p := range params[i+1:] {
		if !p.Optional {
			n++
		}
	}

	return n
}
