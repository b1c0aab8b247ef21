// Package shellwords splits an input line into tokens with shell-style
// quoting: single quotes are literal, double quotes allow \" and \\ escapes,
// a bare backslash escapes the next rune.
package shellwords

import (
	"errors"
	"strings"
	"unicode"
)

// ErrUnclosedQuote reports a line that ends inside a quoted token.
var ErrUnclosedQuote = errors.New("unclosed quote")

type splitState int

const (
	stateOutside splitState = iota
	stateSingleQuote
	stateDoubleQuote
)

// Split tokenizes line. An empty or all-whitespace line yields no tokens.
func Split(line string) ([]string, error) {
	var (
		tokens  []string
		buf     strings.Builder
		started bool
		escaped bool
		state   = stateOutside
	)

	flush := func() {
		if started {
			tokens = append(tokens, buf.String())
			buf.Reset()
			started = false
		}
	}

	for _, ch := range line {
		if escaped {
			buf.WriteRune(ch)
			started = true
			escaped = false
			continue
		}

		switch state {
		case stateOutside:
			switch {
			case unicode.IsSpace(ch):
				flush()
			case ch == '\'':
				state = stateSingleQuote
				started = true
			case ch == '"':
				state = stateDoubleQuote
				started = true
			case ch == '\\':
				escaped = true
			default:
				buf.WriteRune(ch)
				started = true
			}
		case stateSingleQuote:
			if ch == '\'' {
				state = stateOutside
			} else {
				buf.WriteRune(ch)
			}
		case stateDoubleQuote:
			switch ch {
			case '"':
				state = stateOutside
			case '\\':
				escaped = true
			default:
				buf.WriteRune(ch)
			}
		}
	}

	if state != stateOutside || escaped {
		return nil, ErrUnclosedQuote
	}
	flush()
	return tokens, nil
}
