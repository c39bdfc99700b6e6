package ranges

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse errors. All are user-facing validation failures; Parse never panics.
var (
	// ErrNumberedFromZero is returned when a range endpoint is 0. Range
	// lists are 1-based.
	ErrNumberedFromZero = errors.New("ranges are numbered from one")

	// ErrDescendingRange is returned for N-M with N > M.
	ErrDescendingRange = errors.New("ranges must be ascending")
)

// IndecipherableRangeError is returned when a range group is malformed,
// e.g. "1--", "--3", or "1-2-3".
type IndecipherableRangeError struct {
	Range string
}

func (e *IndecipherableRangeError) Error() string {
	return fmt.Sprintf("indecipherable range %q", e.Range)
}

// UnexpectedSeparatorError is returned when a token appears where a
// separator was expected.
type UnexpectedSeparatorError struct {
	Token string
}

func (e *UnexpectedSeparatorError) Error() string {
	return fmt.Sprintf("expected separator but found %q", e.Token)
}

// UnrecognizedCharacterError is returned by the lexer for any character
// outside digits, '-', ',', space, and tab.
type UnrecognizedCharacterError struct {
	Char rune
}

func (e *UnrecognizedCharacterError) Error() string {
	return fmt.Sprintf("unrecognized character %q", e.Char)
}

type tokenKind int

const (
	tokenNumber tokenKind = iota
	tokenHyphen
	tokenComma
	tokenBlank
)

type token struct {
	kind   tokenKind
	number int
	blank  rune
}

func (t token) String() string {
	switch t.kind {
	case tokenNumber:
		return strconv.Itoa(t.number)
	case tokenHyphen:
		return "-"
	case tokenComma:
		return ","
	default:
		return string(t.blank)
	}
}

// Parse parses a range-list string such as "2-4,7-,-3" into a normalized,
// merged Ranges. Numbers are 1-based in the input and converted to 0-based
// internally. Exactly one comma or blank separates adjacent ranges.
func Parse(s string) (Ranges, error) {
	tokens, err := scan(s)
	if err != nil {
		return Ranges{}, err
	}
	return parseTokens(tokens)
}

// scan lexes the input into number, hyphen, comma, and blank tokens.
func scan(s string) ([]token, error) {
	var tokens []token
	runes := []rune(s)
	for i := 0; i < len(runes); {
		switch ch := runes[i]; {
		case ch == '-':
			tokens = append(tokens, token{kind: tokenHyphen})
			i++
		case ch == ',':
			tokens = append(tokens, token{kind: tokenComma})
			i++
		case ch == ' ' || ch == '\t':
			tokens = append(tokens, token{kind: tokenBlank, blank: ch})
			i++
		case ch >= '0' && ch <= '9':
			start := i
			for i < len(runes) && runes[i] >= '0' && runes[i] <= '9' {
				i++
			}
			digits := string(runes[start:i])
			n, err := strconv.Atoi(digits)
			if err != nil {
				// Digit runs too long for an int are treated as
				// indecipherable rather than panicking.
				return nil, &IndecipherableRangeError{Range: digits}
			}
			tokens = append(tokens, token{kind: tokenNumber, number: n})
		default:
			return nil, &UnrecognizedCharacterError{Char: ch}
		}
	}
	return tokens, nil
}

// parseTokens parses alternating range groups and single separators, then
// normalizes the result.
func parseTokens(tokens []token) (Ranges, error) {
	var crs []cutRange
	i := 0
	for {
		cr, err := parseRange(tokens, &i)
		if err != nil {
			return Ranges{}, err
		}
		crs = append(crs, cr)

		if i >= len(tokens) {
			break
		}
		switch tokens[i].kind {
		case tokenComma, tokenBlank:
			i++
		default:
			// Unreachable with the current token classes: a range group
			// consumes every number/hyphen run. Kept for parser shape.
			return Ranges{}, &UnexpectedSeparatorError{Token: tokens[i].String()}
		}
	}
	return fromRanges(crs), nil
}

// parseRange consumes one range group (a run of number/hyphen tokens) and
// classifies it as N, N-M, -M, or N-.
func parseRange(tokens []token, i *int) (cutRange, error) {
	start := *i
	for *i < len(tokens) && (tokens[*i].kind == tokenNumber || tokens[*i].kind == tokenHyphen) {
		*i++
	}
	group := tokens[start:*i]

	switch len(group) {
	case 1:
		// N
		if group[0].kind == tokenNumber {
			if group[0].number == 0 {
				return cutRange{}, ErrNumberedFromZero
			}
			return unit(group[0].number - 1), nil
		}
	case 2:
		// -M
		if group[0].kind == tokenHyphen && group[1].kind == tokenNumber {
			if group[1].number == 0 {
				return cutRange{}, ErrNumberedFromZero
			}
			return fromStart(group[1].number - 1), nil
		}
		// N-
		if group[0].kind == tokenNumber && group[1].kind == tokenHyphen {
			if group[0].number == 0 {
				return cutRange{}, ErrNumberedFromZero
			}
			return toEndCut(group[0].number - 1), nil
		}
	case 3:
		// N-M
		if group[0].kind == tokenNumber && group[1].kind == tokenHyphen && group[2].kind == tokenNumber {
			lo, hi := group[0].number, group[2].number
			if lo == 0 || hi == 0 {
				return cutRange{}, ErrNumberedFromZero
			}
			if lo > hi {
				return cutRange{}, ErrDescendingRange
			}
			return closedCut(lo-1, hi-1), nil
		}
	}
	return cutRange{}, &IndecipherableRangeError{Range: joinTokens(group)}
}

func joinTokens(tokens []token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.String())
	}
	return b.String()
}
