// Package cut implements the line-selection engine: splitting each input
// line into bytes, characters, or fields, selecting a range set, and
// rejoining the selection for output.
package cut

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"rut/pkg/ranges"
)

// ErrInvalidUTF8 is returned by the character and field modes when a line
// is not valid UTF-8. Byte mode never inspects encoding.
var ErrInvalidUTF8 = errors.New("input was not valid UTF-8")

// suppressMode is the no-delimiter policy for field modes.
type suppressMode int

const (
	// suppressNA: not applicable, selection is always applied.
	suppressNA suppressMode = iota
	// suppressOn: lines with no delimiter produce no output row.
	suppressOn
	// suppressOff: lines with no delimiter pass through unselected.
	suppressOff
)

// Bytes selects bytes from input according to r and writes one output line
// per input line, each terminated with lineDelim.
func Bytes(input io.Reader, output io.Writer, lineDelim byte, r ranges.Ranges) error {
	return cutAny(input, output, lineDelim,
		func(line []byte) ([]byte, error) { return line, nil },
		suppressNA,
		func(selected []byte) []byte { return selected },
		r)
}

// Characters selects Unicode scalar values from input according to r.
// Lines that are not valid UTF-8 fail with ErrInvalidUTF8.
func Characters(input io.Reader, output io.Writer, lineDelim byte, r ranges.Ranges) error {
	return cutAny(input, output, lineDelim,
		func(line []byte) ([]rune, error) {
			if !utf8.Valid(line) {
				return nil, ErrInvalidUTF8
			}
			return []rune(string(line)), nil
		},
		suppressNA,
		func(selected []rune) []byte { return []byte(string(selected)) },
		r)
}

// FieldsChar splits each line at every occurrence of the delimiter
// character, selects fields according to r, and rejoins them with
// outputDelim. The suppress flag chooses the no-delimiter policy.
func FieldsChar(input io.Reader, output io.Writer, lineDelim byte, delimiter rune, outputDelim string, suppress bool, r ranges.Ranges) error {
	return cutAny(input, output, lineDelim,
		func(line []byte) ([]string, error) {
			if !utf8.Valid(line) {
				return nil, ErrInvalidUTF8
			}
			return strings.Split(string(line), string(delimiter)), nil
		},
		suppressPolicy(suppress),
		func(selected []string) []byte { return []byte(strings.Join(selected, outputDelim)) },
		r)
}

// FieldsRegex splits each line on every non-overlapping match of the
// delimiter pattern, selects fields according to r, and rejoins them with
// outputDelim.
func FieldsRegex(input io.Reader, output io.Writer, lineDelim byte, delimiter *regexp.Regexp, outputDelim string, suppress bool, r ranges.Ranges) error {
	return cutAny(input, output, lineDelim,
		func(line []byte) ([]string, error) {
			if !utf8.Valid(line) {
				return nil, ErrInvalidUTF8
			}
			return delimiter.Split(string(line), -1), nil
		},
		suppressPolicy(suppress),
		func(selected []string) []byte { return []byte(strings.Join(selected, outputDelim)) },
		r)
}

func suppressPolicy(suppress bool) suppressMode {
	if suppress {
		return suppressOn
	}
	return suppressOff
}

// cutAny is the streaming loop shared by all modes. It reads chunks
// delimited by lineDelim, strips exactly one trailing terminator if
// present, splits, applies the suppress policy and selection, and writes
// the joined result with the terminator reappended. The terminator is
// always synthesized on output, so input lacking a final terminator still
// produces a terminated line. Empty input produces no output.
func cutAny[T any](input io.Reader, output io.Writer, lineDelim byte, split func([]byte) ([]T, error), policy suppressMode, join func([]T) []byte, r ranges.Ranges) error {
	reader := bufio.NewReader(input)
	writer := bufio.NewWriter(output)

	for {
		chunk, err := reader.ReadBytes(lineDelim)
		if len(chunk) > 0 {
			line := chunk
			if line[len(line)-1] == lineDelim {
				line = line[:len(line)-1]
			}

			elements, splitErr := split(line)
			if splitErr != nil {
				// Keep whatever was already produced for this source.
				writer.Flush()
				return splitErr
			}

			out, emit := apply(elements, policy, join, r)
			if emit {
				out = append(out, lineDelim)
				if _, werr := writer.Write(out); werr != nil {
					return werr
				}
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			writer.Flush()
			return err
		}
	}
	return writer.Flush()
}

// apply runs the suppress policy for one line. A single element after
// splitting means the line contained no delimiter.
func apply[T any](elements []T, policy suppressMode, join func([]T) []byte, r ranges.Ranges) ([]byte, bool) {
	switch policy {
	case suppressOn:
		if len(elements) == 1 {
			return nil, false
		}
	case suppressOff:
		if len(elements) == 1 {
			return join(elements), true
		}
	}
	return join(selectElements(elements, r)), true
}

// selectElements returns the subsequence of elements covered by r, in
// input order. Ranges beyond the end of the line are silently clipped;
// since ranges are sorted, the walk stops at the first range that starts
// past the end.
func selectElements[T any](elements []T, r ranges.Ranges) []T {
	var result []T
	for _, mr := range r.Elements() {
		if mr.Start >= len(elements) {
			break
		}
		if mr.Unbounded {
			return append(result, elements[mr.Start:]...)
		}
		end := mr.End + 1
		if end > len(elements) {
			end = len(elements)
		}
		result = append(result, elements[mr.Start:end]...)
	}
	return result
}
