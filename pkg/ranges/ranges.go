// Package ranges implements the range-list language used to select bytes,
// characters, or fields: parsing, normalization into sorted merged
// intervals, and set complement.
package ranges

import (
	"slices"
	"sort"
	"strconv"
	"strings"
)

// cutKind discriminates the range shapes produced directly by the parser.
type cutKind int

const (
	unitKind cutKind = iota
	closedKind
	fromStartKind
	toEndKind
)

// cutRange is one parsed range group, 0-based, before normalization.
// Transient: consumed immediately by fromRanges.
type cutRange struct {
	kind  cutKind
	start int
	end   int
}

func unit(n int) cutRange { return cutRange{kind: unitKind, start: n, end: n} }

func closedCut(start, end int) cutRange { return cutRange{kind: closedKind, start: start, end: end} }

func fromStart(end int) cutRange { return cutRange{kind: fromStartKind, end: end} }

func toEndCut(start int) cutRange { return cutRange{kind: toEndKind, start: start} }

// MergedRange is a normalized interval: either a closed 0-based inclusive
// range [Start, End], or, when Unbounded is set, the open-ended [Start, ∞)
// with End unused and held at zero so values stay comparable.
type MergedRange struct {
	Start     int
	End       int
	Unbounded bool
}

// Closed returns the inclusive range [start, end].
func Closed(start, end int) MergedRange {
	return MergedRange{Start: start, End: end}
}

// ToEnd returns the open-ended range [start, ∞).
func ToEnd(start int) MergedRange {
	return MergedRange{Start: start, Unbounded: true}
}

// less orders ranges by start; for equal starts a closed range sorts before
// an unbounded one, and closed ranges tie-break by end. The merge pass
// relies on this order to absorb everything after an unbounded range.
func less(a, b MergedRange) bool {
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	if a.Unbounded != b.Unbounded {
		return !a.Unbounded
	}
	if a.Unbounded {
		return false
	}
	return a.End < b.End
}

// Ranges is a sorted sequence of mutually non-overlapping, non-adjacent
// merged ranges. At most one range is unbounded, and it is always last.
// Immutable once constructed.
type Ranges struct {
	ranges []MergedRange
}

// Elements returns the merged ranges in ascending order. The returned slice
// must not be modified.
func (r Ranges) Elements() []MergedRange {
	return r.ranges
}

// Equal reports whether two Ranges select exactly the same positions.
func (r Ranges) Equal(other Ranges) bool {
	return slices.Equal(r.ranges, other.ranges)
}

// String renders the canonical 1-based form, e.g. "1-4,7-". Parsing the
// result yields an equal Ranges.
func (r Ranges) String() string {
	parts := make([]string, 0, len(r.ranges))
	for _, mr := range r.ranges {
		switch {
		case mr.Unbounded:
			parts = append(parts, strconv.Itoa(mr.Start+1)+"-")
		case mr.Start == mr.End:
			parts = append(parts, strconv.Itoa(mr.Start+1))
		default:
			parts = append(parts, strconv.Itoa(mr.Start+1)+"-"+strconv.Itoa(mr.End+1))
		}
	}
	return strings.Join(parts, ",")
}

// merged converts a parsed range to its normalized form.
func (cr cutRange) merged() MergedRange {
	switch cr.kind {
	case unitKind:
		return Closed(cr.start, cr.start)
	case fromStartKind:
		return Closed(0, cr.end)
	case toEndKind:
		return ToEnd(cr.start)
	default:
		return Closed(cr.start, cr.end)
	}
}

// fromRanges normalizes parsed ranges: sort, then a single merge pass that
// extends a running chain while the next range overlaps or touches it
// (next.Start <= chain.End+1). Once the chain is unbounded the sort order
// guarantees every remaining range is absorbed.
func fromRanges(crs []cutRange) Ranges {
	if len(crs) == 0 {
		return Ranges{}
	}

	sorted := make([]MergedRange, len(crs))
	for i, cr := range crs {
		sorted[i] = cr.merged()
	}
	sort.Slice(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })

	var result []MergedRange
	chain := sorted[0]
	for _, next := range sorted[1:] {
		if chain.Unbounded {
			break
		}
		if next.Start <= chain.End+1 {
			if next.Unbounded {
				chain = ToEnd(chain.Start)
			} else if next.End > chain.End {
				chain.End = next.End
			}
			continue
		}
		result = append(result, chain)
		chain = next
	}
	result = append(result, chain)

	return Ranges{ranges: result}
}

// Complement returns the set of all positions not covered by r. The
// complement of an unbounded set is bounded (or empty, when r covers
// everything from position zero); the complement of a bounded set always
// ends with an unbounded range.
func (r Ranges) Complement() Ranges {
	next := 0
	unbounded := false
	var out []MergedRange

	for _, mr := range r.ranges {
		if mr.Start > 0 {
			out = append(out, Closed(next, mr.Start-1))
		}
		if mr.Unbounded {
			unbounded = true
		} else {
			next = mr.End + 1
		}
	}

	if !unbounded {
		out = append(out, ToEnd(next))
	}
	return Ranges{ranges: out}
}
