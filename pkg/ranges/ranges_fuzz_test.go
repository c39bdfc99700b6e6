package ranges

import "testing"

func FuzzParse(f *testing.F) {
	f.Add("2-4,7-,-3")
	f.Add("1")
	f.Add("1-")
	f.Add("5,10 20\t30-")
	f.Add("0-3")
	f.Add("5-2")
	f.Add("1--")
	f.Add("")
	f.Fuzz(func(t *testing.T, spec string) {
		r, err := Parse(spec)
		if err != nil {
			return
		}
		elements := r.Elements()
		if len(elements) == 0 {
			t.Fatalf("Parse(%q) succeeded with no ranges", spec)
		}

		// Merge invariant: strictly ascending, non-overlapping,
		// non-adjacent, unbounded only in last position.
		for i, mr := range elements {
			if !mr.Unbounded && mr.End < mr.Start {
				t.Fatalf("Parse(%q): inverted range %v", spec, mr)
			}
			if mr.Unbounded && i != len(elements)-1 {
				t.Fatalf("Parse(%q): unbounded range not last: %v", spec, elements)
			}
			if i > 0 {
				prev := elements[i-1]
				if prev.Unbounded || mr.Start <= prev.End+1 {
					t.Fatalf("Parse(%q): unmerged ranges %v", spec, elements)
				}
			}
		}

		// Canonical string round-trip.
		again, err := Parse(r.String())
		if err != nil {
			t.Fatalf("reparse of %q: %v", r.String(), err)
		}
		if !again.Equal(r) {
			t.Fatalf("round trip of %q changed %v to %v", spec, elements, again.Elements())
		}

		// Complement involution.
		back := r.Complement().Complement()
		if !back.Equal(r) {
			t.Fatalf("double complement of %q changed %v to %v", spec, elements, back.Elements())
		}
	})
}
