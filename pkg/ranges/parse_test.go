package ranges

import (
	"errors"
	"testing"
)

func TestParseSingleRange(t *testing.T) {
	assertParse(t, "1", Closed(0, 0))
	assertParse(t, "15", Closed(14, 14))

	assertParse(t, "1-1", Closed(0, 0))
	assertParse(t, "2-6", Closed(1, 5))
	assertParse(t, "9-19", Closed(8, 18))

	assertParse(t, "-1", Closed(0, 0))
	assertParse(t, "-12", Closed(0, 11))

	assertParse(t, "1-", ToEnd(0))
	assertParse(t, "23-", ToEnd(22))
}

func TestParseCommaSeparator(t *testing.T) {
	assertParse(t, "1,2,3", Closed(0, 2))
	assertParse(t, "5,10,20", Closed(4, 4), Closed(9, 9), Closed(19, 19))
	assertParse(t, "4,8,3,2,9", Closed(1, 3), Closed(7, 8))

	assertParse(t, "1-2,2-4", Closed(0, 3))
	assertParse(t, "3-8,12-17", Closed(2, 7), Closed(11, 16))
	assertParse(t, "14-21,5-10,4-6", Closed(3, 9), Closed(13, 20))

	assertParse(t, "-3,-5", Closed(0, 4))
	assertParse(t, "-8,-22,-6", Closed(0, 21))

	assertParse(t, "5-,10-", ToEnd(4))
	assertParse(t, "14-,3-,6-", ToEnd(2))
}

func TestParseBlankSeparator(t *testing.T) {
	assertParse(t, "1 2 3", Closed(0, 2))
	assertParse(t, "5\t10\t20", Closed(4, 4), Closed(9, 9), Closed(19, 19))
	assertParse(t, "4 8\t3\t2 9", Closed(1, 3), Closed(7, 8))

	assertParse(t, "1-2 2-4", Closed(0, 3))
	assertParse(t, "3-8\t12-17", Closed(2, 7), Closed(11, 16))
	assertParse(t, "14-21 5-10\t4-6", Closed(3, 9), Closed(13, 20))

	assertParse(t, "-3 -5", Closed(0, 4))
	assertParse(t, "-8\t-22 -6", Closed(0, 21))

	assertParse(t, "14- 3-\t6-", ToEnd(2))
}

func TestParseMixedSeparator(t *testing.T) {
	assertParse(t, "5,10-44 6-9\t-4", Closed(0, 43))
	assertParse(t, "2 4\t6,8-10 -3", Closed(0, 3), Closed(5, 5), Closed(7, 9))
	assertParse(t, "12-34 89-,11\t10", Closed(9, 33), ToEnd(88))
	assertParse(t, "33-34\t9-14,-12 8", Closed(0, 13), Closed(32, 33))
	assertParse(t, "23-54 123- 1,2,3\t4-30 40-130", ToEnd(0))
}

func TestParseMergesMixedForms(t *testing.T) {
	// "-3" covers [0,2] and merges with "2-4" into [0,3]; "7-" stands alone.
	assertParse(t, "2-4,7-,-3", Closed(0, 3), ToEnd(6))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want error
	}{
		{"zero_unit", "0,1,2", ErrNumberedFromZero},
		{"zero_to_end", "0- 3-4", ErrNumberedFromZero},
		{"zero_from_start", "-0\t4-", ErrNumberedFromZero},
		{"zero_closed_start", "0-3", ErrNumberedFromZero},
		{"zero_in_list", "0-1 5,6-7\t8-", ErrNumberedFromZero},
		{"descending", "5-2", ErrDescendingRange},
		{"descending_large", "123-45", ErrDescendingRange},
		{"descending_in_list", "1,5-3", ErrDescendingRange},
		{"descending_after_blank", "5-7\t43-21", ErrDescendingRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.spec)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
			}
		})
	}
}

func TestParseIndecipherableRange(t *testing.T) {
	for _, spec := range []string{
		"", "1--", "23--", "--45", "67--89", "10-11-12", "-",
		"13,,14", "15  16", "17\t\t18", "19, 20", "21 \t22", "23\t,24", "1,",
	} {
		_, err := Parse(spec)
		var indecipherable *IndecipherableRangeError
		if !errors.As(err, &indecipherable) {
			t.Errorf("Parse(%q) error = %v, want IndecipherableRangeError", spec, err)
		}
	}
}

func TestParseUnrecognizedCharacter(t *testing.T) {
	tests := []struct {
		spec string
		char rune
	}{
		{"x", 'x'},
		{"!", '!'},
		{"1-#", '#'},
		{"11-22 $-5", '$'},
	}
	for _, tt := range tests {
		_, err := Parse(tt.spec)
		var unrecognized *UnrecognizedCharacterError
		if !errors.As(err, &unrecognized) {
			t.Errorf("Parse(%q) error = %v, want UnrecognizedCharacterError", tt.spec, err)
			continue
		}
		if unrecognized.Char != tt.char {
			t.Errorf("Parse(%q) flagged %q, want %q", tt.spec, unrecognized.Char, tt.char)
		}
	}
}

func assertParse(t *testing.T, spec string, want ...MergedRange) {
	t.Helper()
	r, err := Parse(spec)
	if err != nil {
		t.Fatalf("Parse(%q): %v", spec, err)
	}
	got := r.Elements()
	if len(got) != len(want) {
		t.Fatalf("Parse(%q) = %v, want %v", spec, got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("Parse(%q) = %v, want %v", spec, got, want)
		}
	}
}
