package label

import (
	"fmt"
	"strconv"
	"strings"
)

// Reserved markers Julius writes for leading and trailing silence.
const (
	SilenceBegin = "silB"
	SilenceEnd   = "silE"
)

var vowels = map[string]bool{
	"a": true, "i": true, "u": true, "e": true, "o": true,
	"a:": true, "i:": true, "u:": true, "e:": true, "o:": true,
}

const consonants = "wrtypsdfghjkzcbnm"

// Segment is one labelled interval of an alignment, in seconds.
type Segment struct {
	Start float64
	End   float64
	Label string
}

// Merge joins s with the segment right after it.
func (s Segment) Merge(next Segment) Segment {
	return Segment{Start: s.Start, End: next.End, Label: s.Label + next.Label}
}

// CanPrecede reports whether next belongs to the same mora as s.
// An empty next label passes the consonant check.
func (s Segment) CanPrecede(next Segment) bool {
	if !onlyConsonants(next.Label) {
		return false
	}
	return vowels[s.Label] || onlyConsonants(s.Label)
}

func onlyConsonants(lbl string) bool {
	for _, r := range lbl {
		if !strings.ContainsRune(consonants, r) {
			return false
		}
	}
	return true
}

// Render returns the interval block for the 1-based index.
func (s Segment) Render(index int) []string {
	text := s.Label
	if text == SilenceBegin || text == SilenceEnd {
		text = ""
	}
	return []string{
		fmt.Sprintf("        intervals [%d]:", index),
		fmt.Sprintf("            xmin = %s ", FormatSeconds(s.Start)),
		fmt.Sprintf("            xmax = %s ", FormatSeconds(s.End)),
		fmt.Sprintf("            text = \"%s\" ", text),
	}
}

// FormatSeconds renders a time the way the aligner tooling prints floats:
// shortest round-trip digits, always with a fractional part or an exponent.
func FormatSeconds(f float64) string {
	abs := f
	if abs < 0 {
		abs = -abs
	}
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(out, ".NI") {
		out += ".0"
	}
	return out
}
