package sample

import (
	"strings"

	"github.com/cognicore/wordmask/pkg/wordmask/ingest"
)

// DefaultMask replaces redacted characters
const DefaultMask = '*'

// Mask replaces every character covered by spans with mask. Repeated or
// overlapping spans are idempotent; everything else is copied unchanged.
func Mask(text string, spans []ingest.Span, mask rune) string {
	if len(spans) == 0 {
		return text
	}

	covered := make([]bool, len(text))
	for _, s := range spans {
		start, stop := max(s.Start, 0), min(s.Stop, len(text))
		for i := start; i < stop; i++ {
			covered[i] = true
		}
	}

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if covered[i] {
			b.WriteRune(mask)
		} else {
			b.WriteByte(text[i])
		}
	}
	return b.String()
}

// Spans collects the spans of picked candidates
func Spans(picked []Candidate) []ingest.Span {
	out := make([]ingest.Span, len(picked))
	for i, c := range picked {
		out[i] = c.Span
	}
	return out
}

// Distinct returns picked spans with duplicates removed, in draw order
func Distinct(picked []Candidate) []Candidate {
	seen := make(map[ingest.Span]struct{}, len(picked))
	var out []Candidate
	for _, c := range picked {
		if _, ok := seen[c.Span]; ok {
			continue
		}
		seen[c.Span] = struct{}{}
		out = append(out, c)
	}
	return out
}
