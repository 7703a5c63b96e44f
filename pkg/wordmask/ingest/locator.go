package ingest

import (
	"regexp"
	"strings"
)

// wordPattern is the token boundary rule: maximal runs of letters, hyphens and apostrophes.
var wordPattern = regexp.MustCompile(`[A-Za-z\-']+`)

// Locator scans a corpus and records where each normalized token occurs
type Locator struct {
	pattern *regexp.Regexp
}

// NewLocator creates a locator using the standard word pattern
func NewLocator() *Locator {
	return &Locator{pattern: wordPattern}
}

// Locate returns every token occurrence in text, grouped by lowercased token.
func (l *Locator) Locate(text string) *Index {
	idx := newIndex()
	l.scan(idx, text, 0, nil)
	return idx
}

// scan adds matches in segment to idx. offset is the position of segment in
// the full corpus; matches overlapping any segment-relative range in skip are ignored.
func (l *Locator) scan(idx *Index, segment string, offset int, skip []Span) {
	for _, m := range l.pattern.FindAllStringIndex(segment, -1) {
		if overlapsAny(Span{Start: m[0], Stop: m[1]}, skip) {
			continue
		}
		idx.add(strings.ToLower(segment[m[0]:m[1]]), Span{Start: offset + m[0], Stop: offset + m[1]})
	}
}

func overlapsAny(s Span, ranges []Span) bool {
	for _, r := range ranges {
		if s.Start < r.Stop && r.Start < s.Stop {
			return true
		}
	}
	return false
}
