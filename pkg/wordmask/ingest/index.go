package ingest

// Span is a half-open byte range [Start, Stop) in the original corpus.
// Tokens are ASCII, so the byte length of a span is also its character length.
type Span struct {
	Start int
	Stop  int
}

// Len returns the number of characters covered by the span
func (s Span) Len() int {
	return s.Stop - s.Start
}

// Index groups every located occurrence by its normalized token.
// Frequencies are derived from the same pass that produced the spans.
type Index struct {
	order []string
	spans map[string][]Span
}

func newIndex() *Index {
	return &Index{spans: make(map[string][]Span)}
}

func (idx *Index) add(token string, span Span) {
	if _, ok := idx.spans[token]; !ok {
		idx.order = append(idx.order, token)
	}
	idx.spans[token] = append(idx.spans[token], span)
}

// Tokens returns distinct tokens in first-seen order
func (idx *Index) Tokens() []string {
	out := make([]string, len(idx.order))
	copy(out, idx.order)
	return out
}

// Spans returns the occurrences of token in scan order
func (idx *Index) Spans(token string) []Span {
	return idx.spans[token]
}

// Frequency returns the occurrence count for a token (0 if unseen)
func (idx *Index) Frequency(token string) int {
	return len(idx.spans[token])
}

// Distinct returns the number of distinct tokens
func (idx *Index) Distinct() int {
	return len(idx.order)
}

// Occurrences returns the total number of located spans
func (idx *Index) Occurrences() int {
	n := 0
	for _, spans := range idx.spans {
		n += len(spans)
	}
	return n
}

// Empty reports whether no token was located
func (idx *Index) Empty() bool {
	return len(idx.order) == 0
}
