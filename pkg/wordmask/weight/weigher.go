package weight

import (
	"fmt"
	"sort"

	"github.com/cognicore/wordmask/pkg/wordmask/ingest"
	"github.com/cognicore/wordmask/pkg/wordmask/internalerr"
)

// Weigher assigns importance weights to located tokens
type Weigher struct {
	rules []Rule
}

// NewWeigher compiles overrides into a weigher. Invalid patterns or weights
// fail with internalerr.ErrInvalidConfig.
func NewWeigher(overrides []Override) (*Weigher, error) {
	rules, err := Compile(overrides)
	if err != nil {
		return nil, err
	}
	return &Weigher{rules: rules}, nil
}

// Rules returns the compiled overrides in application order
func (w *Weigher) Rules() []Rule {
	return w.rules
}

// Entry describes how one token's weight was derived
type Entry struct {
	Token     string
	Frequency int
	Base      float64 // 1/frequency²
	Raw       float64 // after overrides, before normalization
	Weight    float64 // normalized
	Applied   int     // index of the override that changed Raw, or -1
}

// Overridden reports whether an override changed this token's weight
func (e Entry) Overridden() bool {
	return e.Applied >= 0
}

// Table maps each distinct token to its normalized weight
type Table struct {
	entries map[string]Entry
	order   []string
	rawSum  float64
}

// Weigh computes the weight table for idx.
//
// Base weight is 1/f² for a token seen f times. Each override whose pattern
// matches sets the raw weight to target/f; it is only recorded as applied
// when that differs from the base. The last matching override wins. Raw
// weights are then divided by their sum.
func (w *Weigher) Weigh(idx *ingest.Index) (*Table, error) {
	t := &Table{
		entries: make(map[string]Entry, idx.Distinct()),
		order:   idx.Tokens(),
	}

	for _, tok := range t.order {
		f := float64(idx.Frequency(tok))
		e := Entry{
			Token:     tok,
			Frequency: idx.Frequency(tok),
			Base:      1 / (f * f),
			Applied:   -1,
		}
		e.Raw = e.Base

		for i, r := range w.rules {
			if !r.Matches(tok) {
				continue
			}
			e.Raw = r.Weight / f
			if e.Raw != e.Base {
				e.Applied = i
			} else {
				e.Applied = -1
			}
		}

		t.rawSum += e.Raw
		t.entries[tok] = e
	}

	if len(t.order) > 0 && t.rawSum <= 0 {
		return nil, fmt.Errorf("%w: overrides leave every token with zero weight", internalerr.ErrNoCandidates)
	}

	for tok, e := range t.entries {
		e.Weight = e.Raw / t.rawSum
		t.entries[tok] = e
	}

	return t, nil
}

// Weight returns the normalized weight of token (0 if absent)
func (t *Table) Weight(token string) float64 {
	return t.entries[token].Weight
}

// Entry returns the derivation record for token
func (t *Table) Entry(token string) (Entry, bool) {
	e, ok := t.entries[token]
	return e, ok
}

// Len returns the number of distinct tokens
func (t *Table) Len() int {
	return len(t.order)
}

// Sum returns the total of normalized weights
func (t *Table) Sum() float64 {
	var s float64
	for _, e := range t.entries {
		s += e.Weight
	}
	return s
}

// RawSum returns the pre-normalization total
func (t *Table) RawSum() float64 {
	return t.rawSum
}

// Entries returns all entries sorted by descending weight, ties by token
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Token < out[j].Token
	})
	return out
}

// Applied returns entries whose weight was changed by an override, in first-seen order
func (t *Table) Applied() []Entry {
	var out []Entry
	for _, tok := range t.order {
		if e := t.entries[tok]; e.Overridden() {
			out = append(out, e)
		}
	}
	return out
}
