package sample

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/cognicore/wordmask/pkg/wordmask/ingest"
	"github.com/cognicore/wordmask/pkg/wordmask/internalerr"
	"github.com/cognicore/wordmask/pkg/wordmask/weight"
)

// Candidate is one occurrence eligible for redaction. It carries its
// token's weight, so a token seen k times offers k slots of that weight.
type Candidate struct {
	Token  string
	Span   ingest.Span
	Weight float64
}

// Candidates expands idx into occurrences weighted from table,
// in token first-seen order and scan order within a token.
func Candidates(idx *ingest.Index, table *weight.Table) []Candidate {
	out := make([]Candidate, 0, idx.Occurrences())
	for _, tok := range idx.Tokens() {
		w := table.Weight(tok)
		for _, span := range idx.Spans(tok) {
			out = append(out, Candidate{Token: tok, Span: span, Weight: w})
		}
	}
	return out
}

// Sampler draws weighted occurrences with replacement
type Sampler struct {
	rng *rand.Rand
}

// New returns a sampler drawing from rng. A nil rng uses the package-level source.
func New(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// NewSeeded returns a sampler whose draws are reproducible for a given seed.
func NewSeeded(seed uint64) *Sampler {
	// PCG needs two words; derive the stream from the seed with the golden ratio constant
	return New(rand.New(rand.NewPCG(seed, seed^0x9E3779B9)))
}

func (s *Sampler) next() float64 {
	if s.rng != nil {
		return s.rng.Float64()
	}
	return rand.Float64()
}

// Draw selects n candidates independently, each with probability
// proportional to its weight. n may exceed len(candidates).
func (s *Sampler) Draw(candidates []Candidate, n int) ([]Candidate, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: words to hide must be non-negative, got %d", internalerr.ErrInput, n)
	}
	if n == 0 {
		return nil, nil
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: corpus has no words but %d requested", internalerr.ErrNoCandidates, n)
	}

	cumulative := make([]float64, len(candidates))
	var total float64
	for i, c := range candidates {
		total += c.Weight
		cumulative[i] = total
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: all candidates have zero weight", internalerr.ErrNoCandidates)
	}

	picked := make([]Candidate, n)
	for i := range picked {
		r := s.next() * total
		j := sort.Search(len(cumulative), func(k int) bool { return cumulative[k] > r })
		if j == len(cumulative) {
			j = lastPositive(candidates)
		}
		picked[i] = candidates[j]
	}
	return picked, nil
}

// lastPositive guards against r landing on total through rounding
func lastPositive(candidates []Candidate) int {
	for i := len(candidates) - 1; i >= 0; i-- {
		if candidates[i].Weight > 0 {
			return i
		}
	}
	return len(candidates) - 1
}
