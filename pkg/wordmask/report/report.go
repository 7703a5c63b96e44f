package report

import (
	"crypto/rand"
	"fmt"
	"io"
	"sort"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/wordmask/pkg/wordmask/sample"
	"github.com/cognicore/wordmask/pkg/wordmask/weight"
)

// DefaultTopK bounds the weight listing in a report
const DefaultTopK = 10

// Builder constructs explainable run reports
type Builder struct {
	entropy *ulid.MonotonicEntropy
	topK    int
}

// New creates a report builder listing at most topK weights (DefaultTopK if <= 0)
func New(topK int) *Builder {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
		topK:    topK,
	}
}

// Report summarizes one redaction run
type Report struct {
	ID          string        `yaml:"id"`
	Requested   int           `yaml:"requested"`
	Drawn       int           `yaml:"drawn"`
	MaskedSpans int           `yaml:"masked_spans"`
	Distinct    int           `yaml:"distinct_tokens"`
	Occurrences int           `yaml:"occurrences"`
	TopWeights  []TokenWeight `yaml:"top_weights"`
	Overrides   []Applied     `yaml:"overrides,omitempty"`
	Hidden      []Hidden      `yaml:"hidden,omitempty"`
}

// TokenWeight is a token with its normalized weight
type TokenWeight struct {
	Token     string  `yaml:"token"`
	Frequency int     `yaml:"frequency"`
	Weight    float64 `yaml:"weight"`
}

// Applied records an override that changed a token's weight
type Applied struct {
	Token   string  `yaml:"token"`
	Pattern string  `yaml:"pattern"`
	Target  float64 `yaml:"target"`
	Base    float64 `yaml:"base"`
	Raw     float64 `yaml:"raw"`
}

// Hidden counts masked spans per token
type Hidden struct {
	Token string `yaml:"token"`
	Spans int    `yaml:"spans"`
}

// Input gathers what a report is built from
type Input struct {
	Requested   int
	Occurrences int
	Table       *weight.Table
	Rules       []weight.Rule
	Picked      []sample.Candidate
}

// Build creates a report for a finished run
func (b *Builder) Build(in Input) Report {
	r := Report{
		ID:          ulid.MustNew(ulid.Now(), b.entropy).String(),
		Requested:   in.Requested,
		Drawn:       len(in.Picked),
		Occurrences: in.Occurrences,
	}

	if in.Table != nil {
		r.Distinct = in.Table.Len()
		entries := in.Table.Entries()
		if len(entries) > b.topK {
			entries = entries[:b.topK]
		}
		for _, e := range entries {
			r.TopWeights = append(r.TopWeights, TokenWeight{Token: e.Token, Frequency: e.Frequency, Weight: e.Weight})
		}
		for _, e := range in.Table.Applied() {
			a := Applied{Token: e.Token, Base: e.Base, Raw: e.Raw}
			if e.Applied < len(in.Rules) {
				a.Pattern = in.Rules[e.Applied].Pattern
				a.Target = in.Rules[e.Applied].Weight
			}
			r.Overrides = append(r.Overrides, a)
		}
	}

	distinct := sample.Distinct(in.Picked)
	r.MaskedSpans = len(distinct)
	counts := make(map[string]int)
	for _, c := range distinct {
		counts[c.Token]++
	}
	for tok, n := range counts {
		r.Hidden = append(r.Hidden, Hidden{Token: tok, Spans: n})
	}
	sort.Slice(r.Hidden, func(i, j int) bool {
		if r.Hidden[i].Spans != r.Hidden[j].Spans {
			return r.Hidden[i].Spans > r.Hidden[j].Spans
		}
		return r.Hidden[i].Token < r.Hidden[j].Token
	})

	return r
}

// Write serializes r as YAML
func Write(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}
