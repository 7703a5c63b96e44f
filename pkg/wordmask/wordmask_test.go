package wordmask

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/wordmask/pkg/wordmask/config"
	"github.com/cognicore/wordmask/pkg/wordmask/internalerr"
	"github.com/cognicore/wordmask/pkg/wordmask/sample"
	"github.com/cognicore/wordmask/pkg/wordmask/weight"
)

func seededEngine(t *testing.T, seed uint64, overrides ...weight.Override) *Engine {
	t.Helper()
	w, err := weight.NewWeigher(overrides)
	require.NoError(t, err)
	return New(Options{Weigher: w, Sampler: sample.NewSeeded(seed)})
}

func TestRedactCatSatScenario(t *testing.T) {
	const text = "the cat sat on the mat"

	first, err := seededEngine(t, 2024).Redact(Request{Text: text, WordsToHide: 2})
	require.NoError(t, err)
	second, err := seededEngine(t, 2024).Redact(Request{Text: text, WordsToHide: 2})
	require.NoError(t, err)

	assert.Equal(t, first.Text, second.Text, "fixed seed must be reproducible")
	assert.Len(t, first.Picked, 2)
	assert.Less(t, first.Table.Weight("the"), first.Table.Weight("cat"))
	for _, tok := range []string{"cat", "sat", "on", "mat"} {
		assert.InDelta(t, first.Table.Weight("cat"), first.Table.Weight(tok), 1e-12)
	}

	masked := sample.Distinct(first.Picked)
	assert.Equal(t, len(masked), first.Report.MaskedSpans)
	assert.Equal(t, strings.Count(first.Text, "*"), totalLen(masked))
}

func TestRedactSpanIntegrity(t *testing.T) {
	const text = "Call me Ishmael. Some years ago - never mind how long precisely -\nhaving little or no money in my purse."

	res, err := seededEngine(t, 5).Redact(Request{Text: text, WordsToHide: 8})
	require.NoError(t, err)
	require.Len(t, res.Text, len(text))

	for _, c := range res.Picked {
		assert.Equal(t, strings.Repeat("*", c.Span.Stop-c.Span.Start), res.Text[c.Span.Start:c.Span.Stop])
	}
	for i := 0; i < len(text); i++ {
		if res.Text[i] == '*' {
			continue
		}
		assert.Equal(t, text[i], res.Text[i], "byte %d", i)
	}
}

func TestRedactZeroWordsIsIdentity(t *testing.T) {
	for _, text := range []string{"the cat sat on the mat", "", "42 !!\n"} {
		res, err := New(Options{}).Redact(Request{Text: text, WordsToHide: 0})
		require.NoError(t, err)
		assert.Equal(t, text, res.Text)
		assert.Empty(t, res.Picked)
	}
}

func TestRedactTokenlessCorpus(t *testing.T) {
	_, err := New(Options{}).Redact(Request{Text: "1234 ... !!", WordsToHide: 1})
	assert.ErrorIs(t, err, internalerr.ErrNoCandidates)
}

func TestRedactNegativeCount(t *testing.T) {
	_, err := New(Options{}).Redact(Request{Text: "words", WordsToHide: -3})
	assert.ErrorIs(t, err, internalerr.ErrInput)
}

func TestRedactZeroMassOverrides(t *testing.T) {
	e := seededEngine(t, 1, weight.Override{Pattern: ".", Weight: 0})

	_, err := e.Redact(Request{Text: "nothing may go", WordsToHide: 1})
	assert.ErrorIs(t, err, internalerr.ErrNoCandidates)

	res, err := e.Redact(Request{Text: "nothing may go", WordsToHide: 0})
	require.NoError(t, err)
	assert.Equal(t, "nothing may go", res.Text)
}

func TestRedactOverrideShieldsToken(t *testing.T) {
	e := seededEngine(t, 9, weight.Override{Pattern: "^keep$", Weight: 0})

	res, err := e.Redact(Request{Text: "keep keep drop keep", WordsToHide: 20})
	require.NoError(t, err)
	assert.Equal(t, "keep keep **** keep", res.Text)
	require.Len(t, res.Table.Applied(), 1)
	assert.Len(t, res.Report.Overrides, 1)
}

func TestRedactHTML(t *testing.T) {
	const doc = `<p title="secret">Visible words here</p>`

	e := New(Options{Sampler: sample.NewSeeded(3), HTML: true, Mask: '#'})
	res, err := e.Redact(Request{Text: doc, WordsToHide: 50})
	require.NoError(t, err)
	assert.Equal(t, `<p title="secret">####### ##### ####</p>`, res.Text)
}

func TestFromComponents(t *testing.T) {
	seed := uint64(77)
	loader := config.Loader{Overlay: func(s *config.Settings) {
		s.Seed = &seed
		s.Mask = "_"
		s.WordsToHide = 3
	}}
	comp, err := loader.Load()
	require.NoError(t, err)

	res, err := FromComponents(comp, nil).Redact(Request{Text: "alpha beta gamma", WordsToHide: comp.Settings.WordsToHide})
	require.NoError(t, err)
	assert.Contains(t, res.Text, "_")
	assert.NotContains(t, res.Text, "*")
}

func totalLen(cands []sample.Candidate) int {
	n := 0
	for _, c := range cands {
		n += c.Span.Len()
	}
	return n
}
