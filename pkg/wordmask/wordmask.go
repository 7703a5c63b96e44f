package wordmask

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/cognicore/wordmask/pkg/wordmask/config"
	"github.com/cognicore/wordmask/pkg/wordmask/ingest"
	"github.com/cognicore/wordmask/pkg/wordmask/internalerr"
	"github.com/cognicore/wordmask/pkg/wordmask/report"
	"github.com/cognicore/wordmask/pkg/wordmask/sample"
	"github.com/cognicore/wordmask/pkg/wordmask/weight"
)

// Engine runs the locate → weigh → sample → mask pipeline over one corpus
type Engine struct {
	locator *ingest.Locator
	weigher *weight.Weigher
	sampler *sample.Sampler
	reports *report.Builder
	logger  *slog.Logger
	mask    rune
	html    bool
}

// Options configures an Engine. Zero values get working defaults.
type Options struct {
	Locator *ingest.Locator
	Weigher *weight.Weigher
	Sampler *sample.Sampler
	Reports *report.Builder
	Logger  *slog.Logger
	Mask    rune
	HTML    bool
}

// New creates an Engine with the given dependencies
func New(opts Options) *Engine {
	e := &Engine{
		locator: opts.Locator,
		weigher: opts.Weigher,
		sampler: opts.Sampler,
		reports: opts.Reports,
		logger:  opts.Logger,
		mask:    opts.Mask,
		html:    opts.HTML,
	}
	if e.locator == nil {
		e.locator = ingest.NewLocator()
	}
	if e.weigher == nil {
		e.weigher = &weight.Weigher{}
	}
	if e.sampler == nil {
		e.sampler = sample.New(nil)
	}
	if e.reports == nil {
		e.reports = report.New(report.DefaultTopK)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if e.mask == 0 {
		e.mask = sample.DefaultMask
	}
	return e
}

// FromComponents wires an Engine from loaded configuration
func FromComponents(c *config.Components, logger *slog.Logger) *Engine {
	return New(Options{
		Locator: c.Locator,
		Weigher: c.Weigher,
		Sampler: c.Sampler,
		Logger:  logger,
		Mask:    c.Settings.MaskRune(),
		HTML:    c.Settings.HTML,
	})
}

// Request is a single redaction job
type Request struct {
	Text        string
	WordsToHide int
}

// Result is the outcome of a redaction
type Result struct {
	Text   string
	Picked []sample.Candidate
	Table  *weight.Table
	Report report.Report
}

// Redact masks req.WordsToHide weighted draws from the corpus.
// A request for zero words returns the text unchanged.
func (e *Engine) Redact(req Request) (Result, error) {
	if req.WordsToHide < 0 {
		return Result{}, fmt.Errorf("%w: words to hide must be non-negative, got %d", internalerr.ErrInput, req.WordsToHide)
	}

	idx, err := e.locate(req.Text)
	if err != nil {
		return Result{}, err
	}
	e.logger.Debug("located tokens", "distinct", idx.Distinct(), "occurrences", idx.Occurrences())

	if idx.Empty() && req.WordsToHide > 0 {
		return Result{}, fmt.Errorf("%w: corpus has no words but %d requested", internalerr.ErrNoCandidates, req.WordsToHide)
	}

	table, err := e.weigher.Weigh(idx)
	if err != nil {
		if req.WordsToHide > 0 || !errors.Is(err, internalerr.ErrNoCandidates) {
			return Result{}, fmt.Errorf("weigh: %w", err)
		}
		table = nil
	}

	rules := e.weigher.Rules()
	if table != nil {
		for _, applied := range table.Applied() {
			e.logger.Info("override applied",
				"token", applied.Token,
				"pattern", rules[applied.Applied].Pattern,
				"base", applied.Base,
				"raw", applied.Raw)
		}
	}

	var picked []sample.Candidate
	if req.WordsToHide > 0 {
		picked, err = e.sampler.Draw(sample.Candidates(idx, table), req.WordsToHide)
		if err != nil {
			return Result{}, fmt.Errorf("sample: %w", err)
		}
	}
	e.logger.Debug("sampled occurrences", "requested", req.WordsToHide, "drawn", len(picked))

	return Result{
		Text:   sample.Mask(req.Text, sample.Spans(picked), e.mask),
		Picked: picked,
		Table:  table,
		Report: e.reports.Build(report.Input{
			Requested:   req.WordsToHide,
			Occurrences: idx.Occurrences(),
			Table:       table,
			Rules:       rules,
			Picked:      picked,
		}),
	}, nil
}

func (e *Engine) locate(text string) (*ingest.Index, error) {
	if e.html {
		return e.locator.LocateHTML(text)
	}
	return e.locator.Locate(text), nil
}
