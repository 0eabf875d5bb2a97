package pareto

import "fmt"

// Mode names a filter variant.
type Mode string

const (
	ModeStrict Mode = "strict"
	ModeFuzzy  Mode = "fuzzy"
)

// Filter computes a non-dominated front. Implementations are stateless and
// safe for concurrent use.
type Filter interface {
	Mode() Mode
	Filter(ds *Dataset) (*Result, error)
}

// StrictFilter extracts the front over raw scores.
type StrictFilter struct {
	opts Options
}

// NewStrictFilter returns a StrictFilter after validating opts.
func NewStrictFilter(opts Options) (*StrictFilter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &StrictFilter{opts: opts}, nil
}

func (f *StrictFilter) Mode() Mode { return ModeStrict }

// Options returns the configured options.
func (f *StrictFilter) Options() Options { return f.opts }

func (f *StrictFilter) Filter(ds *Dataset) (*Result, error) {
	return ExtractFront(ds, f.opts)
}

// FuzzyFilter extracts the front over quantized scores. Higher smoothness
// means finer buckets; large values converge to the StrictFilter result.
type FuzzyFilter struct {
	opts       Options
	smoothness int
}

// NewFuzzyFilter returns a FuzzyFilter after validating opts and smoothness.
func NewFuzzyFilter(opts Options, smoothness int) (*FuzzyFilter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := checkSmoothness(smoothness); err != nil {
		return nil, err
	}
	return &FuzzyFilter{opts: opts, smoothness: smoothness}, nil
}

func (f *FuzzyFilter) Mode() Mode { return ModeFuzzy }

// Options returns the configured options.
func (f *FuzzyFilter) Options() Options { return f.opts }

// Smoothness returns the number of buckets per dimension.
func (f *FuzzyFilter) Smoothness() int { return f.smoothness }

func (f *FuzzyFilter) Filter(ds *Dataset) (*Result, error) {
	return ExtractFuzzyFront(ds, f.opts, f.smoothness)
}

// NewFilter builds the filter for mode. smoothness is ignored for ModeStrict.
func NewFilter(mode Mode, opts Options, smoothness int) (Filter, error) {
	switch mode {
	case ModeStrict, "":
		return NewStrictFilter(opts)
	case ModeFuzzy:
		return NewFuzzyFilter(opts, smoothness)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}
