package engine

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/MikeSquared-Agency/Pareto/internal/pareto"
	"github.com/MikeSquared-Agency/Pareto/internal/store"
)

var validate = validator.New()

// RunSpec is a caller's request for a front extraction. Unset fields fall
// back to the configured filter defaults.
type RunSpec struct {
	Mode            pareto.Mode     `json:"mode,omitempty" validate:"omitempty,oneof=strict fuzzy"`
	ReferenceIndex  *int            `json:"reference_index,omitempty" validate:"omitempty,min=0"`
	Smoothness      int             `json:"smoothness,omitempty" validate:"min=0,max=1073741824"`
	TieBreak        pareto.TieBreak `json:"tie_break,omitempty" validate:"omitempty,oneof=input name scores"`
	StrictDominance *bool           `json:"strict_dominance,omitempty"`
}

// Params are the fully resolved settings of one extraction.
type Params struct {
	Mode       pareto.Mode
	Options    pareto.Options
	Smoothness int
}

// Resolve fills spec with the configured defaults. Smoothness is zero for
// strict runs.
func (e *Engine) Resolve(spec RunSpec) (Params, error) {
	if err := validate.Struct(spec); err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}

	p := Params{
		Mode:       spec.Mode,
		Options:    e.cfg.FilterOptions(),
		Smoothness: e.cfg.Filter.Smoothness,
	}
	if p.Mode == "" {
		p.Mode = pareto.ModeStrict
	}
	if spec.ReferenceIndex != nil {
		p.Options.ReferenceIndex = *spec.ReferenceIndex
	}
	if spec.Smoothness > 0 {
		p.Smoothness = spec.Smoothness
	}
	if spec.TieBreak != "" {
		p.Options.TieBreak = spec.TieBreak
	}
	if spec.StrictDominance != nil {
		p.Options.Rule = pareto.RuleLenient
		if *spec.StrictDominance {
			p.Options.Rule = pareto.RuleStrict
		}
	}
	if p.Mode == pareto.ModeStrict {
		p.Smoothness = 0
	}
	return p, nil
}

func (p Params) applyTo(run *store.Run) {
	run.Mode = string(p.Mode)
	run.ReferenceIndex = p.Options.ReferenceIndex
	run.Smoothness = p.Smoothness
	run.TieBreak = string(p.Options.TieBreak)
	run.StrictDominance = p.Options.Rule == pareto.RuleStrict
}

// specFromRun rebuilds the explicit spec stored on a run.
func specFromRun(run *store.Run) RunSpec {
	ref := run.ReferenceIndex
	strict := run.StrictDominance
	return RunSpec{
		Mode:            pareto.Mode(run.Mode),
		ReferenceIndex:  &ref,
		Smoothness:      run.Smoothness,
		TieBreak:        pareto.TieBreak(run.TieBreak),
		StrictDominance: &strict,
	}
}
