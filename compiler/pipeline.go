package compiler

import (
	"fmt"

	"github.com/plankit/plankit/debug"
	"github.com/plankit/plankit/model"
)

// Stage pairs a compiler with the compilation kind to request of it.
type Stage struct {
	Compiler Compiler
	Kind     Kind
}

// Pipeline applies compilers in order, threading the problem through
// each stage and composing the per-stage map-back functions in reverse
// order.
type Pipeline struct {
	Stages []Stage
}

// NewPipeline builds a pipeline from stages.
func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{Stages: stages}
}

// Validate checks stage-local requirements that do not need a problem:
// every stage must perform its requested kind, and quantifier removal
// must precede disjunctive-condition removal (the fake-goal reset of the
// latter is only specified for goals already free of quantifiers).
func (pl *Pipeline) Validate() error {
	disjunctiveAt := -1
	for i, st := range pl.Stages {
		if !st.Compiler.SupportsCompilation(st.Kind) {
			return fmt.Errorf("%w: stage %d: %s does not perform %s",
				ErrUsage, i, st.Compiler.Name(), st.Kind)
		}
		switch st.Kind {
		case DisjunctiveConditionsRemoving:
			disjunctiveAt = i
		case QuantifiersRemoving:
			if disjunctiveAt >= 0 {
				return fmt.Errorf("%w: %s must run before %s (stages %d, %d)",
					ErrUsage, QuantifiersRemoving, DisjunctiveConditionsRemoving, i, disjunctiveAt)
			}
		}
	}
	return nil
}

// Compile runs the pipeline. Before each stage the running problem's
// kind is re-checked against the stage compiler; a violation aborts with
// a usage error naming the offending stage. If any stage returns a nil
// problem the pipeline returns a nil-problem Result immediately.
func (pl *Pipeline) Compile(p *model.Problem) (*Result, error) {
	if err := pl.Validate(); err != nil {
		return nil, err
	}
	maps := make([]MapBackFunc, 0, len(pl.Stages))
	cur := p
	for i, st := range pl.Stages {
		if err := Check(st.Compiler, cur, st.Kind); err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", i, st.Compiler.Name(), err)
		}
		if debug.Pipeline() {
			debug.Logf("pipeline stage %d: %s performing %s\n", i, st.Compiler.Name(), st.Kind)
		}
		res, err := st.Compiler.Compile(cur, st.Kind)
		if err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", i, st.Compiler.Name(), err)
		}
		if res.Problem == nil {
			return &Result{Problem: nil, MapBack: nil}, nil
		}
		maps = append(maps, res.MapBack)
		cur = res.Problem
	}
	return &Result{Problem: cur, MapBack: composeMapBack(maps)}, nil
}

// composeMapBack walks an instance of the final problem back through
// every stage, last stage first.
func composeMapBack(maps []MapBackFunc) MapBackFunc {
	return func(ai *model.ActionInstance) (*model.ActionInstance, error) {
		cur := ai
		for i := len(maps) - 1; i >= 0; i-- {
			if cur == nil {
				return nil, nil
			}
			next, err := maps[i](cur)
			if err != nil {
				return nil, err
			}
			cur = next
		}
		return cur, nil
	}
}

// MapBackPlan translates a whole plan of the compiled problem, dropping
// steps with no counterpart in the original problem.
func MapBackPlan(mb MapBackFunc, plan model.Plan) (model.Plan, error) {
	var res model.Plan
	for _, ai := range plan {
		orig, err := mb(ai)
		if err != nil {
			return nil, err
		}
		if orig != nil {
			res = append(res, orig)
		}
	}
	return res, nil
}
