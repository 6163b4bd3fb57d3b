package compilers

import (
	"fmt"

	"github.com/plankit/plankit/compiler"
)

// DefaultOrder is the canonical stage order driving a problem toward
// grounded classical planning. Stages that introduce a feature run
// before the stage removing it: interpreted-function removal adds
// equalities (expanded by negative-condition removal), quantifier and
// conditional-effect removal add disjunctions and negations, and
// negated equalities expand into disjunctions, so those removers come
// last.
func DefaultOrder() []compiler.Kind {
	return []compiler.Kind{
		compiler.TrajectoryConstraintsRemoving,
		compiler.InterpretedFunctionsRemoving,
		compiler.TimedToSequential,
		compiler.Grounding,
		compiler.UsertypeFluentsRemoving,
		compiler.QuantifiersRemoving,
		compiler.ConditionalEffectsRemoving,
		compiler.NegativeConditionsRemoving,
		compiler.DisjunctiveConditionsRemoving,
	}
}

// PipelineFor builds a pipeline of registered compilers for the kinds,
// in the given order.
func PipelineFor(kinds ...compiler.Kind) (*compiler.Pipeline, error) {
	stages := make([]compiler.Stage, len(kinds))
	for i, k := range kinds {
		c := ForKind(k)
		if c == nil {
			return nil, fmt.Errorf("%w: no compiler registered for %s", compiler.ErrUsage, k)
		}
		stages[i] = compiler.Stage{Compiler: c, Kind: k}
	}
	return compiler.NewPipeline(stages...), nil
}
