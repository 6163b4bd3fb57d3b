package compiler

import "fmt"

// Kind is the category of semantics-preserving rewrite a compiler
// performs.
type Kind int

const (
	Grounding Kind = iota
	ConditionalEffectsRemoving
	DisjunctiveConditionsRemoving
	NegativeConditionsRemoving
	QuantifiersRemoving
	TrajectoryConstraintsRemoving
	UsertypeFluentsRemoving
	BoundedTypesRemoving
	TimedToSequential
	InterpretedFunctionsRemoving
)

var kindNames = map[Kind]string{
	Grounding:                     "GROUNDING",
	ConditionalEffectsRemoving:    "CONDITIONAL_EFFECTS_REMOVING",
	DisjunctiveConditionsRemoving: "DISJUNCTIVE_CONDITIONS_REMOVING",
	NegativeConditionsRemoving:    "NEGATIVE_CONDITIONS_REMOVING",
	QuantifiersRemoving:           "QUANTIFIERS_REMOVING",
	TrajectoryConstraintsRemoving: "TRAJECTORY_CONSTRAINTS_REMOVING",
	UsertypeFluentsRemoving:       "USERTYPE_FLUENTS_REMOVING",
	BoundedTypesRemoving:          "BOUNDED_TYPES_REMOVING",
	TimedToSequential:             "TIMED_TO_SEQUENTIAL",
	InterpretedFunctionsRemoving:  "INTERPRETED_FUNCTIONS_REMOVING",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "<unknown compilation kind>"
}

// ParseKind parses a compilation kind name as printed by String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown compilation kind %q", ErrUsage, s)
}

// Kinds returns all compilation kinds in declaration order.
func Kinds() []Kind {
	return []Kind{
		Grounding,
		ConditionalEffectsRemoving,
		DisjunctiveConditionsRemoving,
		NegativeConditionsRemoving,
		QuantifiersRemoving,
		TrajectoryConstraintsRemoving,
		UsertypeFluentsRemoving,
		BoundedTypesRemoving,
		TimedToSequential,
		InterpretedFunctionsRemoving,
	}
}
