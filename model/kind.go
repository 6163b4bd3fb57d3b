package model

import "strings"

// Feature is one modeling construct a problem may use.
type Feature int

const (
	NegativeConditions Feature = iota
	DisjunctiveConditions
	EqualityConditions
	ExistentialConditions
	UniversalConditions
	ConditionalEffects
	ForallEffects
	IncreaseEffects
	DecreaseEffects
	NumericFluents
	ObjectFluents
	HierarchicalTyping
	ContinuousTime
	IntermediateConditionsAndEffects
	TimedEffects
	TimedGoals
	TrajectoryConstraints
	InterpretedFunctions
	ActionCosts
	OversubscriptionGoals
	BoundedTypes

	numFeatures
)

var featureNames = map[Feature]string{
	NegativeConditions:               "NEGATIVE_CONDITIONS",
	DisjunctiveConditions:            "DISJUNCTIVE_CONDITIONS",
	EqualityConditions:               "EQUALITIES",
	ExistentialConditions:            "EXISTENTIAL_CONDITIONS",
	UniversalConditions:              "UNIVERSAL_CONDITIONS",
	ConditionalEffects:               "CONDITIONAL_EFFECTS",
	ForallEffects:                    "FORALL_EFFECTS",
	IncreaseEffects:                  "INCREASE_EFFECTS",
	DecreaseEffects:                  "DECREASE_EFFECTS",
	NumericFluents:                   "NUMERIC_FLUENTS",
	ObjectFluents:                    "OBJECT_FLUENTS",
	HierarchicalTyping:               "HIERARCHICAL_TYPING",
	ContinuousTime:                   "CONTINUOUS_TIME",
	IntermediateConditionsAndEffects: "INTERMEDIATE_CONDITIONS_AND_EFFECTS",
	TimedEffects:                     "TIMED_EFFECTS",
	TimedGoals:                       "TIMED_GOALS",
	TrajectoryConstraints:            "TRAJECTORY_CONSTRAINTS",
	InterpretedFunctions:             "INTERPRETED_FUNCTIONS",
	ActionCosts:                      "ACTION_COSTS",
	OversubscriptionGoals:            "OVERSUBSCRIPTION",
	BoundedTypes:                     "BOUNDED_TYPES",
}

func (f Feature) String() string {
	if s, ok := featureNames[f]; ok {
		return s
	}
	return "<unknown feature>"
}

// ProblemKind is a feature-set value. The zero value is the empty kind.
// Set/Unset return new values, so kinds can be passed and transformed
// without aliasing.
type ProblemKind struct {
	bits uint32
}

// KindOf returns the kind with exactly the given features.
func KindOf(fs ...Feature) ProblemKind {
	var k ProblemKind
	return k.Set(fs...)
}

// FullKind returns the kind with every feature set.
func FullKind() ProblemKind {
	return ProblemKind{bits: 1<<uint(numFeatures) - 1}
}

func (k ProblemKind) Has(f Feature) bool {
	return k.bits&(1<<uint(f)) != 0
}

func (k ProblemKind) Set(fs ...Feature) ProblemKind {
	for _, f := range fs {
		k.bits |= 1 << uint(f)
	}
	return k
}

func (k ProblemKind) Unset(fs ...Feature) ProblemKind {
	for _, f := range fs {
		k.bits &^= 1 << uint(f)
	}
	return k
}

func (k ProblemKind) Union(o ProblemKind) ProblemKind {
	return ProblemKind{bits: k.bits | o.bits}
}

// LE reports whether k's features are a subset of o's (the partial order
// used to decide whether a compiler or engine accepts a problem).
func (k ProblemKind) LE(o ProblemKind) bool {
	return k.bits&^o.bits == 0
}

func (k ProblemKind) IsEmpty() bool {
	return k.bits == 0
}

// Features returns the set features in declaration order.
func (k ProblemKind) Features() []Feature {
	var res []Feature
	for f := Feature(0); f < numFeatures; f++ {
		if k.Has(f) {
			res = append(res, f)
		}
	}
	return res
}

func (k ProblemKind) String() string {
	fs := k.Features()
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = f.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
