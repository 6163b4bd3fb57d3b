// Package compilers implements the built-in problem compilers, one per
// file, all satisfying the compiler.Compiler contract:
//
//   - Grounder: lifted actions to parameter-free actions (grounding.go),
//     on top of the shared GrounderHelper (grounder.go)
//   - NegativeConditionsRemover: leaf negations to twin fluents
//   - DisjunctiveConditionsRemover: DNF split, fake-goal construction
//   - QuantifiersRemover: finite expansion over object domains
//   - ConditionalEffectsRemover: powerset expansion to precondition-
//     guarded variants
//   - StateInvariantsRemover: invariants folded into preconditions/goals
//   - InterpretedFunctionsRemover: black-box function applications to
//     guarded constants
//   - TimedToSequential: durative actions to start/end pairs
//   - UsertypeFluentsRemover: object-valued fluents to boolean fluents
//
// Compilers register themselves by the compilation kind they perform;
// callers obtain them with ForKind or construct them directly.
package compilers
