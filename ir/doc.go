// Package ir provides the expression algebra used by planning problems
// and their compilers.
//
// Expressions are immutable trees of *Expr nodes tagged by Kind. They are
// built with the constructor functions (And, Or, Not, Exists, Equals,
// FluentExp, ...) and rewritten only by building new trees: nothing in
// this package or its callers mutates an Expr after construction, so
// expressions may be shared freely between problems.
//
// The package also owns the vocabulary expressions refer to: user types,
// objects, parameters, variables, fluents and interpreted functions, plus
// the Environment that registers user types.
//
// Normalization entry points:
//
//   - Simplify: constant folding, And/Or flattening and deduplication
//   - ToNNF: negation normal form (negations pushed to atoms)
//   - ToDNF: disjunctive normal form of a boolean expression
//   - Substitute and friends: capture-free replacement of leaves
package ir
