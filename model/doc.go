// Package model provides the planning-problem data model: problems,
// fluents, actions, effects, plans, and the ProblemKind feature set.
//
// A Problem owns its fluents, actions, objects, initial values, goals
// and metrics. Compilers never mutate a problem they were handed; they
// Clone it and mutate the clone, so that the output problem shares no
// mutable state with the input (expressions are immutable and may be
// shared).
//
// Action is a closed sum type with two variants, *InstantaneousAction
// and *DurativeAction; compiler code switches over the two.
package model
