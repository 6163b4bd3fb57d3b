// Package compiler defines the contract between planning-problem
// compilers and their callers: the Compiler interface, the compilation
// Kind enum, the Result carrying the compiled problem and the plan
// map-back function, and the Pipeline that chains compilers.
//
// A compiler is a pure transformation: it reads its input problem
// without mutating it and produces a fresh problem plus a function that
// translates one action instance of the compiled problem back to the
// corresponding instance of the input problem. Pipelines compose these
// map-back functions in reverse stage order.
package compiler
