// Package encode renders problems, actions and plans as deterministic
// text. The output is stable across runs for identical input, so it is
// usable in tests and for diffing the stages of a compiler pipeline.
//
// # Usage
//
//	var buf bytes.Buffer
//	if err := encode.Problem(&buf, p); err != nil { ... }
//
//	// colored, for terminals
//	err := encode.Problem(os.Stdout, p, encode.WithColors(encode.NewColors()))
//
// # Related Packages
//
//   - github.com/plankit/plankit/model - the problem container
//   - github.com/plankit/plankit/compiler - pipeline producing problems
package encode
