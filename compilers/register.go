package compilers

import (
	"errors"
	"fmt"
	"sync"

	"github.com/plankit/plankit/compiler"
)

var (
	mu sync.RWMutex
	d  = map[compiler.Kind]func() compiler.Compiler{}
)

var ErrCompilerExists = errors.New("compiler exists")

// Register installs a factory for the compiler performing kind.
func Register(kind compiler.Kind, f func() compiler.Compiler) error {
	mu.Lock()
	defer mu.Unlock()
	if _, present := d[kind]; present {
		return fmt.Errorf("%s: %w", kind, ErrCompilerExists)
	}
	d[kind] = f
	return nil
}

func init() {
	Register(compiler.Grounding, func() compiler.Compiler { return NewGrounder() })
	Register(compiler.NegativeConditionsRemoving, func() compiler.Compiler { return NewNegativeConditionsRemover() })
	Register(compiler.DisjunctiveConditionsRemoving, func() compiler.Compiler { return NewDisjunctiveConditionsRemover() })
	Register(compiler.QuantifiersRemoving, func() compiler.Compiler { return NewQuantifiersRemover() })
	Register(compiler.ConditionalEffectsRemoving, func() compiler.Compiler { return NewConditionalEffectsRemover() })
	Register(compiler.TrajectoryConstraintsRemoving, func() compiler.Compiler { return NewStateInvariantsRemover() })
	Register(compiler.InterpretedFunctionsRemoving, func() compiler.Compiler { return NewInterpretedFunctionsRemover() })
	Register(compiler.TimedToSequential, func() compiler.Compiler { return NewTimedToSequential() })
	Register(compiler.UsertypeFluentsRemoving, func() compiler.Compiler { return NewUsertypeFluentsRemover() })
}

// ForKind returns a fresh compiler performing kind, or nil if none is
// registered (BOUNDED_TYPES_REMOVING has no built-in compiler).
func ForKind(kind compiler.Kind) compiler.Compiler {
	mu.RLock()
	defer mu.RUnlock()
	f := d[kind]
	if f == nil {
		return nil
	}
	return f()
}

// RegisteredKinds returns the kinds with a registered compiler, in
// enum order.
func RegisteredKinds() []compiler.Kind {
	mu.RLock()
	defer mu.RUnlock()
	var res []compiler.Kind
	for _, k := range compiler.Kinds() {
		if _, ok := d[k]; ok {
			res = append(res, k)
		}
	}
	return res
}
