package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

// A shared seed keeps hashes stable within a process so they can key
// memo tables that outlive any single expression.
var hashSeed = maphash.MakeSeed()

// Hash returns a 64-bit structural hash of the expression, consistent
// with Equal. It panics if e is nil.
func (e *Expr) Hash() uint64 {
	if e == nil {
		panic("ir: Hash called on nil expression")
	}
	var h maphash.Hash
	h.SetSeed(hashSeed)
	hashExpr(&h, e)
	return h.Sum64()
}

func hashExpr(h *maphash.Hash, e *Expr) {
	h.WriteByte(byte(e.Kind))
	switch e.Kind {
	case BoolConstKind:
		if e.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case IntConstKind:
		writeUint64(h, uint64(e.Int))
	case RealConstKind:
		writeUint64(h, math.Float64bits(e.Real))
	case ObjectKind:
		h.WriteString(e.Object.Name())
	case ParamKind:
		h.WriteString(e.Param.Name())
	case VariableKind:
		h.WriteString(e.Var.Name())
	case FluentKind:
		h.WriteString(e.Fluent.Name())
	case FunctionKind:
		h.WriteString(e.Function.Name())
	case ExistsKind, ForallKind:
		for _, v := range e.Vars {
			h.WriteString(v.Name())
		}
	}
	for _, a := range e.Args {
		hashExpr(h, a)
	}
}

func writeUint64(h *maphash.Hash, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	h.Write(b[:])
}
