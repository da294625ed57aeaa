package minimal

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

// llvmType maps one of Minimal's type keywords onto the nearest LLVM IR
// type, grounded on the teacher's LLVMIRBuilder (pkg/ir.go), which performed
// the analogous "int"->types.I32 mapping for its own much smaller type set.
// Minimal's aggregate shapes (ListT, DictT, EnumT, UnionT, StructT, CustomT)
// have no representation yet and fall back to an opaque pointer; a real
// mapping for them is future work once semantics.go resolves their layouts.
func llvmType(t *BasicType) types.Type {
	if t == nil {
		return types.Void
	}
	switch t.Name {
	case Void:
		return types.Void
	case Int:
		return types.I64
	case Float:
		return types.Double
	case Bool:
		return types.I1
	case Str:
		return types.I8Ptr
	default:
		return types.I8Ptr
	}
}

// IRGenerator turns a symbol table built by Analyzer into an LLVM IR module
// scaffold, the adapted, stubbed-out descendant of the teacher's
// LLVMIRBuilder/LLVMGenerator (pkg/ir.go). It declares a function signature
// for every subprogram the analyzer discovered, but emits no body for any
// of them (only the runtime builtins from defineBuiltins have bodies):
// Generate always returns StatusNotImplemented, acknowledging IR
// generation as a real stage boundary without pretending Minimal's full
// semantics (pointers, streams, dicts, structs) are lowerable yet.
type IRGenerator struct {
	symbols *SymbolTable
}

// NewIRGenerator returns a generator over symbols, the table Analyzer.Analyze
// produced.
func NewIRGenerator(symbols *SymbolTable) *IRGenerator {
	return &IRGenerator{symbols: symbols}
}

// Generate declares every known subprogram's signature in a fresh module and
// returns it alongside StatusNotImplemented.
func (g *IRGenerator) Generate() (*ir.Module, error) {
	mod := ir.NewModule()
	defineBuiltins(mod)
	for name, typ := range g.symbols.Entries {
		sig, ok := typ.(*FuncType)
		if !ok {
			continue
		}
		declareFunction(mod, name, sig)
	}
	return mod, StatusNotImplemented
}

// declareFunction adds name's signature to mod as an empty-bodied
// declaration, the Go analogue of the teacher's function()'s
// mod.NewFunc call, minus the body it has nothing yet to fill in with.
func declareFunction(mod *ir.Module, name string, sig *FuncType) *ir.Func {
	params := make([]*ir.Param, len(sig.Args))
	for i, arg := range sig.Args {
		params[i] = ir.NewParam(arg.Name, llvmType(arg.Type))
	}
	return mod.NewFunc(name, llvmType(sig.Return), params...)
}
