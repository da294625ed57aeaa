package minimal

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

// builtinDefinition builds one runtime-support function inside mod, the Go
// analogue of the teacher's funcDefinition alias (pkg/builtin.go).
type builtinDefinition = func(mod *ir.Module) *ir.Func

// defineBuiltins predeclares the runtime-support functions Minimal's "!"
// read_write operator (original_source/src/lexer.c's READ_WRITE token) will
// eventually lower to, the Go analogue of the teacher's defineBuiltins. It
// is wired into IRGenerator.Generate so every emitted module carries them
// even though no CST node lowers to a call yet.
func defineBuiltins(mod *ir.Module) map[string]*ir.Func {
	return map[string]*ir.Func{
		"read_write": defineBuiltin(mod, "read_write", builtinReadWrite),
	}
}

func defineBuiltin(mod *ir.Module, name string, definition builtinDefinition) *ir.Func {
	f := definition(mod)
	f.SetName(name)
	return f
}

// builtinReadWrite wraps libc's printf with a "%s\n" format, standing in for
// the stream write half of the read_write operator until stream values have
// a real lowering.
func builtinReadWrite(mod *ir.Module) *ir.Func {
	f := mod.NewFunc("", types.Void, ir.NewParam("v", types.I8Ptr))
	b := f.NewBlock("")

	printf := mod.NewFunc("printf", types.I32, ir.NewParam("format", types.I8Ptr))
	printf.Sig.Variadic = true

	zero := constant.NewInt(types.I32, 0)

	format := constant.NewCharArrayFromString("%s\n\x00")
	formatGlob := mod.NewGlobalDef("._read_write_fmt", format)

	fmtAddr := constant.NewGetElementPtr(types.NewArray(4, types.I8), formatGlob, zero, zero)

	b.NewCall(printf, fmtAddr, f.Params[0])
	b.NewRet(nil)

	return f
}
