package minimal

import (
	"fmt"
	"io"

	"github.com/llir/llvm/ir"
	"golang.org/x/sync/errgroup"
)

// Stage is one stop-point in the compilation pipeline, matching the CLI's
// --pre/--lex/--syn/--sem/--cgen/--ir/--asm/--obj/--exe flags.
type Stage int

const (
	StagePreprocess Stage = iota
	StageLex
	StageSyntax
	StageSemantics
	StageCgen
	StageIR
	StageAssembly
	StageObject
	StageExecutable
)

func (s Stage) String() string {
	switch s {
	case StagePreprocess:
		return "preprocess"
	case StageLex:
		return "lex"
	case StageSyntax:
		return "syntax"
	case StageSemantics:
		return "semantics"
	case StageCgen:
		return "cgen"
	case StageIR:
		return "ir"
	case StageAssembly:
		return "assembly"
	case StageObject:
		return "object"
	case StageExecutable:
		return "executable"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// DefaultStage is where Compile stops absent an explicit stage flag: the
// CST, the last stage this module fully implements.
const DefaultStage = StageSyntax

// Arch/Vendor/OS/Target describe a future build target, the Go analogue of
// the teacher's compiler.go target triple, kept wired into Compiler so the
// CLI's --asm/--obj/--exe flags have a target to plumb through; build
// names it in the StatusNotImplemented error it returns for those stages.
type Arch string
type Vendor string
type OS string

const (
	X86_64 Arch = "x86_64"

	VendorUnknown Vendor = "unknown"

	Windows OS = "windows"
	Linux   OS = "linux"
	Darwin  OS = "darwin"
)

type Target struct {
	Arch   Arch
	Vendor Vendor
	OS     OS
}

func (t Target) String() string {
	return fmt.Sprintf("%s-%s-%s", t.Arch, t.Vendor, t.OS)
}

// Result accumulates every stage's output Compile reached before stopping
// or failing, so a caller (the CLI's stage stop-point flags) can dump
// whichever of Lines/Tokens/Tree/Symbols/Module it asked for.
type Result struct {
	Lines   []string
	Tokens  TokenStream
	Tree    *Node
	Symbols *SymbolTable
	Module  *ir.Module
}

// Compiler orchestrates the full pre -> lex -> parse -> [sem -> ir -> build]
// sequence, the Go analogue of the teacher's compiler.go Compiler, adapted
// to stop at a caller-chosen Stage instead of always compiling to a native
// binary.
type Compiler struct {
	Stop   Stage
	Target Target
}

// NewCompiler returns a Compiler that runs through stop before returning.
func NewCompiler(stop Stage) *Compiler {
	return &Compiler{Stop: stop, Target: Target{Arch: X86_64, Vendor: VendorUnknown, OS: Linux}}
}

// Compile runs lines through every stage up to c.Stop. Preprocessing,
// lexing, and parsing are fully implemented and a failure in any of them is
// returned immediately. Stages past the parser are acknowledged but not
// implemented: reaching StageSemantics or later always ends in a
// StatusNotImplemented error wrapped with the stage name that produced it,
// per spec.md's Non-goals for semantic analysis, IR generation, and code
// emission.
func (c *Compiler) Compile(lines []string) (*Result, error) {
	result := &Result{}

	pre, err := Preprocess(lines)
	if err != nil {
		return result, err
	}
	result.Lines = pre
	if c.Stop <= StagePreprocess {
		return result, nil
	}

	tokens, err := Lex(pre)
	if err != nil {
		return result, err
	}
	result.Tokens = tokens
	if c.Stop <= StageLex {
		return result, nil
	}

	tree, err := Parse(tokens)
	if err != nil {
		return result, err
	}
	result.Tree = tree
	if c.Stop <= StageSyntax {
		return result, nil
	}

	analyzer := NewAnalyzer(tree)
	symbols, _ := analyzer.Analyze()
	result.Symbols = symbols
	if c.Stop == StageSemantics {
		return result, fmt.Errorf("%s: %w", StageSemantics, StatusNotImplemented)
	}
	if c.Stop == StageCgen {
		return result, fmt.Errorf("%s: %w", StageCgen, StatusNotImplemented)
	}

	gen := NewIRGenerator(symbols)
	module, _ := gen.Generate()
	result.Module = module
	if c.Stop == StageIR {
		return result, fmt.Errorf("%s: %w", StageIR, StatusNotImplemented)
	}

	return result, c.build(module)
}

// build is the Go analogue of the teacher's compiler.go build(): it pipes
// module's textual IR through an io.Pipe with a writer goroutine and a
// reader goroutine coordinated by golang.org/x/sync/errgroup, the same
// concurrency shape the teacher uses to stream IR into clang's stdin. Actual
// assembly/linking is out of scope here, so the reader goroutine drains the
// pipe instead of handing it to a subprocess, and build always finishes by
// reporting StatusNotImplemented for c.Target.
func (c *Compiler) build(module *ir.Module) error {
	r, w := io.Pipe()

	var g errgroup.Group
	g.Go(func() error {
		defer w.Close()
		_, err := w.Write([]byte(module.String()))
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(io.Discard, r)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return fmt.Errorf("%s build for %s: %w", c.Stop, c.Target, StatusNotImplemented)
}
