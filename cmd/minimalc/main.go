// Command minimalc compiles Minimal source files, stopping at whichever
// stage its flags request.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pborman/getopt"

	"go.minimal.dev/pkg/minimal"
)

const version = "0.1.0"

// sourceExt is the only extension minimalc will read a source file from,
// matching original_source/src/preprocessor.c's ".mini" check in
// preprocess() (and general.c's usage text).
const sourceExt = ".mini"

func main() {
	var (
		showUsage   bool
		showHelp    bool
		showVersion bool
		showInfo    bool
		verbose     bool

		stopPre  bool
		stopLex  bool
		stopSyn  bool
		stopSem  bool
		stopCgen bool
		stopIR   bool
		stopAsm  bool
		stopObj  bool
		stopExe  bool

		output string
	)

	getopt.BoolVarLong(&showUsage, "usage", 0, "display a usage summary")
	getopt.BoolVarLong(&showHelp, "help", 'h', "display this help")
	getopt.BoolVarLong(&showVersion, "version", 0, "print the compiler version")
	getopt.BoolVarLong(&showInfo, "info", 0, "print build/target information")
	getopt.BoolVarLong(&verbose, "verbose", 'v', "print each stage's output as it completes")

	getopt.BoolVarLong(&stopPre, "pre", 0, "stop after preprocessing")
	getopt.BoolVarLong(&stopLex, "lex", 0, "stop after lexing")
	getopt.BoolVarLong(&stopSyn, "syn", 0, "stop after parsing (default)")
	getopt.BoolVarLong(&stopSem, "sem", 0, "stop after semantic analysis")
	getopt.BoolVarLong(&stopCgen, "cgen", 0, "stop after code generation")
	getopt.BoolVarLong(&stopIR, "ir", 0, "stop after IR generation")
	getopt.BoolVarLong(&stopAsm, "asm", 0, "stop after assembling")
	getopt.BoolVarLong(&stopObj, "obj", 0, "stop after producing an object file")
	getopt.BoolVarLong(&stopExe, "exe", 0, "stop after linking an executable")

	getopt.StringVarLong(&output, "output", 'o', "output file name", "FILE")
	getopt.SetParameters("FILE [FILE ...]")

	getopt.Parse()

	if showUsage {
		getopt.PrintUsage(os.Stdout)
		return
	}
	if showHelp {
		getopt.CommandLine.PrintUsage(os.Stdout)
		return
	}
	if showVersion {
		fmt.Println("minimalc", version)
		return
	}
	if showInfo {
		fmt.Printf("minimalc %s (%s-%s-%s)\n", version, minimal.X86_64, minimal.VendorUnknown, minimal.Linux)
		return
	}

	args := getopt.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "minimalc: no input file")
		getopt.PrintUsage(os.Stderr)
		os.Exit(int(minimal.StatusNoInputFile))
	}

	stop := minimal.DefaultStage
	for _, pair := range []struct {
		set   bool
		stage minimal.Stage
	}{
		{stopPre, minimal.StagePreprocess},
		{stopLex, minimal.StageLex},
		{stopSyn, minimal.StageSyntax},
		{stopSem, minimal.StageSemantics},
		{stopCgen, minimal.StageCgen},
		{stopIR, minimal.StageIR},
		{stopAsm, minimal.StageAssembly},
		{stopObj, minimal.StageObject},
		{stopExe, minimal.StageExecutable},
	} {
		if pair.set && pair.stage > stop {
			stop = pair.stage
		}
	}

	var lines []string
	for _, path := range args {
		if !strings.HasSuffix(path, sourceExt) {
			fmt.Fprintf(os.Stderr, "minimalc: %s: source files must have a %q extension\n", path, sourceExt)
			os.Exit(int(minimal.StatusInvalidArgument))
		}
		fileLines, err := readLines(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "minimalc: %s: %v\n", path, err)
			os.Exit(int(minimal.StatusFileNotFound))
		}
		lines = append(lines, fileLines...)
	}

	mainFile := args[len(args)-1]
	if output == "" {
		output = "main"
	}

	compiler := minimal.NewCompiler(stop)
	result, err := compiler.Compile(lines)

	if verbose {
		reportVerbose(mainFile, stop, result)
	}

	if stop == minimal.StageLex && result.Tokens.Len() > 0 {
		result.Tokens.Dump(os.Stdout)
	}
	if stop == minimal.StageSyntax && result.Tree != nil {
		minimal.PrintTree(os.Stdout, result.Tree)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "minimalc: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Ok")
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func reportVerbose(mainFile string, stop minimal.Stage, result *minimal.Result) {
	fmt.Fprintf(os.Stderr, "minimalc: compiling %s (stop at %s)\n", mainFile, stop)
	if result == nil {
		return
	}
	if result.Lines != nil {
		fmt.Fprintf(os.Stderr, "minimalc: %d preprocessed line(s)\n", len(result.Lines))
	}
	if result.Tokens.Len() > 0 {
		fmt.Fprintf(os.Stderr, "minimalc: %d token(s)\n", result.Tokens.Len())
	}
	if result.Tree != nil {
		fmt.Fprintln(os.Stderr, "minimalc: parsed a CST")
	}
	if result.Symbols != nil {
		fmt.Fprintf(os.Stderr, "minimalc: %d top-level symbol(s)\n", len(result.Symbols.Entries))
	}
	if result.Module != nil {
		fmt.Fprintf(os.Stderr, "minimalc: emitted %d function declaration(s)\n", len(result.Module.Funcs))
	}
}
