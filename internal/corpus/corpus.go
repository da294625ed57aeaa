// Package corpus generates random valid Minimal token sequences for table
// and fuzz-style tests, the Go analogue of the teacher's internal/test
// helper (internal/test/lexer.go), rebuilt over Minimal's own lexeme
// vocabulary instead of the teacher's brace-delimited language.
package corpus

import (
	"math/rand"
	"strings"
)

// validTokens lists one example lexeme per keyword/operator family a
// preprocessed line may legally contain, grounded on the keyword tables in
// pkg/minimal/lexer.go (branch/terminating/control/program-block/literal
// keywords, separators, operators) plus a representative identifier,
// number, and string literal of each shape. Entries are ';'-delimited, so
// none may contain a literal semicolon.
const validTokens = "}}};M:module_name;{{{;>>>;!~>..<~!;<<<;$$;main;(;<#>;x;);<-;~$;??;~?;##;#=;~#;@@;~@;::;M::;C::;!;->;[;];{;};|;,;.;+;-;*;/;%;**;\\/;^;@;:=;+=;-=;*=;/=;%=;++;--;=;~=;<;>;<=;>=;&;V;~;T;F;N;...;[..];_;C:printf;123;-123;1.5;-1.5e10;\"a string\";\"\";\"escaped \\\" quote\""

// GetRandomTokens returns size space-separated random lexemes drawn from
// Minimal's vocabulary, suitable for feeding straight into Preprocess/Lex.
func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

// GetRandomTokensWithSep is GetRandomTokens with a caller-chosen separator,
// letting a test build e.g. a single already-delimited (";"-joined) line.
func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}
