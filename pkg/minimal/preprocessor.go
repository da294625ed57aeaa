package minimal

import (
	"fmt"
	"strings"
)

// PreprocessError reports a line the preprocessor could not carry forward,
// either because it overran maxLineLength or because adding a trailing
// delimiter would. It plays the role of preprocess's LINE_TOO_LONG /
// CANT_ADD_DELIMITER prints.
type PreprocessError struct {
	Status Status
	Line   int
	Detail string
}

func (e *PreprocessError) Error() string {
	return fmt.Sprintf("%d: %s: %s", e.Line, e.Status, e.Detail)
}

func (e *PreprocessError) Unwrap() error {
	return e.Status
}

// maxLineLength bounds a raw source line, matching
// original_source/src/preprocessor.c's MAX_LINE_LENGTH.
const maxLineLength = 100

// noSemicolonAfter lists the trailing bytes after which Preprocess must not
// insert a statement delimiter, grounded on NO_SEMICOLON_AFTER.
const noSemicolonAfter = ":?#@$"

// noSemicolonExact lists whole fragments that never get a trailing
// semicolon regardless of their last byte, grounded on should_add_semicolon's
// three strcmp special cases.
var noSemicolonExact = []string{"<<<", "{{{", "!~>..<~!"}

func trimASCIISpace(s string) string {
	start := 0
	for start < len(s) && isASCIISpace(s[start]) {
		start++
	}
	end := len(s)
	for end > start && isASCIISpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

// shouldAddSemicolon mirrors should_add_semicolon: a fragment ending in one
// of noSemicolonAfter's bytes, or exactly matching one of the
// block-terminator spellings in noSemicolonExact, is left untouched.
func shouldAddSemicolon(fragment string) bool {
	if fragment == "" {
		return true
	}
	last := fragment[len(fragment)-1]
	for i := 0; i < len(noSemicolonAfter); i++ {
		if last == noSemicolonAfter[i] {
			return false
		}
	}
	for _, exact := range noSemicolonExact {
		if fragment == exact {
			return false
		}
	}
	return true
}

// Preprocess turns raw *.mini source lines (the CLI passes the lines of all
// its input files concatenated) into the delimited line stream Lex expects,
// the Go analogue of preprocess's per-file loop. Comment lines pass through untouched; every other line is
// split on ';' (strtok_r-style: runs of delimiters collapse and empty
// fragments are dropped), each fragment is trimmed, and a semicolon is
// appended unless shouldAddSemicolon says the fragment already ends a
// statement on its own.
func Preprocess(lines []string) ([]string, error) {
	if len(lines) == 0 {
		return nil, StatusFileEmpty
	}

	var out []string
	for lineIdx, raw := range lines {
		if len(raw) > maxLineLength {
			return nil, &PreprocessError{
				Status: StatusLineTooLong,
				Line:   lineIdx + 1,
				Detail: fmt.Sprintf("maximum is %d characters", maxLineLength),
			}
		}
		line := trimASCIISpace(raw)

		if isComment(line) {
			out = append(out, line)
			continue
		}

		for _, fragment := range strings.FieldsFunc(line, func(r rune) bool { return r == ';' }) {
			token := trimASCIISpace(fragment)
			if token == "" {
				continue
			}
			if shouldAddSemicolon(token) {
				if len(token) == maxLineLength {
					return nil, &PreprocessError{
						Status: StatusCannotAddDelimiter,
						Line:   lineIdx + 1,
						Detail: fmt.Sprintf("maximum is %d characters + 1 ';'", maxLineLength-1),
					}
				}
				out = append(out, token+";")
			} else {
				out = append(out, token)
			}
		}
	}

	return out, nil
}
