package editor

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// SyntaxClass is the lexical class owning one character, as answered by
// the highlighter collaborator.
type SyntaxClass int

const (
	ClassText SyntaxClass = iota
	ClassKeyword
	ClassString
	ClassComment
	ClassNumber
	ClassHeading
)

// Syntax is the query the core makes into the highlighter: one class
// per rune of a line. Implementations are line-local; cross-line state
// (block comments, strings) is the collaborator's concern and out of
// scope here.
type Syntax interface {
	LineClasses(line string) []SyntaxClass
}

// PlainSyntax classifies everything as plain text.
type PlainSyntax struct{}

func (PlainSyntax) LineClasses(line string) []SyntaxClass {
	return make([]SyntaxClass, len([]rune(line)))
}

// DetectSyntax returns the highlighter for the given filename.
func DetectSyntax(filename string) Syntax {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".go":
		return GoSyntax{}
	case ".md", ".markdown", ".mdx":
		return MarkdownSyntax{}
	default:
		return PlainSyntax{}
	}
}

// GoSyntax classifies a useful subset of Go lexing: keywords, line
// comments, strings, numbers.
type GoSyntax struct{}

var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true,
	"continue": true, "default": true, "defer": true, "else": true,
	"fallthrough": true, "for": true, "func": true, "go": true,
	"goto": true, "if": true, "import": true, "interface": true,
	"map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true,
	"var": true,
}

func (GoSyntax) LineClasses(line string) []SyntaxClass {
	runes := []rune(line)
	classes := make([]SyntaxClass, len(runes))

	i := 0
	for i < len(runes) {
		r := runes[i]

		// Line comment claims the rest of the line.
		if r == '/' && i+1 < len(runes) && runes[i+1] == '/' {
			for ; i < len(runes); i++ {
				classes[i] = ClassComment
			}
			break
		}

		// String and rune literals.
		if r == '"' || r == '\'' || r == '`' {
			quote := r
			classes[i] = ClassString
			i++
			for i < len(runes) {
				classes[i] = ClassString
				if runes[i] == '\\' && quote != '`' && i+1 < len(runes) {
					i++
					classes[i] = ClassString
					i++
					continue
				}
				if runes[i] == quote {
					i++
					break
				}
				i++
			}
			continue
		}

		// Numbers.
		if unicode.IsDigit(r) {
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.' ||
				runes[i] == 'x' || runes[i] == '_') {
				classes[i] = ClassNumber
				i++
			}
			continue
		}

		// Identifiers, checked against the keyword table.
		if unicode.IsLetter(r) || r == '_' {
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			if goKeywords[string(runes[start:i])] {
				for j := start; j < i; j++ {
					classes[j] = ClassKeyword
				}
			}
			continue
		}

		i++
	}
	return classes
}

// MarkdownSyntax classifies headings, quotes and inline code spans.
type MarkdownSyntax struct{}

var (
	reHeading = regexp.MustCompile(`^#{1,6}\s`)
	reQuote   = regexp.MustCompile(`^>\s`)
)

func (MarkdownSyntax) LineClasses(line string) []SyntaxClass {
	runes := []rune(line)
	classes := make([]SyntaxClass, len(runes))

	if reHeading.MatchString(line) {
		for i := range classes {
			classes[i] = ClassHeading
		}
		return classes
	}
	if reQuote.MatchString(line) {
		for i := range classes {
			classes[i] = ClassComment
		}
		return classes
	}

	// Inline code: `code`
	inCode := false
	for i, r := range runes {
		if r == '`' {
			classes[i] = ClassString
			inCode = !inCode
			continue
		}
		if inCode {
			classes[i] = ClassString
		}
	}
	return classes
}
