// Package mvgen compiles the mview template notation into Go source code
// that builds reactive UI component trees through a fluent builder API.
// The notation trades HTML's angle-bracket verbosity for a terse
// selector/attribute/children syntax:
//
//	div.card #main {
//	    h1 { "Hello" }
//	    input type="text" checked;
//	    ProgressBar value=[count()] on:click={handle};
//	}
//
// The compiler is a classic three stage pipeline: a lexer producing spanned
// tokens, a recursive descent parser producing a node tree, and a generator
// walking that tree to emit builder-call expressions. Diagnostics accumulate
// across the whole pass so one invocation can report several independent
// problems.
package mvgen

import "fmt"

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Special tokens
	TokenEOF   TokenType = iota // end of input
	TokenError                  // lexer error

	// Literals and identifiers
	TokenIdent  // identifier segment (kebab joining happens in the parser)
	TokenString // string literal: "..."
	TokenInt    // integer literal: 123
	TokenFloat  // float literal: 1.23

	// Punctuation the grammar cares about
	TokenDot       // .
	TokenHash      // #
	TokenColon     // :
	TokenSemicolon // ;
	TokenEquals    // =
	TokenPipe      // |
	TokenBang      // !
	TokenMinus     // -
	TokenComma     // ,
	TokenLAngle    // <
	TokenRAngle    // >
	TokenLBrace    // {
	TokenRBrace    // }
	TokenLBracket  // [
	TokenRBracket  // ]
	TokenLParen    // (
	TokenRParen    // )

	// Anything else inside host expressions (operators, ampersands, ...).
	// The parser only ever skips over these while balancing delimiters.
	TokenPunct
)

// tokenNames maps token types to their string names for debugging.
var tokenNames = map[TokenType]string{
	TokenEOF:       "EOF",
	TokenError:     "Error",
	TokenIdent:     "Ident",
	TokenString:    "String",
	TokenInt:       "Int",
	TokenFloat:     "Float",
	TokenDot:       ".",
	TokenHash:      "#",
	TokenColon:     ":",
	TokenSemicolon: ";",
	TokenEquals:    "=",
	TokenPipe:      "|",
	TokenBang:      "!",
	TokenMinus:     "-",
	TokenComma:     ",",
	TokenLAngle:    "<",
	TokenRAngle:    ">",
	TokenLBrace:    "{",
	TokenRBrace:    "}",
	TokenLBracket:  "[",
	TokenRBracket:  "]",
	TokenLParen:    "(",
	TokenRParen:    ")",
	TokenPunct:     "Punct",
}

// String returns a human-readable name for the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// Span is a half-open byte range [Start, End) into the source text.
type Span struct {
	Start int
	End   int
}

// Union returns the smallest span covering both s and other.
func (s Span) Union(other Span) Span {
	if other == (Span{}) {
		return s
	}
	if s == (Span{}) {
		return other
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Token represents a lexical token with its type, literal text, and span.
type Token struct {
	Type    TokenType
	Literal string
	Span    Span
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Literal == "" {
		return fmt.Sprintf("%s at %d..%d", t.Type, t.Span.Start, t.Span.End)
	}
	lit := t.Literal
	if len(lit) > 20 {
		lit = lit[:17] + "..."
	}
	return fmt.Sprintf("%s(%q) at %d..%d", t.Type, lit, t.Span.Start, t.Span.End)
}

// adjacentTo reports whether t ends exactly where next begins, with no
// intervening whitespace. Kebab identifiers, selector prefixes and value
// prefixes are only recognized across adjacent tokens.
func (t Token) adjacentTo(next Token) bool {
	return t.Span.End == next.Span.Start
}

// Position is a human-oriented source location for diagnostics.
type Position struct {
	File   string
	Line   int // 1-based
	Column int // 1-based, in bytes
}

// String returns a formatted position string.
func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Source pairs template text with its origin name and resolves spans into
// positions and text slices. The whole pipeline shares one Source per
// invocation.
type Source struct {
	Name string
	Text string

	lineOffsets []int // byte offset of the start of each line
}

// NewSource creates a Source and indexes its line starts.
func NewSource(name, text string) *Source {
	offsets := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return &Source{Name: name, Text: text, lineOffsets: offsets}
}

// Pos resolves a byte offset into a Position.
func (s *Source) Pos(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.Text) {
		offset = len(s.Text)
	}
	// binary search for the containing line
	lo, hi := 0, len(s.lineOffsets)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if s.lineOffsets[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return Position{
		File:   s.Name,
		Line:   lo + 1,
		Column: offset - s.lineOffsets[lo] + 1,
	}
}

// Slice returns the text covered by span.
func (s *Source) Slice(span Span) string {
	if span.Start < 0 || span.End > len(s.Text) || span.Start > span.End {
		return ""
	}
	return s.Text[span.Start:span.End]
}
