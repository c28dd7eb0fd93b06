package mvgen

// Lexer tokenizes template text. It is deliberately permissive: host-language
// expressions inside braces and brackets are tokenized with the same rules as
// the notation itself, and the parser re-slices the raw text between
// delimiters when it needs an expression verbatim. The lexer never fails;
// malformed input surfaces as TokenError tokens the parser diagnoses.
type Lexer struct {
	src  *Source
	pos  int // current byte offset into src.Text
	base int // offset of the first byte of this lexer's window
	end  int // offset one past the last byte of this lexer's window
}

// NewLexer creates a lexer over the whole source.
func NewLexer(src *Source) *Lexer {
	return &Lexer{src: src, pos: 0, base: 0, end: len(src.Text)}
}

// NewLexerAt creates a lexer over src.Text[start:end]. Token spans stay
// absolute so diagnostics from embedded template blocks point into the
// enclosing file.
func NewLexerAt(src *Source, start, end int) *Lexer {
	if end > len(src.Text) {
		end = len(src.Text)
	}
	if start < 0 {
		start = 0
	}
	return &Lexer{src: src, pos: start, base: start, end: end}
}

// Tokenize consumes the whole window and returns the token stream,
// terminated by a single EOF token.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.next()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

func (l *Lexer) next() Token {
	l.skipTrivia()
	if l.pos >= l.end {
		return Token{Type: TokenEOF, Span: Span{Start: l.end, End: l.end}}
	}

	start := l.pos
	ch := l.src.Text[l.pos]

	switch {
	case ch == '"':
		return l.lexString()
	case isDigit(ch):
		return l.lexNumber()
	case isIdentStart(ch):
		return l.lexIdent()
	}

	l.pos++
	span := Span{Start: start, End: l.pos}
	switch ch {
	case '.':
		return Token{Type: TokenDot, Span: span}
	case '#':
		return Token{Type: TokenHash, Span: span}
	case ':':
		return Token{Type: TokenColon, Span: span}
	case ';':
		return Token{Type: TokenSemicolon, Span: span}
	case '=':
		return Token{Type: TokenEquals, Span: span}
	case '|':
		return Token{Type: TokenPipe, Span: span}
	case '!':
		return Token{Type: TokenBang, Span: span}
	case '-':
		return Token{Type: TokenMinus, Span: span}
	case ',':
		return Token{Type: TokenComma, Span: span}
	case '<':
		return Token{Type: TokenLAngle, Span: span}
	case '>':
		return Token{Type: TokenRAngle, Span: span}
	case '{':
		return Token{Type: TokenLBrace, Span: span}
	case '}':
		return Token{Type: TokenRBrace, Span: span}
	case '[':
		return Token{Type: TokenLBracket, Span: span}
	case ']':
		return Token{Type: TokenRBracket, Span: span}
	case '(':
		return Token{Type: TokenLParen, Span: span}
	case ')':
		return Token{Type: TokenRParen, Span: span}
	}
	return Token{Type: TokenPunct, Literal: string(ch), Span: span}
}

// skipTrivia advances past whitespace and comments. Line comments run to the
// end of line; block comments nest the way Rust's do rather than C's, since
// host expressions may contain commented-out blocks.
func (l *Lexer) skipTrivia() {
	for l.pos < l.end {
		ch := l.src.Text[l.pos]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			l.pos++
		case ch == '/' && l.pos+1 < l.end && l.src.Text[l.pos+1] == '/':
			for l.pos < l.end && l.src.Text[l.pos] != '\n' {
				l.pos++
			}
		case ch == '/' && l.pos+1 < l.end && l.src.Text[l.pos+1] == '*':
			depth := 1
			l.pos += 2
			for l.pos < l.end && depth > 0 {
				if l.src.Text[l.pos] == '/' && l.pos+1 < l.end && l.src.Text[l.pos+1] == '*' {
					depth++
					l.pos += 2
				} else if l.src.Text[l.pos] == '*' && l.pos+1 < l.end && l.src.Text[l.pos+1] == '/' {
					depth--
					l.pos += 2
				} else {
					l.pos++
				}
			}
		default:
			return
		}
	}
}

func (l *Lexer) lexString() Token {
	start := l.pos
	l.pos++ // opening quote
	for l.pos < l.end {
		ch := l.src.Text[l.pos]
		if ch == '\\' && l.pos+1 < l.end {
			l.pos += 2
			continue
		}
		if ch == '"' {
			l.pos++
			return Token{
				Type:    TokenString,
				Literal: l.src.Text[start:l.pos],
				Span:    Span{Start: start, End: l.pos},
			}
		}
		l.pos++
	}
	return Token{
		Type:    TokenError,
		Literal: "unterminated string literal",
		Span:    Span{Start: start, End: l.pos},
	}
}

func (l *Lexer) lexNumber() Token {
	start := l.pos
	for l.pos < l.end && isDigit(l.src.Text[l.pos]) {
		l.pos++
	}
	typ := TokenInt
	if l.pos+1 < l.end && l.src.Text[l.pos] == '.' && isDigit(l.src.Text[l.pos+1]) {
		typ = TokenFloat
		l.pos++
		for l.pos < l.end && isDigit(l.src.Text[l.pos]) {
			l.pos++
		}
	}
	return Token{
		Type:    typ,
		Literal: l.src.Text[start:l.pos],
		Span:    Span{Start: start, End: l.pos},
	}
}

func (l *Lexer) lexIdent() Token {
	start := l.pos
	for l.pos < l.end && isIdentCont(l.src.Text[l.pos]) {
		l.pos++
	}
	return Token{
		Type:    TokenIdent,
		Literal: l.src.Text[start:l.pos],
		Span:    Span{Start: start, End: l.pos},
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentCont(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
