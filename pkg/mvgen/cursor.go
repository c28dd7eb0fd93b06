package mvgen

// Cursor walks a token stream with arbitrary lookahead and checkpointing.
// The parser forks with Mark/Reset wherever the grammar is ambiguous, most
// notably at a brace in attribute position, which may open a shorthand
// attribute or the element's children.
type Cursor struct {
	tokens []Token
	idx    int
}

// NewCursor wraps a token stream. The stream must end with an EOF token.
func NewCursor(tokens []Token) *Cursor {
	return &Cursor{tokens: tokens}
}

// Peek returns the current token without consuming it.
func (c *Cursor) Peek() Token {
	return c.PeekN(0)
}

// PeekN returns the token n positions ahead without consuming anything.
func (c *Cursor) PeekN(n int) Token {
	i := c.idx + n
	if i >= len(c.tokens) {
		return c.tokens[len(c.tokens)-1] // EOF
	}
	return c.tokens[i]
}

// Next consumes and returns the current token. At end of input it keeps
// returning the EOF token.
func (c *Cursor) Next() Token {
	tok := c.Peek()
	if c.idx < len(c.tokens)-1 {
		c.idx++
	}
	return tok
}

// AtEOF reports whether the cursor is at end of input.
func (c *Cursor) AtEOF() bool {
	return c.Peek().Type == TokenEOF
}

// Mark returns a checkpoint that Reset can restore.
func (c *Cursor) Mark() int {
	return c.idx
}

// Reset rewinds the cursor to a checkpoint from Mark.
func (c *Cursor) Reset(mark int) {
	c.idx = mark
}

// Is reports whether the current token has the given type.
func (c *Cursor) Is(t TokenType) bool {
	return c.Peek().Type == t
}

// Eat consumes the current token if it has the given type.
func (c *Cursor) Eat(t TokenType) (Token, bool) {
	if c.Is(t) {
		return c.Next(), true
	}
	return Token{}, false
}

// HereSpan returns a zero-width span at the current token's start, used to
// anchor diagnostics about something missing.
func (c *Cursor) HereSpan() Span {
	s := c.Peek().Span
	return Span{Start: s.Start, End: s.Start}
}
