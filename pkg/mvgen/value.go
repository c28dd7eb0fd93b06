package mvgen

// parseValue parses the value after `=`. When nothing value-shaped follows,
// it records a diagnostic and returns the missing-value sentinel without
// consuming the offending token, so the token can still start the next
// attribute.
func (p *Parser) parseValue() *Value {
	tok := p.cur.Peek()
	switch tok.Type {
	case TokenString, TokenInt, TokenFloat:
		p.cur.Next()
		return &Value{Kind: ValueLiteral, Lit: tok, Sp: tok.Span}

	case TokenMinus:
		num := p.cur.PeekN(1)
		if (num.Type == TokenInt || num.Type == TokenFloat) && tok.adjacentTo(num) {
			p.cur.Next()
			p.cur.Next()
			lit := Token{
				Type:    num.Type,
				Literal: "-" + num.Literal,
				Span:    tok.Span.Union(num.Span),
			}
			return &Value{Kind: ValueLiteral, Lit: lit, Sp: lit.Span}
		}

	case TokenIdent:
		if tok.Literal == "true" || tok.Literal == "false" {
			p.cur.Next()
			return &Value{Kind: ValueLiteral, Lit: tok, Sp: tok.Span}
		}
		// prefixed bracket: f["{} items", count()]
		if next := p.cur.PeekN(1); next.Type == TokenLBracket && tok.adjacentTo(next) {
			p.cur.Next()
			code, span, ok := p.captureBalanced(TokenLBracket, TokenRBracket)
			if !ok {
				return &Value{Kind: ValueMissing, Sp: tok.Span}
			}
			full := tok.Span.Union(span)
			if code == "" {
				p.errs.Add(ErrExpectedValue, full, "expected value after `=`")
				return &Value{Kind: ValueMissing, Sp: full}
			}
			return &Value{Kind: ValueBracket, Code: code, Prefix: tok.Literal, Sp: full}
		}
		// a bare ident is most likely the next attribute's name
		p.errs.AddHint(ErrExpectedValue, p.cur.HereSpan(),
			"you may have meant to wrap this in braces",
			"expected value after `=`")
		return &Value{Kind: ValueMissing, Sp: p.cur.HereSpan()}

	case TokenLBrace:
		code, span, ok := p.captureBalanced(TokenLBrace, TokenRBrace)
		if !ok {
			return &Value{Kind: ValueMissing, Sp: tok.Span}
		}
		if code == "" {
			p.errs.Add(ErrExpectedValue, span, "expected value after `=`")
			return &Value{Kind: ValueMissing, Sp: span}
		}
		return &Value{Kind: ValueBlock, Code: code, Sp: span}

	case TokenLBracket:
		code, span, ok := p.captureBalanced(TokenLBracket, TokenRBracket)
		if !ok {
			return &Value{Kind: ValueMissing, Sp: tok.Span}
		}
		if code == "" {
			p.errs.Add(ErrExpectedValue, span, "expected value after `=`")
			return &Value{Kind: ValueMissing, Sp: span}
		}
		return &Value{Kind: ValueBracket, Code: code, Sp: span}
	}

	p.errs.Add(ErrExpectedValue, p.cur.HereSpan(), "expected value after `=`")
	return &Value{Kind: ValueMissing, Sp: p.cur.HereSpan()}
}
