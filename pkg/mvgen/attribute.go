package mvgen

// parseAttrs consumes attributes until a terminator token. An opening brace
// is ambiguous here: `{name}` is a shorthand attribute, anything else braced
// starts the children block, so the brace case forks the cursor.
func (p *Parser) parseAttrs(isComponent bool) []Attr {
	var attrs []Attr
	for {
		switch p.cur.Peek().Type {
		case TokenIdent:
			attrs = append(attrs, p.parseAttr(isComponent))
		case TokenLBrace:
			attr, ok := p.parseShorthandAttr()
			if !ok {
				return attrs
			}
			attrs = append(attrs, attr)
		default:
			return attrs
		}
	}
}

// parseShorthandAttr tries {name}; on anything else it rewinds and reports
// no attribute so the brace can open children instead.
func (p *Parser) parseShorthandAttr() (Attr, bool) {
	mark := p.cur.Mark()
	open := p.cur.Next()
	if !p.cur.Is(TokenIdent) {
		p.cur.Reset(mark)
		return Attr{}, false
	}
	key := p.parseKebabIdent()
	close, ok := p.cur.Eat(TokenRBrace)
	if !ok {
		p.cur.Reset(mark)
		return Attr{}, false
	}
	return Attr{
		Kind: AttrShorthand,
		Key:  key,
		Sp:   open.Span.Union(close.Span),
	}, true
}

// parseAttr parses key, key=value, or a dir:key directive.
func (p *Parser) parseAttr(isComponent bool) Attr {
	key := p.parseKebabIdent()

	if colon := p.cur.Peek(); colon.Type == TokenColon && key.Sp.End == colon.Span.Start {
		return p.parseDirective(key, isComponent)
	}

	if _, ok := p.cur.Eat(TokenEquals); ok {
		val := p.parseValue()
		return Attr{
			Kind:  AttrKV,
			Key:   key,
			Value: val,
			Sp:    key.Sp.Union(val.Sp),
		}
	}
	return Attr{Kind: AttrBool, Key: key, Sp: key.Sp}
}

// unquoteLit strips the surrounding quotes from a string literal token.
func unquoteLit(lit string) string {
	if len(lit) >= 2 && lit[0] == '"' && lit[len(lit)-1] == '"' {
		return lit[1 : len(lit)-1]
	}
	return lit
}

// parseDirective parses dir:key, dir:key:modifier, and the directive's value
// per its namespace rules. The colon is the current token.
func (p *Parser) parseDirective(dir Ident, isComponent bool) Attr {
	p.cur.Next() // :

	if !knownDirectives[dir.Raw] {
		p.errs.Add(ErrUnknownDirective, dir.Sp, "unknown directive `%s:`", dir.Raw)
	}

	attr := Attr{Kind: AttrDirective, Dir: dir.Raw, Sp: dir.Sp}
	switch {
	case p.cur.Is(TokenIdent):
		attr.Key = p.parseKebabIdent()
	case p.cur.Is(TokenString) && (dir.Raw == DirClass || dir.Raw == DirStyle):
		// string keys allow class names that are not valid idents
		tok := p.cur.Next()
		attr.Key = Ident{Raw: unquoteLit(tok.Literal), Sp: tok.Span}
	case p.cur.Is(TokenLBrace) && dir.Raw != DirClone:
		// directive shorthand: class:{primary} binds key and value
		if attr2, ok := p.parseShorthandAttr(); ok {
			attr.Key = attr2.Key
			attr.Value = &Value{Kind: ValueBlock, Code: attr2.Key.Snake(), Sp: attr2.Sp}
			attr.Sp = attr.Sp.Union(attr2.Sp)
			return attr
		}
		p.errs.Add(ErrInvalidIdent, p.cur.HereSpan(), "expected a name after `%s:`", dir.Raw)
		return attr
	default:
		p.errs.Add(ErrInvalidIdent, p.cur.HereSpan(), "expected a name after `%s:`", dir.Raw)
		return attr
	}
	attr.Sp = attr.Sp.Union(attr.Key.Sp)

	// trailing :modifier
	if colon := p.cur.Peek(); colon.Type == TokenColon &&
		attr.Key.Sp.End == colon.Span.Start && p.cur.PeekN(1).Type == TokenIdent {
		p.cur.Next()
		mod := p.parseKebabIdent()
		attr.Modifier = mod
		attr.Sp = attr.Sp.Union(mod.Sp)
		switch {
		case dir.Raw != DirOn:
			p.errs.Add(ErrModifierNotSupported, mod.Sp,
				"`%s:` does not take modifiers", dir.Raw)
		case mod.Raw != "undelegated":
			p.errs.AddHint(ErrUnknownModifier, mod.Sp,
				"only `undelegated` is supported",
				"unknown modifier `%s`", mod.Raw)
		}
	}

	switch dir.Raw {
	case DirClone:
		if eq, ok := p.cur.Eat(TokenEquals); ok {
			val := p.parseValue()
			p.errs.Add(ErrClonesTakeNoValue, eq.Span.Union(val.Sp),
				"`clone:` does not take a value")
			attr.Sp = attr.Sp.Union(val.Sp)
		}
	case DirOn, DirProp:
		if _, ok := p.cur.Eat(TokenEquals); ok {
			attr.Value = p.parseValue()
		} else {
			p.errs.Add(ErrExpectedValue, p.cur.HereSpan(),
				"directive `%s:%s` requires a value", dir.Raw, attr.Key.Raw)
			attr.Value = &Value{Kind: ValueMissing, Sp: p.cur.HereSpan()}
		}
		attr.Sp = attr.Sp.Union(attr.Value.Sp)
	default:
		// attr:, class:, style:, use: take an optional value
		if _, ok := p.cur.Eat(TokenEquals); ok {
			attr.Value = p.parseValue()
			attr.Sp = attr.Sp.Union(attr.Value.Sp)
		}
	}
	return attr
}
