package mvgen

import "strings"

// Parser builds the node tree from a token stream. Parsing is best effort:
// every diagnostic is recorded on the shared ErrorList and the parser
// recovers locally, so a single pass reports as many independent problems as
// it can. Callers must check the list before trusting generated output.
type Parser struct {
	src  *Source
	cur  *Cursor
	errs *ErrorList
}

// NewParser creates a parser over the given source window.
func NewParser(src *Source, tokens []Token, errs *ErrorList) *Parser {
	return &Parser{src: src, cur: NewCursor(tokens), errs: errs}
}

// Parse consumes the whole token stream and returns the top level nodes.
func (p *Parser) Parse() []Node {
	return p.parseNodes(TokenEOF, false)
}

// parseNodes parses nodes until stopAt (or EOF). inComponent permits slot
// children.
func (p *Parser) parseNodes(stopAt TokenType, inComponent bool) []Node {
	var nodes []Node
	for {
		tok := p.cur.Peek()
		if tok.Type == stopAt || tok.Type == TokenEOF {
			return nodes
		}
		if node := p.parseNode(stopAt, inComponent); node != nil {
			nodes = append(nodes, node)
		}
	}
}

// parseNode parses one child node, or returns nil after recovering from a
// diagnostic.
func (p *Parser) parseNode(stopAt TokenType, inComponent bool) Node {
	tok := p.cur.Peek()
	switch tok.Type {
	case TokenString:
		p.cur.Next()
		return &Text{Tok: tok, Sp: tok.Span}

	case TokenLBrace:
		code, span, ok := p.captureBalanced(TokenLBrace, TokenRBrace)
		if !ok {
			return nil
		}
		return &Block{Code: code, Sp: span}

	case TokenLBracket:
		code, span, ok := p.captureBalanced(TokenLBracket, TokenRBracket)
		if !ok {
			return nil
		}
		return &Bracket{Code: code, Sp: span}

	case TokenBang:
		return p.parseDoctype()

	case TokenSemicolon:
		p.cur.Next()
		p.errs.Add(ErrStraySemicolon, tok.Span, "extra semicolon")
		return nil

	case TokenIdent:
		// prefixed bracket: f["{} items", count()]
		if p.cur.PeekN(1).Type == TokenLBracket && tok.adjacentTo(p.cur.PeekN(1)) {
			p.cur.Next()
			code, span, ok := p.captureBalanced(TokenLBracket, TokenRBracket)
			if !ok {
				return nil
			}
			return &Bracket{Code: code, Prefix: tok.Literal, Sp: tok.Span.Union(span)}
		}
		// slot:Name under a component parent
		if tok.Literal == "slot" && p.cur.PeekN(1).Type == TokenColon && tok.adjacentTo(p.cur.PeekN(1)) {
			return p.parseSlot(stopAt, inComponent)
		}
		return p.parseElementOrComponent(stopAt)

	case TokenInt, TokenFloat:
		p.cur.Next()
		p.errs.AddHint(ErrInvalidChild, tok.Span,
			"wrap it in quotes or braces",
			"literal `%s` is not a valid child", tok.Literal)
		return &Text{Tok: Token{Type: TokenString, Literal: `""`, Span: tok.Span}, Sp: tok.Span}

	case TokenError:
		p.cur.Next()
		p.errs.Add(ErrUnexpectedEnd, tok.Span, "%s", tok.Literal)
		return nil
	}

	p.errs.Add(ErrInvalidChild, tok.Span, "%q is not valid here", p.src.Slice(tok.Span))
	p.recoverToNodeBoundary(stopAt)
	return nil
}

// parseDoctype parses `!DOCTYPE html;`.
func (p *Parser) parseDoctype() Node {
	bang := p.cur.Next()
	const hint = "only `!DOCTYPE html;` is supported"

	kw, ok := p.cur.Eat(TokenIdent)
	if !ok || kw.Literal != "DOCTYPE" {
		p.errs.AddHint(ErrInvalidIdent, p.cur.HereSpan(), hint, "expected `DOCTYPE` after `!`")
		return nil
	}
	val, ok := p.cur.Eat(TokenIdent)
	if !ok {
		p.errs.AddHint(ErrInvalidIdent, p.cur.HereSpan(), hint, "expected doctype value after `DOCTYPE`")
		return nil
	}
	semi, ok := p.cur.Eat(TokenSemicolon)
	if !ok {
		p.errs.AddHint(ErrUnterminatedElement, p.cur.HereSpan(), hint, "expected `;` after doctype")
		semi = val
	}
	return &Doctype{
		Value: Ident{Raw: val.Literal, Sp: val.Span},
		Sp:    bang.Span.Union(semi.Span),
	}
}

// parseSlot parses slot:Name and its component body. Slots are only valid
// directly inside a component's children.
func (p *Parser) parseSlot(stopAt TokenType, inComponent bool) Node {
	slotTok := p.cur.Next() // slot
	p.cur.Next()            // :

	node := p.parseElementOrComponent(stopAt)
	if node == nil {
		return nil
	}
	comp, ok := node.(*Component)
	if !ok {
		p.errs.Add(ErrInvalidIdent, node.Span(), "slot name must be capitalized")
		return node
	}
	comp.Sp = slotTok.Span.Union(comp.Sp)
	if !inComponent {
		p.errs.Add(ErrSlotOutsideComponent, comp.Sp, "slots can only appear inside a component")
	}
	for _, s := range comp.Selectors {
		p.errs.Add(ErrInvalidIdent, s.Sp, "slots do not take selectors")
	}
	for _, a := range comp.Attrs {
		if a.Kind == AttrDirective && a.Dir != DirClone {
			p.errs.Add(ErrUnsupportedDirective, a.Sp,
				"`%s:` is not supported on slots", a.Dir)
		}
	}
	return &Slot{Component: *comp}
}

// parseElementOrComponent parses a tag or component invocation, including
// selectors, attributes, optional closure params, and children or a
// semicolon terminator.
func (p *Parser) parseElementOrComponent(stopAt TokenType) Node {
	path, isComponent := p.parsePath()
	start := path[0].Sp

	var generics string
	if isComponent {
		if p.cur.Is(TokenLAngle) && p.cur.Peek().Span.Start == path[len(path)-1].Sp.End {
			generics = p.captureGenerics()
		}
	}

	selectors := p.parseSelectors()
	attrs := p.parseAttrs(isComponent)

	end := path[len(path)-1].Sp
	if len(selectors) > 0 {
		end = end.Union(selectors[len(selectors)-1].Sp)
	}
	if len(attrs) > 0 {
		end = end.Union(attrs[len(attrs)-1].Sp)
	}

	children, childEnd := p.parseTerminator(stopAt, isComponent, end)
	if childEnd != (Span{}) {
		end = end.Union(childEnd)
	}

	if isComponent {
		return &Component{
			Path:      path,
			Generics:  generics,
			Selectors: selectors,
			Attrs:     attrs,
			Children:  children,
			Sp:        start.Union(end),
		}
	}
	tag := path[0]
	return &Element{
		Tag:       tag,
		Kind:      classifyTag(tag.Raw),
		Selectors: selectors,
		Attrs:     attrs,
		Children:  children,
		Sp:        start.Union(end),
	}
}

// parsePath consumes a possibly dotted name. A dotted chain ending in an
// uppercase-led segment is a component path (layout.Header); anything else
// is an element tag with the dots left for selector parsing. The fork is
// resolved by speculative consumption.
func (p *Parser) parsePath() ([]Ident, bool) {
	first := p.parseKebabIdent()
	segs := []Ident{first}
	marks := []int{p.cur.Mark()}

	// kebab names cannot qualify a path
	if !first.Used {
		for p.cur.Is(TokenDot) && p.cur.PeekN(1).Type == TokenIdent {
			// a kebab segment ends the chain
			if p.cur.PeekN(1).adjacentTo(p.cur.PeekN(2)) && p.cur.PeekN(2).Type == TokenMinus {
				break
			}
			p.cur.Next()
			seg := p.cur.Next()
			segs = append(segs, Ident{Raw: seg.Literal, Sp: seg.Span})
			marks = append(marks, p.cur.Mark())
		}
	}

	// keep segments up to the last uppercase-led one
	last := -1
	if !first.Used {
		for i, seg := range segs {
			if isComponentName(seg.Raw) {
				last = i
			}
		}
	}
	if last < 0 {
		p.cur.Reset(marks[0])
		return segs[:1], false
	}
	p.cur.Reset(marks[last])
	return segs[:last+1], true
}

// parseKebabIdent joins adjacent ident, int, and dash tokens into one name:
// grid-cols-2.
func (p *Parser) parseKebabIdent() Ident {
	first := p.cur.Next()
	id := Ident{Raw: first.Literal, Sp: first.Span}
	prev := first
	for {
		dash := p.cur.Peek()
		seg := p.cur.PeekN(1)
		if dash.Type != TokenMinus || !prev.adjacentTo(dash) {
			return id
		}
		if (seg.Type != TokenIdent && seg.Type != TokenInt) || !dash.adjacentTo(seg) {
			return id
		}
		p.cur.Next()
		p.cur.Next()
		id.Raw += "-" + seg.Literal
		id.Sp = id.Sp.Union(seg.Span)
		id.Used = true
		prev = seg
	}
}

// parseSelectors consumes .class and #id shorthands after a name.
func (p *Parser) parseSelectors() []Selector {
	var sels []Selector
	for {
		tok := p.cur.Peek()
		var kind SelectorKind
		switch tok.Type {
		case TokenDot:
			kind = SelectorClass
		case TokenHash:
			kind = SelectorID
		default:
			return sels
		}
		if p.cur.PeekN(1).Type != TokenIdent {
			return sels
		}
		p.cur.Next()
		name := p.parseKebabIdent()
		sels = append(sels, Selector{Kind: kind, Name: name, Sp: tok.Span.Union(name.Sp)})
	}
}

// parseTerminator handles how an element or component ends: a semicolon,
// a children block, closure params followed by a children block, or an
// implicit end at the enclosing scope boundary. Any other token is an
// unterminated element.
func (p *Parser) parseTerminator(stopAt TokenType, isComponent bool, soFar Span) (*Children, Span) {
	tok := p.cur.Peek()
	switch tok.Type {
	case TokenSemicolon:
		p.cur.Next()
		return nil, tok.Span

	case TokenLBrace:
		children := p.parseChildrenBlock(TokenRBrace, isComponent)
		return children, children.Sp

	case TokenLParen:
		children := p.parseChildrenBlock(TokenRParen, isComponent)
		return children, children.Sp

	case TokenPipe:
		params, paramSpan, ok := p.captureClosureParams()
		if !ok {
			return nil, paramSpan
		}
		next := p.cur.Peek()
		if next.Type != TokenLBrace && next.Type != TokenLParen {
			p.errs.Add(ErrExpectedChildren, p.cur.HereSpan(), "expected children after closure parameters")
			return nil, paramSpan
		}
		closer := TokenRBrace
		if next.Type == TokenLParen {
			closer = TokenRParen
		}
		children := p.parseChildrenBlock(closer, isComponent)
		children.Params = params
		children.HasFn = true
		children.Sp = paramSpan.Union(children.Sp)
		return children, children.Sp

	case stopAt, TokenEOF:
		// implicit termination at scope end
		return nil, Span{}
	}

	p.errs.AddHint(ErrUnterminatedElement, tok.Span,
		"terminate it with `;` or give it children with `{ ... }`",
		"unterminated element")
	return nil, Span{}
}

// parseChildrenBlock parses a `{ ... }` or `( ... )` child list. The opener
// is the current token.
func (p *Parser) parseChildrenBlock(closer TokenType, isComponent bool) *Children {
	open := p.cur.Next()
	nodes := p.parseNodes(closer, isComponent)
	end := open.Span
	if close, ok := p.cur.Eat(closer); ok {
		end = close.Span
	} else {
		p.errs.Add(ErrUnexpectedEnd, p.cur.HereSpan(),
			"unexpected end of input, expected `%s`", closer)
		if len(nodes) > 0 {
			end = nodes[len(nodes)-1].Span()
		}
	}
	return &Children{Nodes: nodes, Sp: open.Span.Union(end)}
}

// captureClosureParams captures the raw text between |pipes|.
func (p *Parser) captureClosureParams() (string, Span, bool) {
	open := p.cur.Next()
	for {
		tok := p.cur.Peek()
		if tok.Type == TokenEOF {
			p.errs.Add(ErrUnexpectedEnd, p.cur.HereSpan(),
				"unexpected end of input, expected `|`")
			return "", open.Span, false
		}
		if tok.Type == TokenPipe {
			p.cur.Next()
			raw := p.src.Slice(Span{Start: open.Span.End, End: tok.Span.Start})
			return strings.TrimSpace(raw), open.Span.Union(tok.Span), true
		}
		p.cur.Next()
	}
}

// captureGenerics captures the raw text inside <...>, balancing nested
// angle brackets.
func (p *Parser) captureGenerics() string {
	open := p.cur.Next()
	depth := 1
	for {
		tok := p.cur.Peek()
		switch tok.Type {
		case TokenEOF:
			p.errs.Add(ErrUnexpectedEnd, p.cur.HereSpan(),
				"unexpected end of input, expected `>`")
			return ""
		case TokenLAngle:
			depth++
		case TokenRAngle:
			depth--
			if depth == 0 {
				p.cur.Next()
				return strings.TrimSpace(p.src.Slice(Span{Start: open.Span.End, End: tok.Span.Start}))
			}
		}
		p.cur.Next()
	}
}

// captureBalanced captures the raw text between a balanced open/close pair.
// The opener is the current token. Returns the text inside the delimiters
// and the span including them.
func (p *Parser) captureBalanced(openType, closeType TokenType) (string, Span, bool) {
	open := p.cur.Next()
	depth := 1
	for {
		tok := p.cur.Peek()
		switch tok.Type {
		case TokenEOF:
			p.errs.Add(ErrUnexpectedEnd, p.cur.HereSpan(),
				"unexpected end of input, expected `%s`", closeType)
			return "", open.Span, false
		case openType:
			depth++
		case closeType:
			depth--
			if depth == 0 {
				p.cur.Next()
				code := strings.TrimSpace(p.src.Slice(Span{Start: open.Span.End, End: tok.Span.Start}))
				return code, open.Span.Union(tok.Span), true
			}
		}
		p.cur.Next()
	}
}

// recoverToNodeBoundary skips tokens until something that can start a node
// or the scope terminator, balancing any delimiters it consumes.
func (p *Parser) recoverToNodeBoundary(stopAt TokenType) {
	for {
		tok := p.cur.Peek()
		switch tok.Type {
		case TokenEOF, stopAt,
			TokenIdent, TokenString, TokenSemicolon, TokenBang:
			return
		case TokenLBrace:
			p.captureBalanced(TokenLBrace, TokenRBrace)
		case TokenLBracket:
			p.captureBalanced(TokenLBracket, TokenRBracket)
		case TokenLParen:
			p.captureBalanced(TokenLParen, TokenRParen)
		default:
			p.cur.Next()
		}
	}
}
