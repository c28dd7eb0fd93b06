package mvgen

import (
	"testing"
)

func parseSource(t *testing.T, source string) ([]Node, *ErrorList) {
	t.Helper()
	src := NewSource("test.mv", source)
	errs := NewErrorList(src)
	tokens := NewLexer(src).Tokenize()
	nodes := NewParser(src, tokens, errs).Parse()
	return nodes, errs
}

func parseOne(t *testing.T, source string) Node {
	t.Helper()
	nodes, errs := parseSource(t, source)
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	return nodes[0]
}

func errCodes(errs *ErrorList) []ErrorCode {
	var codes []ErrorCode
	for _, e := range errs.Errors() {
		codes = append(codes, e.Code)
	}
	return codes
}

func TestParser_Element(t *testing.T) {
	el, ok := parseOne(t, `div.a.b #main { "x" }`).(*Element)
	if !ok {
		t.Fatal("not an Element")
	}
	if el.Tag.Raw != "div" || el.Kind != TagHTML {
		t.Errorf("tag = %s kind = %d", el.Tag.Raw, el.Kind)
	}
	if len(el.Selectors) != 3 {
		t.Fatalf("got %d selectors, want 3", len(el.Selectors))
	}
	if el.Selectors[0].Name.Raw != "a" || el.Selectors[0].Kind != SelectorClass {
		t.Errorf("selector 0 = %+v", el.Selectors[0])
	}
	if el.Selectors[2].Name.Raw != "main" || el.Selectors[2].Kind != SelectorID {
		t.Errorf("selector 2 = %+v", el.Selectors[2])
	}
	if el.Children == nil || len(el.Children.Nodes) != 1 {
		t.Fatal("want one child")
	}
	if _, ok := el.Children.Nodes[0].(*Text); !ok {
		t.Error("child is not Text")
	}
}

func TestParser_TagClassification(t *testing.T) {
	tests := []struct {
		source string
		kind   TagKind
	}{
		{`div;`, TagHTML},
		{`circle;`, TagSVG},
		{`mi;`, TagMathML},
		{`my-widget;`, TagWebComponent},
	}
	for _, tt := range tests {
		el, ok := parseOne(t, tt.source).(*Element)
		if !ok {
			t.Fatalf("%s: not an Element", tt.source)
		}
		if el.Kind != tt.kind {
			t.Errorf("%s: kind = %d, want %d", tt.source, el.Kind, tt.kind)
		}
	}
}

func TestParser_ComponentPath(t *testing.T) {
	tests := []struct {
		name   string
		source string
		path   []string
	}{
		{"bare", `Header;`, []string{"Header"}},
		{"qualified", `layout.Header;`, []string{"layout", "Header"}},
		{"deep", `a.b.Header;`, []string{"a", "b", "Header"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp, ok := parseOne(t, tt.source).(*Component)
			if !ok {
				t.Fatal("not a Component")
			}
			if len(comp.Path) != len(tt.path) {
				t.Fatalf("path len = %d, want %d", len(comp.Path), len(tt.path))
			}
			for i, seg := range tt.path {
				if comp.Path[i].Raw != seg {
					t.Errorf("path[%d] = %s, want %s", i, comp.Path[i].Raw, seg)
				}
			}
		})
	}
}

func TestParser_DottedLowercaseIsSelector(t *testing.T) {
	el, ok := parseOne(t, `div.card;`).(*Element)
	if !ok {
		t.Fatal("not an Element")
	}
	if len(el.Selectors) != 1 || el.Selectors[0].Name.Raw != "card" {
		t.Errorf("selectors = %+v", el.Selectors)
	}
}

func TestParser_KebabIdent(t *testing.T) {
	el := parseOne(t, `div.grid-cols-2 data-id=1;`).(*Element)
	if el.Selectors[0].Name.Raw != "grid-cols-2" {
		t.Errorf("selector = %s", el.Selectors[0].Name.Raw)
	}
	if el.Attrs[0].Key.Raw != "data-id" {
		t.Errorf("attr key = %s", el.Attrs[0].Key.Raw)
	}
	if el.Attrs[0].Key.Snake() != "data_id" {
		t.Errorf("snake = %s", el.Attrs[0].Key.Snake())
	}
}

func TestParser_ComponentGenerics(t *testing.T) {
	comp := parseOne(t, `Select<map[string]int> value={v};`).(*Component)
	if comp.Generics != "map[string]int" {
		t.Errorf("generics = %q", comp.Generics)
	}
}

func TestParser_ClosureParams(t *testing.T) {
	comp := parseOne(t, `For each={items} |item Item| { "x" }`).(*Component)
	if comp.Children == nil || !comp.Children.HasFn {
		t.Fatal("want closure children")
	}
	if comp.Children.Params != "item Item" {
		t.Errorf("params = %q", comp.Children.Params)
	}
}

func TestParser_ParensChildren(t *testing.T) {
	el := parseOne(t, `div ( "x" )`).(*Element)
	if el.Children == nil || len(el.Children.Nodes) != 1 {
		t.Fatal("want one child")
	}
}

func TestParser_Termination(t *testing.T) {
	tests := []struct {
		name   string
		source string
		codes  []ErrorCode
	}{
		{"semicolon", `div;`, nil},
		{"children", `div { "x" }`, nil},
		{"implicit at scope end", `div { span }`, nil},
		{"implicit at eof", `div`, nil},
		{"unterminated before sibling", `div { span "x" }`, []ErrorCode{ErrUnterminatedElement}},
		{"closure without children", `For |x|`, []ErrorCode{ErrExpectedChildren}},
		{"unexpected end", `div {`, []ErrorCode{ErrUnexpectedEnd}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := parseSource(t, tt.source)
			got := errCodes(errs)
			if len(got) != len(tt.codes) {
				t.Fatalf("errors = %v, want %v", errs, tt.codes)
			}
			for i, code := range tt.codes {
				if got[i] != code {
					t.Errorf("error %d = %s, want %s", i, got[i], code)
				}
			}
		})
	}
}

func TestParser_StraySemicolon(t *testing.T) {
	nodes, errs := parseSource(t, `div { ; "x" }`)
	if got := errCodes(errs); len(got) != 1 || got[0] != ErrStraySemicolon {
		t.Fatalf("errors = %v", errs)
	}
	el := nodes[0].(*Element)
	if len(el.Children.Nodes) != 1 {
		t.Errorf("children = %d, want 1 (parsing continued)", len(el.Children.Nodes))
	}
}

func TestParser_Doctype(t *testing.T) {
	node := parseOne(t, `!DOCTYPE html;`)
	doc, ok := node.(*Doctype)
	if !ok {
		t.Fatal("not a Doctype")
	}
	if doc.Value.Raw != "html" {
		t.Errorf("value = %s", doc.Value.Raw)
	}
}

func TestParser_DoctypeHints(t *testing.T) {
	_, errs := parseSource(t, `!DOC html;`)
	if !errs.HasErrors() {
		t.Fatal("want an error")
	}
	if errs.Errors()[0].Hint == "" {
		t.Error("want a completion hint")
	}
}

func TestParser_LiteralChildSentinel(t *testing.T) {
	nodes, errs := parseSource(t, `div { 5 "x" }`)
	if got := errCodes(errs); len(got) != 1 || got[0] != ErrInvalidChild {
		t.Fatalf("errors = %v", errs)
	}
	el := nodes[0].(*Element)
	if len(el.Children.Nodes) != 2 {
		t.Fatalf("children = %d, want 2 (sentinel + text)", len(el.Children.Nodes))
	}
}

func TestParser_SlotPlacement(t *testing.T) {
	tests := []struct {
		name   string
		source string
		codes  []ErrorCode
	}{
		{"inside component", `Tabs { slot:Tab { "a" } }`, nil},
		{"inside element", `div { slot:Tab { "a" } }`, []ErrorCode{ErrSlotOutsideComponent}},
		{"top level", `slot:Tab { "a" }`, []ErrorCode{ErrSlotOutsideComponent}},
		{"selector on slot", `Tabs { slot:Tab.big { "a" } }`, []ErrorCode{ErrInvalidIdent}},
		{"directive on slot", `Tabs { slot:Tab on:click={h} { "a" } }`, []ErrorCode{ErrUnsupportedDirective}},
		{"clone on slot", `Tabs { slot:Tab clone:sig { "a" } }`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := parseSource(t, tt.source)
			got := errCodes(errs)
			if len(got) != len(tt.codes) {
				t.Fatalf("errors = %v, want %v", errs, tt.codes)
			}
			for i, code := range tt.codes {
				if got[i] != code {
					t.Errorf("error %d = %s, want %s", i, got[i], code)
				}
			}
		})
	}
}

// checkSpans walks the tree verifying each node's span contains its
// children's spans.
func checkSpans(t *testing.T, n Node) {
	t.Helper()
	var children *Children
	switch node := n.(type) {
	case *Element:
		for _, s := range node.Selectors {
			if !node.Sp.Contains(s.Sp) {
				t.Errorf("selector span %v outside element span %v", s.Sp, node.Sp)
			}
		}
		for _, a := range node.Attrs {
			if !node.Sp.Contains(a.Sp) {
				t.Errorf("attr span %v outside element span %v", a.Sp, node.Sp)
			}
		}
		children = node.Children
	case *Component:
		for _, a := range node.Attrs {
			if !node.Sp.Contains(a.Sp) {
				t.Errorf("attr span %v outside component span %v", a.Sp, node.Sp)
			}
		}
		children = node.Children
	}
	if children == nil {
		return
	}
	if !n.Span().Contains(children.Sp) {
		t.Errorf("children span %v outside node span %v", children.Sp, n.Span())
	}
	for _, c := range children.Nodes {
		if !children.Sp.Contains(c.Span()) {
			t.Errorf("child span %v outside children span %v", c.Span(), children.Sp)
		}
		checkSpans(t, c)
	}
}

func TestParser_SpanNesting(t *testing.T) {
	source := `div.card #main data-x={load()} {
	h1.title { "Hello" }
	Counter initial=3 on:tick={fn} {
		span { [count()] }
	}
}`
	nodes, errs := parseSource(t, source)
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	root := nodes[0]
	if root.Span() != (Span{0, len(source)}) {
		t.Errorf("root span = %v, want {0 %d}", root.Span(), len(source))
	}
	for _, n := range nodes {
		checkSpans(t, n)
	}
}
