package mvgen

import "testing"

func firstAttr(t *testing.T, source string) (Attr, *ErrorList) {
	t.Helper()
	nodes, errs := parseSource(t, source)
	if len(nodes) == 0 {
		t.Fatalf("no nodes parsed from %q", source)
	}
	var attrs []Attr
	switch n := nodes[0].(type) {
	case *Element:
		attrs = n.Attrs
	case *Component:
		attrs = n.Attrs
	}
	if len(attrs) == 0 {
		t.Fatalf("no attributes parsed from %q", source)
	}
	return attrs[0], errs
}

func TestAttr_Kinds(t *testing.T) {
	tests := []struct {
		name   string
		source string
		kind   AttrKind
		key    string
	}{
		{"kv", `input type="text";`, AttrKV, "type"},
		{"bool", `input checked;`, AttrBool, "checked"},
		{"shorthand", `div {title};`, AttrShorthand, "title"},
		{"kebab shorthand", `Comp {some-attr};`, AttrShorthand, "some-attr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr, errs := firstAttr(t, tt.source)
			if errs.HasErrors() {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if attr.Kind != tt.kind {
				t.Errorf("kind = %d, want %d", attr.Kind, tt.kind)
			}
			if attr.Key.Raw != tt.key {
				t.Errorf("key = %s, want %s", attr.Key.Raw, tt.key)
			}
		})
	}
}

func TestAttr_ShorthandBraceStillOpensChildren(t *testing.T) {
	nodes, errs := parseSource(t, `div { "x" }`)
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	el := nodes[0].(*Element)
	if len(el.Attrs) != 0 {
		t.Errorf("attrs = %+v, want none", el.Attrs)
	}
	if el.Children == nil || len(el.Children.Nodes) != 1 {
		t.Error("want one child")
	}
}

func TestAttr_Directives(t *testing.T) {
	tests := []struct {
		name   string
		source string
		dir    string
		key    string
	}{
		{"class", `div class:active={cond};`, DirClass, "active"},
		{"style", `div style:color="red";`, DirStyle, "color"},
		{"on", `div on:click={h};`, DirOn, "click"},
		{"prop", `input prop:value={v};`, DirProp, "value"},
		{"attr", `div attr:role="tab";`, DirAttr, "role"},
		{"use", `div use:tooltip;`, DirUse, "tooltip"},
		{"clone", `div clone:sig { "x" }`, DirClone, "sig"},
		{"string key", `div class:"w-1/2"={cond};`, DirClass, "w-1/2"},
		{"directive shorthand", `div class:{primary};`, DirClass, "primary"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr, errs := firstAttr(t, tt.source)
			if errs.HasErrors() {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if attr.Kind != AttrDirective || attr.Dir != tt.dir {
				t.Errorf("dir = %s, want %s", attr.Dir, tt.dir)
			}
			if attr.Key.Raw != tt.key {
				t.Errorf("key = %s, want %s", attr.Key.Raw, tt.key)
			}
		})
	}
}

func TestAttr_DirectiveShorthandBindsValue(t *testing.T) {
	attr, errs := firstAttr(t, `div class:{primary-big};`)
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if attr.Value == nil || attr.Value.Kind != ValueBlock {
		t.Fatal("want a block value")
	}
	if attr.Value.Code != "primary_big" {
		t.Errorf("value code = %q, want primary_big", attr.Value.Code)
	}
}

func TestAttr_Diagnostics(t *testing.T) {
	tests := []struct {
		name   string
		source string
		code   ErrorCode
	}{
		{"unknown directive", `div foo:bar={x};`, ErrUnknownDirective},
		{"unknown modifier", `div on:click:capture={h};`, ErrUnknownModifier},
		{"modifier on class", `div class:a:hover={x};`, ErrModifierNotSupported},
		{"modifier on prop", `input prop:value:direct={v};`, ErrModifierNotSupported},
		{"clone with value", `Comp clone:sig={sig} { "x" }`, ErrClonesTakeNoValue},
		{"on without value", `div on:click;`, ErrExpectedValue},
		{"prop without value", `input prop:value;`, ErrExpectedValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := parseSource(t, tt.source)
			got := errCodes(errs)
			if len(got) != 1 || got[0] != tt.code {
				t.Errorf("errors = %v, want one %s", errs, tt.code)
			}
		})
	}
}

func TestAttr_ModifierAccepted(t *testing.T) {
	attr, errs := firstAttr(t, `div on:click:undelegated={h};`)
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if attr.Dir != DirOn || attr.Key.Raw != "click" || attr.Modifier.Raw != "undelegated" {
		t.Errorf("attr = %+v", attr)
	}
	if attr.Value == nil || attr.Value.Kind != ValueBlock || attr.Value.Code != "h" {
		t.Errorf("value = %+v", attr.Value)
	}
}

func TestAttr_RecoveryAcrossSiblings(t *testing.T) {
	// two independent problems in one attribute list
	nodes, errs := parseSource(t, `div class= foo:x={1} id="ok";`)
	got := errCodes(errs)
	if len(got) != 2 {
		t.Fatalf("errors = %v, want 2", errs)
	}
	if got[0] != ErrExpectedValue || got[1] != ErrUnknownDirective {
		t.Errorf("codes = %v", got)
	}
	el := nodes[0].(*Element)
	last := el.Attrs[len(el.Attrs)-1]
	if last.Key.Raw != "id" || last.Kind != AttrKV {
		t.Errorf("last attr = %+v, want Kv(id)", last)
	}
}
