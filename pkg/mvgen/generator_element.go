package mvgen

import (
	"fmt"
	"strings"
)

// refSpellings are the accepted names for the reference-binding attribute.
// All lower to the same Ref call.
var refSpellings = map[string]bool{
	"ref":      true,
	"node-ref": true,
	"node_ref": true,
}

// writeElement emits an element chain: constructor, class and id calls,
// attribute calls in source order, then children.
func (g *Generator) writeElement(sb *strings.Builder, el *Element, indent int) {
	g.writeElementCtor(sb, el)
	g.writeElementClasses(sb, el)
	g.writeElementID(sb, el)

	for _, a := range el.Attrs {
		g.writeElementAttr(sb, a)
	}

	if el.Children != nil {
		if bindings := g.cloneBindings(el.Attrs); len(bindings) > 0 || el.Children.HasFn {
			sb.WriteString(".ChildrenFn(")
			g.writeChildrenClosure(sb, el.Children, bindings, indent)
			sb.WriteString(")")
		} else {
			g.writeChildCalls(sb, el.Children.Nodes, indent)
		}
	}
	sb.WriteString(".Build()")
}

// writeElementCtor picks the constructor by tag classification.
func (g *Generator) writeElementCtor(sb *strings.Builder, el *Element) {
	switch el.Kind {
	case TagSVG:
		fmt.Fprintf(sb, "%s.SvgEl(%q)", builderPkg, el.Tag.Raw)
	case TagMathML:
		fmt.Fprintf(sb, "%s.MathEl(%q)", builderPkg, el.Tag.Raw)
	case TagWebComponent:
		fmt.Fprintf(sb, "%s.Custom(%q)", builderPkg, el.Tag.Raw)
	default:
		fmt.Fprintf(sb, "%s.%s()", builderPkg, titleTag(el.Tag.Raw))
	}
}

// writeElementClasses emits class calls. When every class on the element is
// static they fold into one joined string; one dynamic class: directive
// forces per-key emission for all of them.
func (g *Generator) writeElementClasses(sb *strings.Builder, el *Element) {
	dynamic := false
	for _, a := range el.Attrs {
		if a.Kind == AttrDirective && a.Dir == DirClass && !isStaticBool(a.Value) {
			dynamic = true
			break
		}
	}

	if !dynamic {
		var static []string
		for _, s := range el.Selectors {
			if s.Kind == SelectorClass {
				static = append(static, s.Name.Raw)
			}
		}
		for _, a := range el.Attrs {
			if a.Kind == AttrDirective && a.Dir == DirClass && staticBoolValue(a.Value) {
				static = append(static, a.Key.Raw)
			}
		}
		if len(static) > 0 {
			fmt.Fprintf(sb, ".Classes(%q)", strings.Join(static, " "))
		}
		return
	}

	for _, s := range el.Selectors {
		if s.Kind == SelectorClass {
			fmt.Fprintf(sb, ".Class(%q, true)", s.Name.Raw)
		}
	}
	for _, a := range el.Attrs {
		if a.Kind == AttrDirective && a.Dir == DirClass {
			fmt.Fprintf(sb, ".Class(%q, %s)", a.Key.Raw, g.valueExpr(a.Value))
		}
	}
}

// writeElementID emits one ID call, joining multiple id selectors.
func (g *Generator) writeElementID(sb *strings.Builder, el *Element) {
	var ids []string
	for _, s := range el.Selectors {
		if s.Kind == SelectorID {
			ids = append(ids, s.Name.Raw)
		}
	}
	if len(ids) > 0 {
		fmt.Fprintf(sb, ".ID(%q)", strings.Join(ids, " "))
	}
}

// writeElementAttr emits one attribute call. Class clones and class
// directives are handled elsewhere.
func (g *Generator) writeElementAttr(sb *strings.Builder, a Attr) {
	switch a.Kind {
	case AttrBool:
		fmt.Fprintf(sb, ".Flag(%q)", a.Key.Raw)

	case AttrShorthand:
		fmt.Fprintf(sb, ".Attr(%q, %s)", a.Key.Raw, a.Key.Snake())

	case AttrKV:
		if refSpellings[a.Key.Raw] {
			fmt.Fprintf(sb, ".Ref(%s)", g.valueExpr(a.Value))
			return
		}
		// bare booleans: true is presence, false is nothing
		if a.Value != nil && a.Value.Kind == ValueLiteral && a.Value.Lit.Type == TokenIdent {
			switch a.Value.Lit.Literal {
			case "true":
				fmt.Fprintf(sb, ".Flag(%q)", a.Key.Raw)
				return
			case "false":
				return
			}
		}
		fmt.Fprintf(sb, ".Attr(%q, %s)", a.Key.Raw, g.valueExpr(a.Value))

	case AttrDirective:
		g.writeDirectiveCall(sb, a, false)
	}
}

// writeDirectiveCall emits the call for one directive. Components use the
// snake-case setter spellings of their builder convention; class directives
// fold with the selector classes on both node kinds, and clone never emits a
// call.
func (g *Generator) writeDirectiveCall(sb *strings.Builder, a Attr, isComponent bool) {
	switch a.Dir {
	case DirClass:
		// folded or emitted with the selector classes
	case DirStyle:
		fmt.Fprintf(sb, ".%s(%q, %s)", pick(isComponent, "style", "Style"),
			a.Key.Raw, g.valueExpr(a.Value))
	case DirOn:
		call := pick(isComponent, "on", "On")
		if a.Modifier.Raw == "undelegated" {
			call = pick(isComponent, "on_undelegated", "OnUndelegated")
		}
		fmt.Fprintf(sb, ".%s(%q, %s)", call, a.Key.Raw, g.valueExpr(a.Value))
	case DirProp:
		fmt.Fprintf(sb, ".%s(%q, %s)", pick(isComponent, "prop", "Prop"),
			a.Key.Raw, g.valueExpr(a.Value))
	case DirAttr:
		if isComponent {
			g.errs.Add(ErrUnsupportedDirective, a.Sp, "`attr:` is not supported on components")
			return
		}
		fmt.Fprintf(sb, ".Attr(%q, %s)", a.Key.Raw, g.valueExpr(a.Value))
	case DirUse:
		arg := builderPkg + ".Unit()"
		if a.Value != nil {
			arg = g.valueExpr(a.Value)
		}
		fmt.Fprintf(sb, ".%s(%s, %s)", pick(isComponent, "use_directive", "Use"),
			a.Key.Snake(), arg)
	case DirClone:
		// lowered to a shadow binding before the children
	}
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

// isStaticBool reports whether a class: directive value keeps the static
// fold eligible: absent or a literal bool.
func isStaticBool(v *Value) bool {
	if v == nil {
		return true
	}
	return v.Kind == ValueLiteral && v.Lit.Type == TokenIdent &&
		(v.Lit.Literal == "true" || v.Lit.Literal == "false")
}

// staticBoolValue reports whether a static class: directive contributes its
// key: absent or literal true.
func staticBoolValue(v *Value) bool {
	if v == nil {
		return true
	}
	return v.Kind == ValueLiteral && v.Lit.Literal == "true"
}

// titleTag maps an HTML tag to its constructor name: div -> Div, h1 -> H1.
func titleTag(tag string) string {
	if tag == "" {
		return "El"
	}
	if tag[0] >= 'a' && tag[0] <= 'z' {
		return string(tag[0]-'a'+'A') + tag[1:]
	}
	return tag
}
