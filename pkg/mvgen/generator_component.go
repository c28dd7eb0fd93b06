package mvgen

import (
	"fmt"
	"strings"
)

// writeComponent emits a component builder chain: constructor, setters in
// source order, per-slot calls, the children callback, and the terminal
// Build call.
func (g *Generator) writeComponent(sb *strings.Builder, c *Component, indent int) {
	g.writeComponentCtor(sb, c)
	g.writeComponentSelectors(sb, c)

	for _, a := range c.Attrs {
		g.writeComponentAttr(sb, a)
	}

	slots, rest := splitSlots(c)
	g.writeSlotCalls(sb, slots, indent)

	if c.Children != nil && (len(rest) > 0 || c.Children.HasFn || len(slots) == 0) {
		call := ".children("
		if c.Children.HasFn && c.Children.Params != "" {
			call = ".children_fn("
		}
		sb.WriteString(call)
		bindings := g.cloneBindings(c.Attrs)
		g.writeChildrenClosure(sb, &Children{
			Nodes:  rest,
			Params: c.Children.Params,
			HasFn:  c.Children.HasFn,
			Sp:     c.Children.Sp,
		}, bindings, indent)
		sb.WriteString(")")
	}
	sb.WriteString(".Build()")
}

// writeComponentCtor emits `path.NameBuilder()` with optional generics.
func (g *Generator) writeComponentCtor(sb *strings.Builder, c *Component) {
	for _, seg := range c.Path[:len(c.Path)-1] {
		sb.WriteString(seg.Raw)
		sb.WriteString(".")
	}
	sb.WriteString(c.Name().Raw)
	sb.WriteString("Builder")
	if c.Generics != "" {
		fmt.Fprintf(sb, "[%s]", c.Generics)
	}
	sb.WriteString("()")
}

// writeComponentSelectors lowers selector shorthand to class and id setters.
// Static classes join into one string; any reactive class: directive switches
// the whole set to a DynClass value mixing static names and conditions.
func (g *Generator) writeComponentSelectors(sb *strings.Builder, c *Component) {
	var static, ids []string
	for _, s := range c.Selectors {
		if s.Kind == SelectorClass {
			static = append(static, s.Name.Raw)
		} else {
			ids = append(ids, s.Name.Raw)
		}
	}

	dynamic := false
	for _, a := range c.Attrs {
		if a.Kind != AttrDirective || a.Dir != DirClass {
			continue
		}
		if isStaticBool(a.Value) {
			if staticBoolValue(a.Value) {
				static = append(static, a.Key.Raw)
			}
		} else {
			dynamic = true
		}
	}

	switch {
	case dynamic:
		fmt.Fprintf(sb, ".class(%s.DynClass(", builderPkg)
		for i, name := range static {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%q", name)
		}
		sb.WriteString(")")
		for _, a := range c.Attrs {
			if a.Kind == AttrDirective && a.Dir == DirClass && !isStaticBool(a.Value) {
				fmt.Fprintf(sb, ".When(%q, %s)", a.Key.Raw, g.valueExpr(a.Value))
			}
		}
		sb.WriteString(")")
	case len(static) > 0:
		fmt.Fprintf(sb, ".class(%q)", strings.Join(static, " "))
	}

	if len(ids) > 0 {
		fmt.Fprintf(sb, ".id(%q)", strings.Join(ids, " "))
	}
}

// writeComponentAttr emits one setter call. Keys convert kebab-case to
// snake_case; bare booleans become explicit true setters.
func (g *Generator) writeComponentAttr(sb *strings.Builder, a Attr) {
	switch a.Kind {
	case AttrBool:
		fmt.Fprintf(sb, ".%s(true)", a.Key.Snake())
	case AttrShorthand:
		fmt.Fprintf(sb, ".%s(%s)", a.Key.Snake(), a.Key.Snake())
	case AttrKV:
		if refSpellings[a.Key.Raw] {
			fmt.Fprintf(sb, ".Ref(%s)", g.valueExpr(a.Value))
			return
		}
		fmt.Fprintf(sb, ".%s(%s)", a.Key.Snake(), g.valueExpr(a.Value))
	case AttrDirective:
		g.writeDirectiveCall(sb, a, true)
	}
}

// splitSlots partitions a component's children into slot nodes grouped by
// name in first-appearance order, and everything else.
func splitSlots(c *Component) ([]slotGroup, []Node) {
	if c.Children == nil {
		return nil, nil
	}
	var groups []slotGroup
	index := map[string]int{}
	var rest []Node
	for _, n := range c.Children.Nodes {
		slot, ok := n.(*Slot)
		if !ok {
			rest = append(rest, n)
			continue
		}
		name := slot.Name().Raw
		if i, seen := index[name]; seen {
			groups[i].slots = append(groups[i].slots, slot)
		} else {
			index[name] = len(groups)
			groups = append(groups, slotGroup{name: name, slots: []*Slot{slot}})
		}
	}
	return groups, rest
}

type slotGroup struct {
	name  string
	slots []*Slot
}

// writeSlotCalls emits one setter per slot name carrying every instance of
// that slot in source order.
func (g *Generator) writeSlotCalls(sb *strings.Builder, groups []slotGroup, indent int) {
	for _, grp := range groups {
		fmt.Fprintf(sb, ".%s(\n", camelToSnake(grp.name))
		for _, slot := range grp.slots {
			writeIndent(sb, indent+1)
			g.writeComponent(sb, &slot.Component, indent+1)
			sb.WriteString(",\n")
		}
		writeIndent(sb, indent)
		sb.WriteString(")")
	}
}

// camelToSnake converts a CamelCase slot name to its setter name:
// FallingOdd -> falling_odd.
func camelToSnake(name string) string {
	var sb strings.Builder
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if ch >= 'A' && ch <= 'Z' {
			if i > 0 {
				sb.WriteByte('_')
			}
			sb.WriteByte(ch - 'A' + 'a')
		} else {
			sb.WriteByte(ch)
		}
	}
	return strings.ReplaceAll(sb.String(), "-", "_")
}
