package mvgen

import (
	"fmt"
	"strings"
)

// builderPkg is the selector used for emitted runtime calls. The generated
// file imports the builder package under this name.
const builderPkg = "builder"

// Generator walks a node tree and emits the equivalent builder-call
// expression. It is a pure recursive transform; the only mutable state is
// the fresh-identifier counter used when sibling clone bindings collide.
// The generator tolerates missing-value sentinels left behind by parser
// recovery and still emits structurally valid code around them, so type
// errors in other parts of the template stay visible.
type Generator struct {
	src      *Source
	errs     *ErrorList
	cloneSeq int
}

// NewGenerator creates a generator recording diagnostics on errs.
func NewGenerator(src *Source, errs *ErrorList) *Generator {
	return &Generator{src: src, errs: errs}
}

// Expression emits one expression covering all top level nodes: the node
// itself when there is exactly one, a fragment otherwise.
func (g *Generator) Expression(nodes []Node) string {
	var sb strings.Builder
	g.writeNodeList(&sb, nodes, 0)
	return sb.String()
}

// writeNodeList writes a single-node expression or a Fragment wrapper.
func (g *Generator) writeNodeList(sb *strings.Builder, nodes []Node, indent int) {
	switch len(nodes) {
	case 0:
		sb.WriteString(builderPkg + ".Fragment()")
	case 1:
		g.writeNode(sb, nodes[0], indent)
	default:
		sb.WriteString(builderPkg + ".Fragment(\n")
		for _, n := range nodes {
			writeIndent(sb, indent+1)
			g.writeNode(sb, n, indent+1)
			sb.WriteString(",\n")
		}
		writeIndent(sb, indent)
		sb.WriteString(")")
	}
}

// writeNode dispatches on the node kind.
func (g *Generator) writeNode(sb *strings.Builder, n Node, indent int) {
	switch node := n.(type) {
	case *Text:
		fmt.Fprintf(sb, "%s.Text(%s)", builderPkg, node.Tok.Literal)
	case *Block:
		sb.WriteString(node.Code)
	case *Bracket:
		fmt.Fprintf(sb, "%s.Dyn(%s)", builderPkg, g.closureExpr(node.Code, node.Prefix, node.Sp))
	case *Doctype:
		fmt.Fprintf(sb, "%s.Doctype(%q)", builderPkg, node.Value.Raw)
	case *Slot:
		// reachable only after a slot-placement diagnostic; emit the
		// component shape so surrounding output stays well formed
		g.writeComponent(sb, &node.Component, indent)
	case *Component:
		g.writeComponent(sb, node, indent)
	case *Element:
		g.writeElement(sb, node, indent)
	}
}

// valueExpr renders an attribute value as a Go expression.
func (g *Generator) valueExpr(v *Value) string {
	if v == nil {
		return "true"
	}
	switch v.Kind {
	case ValueLiteral:
		// strings, numbers, and true/false all carry over verbatim
		return v.Lit.Literal
	case ValueBlock:
		return v.Code
	case ValueBracket:
		return g.closureExpr(v.Code, v.Prefix, v.Sp)
	}
	return builderPkg + ".MissingValue"
}

// closureExpr lowers a bracket body to a zero-argument closure. The f prefix
// formats its arguments first; any other prefix is an error.
func (g *Generator) closureExpr(code, prefix string, span Span) string {
	switch prefix {
	case "":
		return fmt.Sprintf("func() any { return (%s) }", code)
	case "f":
		return fmt.Sprintf("func() any { return fmt.Sprintf(%s) }", code)
	}
	g.errs.AddHint(ErrUnknownPrefix, span,
		"only the `f` format prefix is supported",
		"unknown value prefix `%s`", prefix)
	return fmt.Sprintf("func() any { return (%s) }", code)
}

// cloneBindings collects clone: directives into shadow-binding statements.
// A name cloned more than once in the same node gets a fresh identifier.
func (g *Generator) cloneBindings(attrs []Attr) []string {
	var bindings []string
	seen := map[string]bool{}
	for _, a := range attrs {
		if a.Kind != AttrDirective || a.Dir != DirClone || a.Key.Raw == "" {
			continue
		}
		name := a.Key.Snake()
		if seen[name] {
			g.cloneSeq++
			bindings = append(bindings, fmt.Sprintf("%s_%d := %s", name, g.cloneSeq, name))
			continue
		}
		seen[name] = true
		bindings = append(bindings, fmt.Sprintf("%s := %s", name, name))
	}
	return bindings
}

// writeChildrenClosure writes `func(<params>) builder.View { <bindings>;
// return <children> }`.
func (g *Generator) writeChildrenClosure(sb *strings.Builder, children *Children, bindings []string, indent int) {
	params := ""
	if children != nil && children.HasFn {
		params = children.Params
	}
	fmt.Fprintf(sb, "func(%s) %s.View {\n", params, builderPkg)
	for _, b := range bindings {
		writeIndent(sb, indent+1)
		sb.WriteString(b)
		sb.WriteString("\n")
	}
	writeIndent(sb, indent+1)
	sb.WriteString("return ")
	if children == nil {
		sb.WriteString(builderPkg + ".Fragment()")
	} else {
		g.writeNodeList(sb, children.Nodes, indent+1)
	}
	sb.WriteString("\n")
	writeIndent(sb, indent)
	sb.WriteString("}")
}

// writeChildCalls writes children as chained Child calls, each argument on
// its own line.
func (g *Generator) writeChildCalls(sb *strings.Builder, nodes []Node, indent int) {
	for _, n := range nodes {
		sb.WriteString(".Child(\n")
		writeIndent(sb, indent+1)
		g.writeNode(sb, n, indent+1)
		sb.WriteString(",\n")
		writeIndent(sb, indent)
		sb.WriteString(")")
	}
}

// hasClones reports whether any clone: directive survives on the attrs.
func hasClones(attrs []Attr) bool {
	for _, a := range attrs {
		if a.Kind == AttrDirective && a.Dir == DirClone && a.Key.Raw != "" {
			return true
		}
	}
	return false
}

func writeIndent(sb *strings.Builder, n int) {
	for i := 0; i < n; i++ {
		sb.WriteString("\t")
	}
}
