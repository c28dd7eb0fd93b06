package mvgen

import "strings"

// Node is a parsed template node. The set is closed: elements, components,
// slots, text literals, code blocks, reactive brackets, and the doctype.
type Node interface {
	Span() Span
	nodeMarker()
}

// Ident is a possibly-kebab-cased name with its span. Kebab names are the
// notation's surface form; Snake converts them for generated setter calls.
type Ident struct {
	Raw  string
	Sp   Span
	Used bool // set by the parser when segments were joined across '-'
}

// Snake returns the identifier with dashes replaced by underscores.
func (i Ident) Snake() string {
	return strings.ReplaceAll(i.Raw, "-", "_")
}

// Span returns the identifier's source span.
func (i Ident) Span() Span { return i.Sp }

// TagKind classifies an element tag, which decides the builder constructor
// the generator emits.
type TagKind int

const (
	TagHTML TagKind = iota
	TagSVG
	TagMathML
	TagWebComponent
)

// Selector is a `.class` or `#id` shorthand following a tag or component
// name.
type Selector struct {
	Kind SelectorKind
	Name Ident
	Sp   Span // includes the '.' or '#'
}

// SelectorKind distinguishes class and id selectors.
type SelectorKind int

const (
	SelectorClass SelectorKind = iota
	SelectorID
)

// ValueKind classifies an attribute value.
type ValueKind int

const (
	// ValueLiteral is a bare literal: string, number, or true/false.
	ValueLiteral ValueKind = iota
	// ValueBlock is a braced host expression: {count()}.
	ValueBlock
	// ValueBracket is a bracketed expression lowered to a closure: [count()].
	ValueBracket
	// ValueMissing is the recovery sentinel recorded when `=` had no value.
	ValueMissing
)

// Value is an attribute value. Code holds the raw host expression for block
// and bracket values; Lit holds the literal token for literal values.
type Value struct {
	Kind   ValueKind
	Lit    Token  // ValueLiteral only
	Code   string // ValueBlock, ValueBracket
	Prefix string // ValueBracket only: "" or a prefix like "f"
	Sp     Span
}

// Span returns the value's source span.
func (v Value) Span() Span { return v.Sp }

// IsLiteralString reports whether the value is a string literal.
func (v Value) IsLiteralString() bool {
	return v.Kind == ValueLiteral && v.Lit.Type == TokenString
}

// AttrKind classifies an attribute. The set is closed.
type AttrKind int

const (
	// AttrKV is key=value.
	AttrKV AttrKind = iota
	// AttrBool is a bare key with no value.
	AttrBool
	// AttrShorthand is {key}, equivalent to key={key}.
	AttrShorthand
	// AttrDirective is dir:key or dir:key=value, optionally dir:key:modifier.
	AttrDirective
)

// Directive names form a closed set.
const (
	DirClass = "class"
	DirStyle = "style"
	DirOn    = "on"
	DirProp  = "prop"
	DirAttr  = "attr"
	DirUse   = "use"
	DirClone = "clone"
)

// knownDirectives is the closed set of directive namespaces.
var knownDirectives = map[string]bool{
	DirClass: true,
	DirStyle: true,
	DirOn:    true,
	DirProp:  true,
	DirAttr:  true,
	DirUse:   true,
	DirClone: true,
}

// Attr is a parsed attribute.
type Attr struct {
	Kind     AttrKind
	Dir      string // AttrDirective only
	Key      Ident
	Modifier Ident // AttrDirective only, e.g. on:click:undelegated
	Value    *Value
	Sp       Span
}

// Span returns the attribute's source span.
func (a Attr) Span() Span { return a.Sp }

// Children is a brace- or paren-delimited child list. Params holds the raw
// closure parameter text when the list was preceded by |params|.
type Children struct {
	Nodes  []Node
	Params string
	HasFn  bool // |params| present, possibly empty
	Sp     Span
}

// Element is a plain markup element: HTML, SVG, MathML, or a dash-named web
// component.
type Element struct {
	Tag       Ident
	Kind      TagKind
	Selectors []Selector
	Attrs     []Attr
	Children  *Children // nil when terminated with ';'
	Sp        Span
}

func (e *Element) Span() Span  { return e.Sp }
func (e *Element) nodeMarker() {}

// Component is an uppercase-led invocation, optionally path-qualified and
// generic: layout.Header, Select<String>.
type Component struct {
	Path      []Ident // at least one segment; last is uppercase-led
	Generics  string  // raw text inside <...>, "" when absent
	Selectors []Selector
	Attrs     []Attr
	Children  *Children
	Sp        Span
}

func (c *Component) Span() Span  { return c.Sp }
func (c *Component) nodeMarker() {}

// Name returns the component's final path segment.
func (c *Component) Name() Ident {
	return c.Path[len(c.Path)-1]
}

// Slot is a slot:Name child of a component. Structurally a component whose
// instances the parent groups by name.
type Slot struct {
	Component
}

// Text is a string literal child.
type Text struct {
	Tok Token
	Sp  Span
}

func (t *Text) Span() Span  { return t.Sp }
func (t *Text) nodeMarker() {}

// Block is a braced host expression in child position: {move || count()}.
type Block struct {
	Code string
	Sp   Span
}

func (b *Block) Span() Span  { return b.Sp }
func (b *Block) nodeMarker() {}

// Bracket is a bracketed expression in child position, lowered to a closure:
// [count()]. Prefix, when present, selects a transformation such as f for
// format strings.
type Bracket struct {
	Code   string
	Prefix string
	Sp     Span
}

func (b *Bracket) Span() Span  { return b.Sp }
func (b *Bracket) nodeMarker() {}

// Doctype is the `!DOCTYPE html;` node.
type Doctype struct {
	Value Ident
	Sp    Span
}

func (d *Doctype) Span() Span  { return d.Sp }
func (d *Doctype) nodeMarker() {}

// svgTags lists tags classified as SVG elements. Tags shared with HTML, such
// as a and script, stay HTML.
var svgTags = map[string]bool{
	"animate": true, "animateMotion": true, "animateTransform": true,
	"circle": true, "clipPath": true, "defs": true, "desc": true,
	"discard": true, "ellipse": true, "feBlend": true, "feColorMatrix": true,
	"feComponentTransfer": true, "feComposite": true, "feConvolveMatrix": true,
	"feDiffuseLighting": true, "feDisplacementMap": true, "feDistantLight": true,
	"feDropShadow": true, "feFlood": true, "feFuncA": true, "feFuncB": true,
	"feFuncG": true, "feFuncR": true, "feGaussianBlur": true, "feImage": true,
	"feMerge": true, "feMergeNode": true, "feMorphology": true, "feOffset": true,
	"fePointLight": true, "feSpecularLighting": true, "feSpotLight": true,
	"feTile": true, "feTurbulence": true, "filter": true, "foreignObject": true,
	"g": true, "hatch": true, "hatchpath": true, "image": true, "line": true,
	"linearGradient": true, "marker": true, "mask": true, "metadata": true,
	"mpath": true, "path": true, "pattern": true, "polygon": true,
	"polyline": true, "radialGradient": true, "rect": true, "set": true,
	"stop": true, "svg": true, "switch": true, "symbol": true, "text": true,
	"textPath": true, "tspan": true, "use": true, "view": true,
}

// mathTags lists tags classified as MathML elements.
var mathTags = map[string]bool{
	"annotation": true, "maction": true, "math": true, "menclose": true,
	"merror": true, "mfenced": true, "mfrac": true, "mi": true,
	"mmultiscripts": true, "mn": true, "mo": true, "mover": true,
	"mpadded": true, "mphantom": true, "mprescripts": true, "mroot": true,
	"mrow": true, "ms": true, "mspace": true, "msqrt": true, "mstyle": true,
	"msub": true, "msubsup": true, "msup": true, "mtable": true, "mtd": true,
	"mtext": true, "mtr": true, "munder": true, "munderover": true,
	"semantics": true,
}

// classifyTag decides how an element tag lowers. Dash-named tags are custom
// web components; otherwise SVG and MathML tag lists take precedence over the
// HTML default.
func classifyTag(name string) TagKind {
	if strings.Contains(name, "-") {
		return TagWebComponent
	}
	if svgTags[name] {
		return TagSVG
	}
	if mathTags[name] {
		return TagMathML
	}
	return TagHTML
}

// isComponentName reports whether a tag name denotes a component invocation.
func isComponentName(name string) bool {
	return len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z'
}
