package mvgen

// Result is the outcome of one compiler invocation. Code is best effort:
// when Errors is non-empty it may contain missing-value sentinels, but it is
// always structurally valid so downstream type errors stay localized.
type Result struct {
	Nodes  []Node
	Code   string
	Errors *ErrorList
}

// Err returns the accumulated diagnostics as an error, or nil.
func (r *Result) Err() error {
	return r.Errors.Err()
}

// Compile runs the whole pipeline over one template: lex, parse, generate.
// Each invocation owns fresh parser and generator state.
func Compile(name, text string) *Result {
	src := NewSource(name, text)
	return CompileWindow(src, 0, len(text))
}

// CompileWindow compiles src.Text[start:end]. Spans and diagnostics stay
// absolute within src, so templates embedded in a larger file report
// positions in that file.
func CompileWindow(src *Source, start, end int) *Result {
	return compileWindow(src, start, end, NewErrorList(src))
}

func compileWindow(src *Source, start, end int, errs *ErrorList) *Result {
	tokens := NewLexerAt(src, start, end).Tokenize()
	nodes := NewParser(src, tokens, errs).Parse()
	code := NewGenerator(src, errs).Expression(nodes)
	return &Result{Nodes: nodes, Code: code, Errors: errs}
}
