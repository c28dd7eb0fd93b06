package mvgen

import (
	"fmt"
	"strings"
)

// Pragma markers recognized in .mv files.
const (
	pragmaTemplate = "//mview:template"
	pragmaFunc     = "//mview:func"
)

// FuncResult is one compiled //mview:func block.
type FuncResult struct {
	Name      string
	Signature string // e.g. "Header(title string)"
	Result    *Result
}

// FileResult is the outcome of compiling one .mv file.
type FileResult struct {
	Package string
	Funcs   []*FuncResult
	Code    string // the complete generated Go file
	Errors  *ErrorList
}

// Err returns the accumulated diagnostics as an error, or nil.
func (r *FileResult) Err() error {
	return r.Errors.Err()
}

// CompileFile compiles a whole .mv file: the template pragma, the package
// line, and one or more //mview:func blocks. builderImport is the import
// path of the runtime builder package in the generated file. All template
// diagnostics share one list and carry absolute file positions.
func CompileFile(name, text, builderImport string) *FileResult {
	src := NewSource(name, text)
	errs := NewErrorList(src)
	res := &FileResult{Errors: errs}

	lines := splitLines(text)
	i := 0

	// pragma must open the file
	i = skipBlank(lines, i)
	if i >= len(lines) || strings.TrimSpace(lines[i].text) != pragmaTemplate {
		errs.AddHint(ErrBadPragma, lineSpan(lines, i),
			fmt.Sprintf("start the file with `%s`", pragmaTemplate),
			"missing template pragma")
	} else {
		i++
	}

	// package line
	i = skipBlank(lines, i)
	if i < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i].text), "package ") {
		res.Package = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[i].text), "package "))
		i++
	} else {
		errs.Add(ErrBadPragma, lineSpan(lines, i), "missing package declaration")
		res.Package = "templates"
	}

	// func blocks
	seen := map[string]bool{}
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i].text)
		if !strings.HasPrefix(trimmed, pragmaFunc+" ") {
			if trimmed != "" && !strings.HasPrefix(trimmed, "//") {
				errs.AddHint(ErrBadPragma, lineSpan(lines, i),
					fmt.Sprintf("templates must follow a `%s Name(args)` line", pragmaFunc),
					"unexpected content outside a template block")
			}
			i++
			continue
		}

		sig := strings.TrimSpace(strings.TrimPrefix(trimmed, pragmaFunc))
		fn := &FuncResult{Signature: sig, Name: sigName(sig)}
		if fn.Name == "" {
			errs.Add(ErrBadPragma, lineSpan(lines, i),
				"malformed signature %q after `%s`", sig, pragmaFunc)
		} else if seen[fn.Name] {
			errs.Add(ErrInvalidIdent, lineSpan(lines, i),
				"duplicate template function %q", fn.Name)
		}
		seen[fn.Name] = true

		// body runs to the next func pragma or EOF
		bodyStart := lines[i].end
		j := i + 1
		for j < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[j].text), pragmaFunc) {
			j++
		}
		bodyEnd := len(text)
		if j < len(lines) {
			bodyEnd = lines[j].start
		}
		fn.Result = compileWindow(src, bodyStart, bodyEnd, errs)
		res.Funcs = append(res.Funcs, fn)
		i = j
	}

	res.Code = renderFile(name, res, builderImport)
	return res
}

// renderFile assembles the generated Go source.
func renderFile(name string, res *FileResult, builderImport string) string {
	var sb strings.Builder
	sb.WriteString("// Code generated by mview. DO NOT EDIT.\n")
	fmt.Fprintf(&sb, "// Source: %s\n\n", name)
	fmt.Fprintf(&sb, "package %s\n\n", res.Package)
	fmt.Fprintf(&sb, "import (\n\tbuilder %q\n)\n", builderImport)
	for _, fn := range res.Funcs {
		if fn.Name == "" {
			continue
		}
		sig := fn.Signature
		if !strings.Contains(sig, "(") {
			sig += "()"
		}
		fmt.Fprintf(&sb, "\nfunc %s %s.View {\n\treturn %s\n}\n",
			sig, builderPkg, indentBody(fn.Result.Code))
	}
	return sb.String()
}

// indentBody shifts a multi-line expression one tab right, leaving the first
// line alone so it sits after `return `.
func indentBody(code string) string {
	return strings.ReplaceAll(code, "\n", "\n\t")
}

// sigName extracts the function name from a signature like "Header(title
// string)".
func sigName(sig string) string {
	open := strings.IndexByte(sig, '(')
	if open < 0 {
		open = len(sig)
	}
	name := strings.TrimSpace(sig[:open])
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if !isIdentCont(ch) {
			return ""
		}
	}
	if name == "" || isDigit(name[0]) {
		return ""
	}
	return name
}

// line is one source line with its byte extent.
type line struct {
	text  string
	start int
	end   int // offset just past the trailing newline
}

func splitLines(text string) []line {
	var lines []line
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, line{text: text[start:i], start: start, end: i + 1})
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, line{text: text[start:], start: start, end: len(text)})
	}
	return lines
}

func skipBlank(lines []line, i int) int {
	for i < len(lines) && strings.TrimSpace(lines[i].text) == "" {
		i++
	}
	return i
}

func lineSpan(lines []line, i int) Span {
	if i >= len(lines) {
		if len(lines) == 0 {
			return Span{}
		}
		last := lines[len(lines)-1]
		return Span{Start: last.end, End: last.end}
	}
	return Span{Start: lines[i].start, End: lines[i].start + len(lines[i].text)}
}
