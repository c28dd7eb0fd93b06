package mvgen

import (
	"strings"
	"testing"
)

const builderImport = "github.com/recera/mview/builder"

func TestCompileFile_Basic(t *testing.T) {
	source := `//mview:template
package routes

//mview:func Header(title string)
header.site-header {
	h1 { {title} }
}
`
	res := CompileFile("header.mv", source, builderImport)
	if err := res.Err(); err != nil {
		t.Fatalf("unexpected errors: %v", err)
	}
	if res.Package != "routes" {
		t.Errorf("package = %q", res.Package)
	}
	if len(res.Funcs) != 1 || res.Funcs[0].Name != "Header" {
		t.Fatalf("funcs = %+v", res.Funcs)
	}

	wantContains(t, res.Code,
		"// Code generated by mview. DO NOT EDIT.",
		"// Source: header.mv",
		"package routes",
		`builder "github.com/recera/mview/builder"`,
		"func Header(title string) builder.View {",
		"return builder.Header().Classes(\"site-header\")",
	)
}

func TestCompileFile_MultipleFuncs(t *testing.T) {
	source := `//mview:template
package widgets

//mview:func Card()
div.card { "a" }

//mview:func Badge(n int)
span.badge { [n] }
`
	res := CompileFile("widgets.mv", source, builderImport)
	if err := res.Err(); err != nil {
		t.Fatalf("unexpected errors: %v", err)
	}
	if len(res.Funcs) != 2 {
		t.Fatalf("funcs = %d, want 2", len(res.Funcs))
	}
	wantContains(t, res.Code,
		"func Card() builder.View {",
		"func Badge(n int) builder.View {",
	)
}

func TestCompileFile_DiagnosticsKeepFilePositions(t *testing.T) {
	source := `//mview:template
package routes

//mview:func Bad()
div class=;
`
	res := CompileFile("bad.mv", source, builderImport)
	errs := res.Errors.Errors()
	if len(errs) != 1 || errs[0].Code != ErrExpectedValue {
		t.Fatalf("errors = %v", res.Errors)
	}
	pos := errs[0].Pos()
	if pos.Line != 5 {
		t.Errorf("line = %d, want 5", pos.Line)
	}
}

func TestCompileFile_Problems(t *testing.T) {
	tests := []struct {
		name   string
		source string
		code   ErrorCode
	}{
		{
			name:   "missing pragma",
			source: "package routes\n\n//mview:func F()\ndiv;\n",
			code:   ErrBadPragma,
		},
		{
			name:   "missing package",
			source: "//mview:template\n\n//mview:func F()\ndiv;\n",
			code:   ErrBadPragma,
		},
		{
			name:   "duplicate func",
			source: "//mview:template\npackage p\n\n//mview:func F()\ndiv;\n\n//mview:func F()\nspan;\n",
			code:   ErrInvalidIdent,
		},
		{
			name:   "malformed signature",
			source: "//mview:template\npackage p\n\n//mview:func 2bad()\ndiv;\n",
			code:   ErrBadPragma,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CompileFile("t.mv", tt.source, builderImport)
			got := errCodes(res.Errors)
			if len(got) == 0 {
				t.Fatal("want an error")
			}
			found := false
			for _, c := range got {
				if c == tt.code {
					found = true
				}
			}
			if !found {
				t.Errorf("errors = %v, want %s", res.Errors, tt.code)
			}
		})
	}
}

func TestCompileFile_ContentOutsideBlocks(t *testing.T) {
	source := "//mview:template\npackage p\n\ndiv;\n"
	res := CompileFile("t.mv", source, builderImport)
	got := errCodes(res.Errors)
	if len(got) != 1 || got[0] != ErrBadPragma {
		t.Fatalf("errors = %v", res.Errors)
	}
}

func TestCompileFile_BodyIndentedUnderReturn(t *testing.T) {
	source := `//mview:template
package p

//mview:func Two()
div;
span;
`
	res := CompileFile("t.mv", source, builderImport)
	if err := res.Err(); err != nil {
		t.Fatalf("unexpected errors: %v", err)
	}
	if !strings.Contains(res.Code, "\treturn builder.Fragment(\n\t\t") {
		t.Errorf("fragment body not re-indented:\n%s", res.Code)
	}
}
