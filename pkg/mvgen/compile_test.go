package mvgen

import (
	"strings"
	"testing"
)

func TestCompile_AccumulatesIndependentErrors(t *testing.T) {
	source := `div class=;
span foo:bar={x};
input on:click:capture={h};`
	res := Compile("test.mv", source)
	got := errCodes(res.Errors)
	want := []ErrorCode{ErrExpectedValue, ErrUnknownDirective, ErrUnknownModifier}
	if len(got) != len(want) {
		t.Fatalf("errors = %v, want %v", res.Errors, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("error %d = %s, want %s", i, got[i], want[i])
		}
	}
	// all three nodes still generate
	for _, ctor := range []string{"builder.Div()", "builder.Span()", "builder.Input()"} {
		if !strings.Contains(res.Code, ctor) {
			t.Errorf("best-effort output missing %s:\n%s", ctor, res.Code)
		}
	}
}

func TestCompile_ErrorRendering(t *testing.T) {
	res := Compile("test.mv", "div\n  class=;")
	err := res.Err()
	if err == nil {
		t.Fatal("want an error")
	}
	if !strings.Contains(err.Error(), "test.mv:2:9: error: expected value after `=`") {
		t.Errorf("rendered = %q", err.Error())
	}
}

func TestCompile_NoErrorsNilErr(t *testing.T) {
	res := Compile("test.mv", `div;`)
	if err := res.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCompile_EmptyInput(t *testing.T) {
	res := Compile("test.mv", "")
	if err := res.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Code != "builder.Fragment()" {
		t.Errorf("code = %q", res.Code)
	}
}

func TestCompile_FreshStatePerInvocation(t *testing.T) {
	// clone counters must not leak between invocations
	first := Compile("a.mv", `div clone:sig clone:sig { "x" }`)
	second := Compile("b.mv", `div clone:sig clone:sig { "x" }`)
	if !strings.Contains(second.Code, "sig_1 := sig") {
		t.Errorf("second invocation code:\n%s", second.Code)
	}
	if strings.Contains(second.Code, "sig_2") {
		t.Errorf("counter leaked across invocations:\n%s\n%s", first.Code, second.Code)
	}
}
