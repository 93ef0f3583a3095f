package verdict_test

import (
	"fmt"
	"strings"
	"testing"

	verdict "github.com/verdict-go/verdict"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := verdict.Issues{
		{Path: "/a", Code: verdict.CodeRequired},
		{Path: "/b", Code: verdict.CodeTooSmall},
		{Path: "/c", Code: verdict.CodeTooBig},
		{Path: "/d", Code: verdict.CodePattern},
	}
	msg := iss.Error()
	if !strings.Contains(msg, "required at /a") {
		t.Fatalf("summary missing first issue: %q", msg)
	}
	if !strings.Contains(msg, "(total 4)") {
		t.Fatalf("summary missing total: %q", msg)
	}
}

func TestAsIssues_Extraction(t *testing.T) {
	var err error = verdict.Issues{{Path: "/x", Code: verdict.CodeInvalidType}}
	iss, ok := verdict.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Path != "/x" {
		t.Fatalf("expected extraction, got ok=%v iss=%#v", ok, iss)
	}
	// wrapped errors unwrap via errors.As
	wrapped := fmt.Errorf("handler: %w", err)
	if _, ok := verdict.AsIssues(wrapped); !ok {
		t.Fatalf("expected extraction through wrapping")
	}
	if _, ok := verdict.AsIssues(nil); ok {
		t.Fatalf("nil error must not extract")
	}
}

func TestPathRef_PointerAndEscape(t *testing.T) {
	p := verdict.Root().Field("items").Index(2).Field("unit/price")
	if got := p.Pointer(); got != "/items/2/unit~1price" {
		t.Fatalf("unexpected pointer: %q", got)
	}
	if got := verdict.Root().Pointer(); got != "/" {
		t.Fatalf("unexpected root pointer: %q", got)
	}
	if got := verdict.At("/a/b").Field("c").Pointer(); got != "/a/b/c" {
		t.Fatalf("unexpected parsed pointer: %q", got)
	}
	it := verdict.At("/age").Issue(verdict.CodeTooSmall, "too small", "min", 0)
	if it.Path != "/age" || it.Code != verdict.CodeTooSmall || it.Params["min"] != 0 {
		t.Fatalf("unexpected issue: %#v", it)
	}
}
