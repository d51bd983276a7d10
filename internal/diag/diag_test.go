package diag

import (
	"strings"
	"testing"
)

func TestCollectingSinkAccumulatesInOrder(t *testing.T) {
	sink := NewCollectingSink("int main() {\n  x = 1;\n}\n", "t.src")
	sink.Error(2, 3, "Undeclared identifier")
	sink.Error(0, 0, "No main function")

	if sink.FatalCount() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", sink.FatalCount())
	}
	diags := sink.Diagnostics()
	if diags[0].Message != "Undeclared identifier" || diags[1].Line != 0 {
		t.Fatalf("unexpected diagnostic order/content: %+v", diags)
	}
}

func TestFormatIncludesCaret(t *testing.T) {
	sink := NewCollectingSink("  x = 1;\n", "")
	sink.Error(1, 3, "Undeclared identifier")

	out := sink.Format()
	if out == "" {
		t.Fatal("expected non-empty formatted output")
	}
	if !strings.Contains(out, "\n"+strings.Repeat(" ", 9)+"^") {
		t.Fatalf("expected a caret under column 3, got:\n%s", out)
	}
}

func TestFormatMissingMainUsesZeroZero(t *testing.T) {
	sink := NewCollectingSink("", "")
	sink.Error(0, 0, "No main function")
	if sink.Diagnostics()[0].Line != 0 || sink.Diagnostics()[0].Column != 0 {
		t.Fatal("expected (0,0) position to be preserved")
	}
	if out := sink.Format(); !strings.HasPrefix(out, "0:0: No main function") {
		t.Fatalf("expected Format to report the diagnostic at 0:0, got %q", out)
	}
}
