package printer

import "testing"

func TestNewColorPrinter_Disabled(t *testing.T) {
	p := NewColorPrinter(false)
	if got := p.Warning("stale %s", "v2"); got != "stale v2" {
		t.Fatalf("got %q, want plain text", got)
	}
	if p.Enabled {
		t.Fatal("want Enabled=false")
	}
}
