package assets

import (
	"strings"
	"testing"
)

func TestBanner(t *testing.T) {
	b := Banner()
	if b == "" || strings.HasSuffix(b, "\n") {
		t.Errorf("banner = %q", b)
	}
	if len(strings.Split(b, "\n")) != 5 {
		t.Errorf("banner should have 5 lines, got %q", b)
	}
}

func TestSignedOutHelp(t *testing.T) {
	help := SignedOutHelp()
	for _, want := range []string{"genstudio login", "demo@example.com", "3 free generations"} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q", want)
		}
	}
}
