package notify

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsole_WritesMessages(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Success("Welcome back, Demo User!")
	c.Error("Invalid email or password")

	out := buf.String()
	if !strings.Contains(out, "Welcome back, Demo User!") {
		t.Errorf("success toast missing from output: %q", out)
	}
	if !strings.Contains(out, "Invalid email or password") {
		t.Errorf("error toast missing from output: %q", out)
	}
}

func TestFunc_RoutesByKind(t *testing.T) {
	var got []string
	n := Func(func(ok bool, msg string) {
		if ok {
			got = append(got, "ok:"+msg)
		} else {
			got = append(got, "err:"+msg)
		}
	})
	n.Success("a")
	n.Error("b")

	if len(got) != 2 || got[0] != "ok:a" || got[1] != "err:b" {
		t.Errorf("unexpected calls: %v", got)
	}
}

func TestGate_HoldReleaseSwap(t *testing.T) {
	var got []string
	record := func(prefix string) Notifier {
		return Func(func(ok bool, msg string) { got = append(got, prefix+msg) })
	}

	g := NewGate(record("a:"))
	g.Success("1")
	g.Hold()
	g.Error("2")
	g.Success("3")
	if len(got) != 1 {
		t.Fatalf("held toasts delivered early: %v", got)
	}
	g.Release()
	g.Swap(record("b:"))
	g.Success("4")

	want := []string{"a:1", "a:2", "a:3", "b:4"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("got %v, want %v", got, want)
	}
}
