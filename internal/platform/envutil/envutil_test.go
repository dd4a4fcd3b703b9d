package envutil

import (
	"testing"
	"time"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("GARAGE_TEST_INT", "42")
	t.Setenv("GARAGE_TEST_BAD_INT", "forty")
	t.Setenv("GARAGE_TEST_BOOL", "yes")
	t.Setenv("GARAGE_TEST_SECONDS", "0")
	t.Setenv("GARAGE_TEST_LIST", " free, ,pro ")

	if got := Int("GARAGE_TEST_INT", 1); got != 42 {
		t.Fatalf("Int=%d", got)
	}
	if got := Int("GARAGE_TEST_BAD_INT", 7); got != 7 {
		t.Fatalf("Int fallback=%d", got)
	}
	if !Bool("GARAGE_TEST_BOOL", false) {
		t.Fatalf("Bool should be true")
	}
	if got := Seconds("GARAGE_TEST_SECONDS", 5*time.Second); got != 5*time.Second {
		t.Fatalf("Seconds fallback=%s", got)
	}
	if got := List("GARAGE_TEST_LIST", nil); len(got) != 2 || got[0] != "free" || got[1] != "pro" {
		t.Fatalf("List=%v", got)
	}
	if got := String("GARAGE_TEST_UNSET", "dflt"); got != "dflt" {
		t.Fatalf("String=%q", got)
	}
}
