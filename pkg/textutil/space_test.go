package textutil

import (
	"regexp"
	"testing"
)

func TestIsSpace(t *testing.T) {
	for _, r := range []rune{' ', '\t', '\n', '\v', '\f', '\r', 0x1c, 0x1f, 0x85, 0xa0, 0x2003, 0x2028, 0x3000} {
		if !IsSpace(r) {
			t.Errorf("IsSpace(%U) = false, want true", r)
		}
	}
	for _, r := range []rune{'a', '_', '0', '#', 0x1b, 0x200b} {
		if IsSpace(r) {
			t.Errorf("IsSpace(%U) = true, want false", r)
		}
	}
}

func TestSpaceClassMatchesIsSpace(t *testing.T) {
	re := regexp.MustCompile(`^[` + SpaceClass + `]$`)
	for r := rune(0); r < 0x3100; r++ {
		if got, want := re.MatchString(string(r)), IsSpace(r); got != want {
			t.Errorf("SpaceClass(%U) = %v, IsSpace = %v", r, got, want)
		}
	}
}

func TestFieldsAndTrim(t *testing.T) {
	s := "\v hello\x1cworld \u3000again\t"
	fields := Fields(s)
	want := []string{"hello", "world", "again"}
	if len(fields) != len(want) {
		t.Fatalf("Fields(%q) = %q, want %q", s, fields, want)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("Fields[%d] = %q, want %q", i, fields[i], want[i])
		}
	}

	if got := Trim(s); got != "hello\x1cworld \u3000again" {
		t.Errorf("Trim(%q) = %q", s, got)
	}
}
