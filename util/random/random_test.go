package random

import (
	"testing"
)

func TestSeq(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		s := Seq(32)
		if len(s) != 32 {
			t.Fatalf("Seq(32) returned %d characters", len(s))
		}
		for _, r := range s {
			if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
				t.Fatalf("Seq produced non-alphanumeric rune %q", r)
			}
		}
		if seen[s] {
			t.Fatalf("Seq produced duplicate value %q", s)
		}
		seen[s] = true
	}
}
