package name

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	valid := []string{"alice", "alice-99", "A", "0", "-", "UPPER-lower-123"}
	for _, n := range valid {
		if err := Validate(n); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", n, err)
		}
	}

	invalid := []string{"", "alice@", "with space", "под", "dot.ted", "under_score", "alice!"}
	for _, n := range invalid {
		err := Validate(n)
		if err == nil {
			t.Errorf("Validate(%q) = nil, want error", n)
			continue
		}
		if !errors.Is(err, ErrInvalidName) {
			t.Errorf("Validate(%q) error %v is not ErrInvalidName", n, err)
		}
	}
}

func TestFirstInvalidCharIndex(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"alice", -1},
		{"alice@", 6},
		{"@alice", 1},
		{"al ice", 3},
		{"", -1},
		{"alice-99", -1},
	}
	for _, tt := range tests {
		if got := FirstInvalidCharIndex(tt.name); got != tt.want {
			t.Errorf("FirstInvalidCharIndex(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestHex(t *testing.T) {
	if got := Hex("abc"); got != "616263" {
		t.Errorf("Hex(abc) = %q, want 616263", got)
	}
}
