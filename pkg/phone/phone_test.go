package phone

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9876543210", "9876543210"},
		{"987-654-3210", "9876543210"},
		{"(987) 654 3210", "9876543210"},
		{"98765432101234", "9876543210"},
		{"abc", ""},
		{"", ""},
		{"98765", "98765"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"9876543210", true},
		{"987-654-3210", true},
		{"987654321", false},
		{"98765432100", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Valid(tt.in); got != tt.want {
				t.Errorf("Valid(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	if !Equal("987-654-3210", "9876543210") {
		t.Error("formatting differences must not matter")
	}
	if Equal("9876543210", "9876543211") {
		t.Error("different digits must not be equal")
	}
}

func TestDisplay(t *testing.T) {
	if got := Display("9876543210", "IN"); !strings.HasPrefix(got, "+91") {
		t.Errorf("Display() = %q, want +91 prefix", got)
	}
	if got := Display("9876543210", ""); got != "9876543210" {
		t.Errorf("Display() without region = %q", got)
	}
	if got := Display("not a number", "IN"); got != "not a number" {
		t.Errorf("Display() of garbage = %q", got)
	}
}
