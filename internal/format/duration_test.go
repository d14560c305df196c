package format

import (
	"testing"
	"time"
)

// TestFormatExecutionDuration verifies duration formatting.
func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "-"},
		{500 * time.Nanosecond, "< 1µs"},
		{10 * time.Microsecond, "10µs"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
		{1500*time.Millisecond + 300*time.Microsecond, "1.5s"},
	}

	for _, tt := range tests {
		got := FormatExecutionDuration(tt.d)
		if got != tt.expected {
			t.Errorf("FormatExecutionDuration(%v) = %s; want %s", tt.d, got, tt.expected)
		}
	}
}

func TestPlural(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 units"},
		{1, "1 unit"},
		{13, "13 units"},
	}
	for _, tt := range tests {
		if got := Plural(tt.n, "unit"); got != tt.want {
			t.Errorf("Plural(%d) = %q; want %q", tt.n, got, tt.want)
		}
	}
}
