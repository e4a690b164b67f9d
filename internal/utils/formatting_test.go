package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatAddress(t *testing.T) {
	address := "n1qperwt9wrnkg5k9e5gzfgjppzpqhyav5j24d66"

	formatted := FormatAddress(address, 8, 6)
	if formatted != "n1qperwt...j24d66" {
		t.Errorf("Unexpected formatted address: %s", formatted)
	}

	short := FormatAddress("n1abc", 8, 6)
	if short != "n1abc" {
		t.Errorf("Short address must not be truncated, got %s", short)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		input    string
		places   int32
		expected string
	}{
		{"15", 6, "15"},
		{"15.000000", 6, "15"},
		{"0.01", 6, "0.01"},
		{"0.000001", 6, "0.000001"},
		{"1234.5", 2, "1234.5"},
	}

	for _, test := range tests {
		got := FormatAmount(decimal.RequireFromString(test.input), test.places)
		if got != test.expected {
			t.Errorf("FormatAmount(%s): expected %s, got %s", test.input, test.expected, got)
		}
	}
}

func TestFormatBalance(t *testing.T) {
	got := FormatBalance(decimal.RequireFromString("100.5"), "NYM")
	if got != "100.5 NYM" {
		t.Errorf("Expected '100.5 NYM', got '%s'", got)
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("hello world", 8); got != "hello..." {
		t.Errorf("Expected 'hello...', got '%s'", got)
	}
	if got := TruncateString("short", 8); got != "short" {
		t.Errorf("Expected 'short', got '%s'", got)
	}
}

func TestFormatStepIndicator(t *testing.T) {
	names := []string{"Details", "Fee", "Review"}

	got := FormatStepIndicator(1, 3, names)
	if got != "✓ > [Fee] > Review" {
		t.Errorf("Unexpected step indicator: %s", got)
	}
}

func TestFormatLoadingText(t *testing.T) {
	tests := []struct {
		frame    int
		expected string
	}{
		{0, "Estimating fee"},
		{1, "Estimating fee."},
		{2, "Estimating fee.."},
		{3, "Estimating fee..."},
		{4, "Estimating fee"},
	}

	for _, test := range tests {
		got := FormatLoadingText("Estimating fee", test.frame)
		if got != test.expected {
			t.Errorf("frame %d: expected %q, got %q", test.frame, test.expected, got)
		}
	}
}
