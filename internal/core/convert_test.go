package core

import (
	"math"
	"testing"
	"time"
)

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"21", 21, true},
		{"21 years", 21, true},
		{"-3", -3, true},
		{"+7", 7, true},
		{"30.9", 30, true},
		{"007", 7, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{"x21", 0, false},
		{"99999999999999999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseLeadingInt(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("parseLeadingInt(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("parseLeadingInt(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLeadingFloat(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{"75000", 75000, true},
		{"75000.5 USD", 75000.5, true},
		{".5", 0.5, true},
		{"-12.25", -12.25, true},
		{"1e3", 1000, true},
		{"1e", 1, true},
		{"2E-2x", 0.02, true},
		{"12.", 12, true},
		{"", 0, false},
		{".", 0, false},
		{"$100", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseLeadingFloat(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("parseLeadingFloat(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("parseLeadingFloat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	t.Run("overflow is infinite", func(t *testing.T) {
		got, ok := parseLeadingFloat("1e999")
		if !ok || !math.IsInf(got, 1) {
			t.Errorf("parseLeadingFloat(1e999) = %v, %v; want +Inf, true", got, ok)
		}
	})
}

func TestParseExpirationDate(t *testing.T) {
	tests := []struct {
		input  string
		wantOK bool
	}{
		{"2099-01-01", true},
		{"01/15/2099", true},
		{"2099-1-1", false},
		{"1/15/2099", false},
		{"01-01-2099", false},
		{"2099-02-30", false},
		{"Jan 15, 2099", false},
		{"2099-01-01T00:00:00Z", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, ok := parseExpirationDate(tt.input, time.UTC)
			if ok != tt.wantOK {
				t.Errorf("parseExpirationDate(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
		})
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Full Name  ", "Full Name"},
		{`="Email"`, "Email"},
		{"=Phone", "Phone"},
		{`"Age"`, "Age"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
