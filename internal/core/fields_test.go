package core

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func TestNormalizeAge(t *testing.T) {
	tests := []struct {
		raw  string
		want Cell
	}{
		{"21", Cell{Value: "21"}},
		{"45", Cell{Value: "45"}},
		{"20", Cell{Value: "20", Flagged: true}},
		{"0", Cell{Value: "0", Flagged: true}},
		{"30 years", Cell{Value: "30"}},
		{"abc", Cell{}},
		{"", Cell{}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := NormalizeAge(tt.raw); got != tt.want {
				t.Errorf("NormalizeAge(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeExperience(t *testing.T) {
	tests := []struct {
		name string
		exp  string
		age  string
		want Cell
	}{
		{"within age", "5", "30", Cell{Value: "5"}},
		{"equal to age", "30", "30", Cell{Value: "30"}},
		{"exceeds age", "31", "30", Cell{Value: "31", Flagged: true}},
		{"negative", "-1", "30", Cell{Value: "-1", Flagged: true}},
		{"negative without age", "-1", "", Cell{Value: "-1", Flagged: true}},
		// An unknown age does not count as zero.
		{"blank age does not bound experience", "50", "", Cell{Value: "50"}},
		{"non-numeric age does not bound experience", "50", "old", Cell{Value: "50"}},
		{"non-numeric", "lots", "30", Cell{}},
		{"blank", "", "30", Cell{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeExperience(tt.exp, tt.age); got != tt.want {
				t.Errorf("NormalizeExperience(%q, %q) = %+v, want %+v", tt.exp, tt.age, got, tt.want)
			}
		})
	}
}

func TestNormalizeIncome(t *testing.T) {
	tests := []struct {
		raw  string
		want Cell
	}{
		{"75000", Cell{Value: "75000.00"}},
		{"1000000", Cell{Value: "1000000.00"}},
		{"1000000.004", Cell{Value: "1000000.00"}},
		{"1000000.01", Cell{Value: "1000000.01", Flagged: true}},
		{"2500000", Cell{Value: "2500000.00", Flagged: true}},
		{"12.346", Cell{Value: "12.35"}},
		{"99.5k", Cell{Value: "99.50"}},
		{"-10", Cell{Value: "-10.00"}},
		{"n/a", Cell{}},
		{"", Cell{}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := NormalizeIncome(tt.raw); got != tt.want {
				t.Errorf("NormalizeIncome(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeHasChildren(t *testing.T) {
	tests := []struct {
		raw  string
		want Cell
	}{
		{"0", Cell{Value: "FALSE"}},
		{"1", Cell{Value: "TRUE"}},
		{"TRUE", Cell{Value: "TRUE"}},
		{"FALSE", Cell{Value: "FALSE"}},
		{"true", Cell{Value: "true", Flagged: true}},
		{"maybe", Cell{Value: "maybe", Flagged: true}},
		{"", Cell{}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := NormalizeHasChildren(tt.raw); got != tt.want {
				t.Errorf("NormalizeHasChildren(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		raw         string
		wantFlagged bool
	}{
		{"a@b.com", false},
		{"jane.doe@example.co.uk", false},
		{"not-an-email", true},
		{"a@b", true},
		{"@b.com", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := NormalizeEmail(tt.raw)
			if got.Value != tt.raw {
				t.Errorf("NormalizeEmail(%q).Value = %q, want passthrough", tt.raw, got.Value)
			}
			if got.Flagged != tt.wantFlagged {
				t.Errorf("NormalizeEmail(%q).Flagged = %v, want %v", tt.raw, got.Flagged, tt.wantFlagged)
			}
		})
	}
}

func TestNormalizeExpirationDate(t *testing.T) {
	tests := []struct {
		raw         string
		wantFlagged bool
	}{
		{"2099-01-01", false},
		{"12/31/2099", false},
		{"2026-10-20", false},
		{"2026-10-19", true},
		{"2000-01-01", true},
		{"01-01-2099", true},
		{"2099/01/01", true},
		{"soon", true},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := NormalizeExpirationDate(tt.raw, testNow)
			if got.Value != tt.raw {
				t.Errorf("NormalizeExpirationDate(%q).Value = %q, want passthrough", tt.raw, got.Value)
			}
			if got.Flagged != tt.wantFlagged {
				t.Errorf("NormalizeExpirationDate(%q).Flagged = %v, want %v", tt.raw, got.Flagged, tt.wantFlagged)
			}
		})
	}
}

func TestNormalizeLicenseNumber(t *testing.T) {
	tests := []struct {
		raw         string
		wantFlagged bool
	}{
		{"AB1234", false},
		{"abcdef", false},
		{"123456", false},
		{"AB-123", true},
		{"AB123", true},
		{"AB12345", true},
		{"AB 123", true},
		{"ÄB1234", true},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := NormalizeLicenseNumber(tt.raw)
			if got.Flagged != tt.wantFlagged {
				t.Errorf("NormalizeLicenseNumber(%q).Flagged = %v, want %v", tt.raw, got.Flagged, tt.wantFlagged)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		raw  string
		want Cell
	}{
		{"5551234567", Cell{Value: "+15551234567"}},
		{"(555) 123-4567", Cell{Value: "+15551234567"}},
		{"+1 555 123 4567", Cell{Value: "+15551234567"}},
		{"555-123-4567", Cell{Value: "+15551234567"}},
		{"123", Cell{Value: "123", Flagged: true}},
		{"call me", Cell{Value: "call me", Flagged: true}},
		{"", Cell{Flagged: true}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := NormalizePhone(tt.raw, DefaultRegion); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}
