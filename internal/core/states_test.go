package core

import "testing"

func TestNormalizeStates(t *testing.T) {
	tests := []struct {
		raw  string
		want Cell
	}{
		{"FL, TX", Cell{Value: "FL | TX"}},
		{"Florida, ZZ", Cell{Value: "FL | ZZ", Flagged: true}},
		{"XX", Cell{Value: "XX", Flagged: true}},
		{"fl tx", Cell{Value: "FL | TX"}},
		{"New York, new jersey", Cell{Value: "NY | NJ"}},
		{"New York Texas", Cell{Value: "NY | TX"}},
		{"District of Columbia", Cell{Value: "DC"}},
		{"Puerto Rico,GU", Cell{Value: "PR | GU"}},
		{"CA,,  NV", Cell{Value: "CA | NV"}},
		{"T", Cell{Value: "T", Flagged: true}},
		{"Calif", Cell{Value: "Calif", Flagged: true}},
		{"", Cell{}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := NormalizeStates(tt.raw); got != tt.want {
				t.Errorf("NormalizeStates(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

// Multi-word names resolve to one state instead of splitting on every
// space into unknown tokens.
func TestNormalizeStates_MultiWordNames(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Cell
	}{
		{"multi-word name is one state", "New York", Cell{Value: "NY"}},
		{"three words", "District of Columbia", Cell{Value: "DC"}},
		{"longest match first", "New Mexico New Hampshire", Cell{Value: "NM | NH"}},
		{"partial name is flagged", "New", Cell{Value: "New", Flagged: true}},
		{"unknown second word", "New Yorkshire", Cell{Value: "New | Yorkshire", Flagged: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeStates(tt.raw); got != tt.want {
				t.Errorf("NormalizeStates(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestLookupState(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"CA", "CA", true},
		{"ca", "CA", true},
		{"California", "CA", true},
		{"WEST VIRGINIA", "WV", true},
		{"ZZ", "", false},
		{"C", "", false},
		{"Cal", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := LookupState(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("LookupState(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestUsStatesRoundTrip(t *testing.T) {
	for name, code := range UsStates {
		if got, ok := LookupState(code); !ok || got != code {
			t.Errorf("LookupState(%q) = %q, %v", code, got, ok)
		}
		if got, ok := LookupState(name); !ok || got != code {
			t.Errorf("LookupState(%q) = %q, %v", name, got, ok)
		}
	}
	if len(UsStates) != len(usStateCodes) {
		t.Errorf("state names and codes differ in size: %d vs %d", len(UsStates), len(usStateCodes))
	}
}
