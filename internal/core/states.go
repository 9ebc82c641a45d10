package core

import "strings"

// UsStates maps lowercase US state and territory names to their postal codes.
var UsStates = map[string]string{
	"alabama":                  "AL",
	"alaska":                   "AK",
	"american samoa":           "AS",
	"arizona":                  "AZ",
	"arkansas":                 "AR",
	"california":               "CA",
	"colorado":                 "CO",
	"connecticut":              "CT",
	"delaware":                 "DE",
	"district of columbia":     "DC",
	"florida":                  "FL",
	"georgia":                  "GA",
	"guam":                     "GU",
	"hawaii":                   "HI",
	"idaho":                    "ID",
	"illinois":                 "IL",
	"indiana":                  "IN",
	"iowa":                     "IA",
	"kansas":                   "KS",
	"kentucky":                 "KY",
	"louisiana":                "LA",
	"maine":                    "ME",
	"maryland":                 "MD",
	"massachusetts":            "MA",
	"michigan":                 "MI",
	"minnesota":                "MN",
	"mississippi":              "MS",
	"missouri":                 "MO",
	"montana":                  "MT",
	"nebraska":                 "NE",
	"nevada":                   "NV",
	"new hampshire":            "NH",
	"new jersey":               "NJ",
	"new mexico":               "NM",
	"new york":                 "NY",
	"north carolina":           "NC",
	"north dakota":             "ND",
	"northern mariana islands": "MP",
	"ohio":                     "OH",
	"oklahoma":                 "OK",
	"oregon":                   "OR",
	"pennsylvania":             "PA",
	"puerto rico":              "PR",
	"rhode island":             "RI",
	"south carolina":           "SC",
	"south dakota":             "SD",
	"tennessee":                "TN",
	"texas":                    "TX",
	"us virgin islands":        "VI",
	"utah":                     "UT",
	"vermont":                  "VT",
	"virginia":                 "VA",
	"washington":               "WA",
	"west virginia":            "WV",
	"wisconsin":                "WI",
	"wyoming":                  "WY",
}

// usStateCodes is the reverse of UsStates.
var usStateCodes = func() map[string]string {
	m := make(map[string]string, len(UsStates))
	for name, code := range UsStates {
		m[code] = name
	}
	return m
}()

// maxStateNameWords is the longest state name in words
// ("northern mariana islands", "district of columbia").
const maxStateNameWords = 3

// StateSeparator joins normalized state codes for display.
const StateSeparator = " | "

// LookupState resolves a full state name (longer than two characters) or a
// two-letter postal code, case-insensitively, to its postal code.
func LookupState(s string) (string, bool) {
	switch {
	case len(s) == 2:
		code := strings.ToUpper(s)
		if _, ok := usStateCodes[code]; ok {
			return code, true
		}
	case len(s) > 2:
		if code, ok := UsStates[strings.ToLower(s)]; ok {
			return code, true
		}
	}
	return "", false
}

// NormalizeStates converts a list of states separated by commas and/or
// spaces into postal codes joined by " | ". Unresolvable tokens are kept
// verbatim and flag the cell. Multi-word names ("New York") are matched
// greedily within a comma-separated segment.
func NormalizeStates(raw string) Cell {
	if raw == "" {
		return Cell{}
	}

	var out []string
	flagged := false
	for _, segment := range strings.Split(raw, ",") {
		words := strings.Fields(segment)
		for i := 0; i < len(words); {
			code, n := matchState(words[i:])
			if n == 0 {
				out = append(out, words[i])
				flagged = true
				i++
				continue
			}
			out = append(out, code)
			i += n
		}
	}

	return Cell{Value: strings.Join(out, StateSeparator), Flagged: flagged}
}

// matchState tries the longest run of words first and returns the postal
// code and the number of words consumed, or 0 when nothing matches.
func matchState(words []string) (string, int) {
	for n := min(maxStateNameWords, len(words)); n > 0; n-- {
		if code, ok := LookupState(strings.Join(words[:n], " ")); ok {
			return code, n
		}
	}
	return "", 0
}
