package core

// convert.go provides the low-level conversions used by the field normalizers.
//
// These functions handle the messy reality of user-provided CSV data:
//   - Numbers followed by junk ("21 years", "75000.5 USD")
//   - Excel formula prefixes (="value") in header cells
//   - Strictly formatted dates that must round-trip exactly
//
// Numeric parsing deliberately reads the longest valid numeric prefix and
// ignores the rest, so "21abc" is 21 and "abc" is not a number at all.

import (
	"strconv"
	"strings"
	"time"
)

// Accepted expiration date layouts. A value must round-trip through one of
// these exactly, so "2099-1-1" and "1/1/2099" are rejected.
var expirationLayouts = []string{
	"2006-01-02",
	"01/02/2006",
}

// parseLeadingInt parses an optional sign followed by the leading run of
// decimal digits. ok is false when there are no digits or the value does not
// fit in an int.
func parseLeadingInt(s string) (n int, ok bool) {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseLeadingFloat parses the longest prefix of s that forms a decimal
// number with optional sign, fraction and exponent.
func parseLeadingFloat(s string) (f float64, ok bool) {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}

	mantissa := 0
	for end < len(s) && isDigit(s[end]) {
		end++
		mantissa++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && isDigit(s[end]) {
			end++
			mantissa++
		}
	}
	if mantissa == 0 {
		return 0, false
	}

	// Exponent only counts when digits follow it: "1e" parses as 1.
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		start := exp
		for exp < len(s) && isDigit(s[exp]) {
			exp++
		}
		if exp > start {
			end = exp
		}
	}

	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		// Out of range values still come back as ±Inf with an error.
		if ne, isNum := err.(*strconv.NumError); isNum && ne.Err == strconv.ErrRange {
			return f, true
		}
		return 0, false
	}
	return f, true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// parseExpirationDate parses s using the accepted layouts in loc.
// It only succeeds when formatting the result reproduces s exactly.
func parseExpirationDate(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range expirationLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			continue
		}
		if t.Format(layout) == s {
			return t, true
		}
	}
	return time.Time{}, false
}

// CleanCell removes common CSV artifacts from a header cell:
//   - Trims whitespace
//   - Removes Excel formula prefix (="...")
//   - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") && len(s) >= 3 {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}

// isEmptyRow reports whether every cell of a CSV record is blank.
func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
