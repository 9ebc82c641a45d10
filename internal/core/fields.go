package core

// fields.go holds the per-field normalizers. Each one takes an already
// trimmed raw value and returns the display value together with its flag.
//
// Values that cannot be parsed as numbers are shown blank and are NOT
// flagged; only values that parse and break a rule are highlighted.

import (
	"regexp"
	"strconv"
	"time"
)

// Validation limits.
const (
	MinAge          = 21
	MaxYearlyIncome = 1_000_000
	LicenseLength   = 6
)

// Canonical hasChildren values.
const (
	BoolTrue  = "TRUE"
	BoolFalse = "FALSE"
)

var (
	// emailPattern is intentionally loose: something@something.something.
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

	licensePattern = regexp.MustCompile(`^[0-9A-Za-z]+$`)
)

// IsValidEmail reports whether s looks like local@domain.tld.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// NormalizeAge parses the leading integer of raw. Ages under MinAge are flagged.
func NormalizeAge(raw string) Cell {
	age, ok := parseLeadingInt(raw)
	if !ok {
		return Cell{}
	}
	return Cell{Value: strconv.Itoa(age), Flagged: age < MinAge}
}

// NormalizeExperience parses the leading integer of raw. Negative experience
// is flagged, as is experience greater than the row's age when the age is
// numeric. A blank or non-numeric age is not treated as zero, so it never
// flags the experience on its own.
func NormalizeExperience(raw, rawAge string) Cell {
	exp, ok := parseLeadingInt(raw)
	if !ok {
		return Cell{}
	}

	c := Cell{Value: strconv.Itoa(exp), Flagged: exp < 0}
	if age, ok := parseLeadingInt(rawAge); ok && exp > age {
		c.Flagged = true
	}
	return c
}

// NormalizeIncome parses the leading number of raw and formats it with two
// decimals. Incomes above MaxYearlyIncome are flagged.
func NormalizeIncome(raw string) Cell {
	f, ok := parseLeadingFloat(raw)
	if !ok {
		return Cell{}
	}

	value := strconv.FormatFloat(f, 'f', 2, 64)
	rounded, err := strconv.ParseFloat(value, 64)
	if err != nil {
		rounded = f
	}
	return Cell{Value: value, Flagged: rounded > MaxYearlyIncome}
}

// NormalizeHasChildren maps "1" to TRUE and "0" to FALSE. Any other
// non-empty value is kept and flagged unless it already is TRUE or FALSE.
func NormalizeHasChildren(raw string) Cell {
	value := raw
	switch raw {
	case "0":
		value = BoolFalse
	case "1":
		value = BoolTrue
	}
	return Cell{
		Value:   value,
		Flagged: value != "" && value != BoolTrue && value != BoolFalse,
	}
}

// NormalizeEmail keeps raw as-is and flags it unless it looks like an email.
func NormalizeEmail(raw string) Cell {
	return Cell{Value: raw, Flagged: !IsValidEmail(raw)}
}

// NormalizeExpirationDate flags dates that are not YYYY-MM-DD or MM/DD/YYYY,
// or that are not strictly after now. Blank values are not flagged.
func NormalizeExpirationDate(raw string, now time.Time) Cell {
	if raw == "" {
		return Cell{}
	}
	t, ok := parseExpirationDate(raw, now.Location())
	return Cell{Value: raw, Flagged: !ok || !t.After(now)}
}

// NormalizeLicenseNumber flags license numbers that are not exactly six
// letters or digits. Blank values are not flagged.
func NormalizeLicenseNumber(raw string) Cell {
	if raw == "" {
		return Cell{}
	}
	return Cell{
		Value:   raw,
		Flagged: len(raw) != LicenseLength || !licensePattern.MatchString(raw),
	}
}
