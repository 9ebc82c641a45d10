package core

import "strings"

// DuplicateOf looks for value in the given column of every row and returns
// the 1-based ID of the row it should cross-reference, or 0 when the value is
// blank or occurs only once.
//
// Duplicates point at each other: the last occurrence points at the first,
// every other occurrence points at the last. Pass index -1 when the caller is
// not one of the rows.
//
// Comparison ignores case and surrounding whitespace.
func DuplicateOf(rows []RawRow, field Field, value string, index int) int {
	key := duplicateKey(value)
	if key == "" || !field.valid() {
		return 0
	}

	first, last := -1, -1
	for i, row := range rows {
		if duplicateKey(row[field]) != key {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}

	if first < 0 || first == last {
		return 0
	}
	if index == last {
		return first + 1
	}
	return last + 1
}

// FieldForValue guesses which column a value belongs to: anything shaped like
// an email is compared against emails, everything else against phones.
func FieldForValue(value string) Field {
	if IsValidEmail(value) {
		return FieldEmail
	}
	return FieldPhone
}

// LookupDuplicate is DuplicateOf with the column inferred by FieldForValue.
func LookupDuplicate(rows []RawRow, value string, index int) int {
	return DuplicateOf(rows, FieldForValue(value), value, index)
}

func duplicateKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
