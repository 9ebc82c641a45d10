package core

// validation.go maps a CSV header row onto roster fields.
//
// Header cells are matched by label or alias first ("Full Name",
// "full_name", "Annual Income"), in any order. Cells that match no known
// label fall back to the field at the same position in the expected column
// order, so files with unusual headings still line up. A required column is
// only satisfied by its own label ("Full Name", "Phone", "Email"), compared
// case-insensitively; aliases and positional matches map the column but do
// not count.

import (
	"fmt"
	"strings"
)

// HeaderIndex maps each field to its column position in the CSV, or -1 when
// the file has no such column.
type HeaderIndex [FieldCount]int

// Cell returns the value of field f in a CSV record, or "" when the column
// is absent or the record is short.
func (idx HeaderIndex) Cell(record []string, f Field) string {
	pos := idx[f]
	if pos < 0 || pos >= len(record) {
		return ""
	}
	return record[pos]
}

// ValidateHeaders resolves header cells to fields and checks that every
// required field was found by label. It returns the display heading (with
// the synthetic ID and Duplicate With columns) and the column index.
func ValidateHeaders(header []string) (Heading, HeaderIndex, error) {
	heading := DefaultHeading()

	var idx HeaderIndex
	for i := range idx {
		idx[i] = -1
	}

	var byLabel [FieldCount]bool
	assigned := make([]bool, len(header))

	// Pass 1: label matches.
	for i, h := range header {
		label := CleanCell(h)
		f, ok := ParseField(label)
		if !ok || idx[f] >= 0 {
			continue
		}
		idx[f] = i
		heading.Labels[f] = label
		byLabel[f] = isCanonicalLabel(label, f)
		assigned[i] = true
	}

	// Pass 2: positional fallback for unrecognized columns.
	for i, h := range header {
		if assigned[i] || i >= FieldCount {
			continue
		}
		f := Fields[i]
		if idx[f] >= 0 {
			continue
		}
		idx[f] = i
		if label := CleanCell(h); label != "" {
			heading.Labels[f] = label
		}
	}

	var missing []string
	for _, f := range RequiredFields() {
		if !byLabel[f] {
			missing = append(missing, f.Label())
		}
	}
	if len(missing) > 0 {
		return Heading{}, HeaderIndex{}, fmt.Errorf("%w: %s", ErrMissingRequiredColumns, strings.Join(missing, ", "))
	}

	return heading, idx, nil
}

// isCanonicalLabel reports whether label names f itself rather than one of
// its aliases.
func isCanonicalLabel(label string, f Field) bool {
	return normalizeLabel(label) == normalizeLabel(f.Label())
}

// BuildRow extracts a RawRow from a CSV record using idx.
func BuildRow(record []string, idx HeaderIndex) RawRow {
	var row RawRow
	for _, f := range Fields {
		row[f] = idx.Cell(record, f)
	}
	return row
}
