package core

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Field identifies one column of a roster CSV.
type Field int

const (
	FieldFullName Field = iota
	FieldPhone
	FieldEmail
	FieldAge
	FieldExperience
	FieldYearlyIncome
	FieldHasChildren
	FieldLicenseStates
	FieldExpirationDate
	FieldLicenseNumber

	// FieldCount is the number of roster columns.
	FieldCount int = iota
)

// Fields lists every roster column in the fixed expected CSV order.
var Fields = [FieldCount]Field{
	FieldFullName,
	FieldPhone,
	FieldEmail,
	FieldAge,
	FieldExperience,
	FieldYearlyIncome,
	FieldHasChildren,
	FieldLicenseStates,
	FieldExpirationDate,
	FieldLicenseNumber,
}

// Key returns the field's machine name (e.g. "yearlyIncome").
func (f Field) Key() string {
	return Spec(f).Key
}

// Label returns the field's default display label.
func (f Field) Label() string {
	return Spec(f).Label
}

func (f Field) String() string {
	return f.Key()
}

// valid reports whether f is one of the declared roster fields.
func (f Field) valid() bool {
	return f >= 0 && int(f) < FieldCount
}

// RawRow holds the unvalidated values of one CSV data line, indexed by Field.
// It is a value type: copying a RawRow copies its contents.
type RawRow [FieldCount]string

// Get returns the raw value of a field.
func (r RawRow) Get(f Field) string {
	if !f.valid() {
		return ""
	}
	return r[f]
}

// Trimmed returns a copy of the row with surrounding whitespace removed from
// every value.
func (r RawRow) Trimmed() RawRow {
	var out RawRow
	for i, v := range r {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

// MarshalJSON encodes the row as an object keyed by field name.
func (r RawRow) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, FieldCount)
	for _, f := range Fields {
		m[f.Key()] = r[f]
	}
	return json.Marshal(m)
}

// Heading holds the display label of every column plus the two synthetic
// columns added by the importer.
type Heading struct {
	Labels        [FieldCount]string
	ID            string
	DuplicateWith string
}

// Synthetic heading labels.
const (
	HeadingID            = "ID"
	HeadingDuplicateWith = "Duplicate With"
)

// DefaultHeading returns a heading made of the default field labels.
func DefaultHeading() Heading {
	h := Heading{ID: HeadingID, DuplicateWith: HeadingDuplicateWith}
	for _, f := range Fields {
		h.Labels[f] = f.Label()
	}
	return h
}

// Label returns the display label for a field.
func (h Heading) Label(f Field) string {
	if !f.valid() {
		return ""
	}
	return h.Labels[f]
}

// Columns returns the display labels in render order:
// ID, every field, Duplicate With.
func (h Heading) Columns() []string {
	cols := make([]string, 0, FieldCount+2)
	cols = append(cols, h.ID)
	cols = append(cols, h.Labels[:]...)
	cols = append(cols, h.DuplicateWith)
	return cols
}

// Cell is a normalized display value and whether it should be highlighted.
type Cell struct {
	Value   string `json:"value"`
	Flagged bool   `json:"flagged"`
}

// NormalizedRow is a RawRow after normalization and validation flagging.
type NormalizedRow struct {
	// ID is the 1-based position of the row in the import.
	ID    int
	Cells [FieldCount]Cell

	// PhoneDuplicateOf and EmailDuplicateOf are the 1-based IDs of the other
	// row sharing this row's phone or email, or 0.
	PhoneDuplicateOf int
	EmailDuplicateOf int

	// DuplicateWith is the cross-reference shown to users: the phone
	// duplicate if any, otherwise the email duplicate.
	DuplicateWith int
}

// Cell returns the cell for a field.
func (r NormalizedRow) Cell(f Field) Cell {
	if !f.valid() {
		return Cell{}
	}
	return r.Cells[f]
}

// Flagged reports whether any cell of the row is flagged.
func (r NormalizedRow) Flagged() bool {
	for _, c := range r.Cells {
		if c.Flagged {
			return true
		}
	}
	return false
}

// FlaggedFields returns the fields whose cells are flagged, in column order.
func (r NormalizedRow) FlaggedFields() []Field {
	var out []Field
	for _, f := range Fields {
		if r.Cells[f].Flagged {
			out = append(out, f)
		}
	}
	return out
}

// Values returns the display values in render order, matching Heading.Columns.
func (r NormalizedRow) Values() []string {
	vals := make([]string, 0, FieldCount+2)
	vals = append(vals, strconv.Itoa(r.ID))
	for _, c := range r.Cells {
		vals = append(vals, c.Value)
	}
	dup := ""
	if r.DuplicateWith > 0 {
		dup = strconv.Itoa(r.DuplicateWith)
	}
	return append(vals, dup)
}

// Import is one processed upload. An Import is never modified after it is
// created; edits produce a new Import that replaces the old one.
type Import struct {
	ID         string
	FileName   string
	Heading    Heading
	Rows       []RawRow
	Normalized []NormalizedRow
	ClientIP   string
	UserAgent  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Summary counts the flagged and duplicated rows of the import.
func (imp *Import) Summary() Summary {
	return Summarize(imp.Normalized)
}

// Summary contains counts describing an import's validation outcome.
type Summary struct {
	TotalRows      int            `json:"total_rows"`
	FlaggedRows    int            `json:"flagged_rows"`
	DuplicateRows  int            `json:"duplicate_rows"`
	FlaggedByField map[string]int `json:"flagged_by_field"`
}

// Summarize counts flagged and duplicated rows.
func Summarize(rows []NormalizedRow) Summary {
	s := Summary{
		TotalRows:      len(rows),
		FlaggedByField: make(map[string]int),
	}
	for _, row := range rows {
		if row.Flagged() {
			s.FlaggedRows++
		}
		if row.PhoneDuplicateOf > 0 || row.EmailDuplicateOf > 0 {
			s.DuplicateRows++
		}
		for _, f := range row.FlaggedFields() {
			s.FlaggedByField[f.Key()]++
		}
	}
	return s
}
