package web

import (
	"time"

	"github.com/JonMunkholm/csvroster/internal/core"
)

// ImportResponse is the JSON form of a validated import.
type ImportResponse struct {
	ID        string        `json:"id"`
	FileName  string        `json:"file_name"`
	Columns   []string      `json:"columns"`
	Rows      []RowResponse `json:"rows"`
	Summary   core.Summary  `json:"summary"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// RowResponse is one validated row keyed by field name.
type RowResponse struct {
	ID               int                  `json:"id"`
	Raw              map[string]string    `json:"raw"`
	Cells            map[string]core.Cell `json:"cells"`
	Flagged          []string             `json:"flagged,omitempty"`
	DuplicateWith    int                  `json:"duplicate_with,omitempty"`
	PhoneDuplicateOf int                  `json:"phone_duplicate_of,omitempty"`
	EmailDuplicateOf int                  `json:"email_duplicate_of,omitempty"`
}

// UpdateCellRequest is the JSON body of a cell edit.
type UpdateCellRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func newImportResponse(imp *core.Import) ImportResponse {
	rows := make([]RowResponse, len(imp.Normalized))
	for i, row := range imp.Normalized {
		raw := make(map[string]string, core.FieldCount)
		cells := make(map[string]core.Cell, core.FieldCount)
		for _, f := range core.Fields {
			raw[f.Key()] = imp.Rows[i].Get(f)
			cells[f.Key()] = row.Cells[f]
		}

		var flagged []string
		for _, f := range row.FlaggedFields() {
			flagged = append(flagged, f.Key())
		}

		rows[i] = RowResponse{
			ID:               row.ID,
			Raw:              raw,
			Cells:            cells,
			Flagged:          flagged,
			DuplicateWith:    row.DuplicateWith,
			PhoneDuplicateOf: row.PhoneDuplicateOf,
			EmailDuplicateOf: row.EmailDuplicateOf,
		}
	}

	return ImportResponse{
		ID:        imp.ID,
		FileName:  imp.FileName,
		Columns:   imp.Heading.Columns(),
		Rows:      rows,
		Summary:   imp.Summary(),
		CreatedAt: imp.CreatedAt,
		UpdatedAt: imp.UpdatedAt,
	}
}
