package core

import "time"

// Processor turns raw rows into normalized, flagged rows.
//
// A Processor holds no per-import state; the same Processor may be used
// concurrently for different row sets.
type Processor struct {
	// Now returns the reference time for expiration checks (default time.Now).
	Now func() time.Time

	// Region interprets phone numbers without a country code (default "US").
	Region string
}

// NewProcessor creates a Processor for the given phone region.
func NewProcessor(region string) *Processor {
	return &Processor{Now: time.Now, Region: region}
}

// Process normalizes every row against the full row set. The result has one
// NormalizedRow per input row, in the same order; rows is not modified.
func (p *Processor) Process(rows []RawRow) []NormalizedRow {
	now := p.now()
	out := make([]NormalizedRow, len(rows))
	for i := range rows {
		out[i] = p.processRow(rows, i, now)
	}
	return out
}

// ProcessRow normalizes rows[i], using the other rows for duplicate detection.
func (p *Processor) ProcessRow(rows []RawRow, i int) NormalizedRow {
	return p.processRow(rows, i, p.now())
}

func (p *Processor) processRow(rows []RawRow, i int, now time.Time) NormalizedRow {
	row := rows[i].Trimmed()

	out := NormalizedRow{
		ID:               i + 1,
		PhoneDuplicateOf: LookupDuplicate(rows, row[FieldPhone], i),
		EmailDuplicateOf: LookupDuplicate(rows, row[FieldEmail], i),
	}

	out.Cells[FieldFullName] = Cell{Value: row[FieldFullName]}

	out.Cells[FieldPhone] = NormalizePhone(row[FieldPhone], p.Region)
	if out.PhoneDuplicateOf > 0 {
		out.Cells[FieldPhone].Flagged = true
	}

	out.Cells[FieldEmail] = NormalizeEmail(row[FieldEmail])
	if out.EmailDuplicateOf > 0 {
		out.Cells[FieldEmail].Flagged = true
	}

	out.Cells[FieldAge] = NormalizeAge(row[FieldAge])
	out.Cells[FieldExperience] = NormalizeExperience(row[FieldExperience], row[FieldAge])
	out.Cells[FieldYearlyIncome] = NormalizeIncome(row[FieldYearlyIncome])
	out.Cells[FieldHasChildren] = NormalizeHasChildren(row[FieldHasChildren])
	out.Cells[FieldLicenseStates] = NormalizeStates(row[FieldLicenseStates])
	out.Cells[FieldExpirationDate] = NormalizeExpirationDate(row[FieldExpirationDate], now)
	out.Cells[FieldLicenseNumber] = NormalizeLicenseNumber(row[FieldLicenseNumber])

	out.DuplicateWith = out.PhoneDuplicateOf
	if out.DuplicateWith == 0 {
		out.DuplicateWith = out.EmailDuplicateOf
	}

	return out
}

func (p *Processor) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}
