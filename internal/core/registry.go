package core

import (
	"strings"
	"unicode"
)

// FieldSpec describes how a roster column is named and matched.
type FieldSpec struct {
	Field    Field
	Key      string   // Machine name used in JSON and forms: "yearlyIncome"
	Label    string   // Default display label: "Yearly Income"
	Aliases  []string // Header labels accepted for this column, compared after normalizeLabel
	Required bool     // Column must be present in the CSV header
}

// fieldSpecs is indexed by Field.
var fieldSpecs = [FieldCount]FieldSpec{
	{Field: FieldFullName, Key: "fullName", Label: "Full Name", Required: true,
		Aliases: []string{"fullname", "name"}},
	{Field: FieldPhone, Key: "phone", Label: "Phone", Required: true,
		Aliases: []string{"phone", "phonenumber", "mobile"}},
	{Field: FieldEmail, Key: "email", Label: "Email", Required: true,
		Aliases: []string{"email", "emailaddress"}},
	{Field: FieldAge, Key: "age", Label: "Age",
		Aliases: []string{"age"}},
	{Field: FieldExperience, Key: "experience", Label: "Experience",
		Aliases: []string{"experience", "yearsofexperience"}},
	{Field: FieldYearlyIncome, Key: "yearlyIncome", Label: "Yearly Income",
		Aliases: []string{"yearlyincome", "income", "annualincome"}},
	{Field: FieldHasChildren, Key: "hasChildren", Label: "Has Children",
		Aliases: []string{"haschildren", "children"}},
	{Field: FieldLicenseStates, Key: "licenseStates", Label: "License States",
		Aliases: []string{"licensestates", "licensestate", "states"}},
	{Field: FieldExpirationDate, Key: "expirationDate", Label: "Expiration Date",
		Aliases: []string{"expirationdate", "expiration", "expires"}},
	{Field: FieldLicenseNumber, Key: "licenseNumber", Label: "License Number",
		Aliases: []string{"licensenumber", "license"}},
}

// aliasIndex maps every normalized alias to its field.
var aliasIndex = func() map[string]Field {
	idx := make(map[string]Field)
	for _, spec := range fieldSpecs {
		idx[normalizeLabel(spec.Key)] = spec.Field
		for _, a := range spec.Aliases {
			idx[a] = spec.Field
		}
	}
	return idx
}()

// Spec returns the specification of a field.
// The zero FieldSpec is returned for unknown fields.
func Spec(f Field) FieldSpec {
	if !f.valid() {
		return FieldSpec{}
	}
	return fieldSpecs[f]
}

// RequiredFields returns the fields that must appear in every CSV header.
func RequiredFields() []Field {
	var out []Field
	for _, spec := range fieldSpecs {
		if spec.Required {
			out = append(out, spec.Field)
		}
	}
	return out
}

// ParseField resolves a field key or header label ("yearlyIncome",
// "Yearly Income", "yearly_income") to its Field.
func ParseField(s string) (Field, bool) {
	f, ok := aliasIndex[normalizeLabel(s)]
	return f, ok
}

// normalizeLabel lowercases s and drops everything that is not a letter or
// digit, so "Full Name", "full_name" and "fullName" compare equal.
func normalizeLabel(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
