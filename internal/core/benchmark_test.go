package core

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// ============================================================================
// Field Normalizer Benchmarks
// ============================================================================

// BenchmarkParseLeadingInt benchmarks the age/experience parser.
func BenchmarkParseLeadingInt(b *testing.B) {
	testCases := []string{
		"35",
		"  42 years",
		"-3",
		"abc",
		"99999999999999999999", // Overflow
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			parseLeadingInt(tc)
		}
	}
}

// BenchmarkNormalizeIncome benchmarks float parsing plus two-decimal formatting.
func BenchmarkNormalizeIncome(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NormalizeIncome("85000.456")
	}
}

// BenchmarkNormalizeStates benchmarks state resolution, including multi-word
// names and unknown tokens.
func BenchmarkNormalizeStates(b *testing.B) {
	testCases := []string{
		"FL",
		"Florida, Texas",
		"new york, north carolina, District of Columbia",
		"XX, Narnia",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			NormalizeStates(tc)
		}
	}
}

// BenchmarkNormalizePhone benchmarks phone parsing and E.164 formatting.
func BenchmarkNormalizePhone(b *testing.B) {
	testCases := []string{
		"5551234567",
		"(555) 123-4567",
		"+1 555 123 4567",
		"123",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			NormalizePhone(tc, DefaultRegion)
		}
	}
}

// ============================================================================
// Pipeline Benchmarks
// ============================================================================

// benchRows builds n distinct rows; every tenth row repeats an earlier email.
func benchRows(n int) []RawRow {
	rows := make([]RawRow, n)
	for i := range rows {
		email := fmt.Sprintf("user%d@example.com", i)
		if i%10 == 9 {
			email = fmt.Sprintf("user%d@example.com", i-5)
		}
		rows[i] = rosterRow(
			fmt.Sprintf("User %d", i),
			fmt.Sprintf("555%07d", i),
			email,
			"35", "10", "85000", "1", "FL Texas", "2099-01-01", "AB1234",
		)
	}
	return rows
}

// BenchmarkProcess benchmarks full-table processing. Duplicate detection is
// quadratic in the row count, so sizes are kept moderate.
func BenchmarkProcess(b *testing.B) {
	for _, n := range []int{100, 1000} {
		rows := benchRows(n)
		p := newTestProcessor()

		b.Run(fmt.Sprintf("rows=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				p.Process(rows)
			}
		})
	}
}

// BenchmarkImport benchmarks reading and header-mapping a 1000-row file.
func BenchmarkImport(b *testing.B) {
	var buf bytes.Buffer
	buf.WriteString(rosterHeader)
	for _, row := range benchRows(1000) {
		buf.WriteString(strings.Join(row[:], ",") + "\n")
	}
	data := buf.Bytes()

	im := NewImporter(0)

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := im.Import("roster.csv", bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkWriteXLSX benchmarks workbook export.
func BenchmarkWriteXLSX(b *testing.B) {
	rows := newTestProcessor().Process(benchRows(500))
	heading := DefaultHeading()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var buf bytes.Buffer
		if err := WriteXLSX(&buf, heading, rows); err != nil {
			b.Fatal(err)
		}
	}
}
