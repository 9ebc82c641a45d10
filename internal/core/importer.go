package core

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Structural import errors. Any of these aborts the whole import.
var (
	ErrInvalidExtension       = errors.New("invalid file extension")
	ErrParseFailure           = errors.New("invalid csv")
	ErrMissingRequiredColumns = errors.New("missing required columns")
	ErrFileTooLarge           = errors.New("file too large")
)

// DefaultMaxFileSize is used when an Importer has no explicit limit (10MB).
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// Importer reads roster CSV files into raw rows.
type Importer struct {
	// MaxFileSize caps the number of bytes read from a single file.
	MaxFileSize int64
}

// NewImporter creates an Importer with the given size limit.
func NewImporter(maxFileSize int64) *Importer {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &Importer{MaxFileSize: maxFileSize}
}

// CheckExtension returns ErrInvalidExtension unless fileName ends in .csv.
// Only the name is inspected, never the content.
func CheckExtension(fileName string) error {
	ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
	if !strings.EqualFold(ext, "csv") {
		return fmt.Errorf("%w: %q", ErrInvalidExtension, fileName)
	}
	return nil
}

// Import checks the file name, parses r and maps its header. The first CSV
// record is the header; every following non-blank record is a data row. A
// file containing only a header yields zero rows.
func (im *Importer) Import(fileName string, r io.Reader) (Heading, []RawRow, error) {
	if err := CheckExtension(fileName); err != nil {
		return Heading{}, nil, err
	}

	records, err := im.readRecords(r)
	if err != nil {
		return Heading{}, nil, err
	}

	heading, idx, err := ValidateHeaders(records[0])
	if err != nil {
		return Heading{}, nil, err
	}

	rows := make([]RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if isEmptyRow(record) {
			continue
		}
		rows = append(rows, BuildRow(record, idx))
	}

	return heading, rows, nil
}

// readRecords decodes r (dropping a UTF-8 BOM and replacing invalid UTF-8)
// and parses it as CSV.
func (im *Importer) readRecords(r io.Reader) ([][]string, error) {
	limit := im.MaxFileSize
	if limit <= 0 {
		limit = DefaultMaxFileSize
	}

	counter := newCountingReader(r, limit)
	decoded := transform.NewReader(counter, unicode.UTF8BOM.NewDecoder())

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if counter.Exceeded() {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, limit)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: file has no rows", ErrParseFailure)
	}
	return records, nil
}

// countingReader tracks bytes read and fails once more than limit bytes
// have been consumed.
type countingReader struct {
	reader    io.Reader
	bytesRead int64
	limit     int64
}

func newCountingReader(r io.Reader, limit int64) *countingReader {
	return &countingReader{reader: r, limit: limit}
}

// Read implements io.Reader.
func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.bytesRead += int64(n)
	if r.Exceeded() {
		return n, ErrFileTooLarge
	}
	return n, err
}

// Exceeded reports whether more than limit bytes were read.
func (r *countingReader) Exceeded() bool {
	return r.limit > 0 && r.bytesRead > r.limit
}
