package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const validRoster = "Full Name,Phone,Email,Age\n" +
	"Jane Doe,5551234567,jane@example.com,35\n" +
	"John Roe,5559876543,jane@example.com,40\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_Usage(t *testing.T) {
	var stderr bytes.Buffer

	code := run(context.Background(), nil, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "usage: rostercheck")
}

func TestRun_BadFlag(t *testing.T) {
	var stderr bytes.Buffer

	code := run(context.Background(), []string{"-nope"}, &stderr)

	assert.Equal(t, 2, code)
}

func TestRun_ValidFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", validRoster)
	b := writeFile(t, dir, "b.csv", validRoster)
	outDir := filepath.Join(dir, "out")

	var stderr bytes.Buffer
	code := run(context.Background(), []string{"-j", "2", "-xlsx", outDir, a, b}, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, 2, strings.Count(stderr.String(), "file checked"))
	assert.Contains(t, stderr.String(), "duplicate_rows=2")

	f, err := excelize.OpenFile(filepath.Join(outDir, "a_validated.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.FileExists(t, filepath.Join(outDir, "b_validated.xlsx"))
}

func TestRun_StructuralFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.csv", validRoster)
	wrongExt := writeFile(t, dir, "roster.txt", validRoster)
	noEmail := writeFile(t, dir, "noemail.csv", "Full Name,Phone\nJane,5551234567\n")

	var stderr bytes.Buffer
	code := run(context.Background(), []string{"-log-format", "json", good, wrongExt, noEmail}, &stderr)

	assert.Equal(t, 1, code)
	out := stderr.String()
	assert.Contains(t, out, `"code":"FILE006"`)
	assert.Contains(t, out, `"code":"VAL004"`)
	assert.Contains(t, out, `"reason":"Invalid File Extension: The selected file is not a CSV file (Code: FILE006). Only CSV files are accepted"`)
	assert.Contains(t, out, `"failed":2`)
	assert.Equal(t, 1, strings.Count(out, "file checked"))
}

func TestRun_MissingFile(t *testing.T) {
	var stderr bytes.Buffer

	code := run(context.Background(), []string{filepath.Join(t.TempDir(), "missing.csv")}, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "file rejected")
}

func TestWorkbookName(t *testing.T) {
	assert.Equal(t, "roster_validated.xlsx", workbookName("in/roster.csv"))
	assert.Equal(t, "team.roster_validated.xlsx", workbookName("team.roster.CSV"))
}
