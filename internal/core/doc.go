// Package core provides the business logic for roster CSV imports.
//
// This package is the heart of the importer, containing all domain logic
// independent of any UI or transport layer. It is used by the web handlers
// and by the rostercheck CLI without modification.
//
// # Pipeline
//
// An import flows through four stages:
//
//  1. [Importer] checks the file extension, strips a UTF-8 BOM, repairs
//     invalid UTF-8, parses the CSV and maps the header row onto [Field]s.
//  2. [Processor] trims every raw value and applies the per-field
//     normalizers (age, experience, income, phone, states, ...).
//  3. [DuplicateOf] cross-references rows sharing an email or phone.
//  4. The caller renders the resulting [NormalizedRow]s (HTML, XLSX, CSV).
//
// Field-level problems never fail an import. They are reported as flagged
// [Cell]s so the renderer can highlight them. Only the three structural
// checks abort an import:
//
//   - [ErrInvalidExtension]: the filename does not end in .csv
//   - [ErrParseFailure]: the file could not be parsed or was empty
//   - [ErrMissingRequiredColumns]: Full Name, Phone or Email is missing
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference (FILE, VAL,
// IMP, RATE). See error_messages.go for the full list.
//
// # Sessions
//
// [Service] keeps the latest table of each import in memory so it can be
// re-rendered, edited and exported. Nothing is persisted; sessions expire
// after the configured TTL.
package core
