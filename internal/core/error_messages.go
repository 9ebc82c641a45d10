package core

// # Error Codes Reference
//
// This file maps import failures to user-friendly messages with codes for
// support reference. Users quote the code; support looks it up here.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds the maximum upload size
//	          Action: Split the roster into smaller files
//	          Matches: ErrFileTooLarge, "file too large"
//
//	FILE002 - Invalid CSV: The file could not be parsed, or it is empty
//	          Action: Perhaps CSV file is not valid
//	          Matches: ErrParseFailure, "invalid csv"
//
//	FILE004 - No file: No file was selected
//	          Action: Please select a CSV file to upload
//	          Matches: "no file provided"
//
//	FILE006 - Invalid extension: The file name does not end in .csv
//	          Action: Only CSV files are accepted
//	          Matches: ErrInvalidExtension, "invalid file extension"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL004 - Missing column: A required column is missing
//	         Action: Columns Full Name, Phone, Email are required
//	         Matches: ErrMissingRequiredColumns, "missing required column"
//
//	VAL007 - Unknown field: The edited column does not exist
//	         Action: Refresh the page and try again
//	         Matches: ErrUnknownField, "unknown field"
//
//	VAL008 - Row not found: The edited row does not exist
//	         Action: Refresh the page and try again
//	         Matches: ErrRowNotFound, "row not found"
//
// # Import Errors (IMP001-IMP099)
//
//	IMP001 - System busy: Too many imports in progress
//	         Matches: ErrTooManyImports, "too many imports"
//
//	IMP002 - Session expired: Import not found
//	         Matches: ErrImportNotFound, "import not found"
//
//	IMP004 - Request cancelled: Matches context.Canceled, "context canceled"
//
//	IMP005 - Request timeout: Matches context.DeadlineExceeded,
//	         "context deadline exceeded"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests. Matches: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the application logs (by request ID)
// for the original error.
//
// # Matching
//
// Sentinel errors are checked first with errors.Is, so wrapped errors map
// correctly regardless of their text. Otherwise the error string is matched
// case-insensitively against the pattern table; the first match wins.

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Title   string // Short heading for the notice
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern maps a sentinel error and/or a text pattern to a user message.
type errorPattern struct {
	target  error
	pattern string
	msg     UserMessage
}

var (
	msgFileTooLarge = UserMessage{
		Title:   "File Too Large",
		Message: "File exceeds the maximum upload size",
		Action:  "Split the roster into smaller files",
		Code:    "FILE001",
	}
	msgParseFailure = UserMessage{
		Title:   "Something went wrong",
		Message: "The file could not be read",
		Action:  "Perhaps CSV file is not valid",
		Code:    "FILE002",
	}
	msgInvalidExtension = UserMessage{
		Title:   "Invalid File Extension",
		Message: "The selected file is not a CSV file",
		Action:  "Only CSV files are accepted",
		Code:    "FILE006",
	}
	msgMissingColumns = UserMessage{
		Title:   "Table Is Not Correct",
		Message: "A required column is missing",
		Action:  "Columns Full Name, Phone, Email are required",
		Code:    "VAL004",
	}
	msgTooManyImports = UserMessage{
		Title:   "System Busy",
		Message: "System is busy processing other imports",
		Action:  "Please wait a moment and try again",
		Code:    "IMP001",
	}
	msgImportNotFound = UserMessage{
		Title:   "Import Not Found",
		Message: "Import session not found",
		Action:  "The import may have expired. Please upload the file again",
		Code:    "IMP002",
	}
	msgUnknownField = UserMessage{
		Title:   "Unknown Column",
		Message: "The edited column does not exist",
		Action:  "Refresh the page and try again",
		Code:    "VAL007",
	}
	msgRowNotFound = UserMessage{
		Title:   "Row Not Found",
		Message: "The edited row does not exist",
		Action:  "Refresh the page and try again",
		Code:    "VAL008",
	}
	msgCanceled = UserMessage{
		Title:   "Request Cancelled",
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "IMP004",
	}
	msgDeadline = UserMessage{
		Title:   "Request Timeout",
		Message: "Request timed out",
		Action:  "Try a smaller file or check your connection",
		Code:    "IMP005",
	}
)

// errorPatterns is checked in order; the first match wins. Specific entries
// come before general ones.
var errorPatterns = []errorPattern{
	// File errors
	{target: ErrInvalidExtension, pattern: "invalid file extension", msg: msgInvalidExtension},
	{target: ErrFileTooLarge, pattern: "file too large", msg: msgFileTooLarge},
	{target: ErrParseFailure, pattern: "invalid csv", msg: msgParseFailure},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Title:   "No File",
			Message: "No file was selected",
			Action:  "Please select a CSV file to upload",
			Code:    "FILE004",
		},
	},

	// Validation errors
	{target: ErrMissingRequiredColumns, pattern: "missing required column", msg: msgMissingColumns},
	{target: ErrUnknownField, pattern: "unknown field", msg: msgUnknownField},
	{target: ErrRowNotFound, pattern: "row not found", msg: msgRowNotFound},

	// Import session errors
	{target: ErrTooManyImports, pattern: "too many imports", msg: msgTooManyImports},
	{target: ErrImportNotFound, pattern: "import not found", msg: msgImportNotFound},
	{target: context.Canceled, pattern: "context canceled", msg: msgCanceled},
	{target: context.DeadlineExceeded, pattern: "context deadline exceeded", msg: msgDeadline},

	// Rate limiting
	{
		pattern: "rate limit",
		msg: UserMessage{
			Title:   "Slow Down",
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Title:   "Something went wrong",
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. Sentinel
// errors are matched with errors.Is; other errors by case-insensitive text
// pattern. Unknown errors map to ERR000.
//
// Example:
//
//	err := fmt.Errorf("import roster.txt: %w", ErrInvalidExtension)
//	msg := MapError(err)
//	// msg.Code == "FILE006"
//	// msg.Action == "Only CSV files are accepted"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, ep := range errorPatterns {
		if ep.target != nil && errors.Is(err, ep.target) {
			return ep.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a one-line description of err for terminal output.
// The format is: "Title: Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s: %s (Code: %s). %s", msg.Title, msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
