// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Audio operations
	OpAudioDownload Op = "download audio file"

	// Storage operations
	OpLanguageSave    Op = "save language choice"
	OpInteractionRead Op = "read interaction history"
	OpExportData      Op = "export user data"
	OpCleanupData     Op = "clean up old data"

	// Transport operations
	OpSendMessage Op = "send message"
	OpSendPhoto   Op = "send photo"
	OpEditMessage Op = "edit message"

	// Initialization
	OpInitialize Op = "initialize bot"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
