package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "formats operation and error",
			op:       OpSendPhoto,
			err:      errors.New("connection refused"),
			expected: "Failed to send photo: connection refused",
		},
		{
			name:     "nil error returns empty string",
			op:       OpInteractionRead,
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.op, tt.err); got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "includes context",
			op:       OpAudioDownload,
			context:  "track.mp3",
			err:      errors.New("bad header"),
			expected: "Failed to download audio file 'track.mp3': bad header",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpExportData,
			context:  "",
			err:      errors.New("no records"),
			expected: "Failed to export user data: no records",
		},
		{
			name:     "nil error returns empty string",
			op:       OpCleanupData,
			context:  "30 days",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatWith(tt.op, tt.context, tt.err); got != tt.expected {
				t.Errorf("FormatWith() = %q, want %q", got, tt.expected)
			}
		})
	}
}
