package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReadingStatus_Valid(t *testing.T) {
	cases := map[string]ReadingStatus{
		"to_read":     StatusToRead,
		"in_progress": StatusInProgress,
		"completed":   StatusCompleted,
		"dropped":     StatusDropped,
	}

	for raw, want := range cases {
		got, err := ParseReadingStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}
}

func TestParseReadingStatus_RejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "ToRead", "IN_PROGRESS", "Completed", "reading", "done"} {
		_, err := ParseReadingStatus(raw)
		assert.Error(t, err, "expected %q to be rejected", raw)
	}
}
