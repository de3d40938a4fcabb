package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFileLine(t *testing.T) {
	tests := []struct {
		path   string
		status string
	}{
		{"infrastructure/components/storage-s3.ts", StatusCreated},
		{"infrastructure/package.json", StatusUpdated},
		{"Dockerfile", StatusSkipped},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			line := FormatFileLine(tt.path, tt.status)
			assert.Contains(t, line, tt.path)
			assert.Contains(t, line, tt.status)
		})
	}
}

func TestFormatCheckmark(t *testing.T) {
	assert.Contains(t, FormatCheckmark("Project web initialized"), "Project web initialized")
	assert.Contains(t, FormatCheckmark("x"), "✔")
}
