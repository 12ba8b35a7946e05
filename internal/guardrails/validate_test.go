package guardrails

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agent-harness/harness/domain"
)

func TestDetectLoop(t *testing.T) {
	tests := []struct {
		name  string
		edits int
		want  bool
	}{
		{"below threshold", 24, false},
		{"at threshold", 25, true},
		{"above threshold", 26, true},
		{"zero edits", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLoop(tt.edits))
		})
	}
}

func TestDetectLoopWithThreshold(t *testing.T) {
	assert.False(t, DetectLoopWithThreshold(9, 10))
	assert.True(t, DetectLoopWithThreshold(10, 10))
}

func TestValidateRejectsForbiddenCommands(t *testing.T) {
	err := Validate([]string{"git status --porcelain", "git push --force origin main"}, 0,
		domain.DefaultCommandPolicy())

	var domainErr domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeForbiddenTool, domainErr.Code)
	assert.Contains(t, domainErr.Message, "git push --force origin main")
}

func TestValidateRejectsLoopingEditCounts(t *testing.T) {
	err := Validate([]string{"git status --porcelain"}, 25, domain.DefaultCommandPolicy())

	var domainErr domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeLoopDetected, domainErr.Code)
}

func TestValidateAllowsSafeBatch(t *testing.T) {
	err := Validate([]string{"git status --porcelain", "make test"}, 3, domain.DefaultCommandPolicy())
	assert.NoError(t, err)
}
