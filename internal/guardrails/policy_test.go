package guardrails

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agent-harness/harness/domain"
)

func TestIsForbidden(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    bool
	}{
		{"forced push with target", "git push --force origin main", true},
		{"plain push", "git push origin main", false},
		{"hard reset", "git reset --hard", true},
		{"recursive delete", "rm -rf /tmp/scratch", true},
		{"bare rm blocked conservatively", "rm", true},
		{"status is allowed", "git status --porcelain", false},
		{"empty command", "", false},
		{"whitespace noise", "  git   push   --force  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsForbidden(tt.command))
		})
	}
}

func TestIsForbiddenWithAliases(t *testing.T) {
	policy := domain.DefaultCommandPolicy()
	policy.Aliases = map[string]string{
		"gpf": "git push --force",
		"g":   "git",
	}

	assert.True(t, IsForbiddenWithPolicy("gpf origin main", policy))
	assert.True(t, IsForbiddenWithPolicy("g push --force", policy))
	assert.False(t, IsForbiddenWithPolicy("g log --oneline", policy))
}

func TestAliasCycleDoesNotLoop(t *testing.T) {
	policy := domain.CommandPolicy{
		Forbidden: []string{"rm -rf"},
		Aliases: map[string]string{
			"a": "b",
			"b": "a",
		},
	}

	// The seen-head guard stops the cycle; the command stays unmatched.
	assert.False(t, IsForbiddenWithPolicy("a --verbose", policy))
}

func TestAliasChainDepthIsBounded(t *testing.T) {
	policy := domain.CommandPolicy{
		Forbidden: []string{"rm -rf"},
		Aliases: map[string]string{
			"a1": "a2", "a2": "a3", "a3": "a4", "a4": "a5",
			"a5": "a6", "a6": "a7", "a7": "a8", "a8": "a9",
			"a9": "rm -rf",
		},
	}

	// Nine hops exceed the expansion limit of eight.
	assert.False(t, IsForbiddenWithPolicy("a1", policy))
}

func TestCustomForbiddenRules(t *testing.T) {
	policy := domain.CommandPolicy{
		Forbidden: []string{"docker system prune"},
	}

	assert.True(t, IsForbiddenWithPolicy("docker system prune -af", policy))
	assert.True(t, IsForbiddenWithPolicy("docker system", policy))
	assert.False(t, IsForbiddenWithPolicy("docker ps", policy))
}
