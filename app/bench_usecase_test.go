package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agent-harness/harness/domain"
)

func benchContext() BenchContext {
	return BenchContext{
		OS:             "linux-amd64",
		Toolchain:      "go version go1.24.6 linux/amd64",
		RepoRef:        "abc123",
		RepoDirty:      false,
		HarnessVersion: "0.2.0",
		Suite:          "default",
	}
}

func TestAverageOverallScore(t *testing.T) {
	assert.Equal(t, 0.0, averageOverallScore(nil))

	runs := []BenchRunResult{
		{Run: 1, OverallScore: 0.6},
		{Run: 2, OverallScore: 0.8},
	}
	assert.InDelta(t, 0.7, averageOverallScore(runs), 1e-9)
}

func TestValidateCompareCompatibilityAccepts(t *testing.T) {
	assert.NoError(t, validateCompareCompatibility(benchContext(), benchContext(), false))
}

func TestValidateCompareCompatibilityBlocksMismatches(t *testing.T) {
	baseline := benchContext()
	current := benchContext()
	current.OS = "darwin-arm64"
	current.RepoDirty = true

	err := validateCompareCompatibility(current, baseline, false)
	require.Error(t, err)
	var domainErr domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeInvalidInput, domainErr.Code)
	assert.Contains(t, err.Error(), "bench compare blocked due to incompatible context")
	assert.Contains(t, err.Error(), "os (baseline=linux-amd64, current=darwin-arm64)")
	assert.Contains(t, err.Error(), "repo_dirty (baseline=false, current=true)")
	assert.Contains(t, err.Error(), "--force-compare")
}

func TestValidateCompareCompatibilityForceOverride(t *testing.T) {
	baseline := benchContext()
	current := benchContext()
	current.Toolchain = "go version go1.25.0 linux/amd64"

	assert.NoError(t, validateCompareCompatibility(current, baseline, true))
}

func TestLoadBenchReportMissingFile(t *testing.T) {
	_, err := loadBenchReport("/nonexistent/bench.json")
	var domainErr domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeFileNotFound, domainErr.Code)
}
