package guardrails

import "github.com/agent-harness/harness/domain"

// Validate checks a batch of planned commands and edits against the
// guardrails. The first forbidden command aborts with an error naming
// it; guardrail rejections are fail-closed and never downgraded.
func Validate(commands []string, plannedEdits int, policy domain.CommandPolicy) error {
	return ValidateWithThreshold(commands, plannedEdits, policy, DefaultEditThreshold)
}

// ValidateWithThreshold is Validate with an explicit loop-guard threshold
func ValidateWithThreshold(commands []string, plannedEdits int, policy domain.CommandPolicy, threshold int) error {
	for _, command := range commands {
		if IsForbiddenWithPolicy(command, policy) {
			return domain.NewForbiddenToolError(command)
		}
	}
	if DetectLoopWithThreshold(plannedEdits, threshold) {
		return domain.NewLoopDetectedError(plannedEdits, threshold)
	}
	return nil
}
