package guardrails

import (
	"strings"

	"github.com/agent-harness/harness/domain"
)

// maxAliasExpansions bounds alias resolution. Together with the
// seen-head set this breaks cycles that revisit a head token; indirect
// cycles through different heads are not detected structurally, the
// iteration cap handles those.
const maxAliasExpansions = 8

// IsForbidden reports whether a candidate command is forbidden under
// the built-in policy
func IsForbidden(command string) bool {
	return IsForbiddenWithPolicy(command, domain.DefaultCommandPolicy())
}

// IsForbiddenWithPolicy reports whether a candidate command is
// forbidden under the supplied policy. The candidate is normalized and
// alias-expanded before matching.
func IsForbiddenWithPolicy(command string, policy domain.CommandPolicy) bool {
	expanded := expandAliases(normalize(command), policy.Aliases)
	if expanded == "" {
		return false
	}
	for _, rule := range policy.Forbidden {
		if commandMatches(expanded, normalize(rule)) {
			return true
		}
	}
	return false
}

// commandMatches applies the bidirectional token-prefix test: the
// command matching a rule prefix blocks the obvious case, and a command
// that is itself a prefix of a rule is blocked conservatively (bare
// "rm" is blocked when "rm -rf" is forbidden).
func commandMatches(command, rule string) bool {
	commandTokens := strings.Fields(command)
	ruleTokens := strings.Fields(rule)
	if len(commandTokens) == 0 || len(ruleTokens) == 0 {
		return false
	}
	return startsWithTokens(commandTokens, ruleTokens) ||
		startsWithTokens(ruleTokens, commandTokens)
}

// startsWithTokens reports whether left begins with every token of right
func startsWithTokens(left, right []string) bool {
	if len(left) < len(right) {
		return false
	}
	for i, token := range right {
		if left[i] != token {
			return false
		}
	}
	return true
}

// expandAliases repeatedly replaces the head token with its alias
// expansion. Resolution stops after maxAliasExpansions rounds, when a
// head token repeats, or when no alias matches.
func expandAliases(command string, aliases map[string]string) string {
	current := command
	seen := map[string]bool{}

	for i := 0; i < maxAliasExpansions; i++ {
		head, tail, found := strings.Cut(current, " ")
		if !found {
			head = current
			tail = ""
		}
		if head == "" {
			return current
		}
		if seen[head] {
			return current
		}
		seen[head] = true

		target, ok := aliases[head]
		if !ok {
			return current
		}
		if tail == "" {
			current = normalize(target)
		} else {
			current = normalize(target + " " + tail)
		}
	}
	return current
}

// normalize collapses all whitespace runs to single spaces
func normalize(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
