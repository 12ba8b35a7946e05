package scanner

import (
	"sort"
	"strings"

	"github.com/agent-harness/harness/domain"
	"github.com/agent-harness/harness/internal/config"
)

// defaultOverlapClusters group tools that duplicate each other's
// capability; exposing more than one per cluster confuses selection.
var defaultOverlapClusters = [][]string{
	{"grep", "rg", "ag", "ack"},
	{"find", "fd"},
}

// defaultDestructive are tools treated as destructive when the config
// does not supply its own list.
var defaultDestructive = []string{"sudo", "mkfs", "fdisk", "rm", "shutdown"}

// DetectTools derives the tool inventory signals from configuration.
// With no config the conventional baseline inventory is assumed.
func DetectTools(cfg *config.Config) domain.ToolSignals {
	names := collectToolNames(cfg)
	if len(names) == 0 {
		names = defaultToolNames()
	}
	names = normalizeToolNames(names)

	clusters := defaultOverlapClusters
	destructive := defaultDestructive
	var forbidden []string
	if cfg != nil && cfg.Tools != nil && cfg.Tools.Baseline != nil {
		baseline := cfg.Tools.Baseline
		if len(baseline.OverlapClusters) > 0 {
			clusters = baseline.OverlapClusters
		}
		if len(baseline.Destructive) > 0 {
			destructive = baseline.Destructive
		}
		forbidden = baseline.Forbidden
	}

	return domain.ToolSignals{
		ToolNames:               names,
		RiskyOverlapClusters:    countOverlapClusters(names, clusters),
		UnrestrictedDestructive: countUnrestrictedDestructive(names, destructive, forbidden),
		HasAmbiguousDuplicates:  hasDuplicates(names),
	}
}

func defaultToolNames() []string {
	return []string{"bash", "ls", "find", "cat", "rg", "git"}
}

func collectToolNames(cfg *config.Config) []string {
	if cfg == nil || cfg.Tools == nil {
		return nil
	}
	var names []string
	if baseline := cfg.Tools.Baseline; baseline != nil {
		names = append(names, baseline.Commands...)
		names = append(names, baseline.Read...)
		names = append(names, baseline.Write...)
	}
	if specialized := cfg.Tools.Specialized; specialized != nil {
		names = append(names, specialized.Extra...)
	}
	return names
}

// normalizeToolNames lowercases, trims, drops empties, and sorts.
// Duplicates are kept so ambiguity detection still sees them.
func normalizeToolNames(names []string) []string {
	normalized := make([]string, 0, len(names))
	for _, name := range names {
		trimmed := strings.ToLower(strings.TrimSpace(name))
		if trimmed == "" {
			continue
		}
		normalized = append(normalized, trimmed)
	}
	sort.Strings(normalized)
	return normalized
}

func hasDuplicates(names []string) bool {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return true
		}
		seen[name] = true
	}
	return false
}

func countOverlapClusters(names []string, clusters [][]string) int {
	present := make(map[string]bool, len(names))
	for _, name := range names {
		present[name] = true
	}
	count := 0
	for _, cluster := range clusters {
		members := 0
		for _, tool := range cluster {
			if present[strings.ToLower(tool)] {
				members++
			}
		}
		if members > 1 {
			count++
		}
	}
	return count
}

// countUnrestrictedDestructive counts destructive tools in the
// inventory that no forbidden rule restricts.
func countUnrestrictedDestructive(names, destructive, forbidden []string) int {
	dangerous := make(map[string]bool, len(destructive))
	for _, tool := range destructive {
		dangerous[strings.ToLower(strings.TrimSpace(tool))] = true
	}
	count := 0
	for _, name := range names {
		if !dangerous[name] {
			continue
		}
		restricted := false
		for _, rule := range forbidden {
			if strings.Contains(rule, name) {
				restricted = true
				break
			}
		}
		if !restricted {
			count++
		}
	}
	return count
}
