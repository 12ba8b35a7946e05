package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agent-harness/harness/domain"
)

// agentDocPaths are the documents whose freshness feeds the docs age
// signal, newest wins.
var agentDocPaths = []string{
	"AGENTS.md",
	"docs/context/INDEX.md",
	"ARCHITECTURE.md",
	"docs/ARCHITECTURE.md",
	"README.md",
}

// DetectDocs inspects agent-facing documentation under root. The
// supplied now anchors the docs age computation.
func DetectDocs(root string, now time.Time) domain.DocSignals {
	agentsContent := readFileIfExists(filepath.Join(root, "AGENTS.md"))
	readmeContent := readFileIfExists(filepath.Join(root, "README.md"))

	hasSectionHeader := false
	for _, line := range strings.Split(agentsContent, "\n") {
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), "#") {
			hasSectionHeader = true
			break
		}
	}

	hasArchitectureDoc := fileExists(filepath.Join(root, "ARCHITECTURE.md")) ||
		fileExists(filepath.Join(root, "docs", "ARCHITECTURE.md"))

	return domain.DocSignals{
		HasAgentsMD:             fileExists(filepath.Join(root, "AGENTS.md")),
		AgentsHasSectionHeader:  hasSectionHeader,
		HasContextIndex:         fileExists(filepath.Join(root, "docs", "context", "INDEX.md")),
		HasArchitectureDoc:      hasArchitectureDoc,
		ReadmeLinksArchitecture: strings.Contains(strings.ToLower(readmeContent), "architecture"),
		DocsAgeDays:             docsAgeDays(root, now),
	}
}

// docsAgeDays returns the age in days of the most recently modified
// agent doc, nil when none exists.
func docsAgeDays(root string, now time.Time) *int {
	var newest time.Time
	found := false
	for _, relative := range agentDocPaths {
		info, err := os.Stat(filepath.Join(root, relative))
		if err != nil {
			continue
		}
		found = true
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
	}
	if !found {
		return nil
	}
	age := int(now.Sub(newest).Hours() / 24)
	if age < 0 {
		age = 0
	}
	return &age
}
