package config

import "fmt"

// Profile represents the harness project profile
type Profile string

const (
	ProfileGeneral Profile = "general"
	ProfileAgent   Profile = "agent"
)

// HarnessTOMLTemplate returns the harness.toml scaffold for a profile
func HarnessTOMLTemplate(profile Profile) string {
	return fmt.Sprintf(`# Generated by harness
[project]
name = "harness-project"
profile = %q

[tools.baseline]
commands = ["rg", "fd", "git"]
overlap_clusters = [["rg", "grep"], ["fd", "find"]]
destructive = ["git push --force", "rm -rf"]
forbidden = ["git push --force", "git reset --hard", "rm -rf"]

[verification]
required = ["make lint", "make test"]
pre_completion_required = true
loop_guard_enabled = true
`, profile)
}

// AgentsMDTemplate returns the AGENTS.md scaffold
func AgentsMDTemplate() string {
	return `# Generated by harness
# Agents

- Context index: docs/context/INDEX.md
`
}

// ContextIndexTemplate returns the docs/context/INDEX.md scaffold
func ContextIndexTemplate() string {
	return `# Generated by harness
# Context Index

- AGENTS.md
- harness.toml
`
}
