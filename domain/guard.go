package domain

// CommandPolicy holds the forbidden command rules and shell alias table
// used by the guardrail matcher. Read-only per matching call.
type CommandPolicy struct {
	Forbidden []string
	Aliases   map[string]string
}

// DefaultCommandPolicy returns the built-in policy used when no
// configuration supplies one
func DefaultCommandPolicy() CommandPolicy {
	return CommandPolicy{
		Forbidden: []string{
			"git push --force",
			"git reset --hard",
			"rm -rf",
			"sudo rm -rf",
		},
		Aliases: map[string]string{},
	}
}
