package guardrails

// DefaultEditThreshold is the planned-edit count at which the loop
// guard trips when no threshold is configured
const DefaultEditThreshold = 25

// DetectLoop reports whether a planned edit count trips the default
// threshold
func DetectLoop(edits int) bool {
	return DetectLoopWithThreshold(edits, DefaultEditThreshold)
}

// DetectLoopWithThreshold reports whether a planned edit count meets or
// exceeds the threshold. Must be evaluated before any destructive
// action is taken.
func DetectLoopWithThreshold(edits, threshold int) bool {
	return edits >= threshold
}
