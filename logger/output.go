package logger

// Output controls what categories of information the CLI prints at each
// verbosity level, independent of log severity.
//
//	0 (default) - diagnostics, written files, final status
//	1 (-v)      - + per-package progress, config summary
//	2 (-vv)     - + discovered containers, timing
//	3 (-vvv)    - + per-hook synthesis details

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults     OutputCategory = iota // Written files, rules table
	OutputDiagnostics                       // Declaration diagnostics with positions
	OutputUserStatus                        // Final success/failure status

	// Level 1 (-v) - Informational
	OutputProgress // Per-package progress
	OutputConfig   // Config file used and effective values

	// Level 2 (-vv) - Detailed
	OutputDiscovery // Containers found per package
	OutputTiming    // Operation timing

	// Level 3 (-vvv) - Trace
	OutputSynthesis // Per-hook class synthesis
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:     VerbosityUser,
	OutputDiagnostics: VerbosityUser,
	OutputUserStatus:  VerbosityUser,

	OutputProgress: VerbosityInfo,
	OutputConfig:   VerbosityInfo,

	OutputDiscovery: VerbosityDebug,
	OutputTiming:    VerbosityDebug,

	OutputSynthesis: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

var categoryNames = map[OutputCategory]string{
	OutputResults:     "results",
	OutputDiagnostics: "diagnostics",
	OutputUserStatus:  "status",
	OutputProgress:    "progress",
	OutputConfig:      "config",
	OutputDiscovery:   "discovery",
	OutputTiming:      "timing",
	OutputSynthesis:   "synthesis",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
