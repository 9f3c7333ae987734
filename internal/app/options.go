package app

// Options is everything one invocation needs to know. It is built once from
// the command line and passed down explicitly.
type Options struct {
	// Check selects check mode (staged files) instead of format mode.
	Check bool
	// Fix reformats violations found in check mode instead of failing.
	Fix bool
	// Verbose enables debug-level trace logging.
	Verbose bool
	// Progress shows a live progress line during check mode.
	Progress bool
	// DryRun passes --dry-run to the formatter in format mode.
	DryRun bool
	// Watch keeps reformatting a directory as files change.
	Watch bool

	// SourcePath is the file or directory to format.
	SourcePath string
	// ConfigPath is an explicit configuration file.
	ConfigPath string

	// Jobs bounds the number of concurrent formatter processes.
	Jobs int
	// Output is the check report format: "text" or "json".
	Output    string
	UseColour bool
}
