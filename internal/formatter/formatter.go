// Package formatter drives clang-format, either to check a file without
// touching it or to rewrite it in place.
package formatter

// Settings describe how the formatter binary is invoked.
type Settings struct {
	// Binary is the executable name or path.
	Binary string
	// Style, when set, is passed as --style=<Style>.
	Style string
}

func (s Settings) args(extra ...string) []string {
	var args []string
	if s.Style != "" {
		args = append(args, "--style="+s.Style)
	}
	return append(args, extra...)
}
