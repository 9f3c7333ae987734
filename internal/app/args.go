package app

import (
	"strings"
)

// legacyFlags maps the historical multi-letter single-dash spellings to their
// long forms. pflag shorthands are limited to one letter.
var legacyFlags = map[string]string{
	"-fv":       "--force-format-violations",
	"-src-path": "--source-path",
}

// normalizeArgs rewrites legacy flag spellings. Arguments after "--" are
// left untouched.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, a := range args {
		if a == "--" {
			return append(out, args[i:]...)
		}
		name, value, hasValue := strings.Cut(a, "=")
		if long, ok := legacyFlags[name]; ok {
			if hasValue {
				a = long + "=" + value
			} else {
				a = long
			}
		}
		out = append(out, a)
	}
	return out
}
