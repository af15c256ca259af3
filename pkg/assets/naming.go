package assets

import (
	"regexp"
	"strings"
)

var (
	separatorsRE   = regexp.MustCompile(`[/\\]`)
	invalidCharsRE = regexp.MustCompile(`[<>:"|?*\x00-\x1f]`)
	whitespaceRE   = regexp.MustCompile(`\s+`)
	smartDoublesRE = regexp.MustCompile(`[“”]`)
	smartSinglesRE = regexp.MustCompile(`[‘’]`)
)

// SanitizeFilename reduces an arbitrary uploaded filename to a single safe
// path component. Directory parts, separators, drive prefixes, control
// characters, and leading dots are all stripped, so the result can be joined
// under the asset root without any traversal risk. Degenerate inputs (e.g.
// "../..") sanitize to the empty string; callers fall back to a generated
// name.
func SanitizeFilename(name string) string {
	// Keep only the last path component, handling both separator styles.
	parts := separatorsRE.Split(name, -1)
	name = parts[len(parts)-1]

	// Replace smart quotes with regular quotes
	name = smartDoublesRE.ReplaceAllString(name, `"`)
	name = smartSinglesRE.ReplaceAllString(name, `'`)

	name = invalidCharsRE.ReplaceAllString(name, "")

	// Collapse runs of whitespace with single space
	name = whitespaceRE.ReplaceAllString(name, " ")

	// Trim spaces and dots from the ends. This also reduces "." and ".."
	// to the empty string and unhides dotfiles.
	name = strings.Trim(name, " .")

	// Limit length to reasonable filesystem limits
	if len(name) > 200 {
		name = name[:200]
		name = strings.Trim(name, " .")
	}

	return name
}
