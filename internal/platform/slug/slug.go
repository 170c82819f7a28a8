// Package slug implements the alias title-slugification rule (spec §6
// "Alias format"). No third-party slug library in the pack's dependency
// surface matches this exact character set, so it is hand-rolled
// regexp/strings code rather than an import.
package slug

import (
	"regexp"
	"strings"
)

var (
	stripChars    = regexp.MustCompile(`['"` + "`" + `=+*&^%$#@!<>?]`)
	collapseChars = regexp.MustCompile(`[\[\](){} ,;:/|\\-]+`)
)

// Slugify renders title the way an alias path segment expects: strip a
// fixed punctuation set, collapse runs of separator characters into a
// single hyphen, lower-case, and trim leading/trailing hyphens.
func Slugify(title string) string {
	s := stripChars.ReplaceAllString(title, "")
	s = collapseChars.ReplaceAllString(s, "-")
	s = strings.ToLower(s)

	return strings.Trim(s, "-")
}
