package linemap

import "strings"

// Normalize lower-cases line, collapses whitespace runs to single spaces and
// trims both ends. Lines that differ only in case or indentation normalize to
// the same string.
func Normalize(line string) string {
	return strings.Join(strings.Fields(strings.ToLower(line)), " ")
}
