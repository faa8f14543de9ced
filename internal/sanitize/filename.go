// Package sanitize turns user-supplied project names into names that are safe
// to use as a single directory in the current working directory.
package sanitize

import (
	"regexp"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxFilenameBytes is the longest name most filesystems accept for one path element.
const MaxFilenameBytes = 255

//nolint:gochecknoglobals // Package-level compiled regexes
var (
	illegalRe         = regexp.MustCompile(`[/?<>\\:*|"]`)
	controlRe         = regexp.MustCompile(`[\x00-\x1f\x{80}-\x{9f}]`)
	reservedRe        = regexp.MustCompile(`^\.+$`)
	windowsReservedRe = regexp.MustCompile(`(?i)^(con|prn|aux|nul|com[0-9]|lpt[0-9])(\..*)?$`)
	windowsTrailingRe = regexp.MustCompile(`[. ]+$`)
)

// Filename removes every character that is unsafe in a file or directory name:
// path separators, reserved punctuation and control characters. Names that are
// reserved on some platforms ("..", "con", "lpt1.txt") become empty, trailing dots
// and spaces are dropped, and the result is truncated to MaxFilenameBytes on a
// rune boundary.
//
// The result may be empty; callers must treat that as invalid input.
func Filename(name string) string {
	s := norm.NFC.String(name)
	s = illegalRe.ReplaceAllString(s, "")
	s = controlRe.ReplaceAllString(s, "")
	s = reservedRe.ReplaceAllString(s, "")
	s = windowsReservedRe.ReplaceAllString(s, "")
	s = windowsTrailingRe.ReplaceAllString(s, "")
	return truncate(s, MaxFilenameBytes)
}

// truncate shortens s to at most n bytes without splitting a multi-byte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
