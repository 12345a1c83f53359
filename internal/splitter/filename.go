package splitter

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxFilenameLength bounds sanitized titles before the extension is added.
const MaxFilenameLength = 240

var (
	illegalChars   = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	dotRuns        = regexp.MustCompile(`\.+`)
)

// SanitizeFilename turns a heading title into a filesystem-safe name:
// illegal characters stripped, whitespace runs collapsed to a single
// underscore, repeated dots collapsed, truncated, then trimmed of leading
// and trailing dots and underscores. Sanitizing is idempotent.
func SanitizeFilename(title string) string {
	safe := illegalChars.ReplaceAllString(title, "")
	safe = whitespaceRuns.ReplaceAllString(safe, "_")
	safe = dotRuns.ReplaceAllString(safe, ".")
	if len(safe) > MaxFilenameLength {
		// Back up to a rune boundary so multibyte titles never truncate
		// mid-rune into an invalid-UTF-8 name.
		cut := MaxFilenameLength
		for cut > 0 && !utf8.RuneStart(safe[cut]) {
			cut--
		}
		safe = safe[:cut]
	}
	return strings.Trim(safe, "._")
}

// EnsureUnique returns name, or name suffixed with _1, _2, ... until it is
// absent from used, and records the result in used. The first occurrence
// of a name keeps it unsuffixed.
func EnsureUnique(name string, used map[string]bool) string {
	candidate := name
	for counter := 1; used[candidate]; counter++ {
		if base, ext, ok := splitExt(name); ok {
			candidate = fmt.Sprintf("%s_%d.%s", base, counter, ext)
		} else {
			candidate = fmt.Sprintf("%s_%d", name, counter)
		}
	}
	used[candidate] = true
	return candidate
}

func splitExt(name string) (base, ext string, ok bool) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return "", "", false
	}
	return name[:i], name[i+1:], true
}
