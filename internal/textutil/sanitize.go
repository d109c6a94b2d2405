package textutil

import "strings"

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. The result is trimmed of leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// DiscBaseName derives the output file basename for a disc name. The name is
// sanitized and spaces become underscores; toc2cue mishandles spaces in the
// FILE line of generated cue sheets.
func DiscBaseName(name string) string {
	name = SanitizeFileName(name)
	if name == "" {
		return ""
	}
	return strings.ReplaceAll(name, " ", "_")
}
