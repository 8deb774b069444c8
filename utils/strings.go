package utils

import (
	"regexp"
	"strings"
)

var (
	invalidFileChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
)

// CleanFileName makes a string safe to use as a filename
func CleanFileName(filename string) string {
	cleaned := invalidFileChars.ReplaceAllString(filename, "_")
	cleaned = strings.TrimSpace(cleaned)
	return whitespaceRuns.ReplaceAllString(cleaned, "_")
}
