package format

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var spaceRun = regexp.MustCompile(`\s+`)

// NormalizeStatus collapses the status spellings seen in the wild ("Open",
// "in progress", "In Progress") into a lowercase snake form. An empty status
// counts as open.
func NormalizeStatus(s string) string {
	if s == "" {
		s = "open"
	}
	return spaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "_")
}

// StatusLabel renders a status for display: "in_progress" becomes
// "In Progress".
func StatusLabel(s string) string {
	normalized := strings.ReplaceAll(NormalizeStatus(s), "_", " ")

	// An anglo-centric approach to title-casing.
	caser := cases.Title(language.English)
	return caser.String(normalized)
}
