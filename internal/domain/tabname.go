package domain

import "strings"

// maxTabNameLen is the spreadsheet tab title limit we target. Sheets
// allows 31 characters; we stop at 30 to leave room for a manual suffix.
const maxTabNameLen = 30

// forbiddenTabChars are the characters spreadsheet tab titles reject.
const forbiddenTabChars = "[]?*/\\:"

// DeriveTabName maps a human chapter title to a spreadsheet-legal tab
// identifier: uppercase, forbidden characters stripped, whitespace runs
// collapsed to a single underscore, truncated to 30 characters.
//
// The result is derived once at chapter creation and stored on the
// Chapter. It is never recomputed on later edits: re-deriving on every
// sync could silently rename a tab the user has already populated.
func DeriveTabName(title string) string {
	upper := strings.ToUpper(strings.TrimSpace(title))

	var b strings.Builder
	b.Grow(len(upper))
	lastUnderscore := false
	for _, r := range upper {
		if strings.ContainsRune(forbiddenTabChars, r) {
			continue
		}
		if isSpace(r) {
			if !lastUnderscore && b.Len() > 0 {
				b.WriteRune('_')
				lastUnderscore = true
			}
			continue
		}
		b.WriteRune(r)
		lastUnderscore = false
	}

	name := strings.TrimSuffix(b.String(), "_")
	runes := []rune(name)
	if len(runes) > maxTabNameLen {
		name = string(runes[:maxTabNameLen])
	}
	return name
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
