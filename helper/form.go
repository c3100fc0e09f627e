package helper

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// IntOrDefault parses a positive integer, returning fallback for anything else.
func IntOrDefault(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// SplitTags turns "go  web api" into ["go", "web", "api"].
func SplitTags(raw string) []string {
	return strings.Fields(raw)
}

// FoldCase lowercases s with full Unicode rules. Search terms and the stored
// text they are compared against must both go through it.
func FoldCase(s string) string {
	return cases.Lower(language.Und).String(s)
}
