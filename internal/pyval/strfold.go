package pyval

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Constant folds for Python str methods on literal receivers. The code
// generator calls these so that `"abc".title()` becomes a plain string
// literal in the output instead of a runtime helper.

var titleCaser = cases.Title(language.Und)

// Title mirrors Python str.title(): every alphabetic run starts with
// one uppercase letter.
func Title(s string) string {
	var sb strings.Builder
	startOfWord := true
	for _, r := range s {
		if unicode.IsLetter(r) {
			if startOfWord {
				sb.WriteString(titleCaser.String(string(r)))
			} else {
				sb.WriteRune(unicode.ToLower(r))
			}
			startOfWord = false
		} else {
			sb.WriteRune(r)
			startOfWord = true
		}
	}
	return sb.String()
}

// Casefold mirrors Python str.casefold() via full Unicode case folding.
func Casefold(s string) string {
	return cases.Fold().String(s)
}

// Capitalize mirrors Python str.capitalize().
func Capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	var sb strings.Builder
	sb.WriteRune(unicode.ToUpper(runes[0]))
	for _, r := range runes[1:] {
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}

// Swapcase mirrors Python str.swapcase().
func Swapcase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		default:
			return r
		}
	}, s)
}
