package utils

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

func GetCurrentTime() time.Time {
	return time.Now().UTC()
}

// Initial returns the upper-cased first letter of name, or fallback when name is blank
func Initial(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}
