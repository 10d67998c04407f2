package utils

import (
	"net/url"
	"strings"
)

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// SanitizeText trims a free-text field and strips any markup so nothing
// executable survives into the store.
func SanitizeText(s string) string {
	return strings.TrimSpace(StripTags(s))
}

// StripTags removes <...> tag sequences. An unclosed "<" is dropped along
// with everything after it.
func StripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	var out strings.Builder
	out.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case inTag:
			if r == '>' {
				inTag = false
			}
		case r == '<':
			inTag = true
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}

// SanitizeURL keeps a value only when it parses as an absolute http(s) URL;
// anything else is stored empty.
func SanitizeURL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if u.Host == "" {
		return ""
	}
	return s
}
