package util

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	profileURLRe = regexp.MustCompile(`^https?://(www\.)?reddit\.com/u(ser)?/[A-Za-z0-9_-]+/?$`)
	usernameRe   = regexp.MustCompile(`^[A-Za-z0-9_-]{3,20}$`)
)

// ValidProfileURL reports whether the URL is a Reddit user profile URL
func ValidProfileURL(rawURL string) bool {
	return profileURLRe.MatchString(rawURL)
}

// ExtractUsername resolves a username from either a bare username or a
// profile URL like https://www.reddit.com/user/name/
func ExtractUsername(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("empty username")
	}

	if !strings.HasPrefix(input, "http") {
		name := strings.TrimPrefix(strings.TrimPrefix(input, "u/"), "/")
		if !usernameRe.MatchString(name) {
			return "", fmt.Errorf("invalid username: %q", input)
		}
		return name, nil
	}

	if !ValidProfileURL(input) {
		return "", fmt.Errorf("not a Reddit user profile URL: %s", input)
	}

	parsed, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) < 2 {
		return "", fmt.Errorf("not a Reddit user profile URL: %s", input)
	}
	return parts[1], nil
}

var invalidFilenameRe = regexp.MustCompile(`[<>:"/\\|?*]`)
var collapseFilenameRe = regexp.MustCompile(`[_\s]+`)

// SanitizeFilename makes a string safe to use as an output file name
func SanitizeFilename(name string) string {
	s := invalidFilenameRe.ReplaceAllString(name, "_")
	s = collapseFilenameRe.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
