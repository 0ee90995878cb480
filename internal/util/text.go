package util

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanText collapses runs of whitespace and trims the result
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// Truncate shortens text to maxLen runes, appending "..." when it cut
func Truncate(text string, maxLen int) string {
	if text == "" {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}

// StripHTML extracts the visible text from an HTML fragment, skipping
// script/style subtrees. Reddit's *_html payload fields go through here
// before excerpting.
func StripHTML(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return CleanText(fragment)
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return CleanText(buf.String())
}

// FormatTimestamp renders a Unix timestamp as a human-readable date
func FormatTimestamp(ts int64) string {
	if ts <= 0 {
		return "Unknown"
	}
	return time.Unix(ts, 0).UTC().Format("2006-01-02")
}

// AccountAge renders the account age relative to now, e.g. "3 years, 2 months"
func AccountAge(createdUTC int64, now time.Time) string {
	if createdUTC <= 0 {
		return "Unknown"
	}
	created := time.Unix(createdUTC, 0).UTC()
	if now.Before(created) {
		return "Unknown"
	}

	days := int(now.Sub(created).Hours() / 24)
	years := days / 365
	months := (days % 365) / 30
	remDays := days % 30

	switch {
	case years > 0:
		return fmt.Sprintf("%s, %s", plural(years, "year"), plural(months, "month"))
	case months > 0:
		return fmt.Sprintf("%s, %s", plural(months, "month"), plural(remDays, "day"))
	default:
		return plural(remDays, "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
