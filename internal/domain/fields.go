package domain

import (
	"regexp"
	"strings"
)

const (
	// TitleMaxRunes bounds the extracted title.
	TitleMaxRunes = 60
	// SummaryFallbackRunes bounds the summary when no "Key insights" section exists.
	SummaryFallbackRunes = 300

	// DefaultTitle is used when the text has no "Main idea" section.
	DefaultTitle = "Untitled"
	// EmptySummary is used when the text itself is blank.
	EmptySummary = "No summary available."
)

// sectionName matches a header such as "3. Practical applications:" or
// "**4. Related concepts**:", a capitalised name of up to four words.
const sectionName = `\**\d+\.[ \t]*\**(?-i:[A-Z][A-Za-z]*(?: [A-Za-z]+){0,3})\**:`

var (
	// "<n>. Main idea[:]" followed by the rest of the line (possibly the next line).
	mainIdeaRe = regexp.MustCompile(`(?i)\d+\.\s*main idea[*:\s]*([^\n]+)`)

	// "<n>. Key insights[:]" up to a blank line, the next section header or end of text.
	// Numbered list items inside the section do not end it.
	keyInsightsRe = regexp.MustCompile(`(?is)\d+\.\s*key insights[*:\s]*(.+?)(?:\n[ \t]*\n|\n[ \t]*` + sectionName + `|$)`)

	// Text that starts with a named section header.
	namedHeaderRe = regexp.MustCompile(`^` + sectionName)

	// Inline markdown link: [text](url)
	markdownLinkRe = regexp.MustCompile(`\[[^\]]*\]\([^)]*\)`)

	// Text that already starts the next numbered section.
	sectionHeaderRe = regexp.MustCompile(`^\**\d+\.\s`)
)

// ExtractTitle returns the "Main idea" line of an AI analysis, without markdown
// links and truncated to TitleMaxRunes. It returns DefaultTitle when nothing usable is found.
func ExtractTitle(text string) string {
	m := mainIdeaRe.FindStringSubmatch(text)
	if m == nil {
		return DefaultTitle
	}

	rest := strings.TrimSpace(m[1])
	if sectionHeaderRe.MatchString(rest) {
		// "Main idea" was an empty section, the capture ran into the next header
		return DefaultTitle
	}

	title := markdownLinkRe.ReplaceAllString(rest, "")
	title = strings.Trim(title, " \t*")
	title = TruncateRunes(title, TitleMaxRunes)
	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultTitle
	}
	return title
}

// ExtractSummary returns the "Key insights" section of an AI analysis.
// Without one it falls back to the first SummaryFallbackRunes of the text.
// The result is never empty.
func ExtractSummary(text string) string {
	if summary, ok := KeyInsights(text); ok {
		return summary
	}
	return SummaryFallback(text)
}

// KeyInsights returns the trimmed "Key insights" section and whether a
// non-empty one was found.
func KeyInsights(text string) (string, bool) {
	m := keyInsightsRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	summary := strings.TrimSpace(m[1])
	if summary == "" || namedHeaderRe.MatchString(summary) {
		return "", false
	}
	return summary, true
}

// SummaryFallback is the summary used when there is no "Key insights" section.
func SummaryFallback(text string) string {
	prefix := strings.TrimSpace(TruncateRunes(strings.TrimSpace(text), SummaryFallbackRunes))
	if prefix == "" {
		return EmptySummary
	}
	return prefix
}

// TruncateRunes cuts s to at most n runes.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
