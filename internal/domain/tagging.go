package domain

// Tag returns up to MaxTags labels whose keywords occur in lowerText, in rule
// order. When nothing matches it returns []string{category}, so the result is never empty.
// lowerText must already be lower-cased.
func Tag(lowerText string, category Category, rules []Rule) []string {
	tags := make([]string, 0, MaxTags)
	for _, rule := range rules {
		if !rule.Matches(lowerText) {
			continue
		}
		tags = append(tags, rule.Label)
		if len(tags) >= MaxTags {
			break
		}
	}

	if len(tags) == 0 {
		return []string{string(category)}
	}
	return tags
}

// ClassifyKeywords returns the category of the first rule with a match in
// lowerText, or DefaultCategory. Rule labels that are not categories are skipped.
func ClassifyKeywords(lowerText string, rules []Rule) Category {
	for _, rule := range rules {
		c := Category(rule.Label)
		if !c.Valid() {
			continue
		}
		if rule.Matches(lowerText) {
			return c
		}
	}
	return DefaultCategory
}
