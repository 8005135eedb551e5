package embedding

import "strings"

// Normalize canonicalizes a word before vocabulary lookup or caching.
// It lowercases, replaces hyphens and internal whitespace with underscores,
// strips double quotes, and trims surrounding whitespace.
func Normalize(word string) string {
	word = strings.TrimSpace(word)
	word = strings.ToLower(word)
	word = strings.ReplaceAll(word, `"`, "")

	if word == "" {
		return ""
	}

	// Multi-token phrases are stored with underscores in word2vec models.
	fields := strings.Fields(word)
	word = strings.Join(fields, "_")

	return strings.ReplaceAll(word, "-", "_")
}

// FilterList removes all words contained in ignores and truncates the
// result to at most maxLen entries, preserving the original order.
func FilterList(words []string, ignores []string, maxLen int) []string {
	if maxLen < 0 {
		maxLen = 0
	}

	ignoreSet := make(map[string]struct{}, len(ignores))
	for _, w := range ignores {
		ignoreSet[w] = struct{}{}
	}

	filtered := make([]string, 0, min(len(words), maxLen))
	for _, w := range words {
		if _, ok := ignoreSet[w]; ok {
			continue
		}
		filtered = append(filtered, w)
		if len(filtered) == maxLen {
			break
		}
	}

	return filtered
}
