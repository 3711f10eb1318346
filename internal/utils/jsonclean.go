package utils

import "strings"

// CleanJSONResponse strips Markdown code fences from a model response and
// returns the substring spanning the first "{" through the last "}".
// Models routinely wrap JSON in ```json fences or add prose around it; the
// braces span is the best-effort payload candidate when they do.
func CleanJSONResponse(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
