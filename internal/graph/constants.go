package graph

// Product-tuning values. None of these are algorithmic necessities; they are
// kept together so they can be retuned without touching control flow.
const (
	// promptTextLimit bounds how much extracted text is embedded in the
	// hierarchy prompt; extractTextLimit bounds the pre-extraction itself.
	// Longer inputs get a representative prefix, not full coverage.
	promptTextLimit  = 1000
	extractTextLimit = 2000

	// Fallback segmentation: fragments shorter than this after trimming are
	// not considered sentences.
	sentenceMinRunes = 20

	levelOneTitleLimit = 60
	levelTwoTitleLimit = 50

	legacySectionContentLimit = 200
	legacyPointNameLimit      = 30
	simpleNodeNameLimit       = 50
	simpleTextContentLimit    = 200
	simpleParagraphLimit      = 10

	rootNodeSize    = 50
	legacyRootSize  = 40
	defaultNodeSize = 28

	minViableNodes = 3

	defaultLanguage   = "english"
	defaultComplexity = "intermediate"

	rootColor     = "#1e3a8a"
	fallbackColor = "#6b7280"
)

var importanceSizes = map[string]int{
	"high":   35,
	"medium": 28,
	"low":    22,
}

var typeColors = map[string]string{
	"concept":     "#3b82f6",
	"definition":  "#10b981",
	"principle":   "#f59e0b",
	"example":     "#ef4444",
	"application": "#8b5cf6",
}

var levelColors = map[int]string{
	1: "#3b82f6",
	2: "#10b981",
	3: "#f59e0b",
	4: "#ef4444",
	5: "#8b5cf6",
}

var strengthValues = map[string]int{
	"strong": 3,
	"medium": 2,
	"weak":   1,
}

const defaultLinkValue = 2

// truncateEllipsis caps s at limit runes, appending "..." when it was cut.
func truncateEllipsis(s string, limit int) string {
	r := []rune(s)
	if len(r) > limit {
		return string(r[:limit]) + "..."
	}
	return s
}
