package emoji

// DefaultGlyph is returned for any label outside the known vocabulary.
const DefaultGlyph = "😐"

var glyphs = map[string]string{
	"admiration":     "🤩",
	"amusement":      "😂",
	"anger":          "😡",
	"annoyance":      "😒",
	"approval":       "👍",
	"caring":         "🤗",
	"confusion":      "🤔",
	"curiosity":      "🧐",
	"desire":         "😍",
	"disappointment": "😞",
	"disapproval":    "👎",
	"disgust":        "🤢",
	"embarrassment":  "😳",
	"excitement":     "🎉",
	"fear":           "😨",
	"gratitude":      "🙏",
	"grief":          "😭",
	"joy":            "😄",
	"love":           "❤️",
	"nervousness":    "😬",
	"optimism":       "😊",
	"pride":          "😌",
	"realization":    "💡",
	"relief":         "😮‍💨",
	"remorse":        "😔",
	"sadness":        "😢",
	"surprise":       "😲",
	"neutral":        "😐",
}

// ForLabel maps an emotion label to its display glyph.
func ForLabel(label string) string {
	if g, ok := glyphs[label]; ok {
		return g
	}
	return DefaultGlyph
}

// Labels returns the known emotion vocabulary.
func Labels() []string {
	labels := make([]string, 0, len(glyphs))
	for l := range glyphs {
		labels = append(labels, l)
	}
	return labels
}
