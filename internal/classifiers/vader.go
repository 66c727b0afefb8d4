package classifiers

import (
	"math"

	"github.com/jonreiter/govader"
)

// VaderSentimentClassifier is a lexicon-based sentiment backend that needs
// no model download or ONNX runtime. The compound score's sign picks the
// label, its magnitude becomes the confidence.
type VaderSentimentClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderSentimentClassifier() *VaderSentimentClassifier {
	return &VaderSentimentClassifier{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
	}
}

func (c *VaderSentimentClassifier) Classify(text string) (string, float64, error) {
	sentiment := c.analyzer.PolarityScores(text)
	compound := sentiment.Compound

	label := "positive"
	if compound < 0 {
		label = "negative"
	}

	return label, math.Abs(compound), nil
}
