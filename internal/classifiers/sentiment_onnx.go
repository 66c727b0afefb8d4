package classifiers

import (
	"fmt"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
)

const sentimentModelName = "distilbert-base-uncased-finetuned-sst-2-english"

// HugotSentimentClassifier runs the sst-2 binary sentiment model locally,
// returning the single best label and its confidence.
type HugotSentimentClassifier struct {
	pipeline *pipelines.TextClassificationPipeline
}

func NewHugotSentimentClassifier(session *hugot.Session, modelDir string) (*HugotSentimentClassifier, error) {
	modelPath, err := ensureModel(sentimentModelName, modelDir)
	if err != nil {
		return nil, err
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "sentimentClassificationPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sentiment pipeline: %w", err)
	}

	return &HugotSentimentClassifier{pipeline: pipeline}, nil
}

func (c *HugotSentimentClassifier) Classify(text string) (string, float64, error) {
	output, err := c.pipeline.RunPipeline([]string{text})
	if err != nil {
		return "", 0, fmt.Errorf("sentiment inference failed: %w", err)
	}
	if len(output.ClassificationOutputs) == 0 || len(output.ClassificationOutputs[0]) == 0 {
		return "", 0, fmt.Errorf("sentiment pipeline returned no output")
	}

	best := output.ClassificationOutputs[0][0]
	for _, out := range output.ClassificationOutputs[0][1:] {
		if out.Score > best.Score {
			best = out
		}
	}

	return best.Label, float64(best.Score), nil
}
