package classifiers

import (
	"fmt"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelineBackends"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/spacesedan/emotiflow/internal/models"
)

const emotionModelName = "SamLowe/roberta-base-go_emotions"

// HugotEmotionClassifier runs the go_emotions multi-label classifier
// locally through the shared ONNX session. Output covers the full 28-label
// vocabulary and is unsorted; ordering is the caller's concern.
type HugotEmotionClassifier struct {
	pipeline *pipelines.TextClassificationPipeline
}

func NewHugotEmotionClassifier(session *hugot.Session, modelDir string) (*HugotEmotionClassifier, error) {
	modelPath, err := ensureModel(emotionModelName, modelDir)
	if err != nil {
		return nil, err
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "emotionClassificationPipeline",
		Options: []pipelineBackends.PipelineOption[*pipelines.TextClassificationPipeline]{
			pipelines.WithMultiLabel(),
		},
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize emotion pipeline: %w", err)
	}

	return &HugotEmotionClassifier{pipeline: pipeline}, nil
}

func (c *HugotEmotionClassifier) Classify(text string) ([]models.EmotionScore, error) {
	output, err := c.pipeline.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("emotion inference failed: %w", err)
	}
	if len(output.ClassificationOutputs) == 0 {
		return nil, fmt.Errorf("emotion pipeline returned no output")
	}

	scores := make([]models.EmotionScore, 0, len(output.ClassificationOutputs[0]))
	for _, out := range output.ClassificationOutputs[0] {
		scores = append(scores, models.EmotionScore{
			Label: out.Label,
			Score: float64(out.Score),
		})
	}

	return scores, nil
}
