package models

// AnalyzeRequest is the body accepted by POST /analyze.
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// EmotionScore is a single label/confidence pair from the local emotion
// classifier. Scores are multi-label and do not sum to 1 across the
// vocabulary.
type EmotionScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// SentimentResult carries a signed polarity score: the magnitude is the
// classifier confidence, the sign matches the label (negative iff "Negative").
type SentimentResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// FinalEmotion is one entry of the fused response. Score is normalized so
// that all FinalEmotion scores in a response sum to 1.
type FinalEmotion struct {
	Label       string  `json:"label"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
	Emoji       string  `json:"emoji"`
}

// AnalysisResult is the full payload returned to the client.
type AnalysisResult struct {
	Sentiment SentimentResult `json:"sentiment"`
	Summary   string          `json:"summary"`
	Emotions  []FinalEmotion  `json:"emotions"`
}
