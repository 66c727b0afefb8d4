package classifiers

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knights-analytics/hugot"
)

// NewSession initializes the shared ONNX runtime session used by the local
// classification pipelines. Callers own the session and must Destroy it.
func NewSession() (*hugot.Session, error) {
	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX session: %w", err)
	}
	return session, nil
}

// ensureModel downloads a HuggingFace model into modelDir unless it is
// already present, returning the local path to load it from.
func ensureModel(name, modelDir string) (string, error) {
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create model directory: %w", err)
	}

	localPath := filepath.Join(modelDir, strings.ReplaceAll(name, "/", "_"))
	if _, err := os.Stat(localPath); err == nil {
		slog.Info("[Classifiers] Using existing model", slog.String("path", localPath))
		return localPath, nil
	}

	slog.Info("[Classifiers] Model not found, downloading...", slog.String("model", name))
	downloaded, err := hugot.DownloadModel(name, modelDir, hugot.NewDownloadOptions())
	if err != nil {
		return "", fmt.Errorf("failed to download model %s: %w", name, err)
	}
	slog.Info("[Classifiers] Model downloaded successfully", slog.String("path", downloaded))

	return downloaded, nil
}
