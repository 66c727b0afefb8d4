package cache

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/spacesedan/emotiflow/internal/models"
)

const (
	analysisKeyPrefix = "analysis:"
	analysisTTL       = time.Hour
	connectTimeout    = 3 * time.Second
)

// Cache stores serialized analysis results keyed by a hash of the
// normalized input text. Analysis is a pure function of its input, so a hit
// skips both classifiers and the remote refinement call.
type Cache struct {
	client valkey.Client
}

func New(addr, password string, useTLS bool) (*Cache, error) {
	opts := valkey.ClientOption{
		InitAddress:      []string{addr},
		Password:         password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if useTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create valkey client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping valkey: %w", err)
	}

	slog.Info("[Cache] Connected to valkey", slog.String("addr", addr))

	return &Cache{client: client}, nil
}

func (c *Cache) Close() {
	c.client.Close()
}

// Key derives the cache key for a normalized input text.
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return analysisKeyPrefix + hex.EncodeToString(hash[:])
}

// Get is best-effort: any error is logged and reported as a miss.
func (c *Cache) Get(ctx context.Context, key string) (models.AnalysisResult, bool) {
	var result models.AnalysisResult

	res := c.client.Do(ctx, c.client.B().Get().Key(key).Build())
	if err := res.Error(); err != nil {
		if !valkey.IsValkeyNil(err) {
			slog.Warn("[Cache] Lookup failed",
				slog.String("error", err.Error()))
		}
		return result, false
	}

	raw, err := res.AsBytes()
	if err != nil {
		return result, false
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		slog.Warn("[Cache] Failed to unmarshal cached analysis",
			slog.String("error", err.Error()))
		return result, false
	}

	return result, true
}

// Set is best-effort: failures are logged and otherwise ignored.
func (c *Cache) Set(ctx context.Context, key string, result models.AnalysisResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		slog.Warn("[Cache] Failed to marshal analysis",
			slog.String("error", err.Error()))
		return
	}

	cmds := []valkey.Completed{
		c.client.B().Set().Key(key).Value(string(raw)).Build(),
		c.client.B().Expire().Key(key).Seconds(int64(analysisTTL.Seconds())).Build(),
	}
	for _, res := range c.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			slog.Warn("[Cache] Failed to store analysis",
				slog.String("error", err.Error()))
			return
		}
	}
}
