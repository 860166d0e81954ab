package embeddings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// CloudflareEmbedder generates text embeddings through Cloudflare Workers AI.
type CloudflareEmbedder struct {
	accountID  string
	apiToken   string
	model      string
	httpClient *http.Client
}

// NewCloudflareEmbedder creates a Workers AI embedder
func NewCloudflareEmbedder(accountID, apiToken, model string, timeout time.Duration) *CloudflareEmbedder {
	if model == "" {
		model = "@cf/baai/bge-large-en-v1.5"
	}
	return &CloudflareEmbedder{
		accountID:  accountID,
		apiToken:   apiToken,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Embed generates an embedding for a single text
func (e *CloudflareEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates embeddings for multiple texts in one API call.
func (e *CloudflareEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			return nil, fmt.Errorf("%w: text %d is empty", ErrEmbedding, i)
		}
	}

	payload := map[string]interface{}{
		"text": texts,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrEmbedding, err)
	}

	url := fmt.Sprintf("https://api.cloudflare.com/client/v4/accounts/%s/ai/run/%s", e.accountID, e.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrEmbedding, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiToken)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: workers AI error: %d - %s", ErrEmbedding, resp.StatusCode, string(body))
	}

	var result struct {
		Result struct {
			Data [][]float32 `json:"data"`
		} `json:"result"`
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrEmbedding, err)
	}
	if !result.Success || len(result.Result.Data) != len(texts) {
		return nil, fmt.Errorf("%w: workers AI returned %d vectors for %d texts", ErrEmbedding, len(result.Result.Data), len(texts))
	}

	return result.Result.Data, nil
}
