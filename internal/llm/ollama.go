package llm

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

// OllamaClient wraps Ollama's generate API.
type OllamaClient struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewOllamaClient creates a new Ollama completion client
func NewOllamaClient(baseURL, model string, timeout time.Duration) *OllamaClient {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return &OllamaClient{
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Complete generates a reply for the prompt
func (c *OllamaClient) Complete(ctx context.Context, prompt string) (Completion, error) {
	url := fmt.Sprintf("%s/api/generate", c.baseURL)

	jsonData, err := json.Marshal(&generateRequest{Model: c.model, Prompt: prompt})
	if err != nil {
		return Completion{}, fmt.Errorf("%w: failed to marshal request: %v", ErrCompletion, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return Completion{}, fmt.Errorf("%w: failed to create request: %v", ErrCompletion, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Completion{}, fmt.Errorf("%w: %v", ErrCompletion, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Completion{}, fmt.Errorf("%w: ollama API error: %d - %s", ErrCompletion, resp.StatusCode, string(body))
	}

	// Ollama streams JSON objects even without stream=true on some versions,
	// so accumulate until done.
	var result strings.Builder
	decoder := json.NewDecoder(resp.Body)
	for {
		var genResp generateResponse
		if err := decoder.Decode(&genResp); err != nil {
			if err == io.EOF {
				break
			}
			return Completion{}, fmt.Errorf("%w: failed to decode response: %v", ErrCompletion, err)
		}
		result.WriteString(genResp.Response)
		if genResp.Done {
			break
		}
	}

	return Completion{Content: result.String()}, nil
}
