package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// CloudflareClient invokes a chat model through Cloudflare Workers AI.
type CloudflareClient struct {
	accountID  string
	apiToken   string
	model      string
	httpClient *http.Client
}

// NewCloudflareClient creates a Workers AI completion client
func NewCloudflareClient(accountID, apiToken, model string, timeout time.Duration) *CloudflareClient {
	if model == "" {
		model = "@cf/mistralai/mistral-small-3.1-24b-instruct"
	}
	return &CloudflareClient{
		accountID:  accountID,
		apiToken:   apiToken,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Complete generates a reply for the prompt
func (c *CloudflareClient) Complete(ctx context.Context, prompt string) (Completion, error) {
	payload := map[string]interface{}{
		"prompt": prompt,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return Completion{}, fmt.Errorf("%w: failed to marshal request: %v", ErrCompletion, err)
	}

	url := fmt.Sprintf("https://api.cloudflare.com/client/v4/accounts/%s/ai/run/%s", c.accountID, c.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return Completion{}, fmt.Errorf("%w: failed to create request: %v", ErrCompletion, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Completion{}, fmt.Errorf("%w: %v", ErrCompletion, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Completion{}, fmt.Errorf("%w: workers AI error: %d - %s", ErrCompletion, resp.StatusCode, string(body))
	}

	var result struct {
		Result struct {
			Response string `json:"response"`
		} `json:"result"`
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Completion{}, fmt.Errorf("%w: failed to decode response: %v", ErrCompletion, err)
	}
	if !result.Success {
		return Completion{}, fmt.Errorf("%w: workers AI reported failure", ErrCompletion)
	}

	return Completion{Content: result.Result.Response}, nil
}
