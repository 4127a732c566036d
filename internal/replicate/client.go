package replicate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	apiToken   string
	model      string
	httpClient *http.Client
}

// GenerationInput is the model input for a portrait generation run.
type GenerationInput struct {
	InputImages []string `json:"input_images"`
	Prompt      string   `json:"prompt"`
	AspectRatio string   `json:"aspect_ratio,omitempty"`
	Quality     string   `json:"quality,omitempty"`
}

type predictionRequest struct {
	Input GenerationInput `json:"input"`
}

type predictionResponse struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error,omitempty"`
}

func NewClient(baseURL, apiToken, model string) *Client {
	return &Client{
		baseURL:  baseURL,
		apiToken: apiToken,
		model:    model,
		httpClient: &http.Client{
			// A run blocks on the hosted model; generation regularly
			// takes tens of seconds.
			Timeout: 120 * time.Second,
		},
	}
}

// Generate runs the configured model synchronously and returns the URL of
// the first output image.
func (c *Client) Generate(input GenerationInput) (string, error) {
	jsonData, err := json.Marshal(predictionRequest{Input: input})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.baseURL, "/") + "/models/" + c.model + "/predictions"
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "wait")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("failed to create prediction: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result predictionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w, body: %s", err, string(body))
	}

	if result.Status == "failed" || result.Status == "canceled" {
		return "", fmt.Errorf("prediction %s: %s", result.Status, result.Error)
	}

	outputURL, err := firstOutputURL(result.Output)
	if err != nil {
		return "", fmt.Errorf("prediction %s returned no usable output: %w", result.ID, err)
	}

	return outputURL, nil
}

// firstOutputURL handles both output shapes the API produces: a single
// URL string or a list of URL strings (first element wins).
func firstOutputURL(output json.RawMessage) (string, error) {
	if len(output) == 0 {
		return "", fmt.Errorf("empty output")
	}

	var single string
	if err := json.Unmarshal(output, &single); err == nil {
		if single == "" {
			return "", fmt.Errorf("empty output url")
		}
		return single, nil
	}

	var list []string
	if err := json.Unmarshal(output, &list); err != nil {
		return "", fmt.Errorf("unexpected output shape: %s", string(output))
	}
	if len(list) == 0 || list[0] == "" {
		return "", fmt.Errorf("empty output list")
	}

	return list[0], nil
}

// DownloadImage fetches the raw bytes of a generated image, returning the
// data and its content type.
func (c *Client) DownloadImage(downloadURL string) ([]byte, string, error) {
	req, err := http.NewRequest("GET", downloadURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, "", fmt.Errorf("failed to download image: status %d, body: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return data, contentType, nil
}
