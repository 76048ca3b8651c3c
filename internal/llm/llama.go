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

// Llama talks to a llama.cpp server's completion endpoint. It runs the model
// locally behind HTTP, which keeps the scanner itself free of inference code.
type Llama struct {
	endpoint string
	client   *http.Client
}

func NewLlama(endpoint string) *Llama {
	return &Llama{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (l *Llama) Name() string { return "llama" }

func (l *Llama) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	body := map[string]interface{}{
		"prompt":      prompt,
		"n_predict":   maxTokens,
		"temperature": temperature,
		"stream":      false,
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.endpoint+"/completion", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llama server error (status %d): %s", resp.StatusCode, string(respBytes))
	}

	// Minimal struct to pull out the generated text.
	var llamaResp struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(respBytes, &llamaResp); err != nil {
		return "", err
	}
	return llamaResp.Content, nil
}
