package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OllamaProvider implements Provider for local Ollama models (e.g. bge-m3)
type OllamaProvider struct {
	BaseURL   string
	Model     string
	Dimension int // expected vector length; 0 disables the check
	Client    *http.Client
}

var _ Provider = &OllamaProvider{}

func NewOllamaProvider(baseURL, model string, dimension int, timeout time.Duration) *OllamaProvider {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "bge-m3"
	}
	return &OllamaProvider{
		BaseURL:   baseURL,
		Model:     model,
		Dimension: dimension,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

type ollamaEmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type ollamaEmbedResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
}

// Encode embeds all texts in one /api/embed call, returning one vector
// per input in the same order. Vectors are unit-normalized.
func (p *OllamaProvider) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	reqBody := ollamaEmbedRequest{
		Model: p.Model,
		Input: texts,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/api/embed", p.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, string(bodyBytes))
	}

	var embedResp ollamaEmbedResponse
	if err := json.Unmarshal(bodyBytes, &embedResp); err != nil {
		return nil, fmt.Errorf("%w: unmarshal response: %v", ErrUnavailable, err)
	}

	if len(embedResp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d inputs", ErrUnavailable, len(embedResp.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(embedResp.Embeddings))
	for i, emb := range embedResp.Embeddings {
		if p.Dimension > 0 && len(emb) != p.Dimension {
			// All stored vectors must share one dimension; a mismatch here
			// would poison the index.
			return nil, fmt.Errorf("embedding dimension mismatch: got %d, want %d", len(emb), p.Dimension)
		}
		values := make([]float32, len(emb))
		for j, v := range emb {
			values[j] = float32(v)
		}
		vectors[i] = Normalize(values)
	}

	return vectors, nil
}

func (p *OllamaProvider) EncodeOne(ctx context.Context, text string) ([]float32, error) {
	vectors, err := p.Encode(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}
