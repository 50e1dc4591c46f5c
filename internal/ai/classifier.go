package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Ibtida01/Shobarkhamar/internal/config"
	"github.com/Ibtida01/Shobarkhamar/internal/models"
)

// Classifier labels a diagnosis image with a disease name and confidence. The
// concrete model behind it is a remote service; callers only see the result.
type Classifier interface {
	Classify(ctx context.Context, req ClassifyRequest) (*ClassifyResult, error)
}

type ClassifyRequest struct {
	ImageURL      string               `json:"image_url"`
	TargetSpecies models.TargetSpecies `json:"target_species"`
	SymptomsText  string               `json:"symptoms_text,omitempty"`
}

type ClassifyResult struct {
	DiseaseName string  `json:"disease_name"`
	Confidence  float64 `json:"confidence"`
}

// HTTPClassifier calls an external model-serving endpoint over HTTP.
type HTTPClassifier struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClassifier(cfg config.AIConfig) *HTTPClassifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClassifier{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClassifier) Classify(ctx context.Context, req ClassifyRequest) (*ClassifyResult, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("classifier endpoint not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal classify request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build classify request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var result ClassifyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode classifier response: %w", err)
	}

	return &result, nil
}
