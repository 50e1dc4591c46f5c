package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ibtida01/Shobarkhamar/internal/config"
	"github.com/Ibtida01/Shobarkhamar/internal/models"
)

func TestHTTPClassifier_Classify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)

		var req ClassifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, models.SpeciesFish, req.TargetSpecies)

		json.NewEncoder(w).Encode(ClassifyResult{
			DiseaseName: "Fin Rot",
			Confidence:  0.87,
		})
	}))
	defer server.Close()

	classifier := NewHTTPClassifier(config.AIConfig{BaseURL: server.URL, Timeout: 5 * time.Second})

	result, err := classifier.Classify(context.Background(), ClassifyRequest{
		ImageURL:      "/uploads/case_1.jpg",
		TargetSpecies: models.SpeciesFish,
	})
	require.NoError(t, err)
	assert.Equal(t, "Fin Rot", result.DiseaseName)
	assert.InDelta(t, 0.87, result.Confidence, 1e-9)
}

func TestHTTPClassifier_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	classifier := NewHTTPClassifier(config.AIConfig{BaseURL: server.URL})

	_, err := classifier.Classify(context.Background(), ClassifyRequest{ImageURL: "x"})
	assert.Error(t, err)
}

func TestHTTPClassifier_Unconfigured(t *testing.T) {
	classifier := NewHTTPClassifier(config.AIConfig{})

	_, err := classifier.Classify(context.Background(), ClassifyRequest{ImageURL: "x"})
	assert.Error(t, err)
}
