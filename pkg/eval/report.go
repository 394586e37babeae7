package eval

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

const (
	ModeLLM = "llm"
	ModeRAG = "rag"
)

// Sample is one question/reference pair from an evaluation dataset.
// UseRetrieval overrides the run mode for a single sample when set.
type Sample struct {
	Id              int    `json:"id"`
	Question        string `json:"question"`
	ReferenceAnswer string `json:"reference_answer"`
	UseRetrieval    *bool  `json:"use_retrieval,omitempty"`
}

// Metrics carries the per-sample scores.
type Metrics struct {
	ExactMatch      float64      `json:"exact_match"`
	TokenF1         TokenF1Score `json:"token_f1"`
	EmbeddingCosine float64      `json:"embedding_cosine"`
}

// Result is the outcome of evaluating one sample.
type Result struct {
	Id              int     `json:"id"`
	Question        string  `json:"question"`
	ReferenceAnswer string  `json:"reference_answer"`
	ModelAnswer     string  `json:"model_answer"`
	Mode            string  `json:"mode"`
	LatencySec      float64 `json:"latency_sec"`
	Metrics         Metrics `json:"metrics"`
}

// Summary aggregates mean scores over all results in a run.
type Summary struct {
	Count           int     `json:"count"`
	ExactMatch      float64 `json:"exact_match"`
	TokenPrecision  float64 `json:"token_precision"`
	TokenRecall     float64 `json:"token_recall"`
	TokenF1         float64 `json:"token_f1"`
	EmbeddingCosine float64 `json:"embedding_cosine"`
	AvgLatencySec   float64 `json:"avg_latency_sec"`
}

// Report is the full evaluation artifact written to disk.
type Report struct {
	Id          string    `json:"id"`
	Mode        string    `json:"mode"`
	GeneratedAt time.Time `json:"generated_at"`
	Summary     Summary   `json:"summary"`
	Results     []Result  `json:"results"`
}

// NewReport builds a report around finished results, computing the
// summary as the arithmetic mean of each per-sample metric.
func NewReport(mode string, results []Result) *Report {
	summary := Summary{Count: len(results)}
	for _, r := range results {
		summary.ExactMatch += r.Metrics.ExactMatch
		summary.TokenPrecision += r.Metrics.TokenF1.Precision
		summary.TokenRecall += r.Metrics.TokenF1.Recall
		summary.TokenF1 += r.Metrics.TokenF1.F1
		summary.EmbeddingCosine += r.Metrics.EmbeddingCosine
		summary.AvgLatencySec += r.LatencySec
	}
	if summary.Count > 0 {
		n := float64(summary.Count)
		summary.ExactMatch /= n
		summary.TokenPrecision /= n
		summary.TokenRecall /= n
		summary.TokenF1 /= n
		summary.EmbeddingCosine /= n
		summary.AvgLatencySec /= n
	}

	return &Report{
		Id:          uuid.NewString(),
		Mode:        mode,
		GeneratedAt: time.Now().UTC(),
		Summary:     summary,
		Results:     results,
	}
}

// LoadDataset reads a JSON array of samples from disk.
func LoadDataset(path string) ([]Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var samples []Sample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("dataset %s contains no samples", path)
	}
	return samples, nil
}

// SaveReport writes the report as indented JSON.
func SaveReport(report *Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
