package eval

import (
	"context"
	"fmt"
	"time"

	"rag-assistant-be/internal/pkg/logger"
	"rag-assistant-be/internal/repository/contract"
	"rag-assistant-be/pkg/embedding"
	"rag-assistant-be/pkg/llm"
	"rag-assistant-be/pkg/rag/prompt"
)

// Retriever fetches scored chunks for a query. Satisfied by
// retrieval.Engine.
type Retriever interface {
	Retrieve(ctx context.Context, queryText string, limit int, threshold float64) ([]*contract.ScoredChunk, error)
}

// Generator produces an answer from assembled messages. Satisfied by
// generate.Invoker.
type Generator interface {
	Generate(ctx context.Context, messages []llm.Message) string
}

// Evaluator runs a dataset through the answering pipeline and scores
// each prediction against its reference answer. Each sample runs as a
// fresh single-turn exchange with no conversation history.
type Evaluator struct {
	retriever Retriever
	generator Generator
	embedder  embedding.Provider
	assembler *prompt.Assembler
	limit     int
	threshold float64
	log       logger.ILogger
}

func NewEvaluator(
	retriever Retriever,
	generator Generator,
	embedder embedding.Provider,
	assembler *prompt.Assembler,
	limit int,
	threshold float64,
	log logger.ILogger,
) *Evaluator {
	return &Evaluator{
		retriever: retriever,
		generator: generator,
		embedder:  embedder,
		assembler: assembler,
		limit:     limit,
		threshold: threshold,
		log:       log,
	}
}

// Evaluate scores every sample under the given mode ("llm" answers
// without retrieval, "rag" retrieves context first). A sample's
// use_retrieval field overrides the run mode for that sample only.
func (e *Evaluator) Evaluate(ctx context.Context, samples []Sample, mode string) (*Report, error) {
	if mode != ModeLLM && mode != ModeRAG {
		return nil, fmt.Errorf("unknown evaluation mode %q", mode)
	}

	results := make([]Result, 0, len(samples))
	for _, sample := range samples {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		results = append(results, e.evaluateOne(ctx, sample, mode))
	}

	report := NewReport(mode, results)
	e.log.Info("Evaluator", "evaluation finished", map[string]interface{}{
		"mode":        mode,
		"count":       report.Summary.Count,
		"exact_match": report.Summary.ExactMatch,
		"token_f1":    report.Summary.TokenF1,
	})
	return report, nil
}

func (e *Evaluator) evaluateOne(ctx context.Context, sample Sample, runMode string) Result {
	useRetrieval := runMode == ModeRAG
	if sample.UseRetrieval != nil {
		useRetrieval = *sample.UseRetrieval
	}

	mode := ModeLLM
	if useRetrieval {
		mode = ModeRAG
	}

	var retrieved []*contract.ScoredChunk
	if useRetrieval && e.retriever != nil {
		chunks, err := e.retriever.Retrieve(ctx, sample.Question, e.limit, e.threshold)
		if err != nil {
			// degrade to answering without context instead of
			// failing the whole run
			e.log.Warn("Evaluator", "retrieval failed, answering without context", map[string]interface{}{
				"sample_id": sample.Id,
				"error":     err.Error(),
			})
		} else {
			retrieved = chunks
		}
	}

	messages := e.assembler.Build(retrieved, nil, sample.Question)

	start := time.Now()
	answer := e.generator.Generate(ctx, messages)
	latency := time.Since(start).Seconds()

	return Result{
		Id:              sample.Id,
		Question:        sample.Question,
		ReferenceAnswer: sample.ReferenceAnswer,
		ModelAnswer:     answer,
		Mode:            mode,
		LatencySec:      latency,
		Metrics: Metrics{
			ExactMatch:      ExactMatch(answer, sample.ReferenceAnswer),
			TokenF1:         TokenF1(answer, sample.ReferenceAnswer),
			EmbeddingCosine: e.embeddingCosine(ctx, answer, sample.ReferenceAnswer),
		},
	}
}

// embeddingCosine encodes prediction and reference in one batch and
// returns their cosine similarity. Encoder failures score zero rather
// than aborting the run.
func (e *Evaluator) embeddingCosine(ctx context.Context, pred, ref string) float64 {
	if pred == "" || ref == "" {
		return 0.0
	}

	vectors, err := e.embedder.Encode(ctx, []string{pred, ref})
	if err != nil || len(vectors) != 2 {
		e.log.Warn("Evaluator", "embedding similarity unavailable", map[string]interface{}{
			"error": fmt.Sprintf("%v", err),
		})
		return 0.0
	}
	return Cosine(vectors[0], vectors[1])
}
