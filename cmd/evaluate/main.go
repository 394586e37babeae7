package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"rag-assistant-be/internal/bootstrap"
	"rag-assistant-be/internal/config"
	"rag-assistant-be/pkg/database"
	"rag-assistant-be/pkg/eval"
)

func main() {
	datasetPath := flag.String("dataset", "eval_dataset.json", "path to the evaluation dataset (JSON array)")
	mode := flag.String("mode", eval.ModeRAG, "evaluation mode: llm or rag")
	outPath := flag.String("out", "eval_report.json", "path to write the report")
	flag.Parse()

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	samples, err := eval.LoadDataset(*datasetPath)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	log.Printf("Evaluating %d samples in %s mode...", len(samples), *mode)
	report, err := container.Evaluator.Evaluate(context.Background(), samples, *mode)
	if err != nil {
		log.Fatalf("Error: evaluation failed: %v", err)
	}

	if err := eval.SaveReport(report, *outPath); err != nil {
		log.Fatalf("Error: %v", err)
	}

	fmt.Printf("Report written to %s\n", *outPath)
	fmt.Printf("  count:            %d\n", report.Summary.Count)
	fmt.Printf("  exact_match:      %.4f\n", report.Summary.ExactMatch)
	fmt.Printf("  token_f1:         %.4f\n", report.Summary.TokenF1)
	fmt.Printf("  embedding_cosine: %.4f\n", report.Summary.EmbeddingCosine)
	fmt.Printf("  avg_latency_sec:  %.3f\n", report.Summary.AvgLatencySec)
}
