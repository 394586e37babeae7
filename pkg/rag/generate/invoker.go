package generate

import (
	"context"
	"strings"
	"time"

	"rag-assistant-be/internal/pkg/logger"
	"rag-assistant-be/pkg/llm"
)

// FallbackAnswer is returned when the model answers with an empty body
// or every attempt fails. A chat turn must always produce a response,
// so generation failures are absorbed here, not propagated.
const FallbackAnswer = "ขออภัย ฉันไม่พบคำตอบที่ชัดเจนจากข้อมูลที่มีค่ะ"

// Config holds the fixed decoding parameters and the retry policy.
// These are deployment configuration, not logic.
type Config struct {
	MaxAttempts   int
	RetryDelay    time.Duration
	Timeout       time.Duration
	Temperature   float64
	NumCtx        int
	NumPredict    int
	TopK          int
	TopP          float64
	RepeatPenalty float64
}

// Invoker calls the generation model with bounded retries and a fixed
// fallback answer on exhaustion.
type Invoker struct {
	provider llm.Provider
	cfg      Config
	logger   logger.ILogger
}

func NewInvoker(provider llm.Provider, cfg Config, log logger.ILogger) *Invoker {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 2
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	return &Invoker{
		provider: provider,
		cfg:      cfg,
		logger:   log,
	}
}

// Generate runs the prompt through the model. It never returns an
// error: after MaxAttempts failed calls, or on an empty answer, the
// caller gets FallbackAnswer. Success returns the trimmed answer text.
func (i *Invoker) Generate(ctx context.Context, messages []llm.Message) string {
	answer, ok := i.attempt(ctx, messages)
	if !ok {
		return FallbackAnswer
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		i.logger.Warn("generation", "Model returned empty answer, using fallback", nil)
		return FallbackAnswer
	}
	return answer
}

// attempt runs the bounded retry loop and reports success explicitly
// instead of threading errors through to the caller.
func (i *Invoker) attempt(ctx context.Context, messages []llm.Message) (string, bool) {
	opts := []llm.Option{
		llm.WithTemperature(i.cfg.Temperature),
		llm.WithNumCtx(i.cfg.NumCtx),
		llm.WithMaxTokens(i.cfg.NumPredict),
		llm.WithTopK(i.cfg.TopK),
		llm.WithTopP(i.cfg.TopP),
		llm.WithRepeatPenalty(i.cfg.RepeatPenalty),
	}

	for attempt := 1; attempt <= i.cfg.MaxAttempts; attempt++ {
		callCtx := ctx
		var cancel context.CancelFunc
		if i.cfg.Timeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, i.cfg.Timeout)
		}

		answer, err := i.provider.Chat(callCtx, messages, opts...)
		if cancel != nil {
			cancel()
		}
		if err == nil {
			return answer, true
		}

		i.logger.Warn("generation", "Model call failed", map[string]interface{}{
			"attempt":      attempt,
			"max_attempts": i.cfg.MaxAttempts,
			"error":        err.Error(),
		})

		if attempt < i.cfg.MaxAttempts {
			time.Sleep(i.cfg.RetryDelay)
		}
	}

	i.logger.Error("generation", "All generation attempts exhausted, using fallback", map[string]interface{}{
		"attempts": i.cfg.MaxAttempts,
	})
	return "", false
}
