package generate

import (
	"context"
	"errors"
	"testing"
	"time"

	"rag-assistant-be/internal/pkg/logger"
	"rag-assistant-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

type fakeProvider struct {
	calls   int
	answers []string
	errs    []error
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	idx := f.calls
	f.calls++
	if idx >= len(f.answers) {
		idx = len(f.answers) - 1
	}
	return f.answers[idx], f.errs[idx]
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func newTestInvoker(p llm.Provider, attempts int) *Invoker {
	return NewInvoker(p, Config{
		MaxAttempts: attempts,
		RetryDelay:  time.Millisecond,
	}, logger.NewNopLogger())
}

func TestGenerateSuccessTrimsAnswer(t *testing.T) {
	p := &fakeProvider{answers: []string{"  the answer  \n"}, errs: []error{nil}}
	inv := newTestInvoker(p, 2)

	got := inv.Generate(context.Background(), []llm.Message{{Role: "user", Content: "q"}})

	assert.Equal(t, "the answer", got)
	assert.Equal(t, 1, p.calls)
}

func TestGenerateExhaustsAttemptsThenFallsBack(t *testing.T) {
	boom := errors.New("model down")
	p := &fakeProvider{answers: []string{"", ""}, errs: []error{boom, boom}}
	inv := newTestInvoker(p, 2)

	got := inv.Generate(context.Background(), []llm.Message{{Role: "user", Content: "q"}})

	assert.Equal(t, FallbackAnswer, got)
	assert.Equal(t, 2, p.calls, "must make exactly the configured number of attempts")
}

func TestGenerateRecoversOnRetry(t *testing.T) {
	p := &fakeProvider{
		answers: []string{"", "recovered"},
		errs:    []error{errors.New("transient"), nil},
	}
	inv := newTestInvoker(p, 2)

	got := inv.Generate(context.Background(), []llm.Message{{Role: "user", Content: "q"}})

	assert.Equal(t, "recovered", got)
	assert.Equal(t, 2, p.calls)
}

func TestGenerateEmptyAnswerFallsBack(t *testing.T) {
	p := &fakeProvider{answers: []string{"   \n"}, errs: []error{nil}}
	inv := newTestInvoker(p, 2)

	got := inv.Generate(context.Background(), []llm.Message{{Role: "user", Content: "q"}})

	assert.Equal(t, FallbackAnswer, got)
}
