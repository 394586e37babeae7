package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag-assistant-be/internal/dto"
	"rag-assistant-be/internal/entity"
	"rag-assistant-be/internal/pkg/logger"
	"rag-assistant-be/internal/repository/contract"
	"rag-assistant-be/internal/repository/memory"
	"rag-assistant-be/pkg/llm"
	"rag-assistant-be/pkg/rag/generate"
	"rag-assistant-be/pkg/rag/prompt"
	"rag-assistant-be/pkg/rag/retrieval"
)

type fakeSearcher struct {
	chunks []*contract.ScoredChunk
	err    error
	calls  int
}

func (f *fakeSearcher) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredChunk, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.chunks, nil
}

type fakeLLM struct {
	answer   string
	err      error
	messages []llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.messages = history
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}})
}

func newChatbotFixture(store *fakeStore, searcher *fakeSearcher, provider llm.Provider) IChatbotService {
	embedder := &fakeEmbedder{}
	return NewChatbotService(
		&fakeFactory{store: store},
		memory.NewConversationCache(),
		embedder,
		retrieval.NewEngine(embedder, searcher),
		prompt.NewAssembler(1500, 3),
		generate.NewInvoker(provider, generate.Config{MaxAttempts: 1}, logger.NewNopLogger()),
		5,
		0.5,
		3,
		logger.NewNopLogger(),
	)
}

func TestSendChatPersistsBothTurns(t *testing.T) {
	store := newFakeStore()
	searcher := &fakeSearcher{
		chunks: []*contract.ScoredChunk{
			{Chunk: &entity.DocumentChunk{Id: 7, ChunkText: "The sky is blue."}, Similarity: 0.9},
		},
	}
	provider := &fakeLLM{answer: "It is blue."}
	svc := newChatbotFixture(store, searcher, provider)

	resp, err := svc.SendChat(context.Background(), &dto.SendChatRequest{
		Question:  "What color is the sky?",
		SessionId: "session-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "It is blue.", resp.Answer)
	assert.Equal(t, "session-1", resp.SessionId)

	require.Len(t, store.messages, 2)
	user, assistant := store.messages[0], store.messages[1]
	assert.Equal(t, entity.MessageRoleUser, user.Role)
	assert.Equal(t, "What color is the sky?", user.Content)
	assert.NotEmpty(t, user.Embedding)
	assert.Equal(t, entity.MessageRoleAssistant, assistant.Role)
	assert.Equal(t, []int64{7}, assistant.RelevantChunkIds)

	// retrieved context made it into the system prompt
	require.NotEmpty(t, provider.messages)
	assert.Contains(t, provider.messages[0].Content, "The sky is blue.")
}

func TestSendChatReusesConversation(t *testing.T) {
	store := newFakeStore()
	svc := newChatbotFixture(store, &fakeSearcher{}, &fakeLLM{answer: "hi"})

	_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Question: "hello", SessionId: "s"})
	require.NoError(t, err)
	_, err = svc.SendChat(context.Background(), &dto.SendChatRequest{Question: "again", SessionId: "s"})
	require.NoError(t, err)

	assert.Len(t, store.conversations, 1)
	for _, m := range store.messages {
		assert.Equal(t, int64(1), m.ConversationId)
	}
}

func TestSendChatGeneratesSession(t *testing.T) {
	store := newFakeStore()
	svc := newChatbotFixture(store, &fakeSearcher{}, &fakeLLM{answer: "hi"})

	resp, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Question: "hello"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionId)
}

func TestSendChatHistoryReachesPrompt(t *testing.T) {
	store := newFakeStore()
	provider := &fakeLLM{answer: "fine"}
	svc := newChatbotFixture(store, &fakeSearcher{}, provider)

	_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Question: "hello", SessionId: "s"})
	require.NoError(t, err)
	_, err = svc.SendChat(context.Background(), &dto.SendChatRequest{Question: "how are you?", SessionId: "s"})
	require.NoError(t, err)

	// second turn carries the first exchange as history
	var contents []string
	for _, m := range provider.messages {
		contents = append(contents, m.Content)
	}
	assert.Contains(t, contents, "hello")
	assert.Contains(t, contents, "fine")
	assert.Contains(t, contents, "how are you?")
}

func TestSendChatRetrievalFailureStillAnswers(t *testing.T) {
	store := newFakeStore()
	searcher := &fakeSearcher{err: errors.New("database down")}
	provider := &fakeLLM{answer: "best effort"}
	svc := newChatbotFixture(store, searcher, provider)

	resp, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Question: "q", SessionId: "s"})
	require.NoError(t, err)
	assert.Equal(t, "best effort", resp.Answer)

	require.Len(t, store.messages, 2)
	assert.Empty(t, store.messages[1].RelevantChunkIds)
	assert.Contains(t, provider.messages[0].Content, prompt.NoContextMarker)
}

func TestSendChatLLMFailureFallsBack(t *testing.T) {
	store := newFakeStore()
	provider := &fakeLLM{err: errors.New("model offline")}
	svc := newChatbotFixture(store, &fakeSearcher{}, provider)

	resp, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Question: "q", SessionId: "s"})
	require.NoError(t, err)
	assert.Equal(t, generate.FallbackAnswer, resp.Answer)

	// the fallback answer is persisted like any other assistant turn
	require.Len(t, store.messages, 2)
	assert.Equal(t, generate.FallbackAnswer, store.messages[1].Content)
}

func TestGetChatHistory(t *testing.T) {
	store := newFakeStore()
	svc := newChatbotFixture(store, &fakeSearcher{}, &fakeLLM{answer: "hi"})

	_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Question: "hello", SessionId: "s"})
	require.NoError(t, err)

	history, err := svc.GetChatHistory(context.Background(), "s")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entity.MessageRoleUser, history[0].Role)
	assert.Equal(t, "hello", history[0].Content)
	assert.Equal(t, entity.MessageRoleAssistant, history[1].Role)
}

func TestGetChatHistoryUnknownSession(t *testing.T) {
	store := newFakeStore()
	svc := newChatbotFixture(store, &fakeSearcher{}, &fakeLLM{})

	_, err := svc.GetChatHistory(context.Background(), "missing")
	assert.ErrorIs(t, err, contract.ErrConversationNotFound)
}
