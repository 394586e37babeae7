package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rag-assistant-be/internal/dto"
	"rag-assistant-be/internal/entity"
	"rag-assistant-be/internal/pkg/logger"
	"rag-assistant-be/internal/repository/contract"
	"rag-assistant-be/internal/repository/memory"
	"rag-assistant-be/internal/repository/specification"
	"rag-assistant-be/internal/repository/unitofwork"
	"rag-assistant-be/pkg/embedding"
	"rag-assistant-be/pkg/llm"
	"rag-assistant-be/pkg/rag/generate"
	"rag-assistant-be/pkg/rag/prompt"
	"rag-assistant-be/pkg/rag/retrieval"
)

type IChatbotService interface {
	// SendChat answers a question inside a session's conversation,
	// persisting both the user turn and the assistant turn.
	SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetChatHistory(ctx context.Context, sessionID string) ([]*dto.GetChatHistoryResponse, error)
}

type chatbotService struct {
	uowFactory        unitofwork.RepositoryFactory
	conversationCache *memory.ConversationCache
	embeddingProvider embedding.Provider
	retrievalEngine   *retrieval.Engine
	assembler         *prompt.Assembler
	invoker           *generate.Invoker
	retrievalLimit    int
	threshold         float64
	historyWindow     int
	log               logger.ILogger
}

func NewChatbotService(
	uowFactory unitofwork.RepositoryFactory,
	conversationCache *memory.ConversationCache,
	embeddingProvider embedding.Provider,
	retrievalEngine *retrieval.Engine,
	assembler *prompt.Assembler,
	invoker *generate.Invoker,
	retrievalLimit int,
	threshold float64,
	historyWindow int,
	log logger.ILogger,
) IChatbotService {
	return &chatbotService{
		uowFactory:        uowFactory,
		conversationCache: conversationCache,
		embeddingProvider: embeddingProvider,
		retrievalEngine:   retrievalEngine,
		assembler:         assembler,
		invoker:           invoker,
		retrievalLimit:    retrievalLimit,
		threshold:         threshold,
		historyWindow:     historyWindow,
		log:               log,
	}
}

func (s *chatbotService) SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	sessionID := req.SessionId
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversationID, err := s.resolveConversation(ctx, uow, sessionID)
	if err != nil {
		return nil, err
	}

	history, err := uow.MessageRepository().Recent(ctx, conversationID, s.historyWindow)
	if err != nil {
		return nil, err
	}

	// embedding failures degrade to answering without context; the
	// chat must keep working while the embedding model is down
	queryVector, embedErr := s.embeddingProvider.EncodeOne(ctx, req.Question)
	if embedErr != nil {
		s.log.Warn("ChatbotService", "query embedding failed, skipping retrieval", map[string]interface{}{
			"session_id": sessionID,
			"error":      embedErr.Error(),
		})
	}

	var retrieved []*contract.ScoredChunk
	if embedErr == nil {
		retrieved, err = s.retrievalEngine.RetrieveWithEmbedding(ctx, queryVector, s.retrievalLimit, s.threshold)
		if err != nil {
			s.log.Warn("ChatbotService", "retrieval failed, answering without context", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
			retrieved = nil
		}
	}

	messages := s.assembler.Build(retrieved, toLLMHistory(history), req.Question)
	answer := s.invoker.Generate(ctx, messages)

	if err := s.persistTurn(ctx, uow, conversationID, req.Question, queryVector, answer, retrieved); err != nil {
		return nil, err
	}

	return &dto.SendChatResponse{
		Answer:    answer,
		SessionId: sessionID,
	}, nil
}

// resolveConversation maps the session to its conversation id, using
// the in-memory cache before the database upsert.
func (s *chatbotService) resolveConversation(ctx context.Context, uow unitofwork.UnitOfWork, sessionID string) (int64, error) {
	if id, found := s.conversationCache.Get(sessionID); found {
		return id, nil
	}

	conversation, err := uow.ConversationRepository().GetOrCreate(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	s.conversationCache.Save(sessionID, conversation.Id)
	return conversation.Id, nil
}

// persistTurn stores the user question and the assistant answer in one
// transaction so a conversation never ends on an unanswered question.
func (s *chatbotService) persistTurn(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	conversationID int64,
	question string,
	queryVector []float32,
	answer string,
	retrieved []*contract.ScoredChunk,
) error {
	chunkIDs := make([]int64, 0, len(retrieved))
	for _, scored := range retrieved {
		chunkIDs = append(chunkIDs, scored.Chunk.Id)
	}

	answerVector, err := s.embeddingProvider.EncodeOne(ctx, answer)
	if err != nil {
		s.log.Warn("ChatbotService", "answer embedding failed, storing without vector", map[string]interface{}{
			"conversation_id": conversationID,
			"error":           err.Error(),
		})
		answerVector = nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	userMessage := &entity.Message{
		ConversationId: conversationID,
		Role:           entity.MessageRoleUser,
		Content:        question,
		Embedding:      queryVector,
		CreatedAt:      time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, userMessage); err != nil {
		return err
	}

	assistantMessage := &entity.Message{
		ConversationId:   conversationID,
		Role:             entity.MessageRoleAssistant,
		Content:          answer,
		RelevantChunkIds: chunkIDs,
		Embedding:        answerVector,
		CreatedAt:        time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, assistantMessage); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *chatbotService) GetChatHistory(ctx context.Context, sessionID string) ([]*dto.GetChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.BySessionID{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, contract.ErrConversationNotFound
	}

	messages, err := uow.MessageRepository().FindAll(
		ctx,
		specification.ByConversationID{ConversationID: conversation.Id},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.GetChatHistoryResponse, 0, len(messages))
	for _, msg := range messages {
		responses = append(responses, &dto.GetChatHistoryResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		})
	}
	return responses, nil
}

func toLLMHistory(messages []*entity.Message) []llm.Message {
	history := make([]llm.Message, 0, len(messages))
	for _, msg := range messages {
		history = append(history, llm.Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	return history
}
