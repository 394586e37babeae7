package bootstrap

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"

	"rag-assistant-be/internal/config"
	"rag-assistant-be/internal/controller"
	"rag-assistant-be/internal/pkg/logger"
	"rag-assistant-be/internal/repository/implementation"
	"rag-assistant-be/internal/repository/memory"
	"rag-assistant-be/internal/repository/unitofwork"
	"rag-assistant-be/internal/service"
	"rag-assistant-be/pkg/embedding"
	"rag-assistant-be/pkg/eval"
	"rag-assistant-be/pkg/events"
	llmOllama "rag-assistant-be/pkg/llm/ollama"
	"rag-assistant-be/pkg/rag/generate"
	"rag-assistant-be/pkg/rag/prompt"
	"rag-assistant-be/pkg/rag/retrieval"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	ChatController     controller.IChatController
	EvalController     controller.IEvalController

	// Background services, run from main
	ConsumerService service.IConsumerService

	// Shared with the evaluate command
	Evaluator *eval.Evaluator

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// AI providers, constructed once and injected everywhere
	embeddingProvider := embedding.NewOllamaProvider(
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.EmbeddingModel,
		cfg.Ai.EmbeddingDimension,
		cfg.Ai.EmbedTimeout,
	)
	llmProvider := llmOllama.NewOllamaProvider(
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.LLMModel,
		cfg.Ai.GenerateTimeout,
	)

	retrievalEngine := retrieval.NewEngine(embeddingProvider, implementation.NewChunkRepository(db))
	assembler := prompt.NewAssembler(cfg.Ai.MaxContextLength, cfg.Ai.HistoryWindow)
	invoker := generate.NewInvoker(llmProvider, generate.Config{
		MaxAttempts:   cfg.Ai.MaxAttempts,
		RetryDelay:    cfg.Ai.RetryDelay,
		Timeout:       cfg.Ai.GenerateTimeout,
		Temperature:   cfg.Ai.Temperature,
		NumCtx:        cfg.Ai.NumCtx,
		NumPredict:    cfg.Ai.NumPredict,
		TopK:          cfg.Ai.TopK,
		TopP:          cfg.Ai.TopP,
		RepeatPenalty: cfg.Ai.RepeatPenalty,
	}, sysLogger)

	publisherService := service.NewPublisherService(pubSub)
	consumerService := service.NewConsumerService(pubSub, events.TopicDocumentIngested, uowFactory, sysLogger)

	ingestionService := service.NewIngestionService(
		uowFactory,
		embeddingProvider,
		publisherService,
		cfg.Ai.ChunkSize,
		cfg.Ai.ChunkOverlap,
		sysLogger,
	)

	chatbotService := service.NewChatbotService(
		uowFactory,
		memory.NewConversationCache(),
		embeddingProvider,
		retrievalEngine,
		assembler,
		invoker,
		cfg.Ai.RetrievalLimit,
		cfg.Ai.SimilarityThreshold,
		cfg.Ai.HistoryWindow,
		sysLogger,
	)

	evaluator := eval.NewEvaluator(
		retrievalEngine,
		invoker,
		embeddingProvider,
		assembler,
		cfg.Ai.RetrievalLimit,
		cfg.Ai.SimilarityThreshold,
		sysLogger,
	)

	return &Container{
		DocumentController: controller.NewDocumentController(ingestionService),
		ChatController:     controller.NewChatController(chatbotService),
		EvalController:     controller.NewEvalController(evaluator),
		ConsumerService:    consumerService,
		Evaluator:          evaluator,
		Logger:             sysLogger,
	}
}
