package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rag-assistant-be/internal/dto"
	"rag-assistant-be/internal/entity"
	"rag-assistant-be/internal/pkg/logger"
	"rag-assistant-be/internal/repository/contract"
	"rag-assistant-be/internal/repository/specification"
	"rag-assistant-be/internal/repository/unitofwork"
	"rag-assistant-be/pkg/embedding"
	"rag-assistant-be/pkg/events"
	"rag-assistant-be/pkg/rag/splitter"
	"rag-assistant-be/pkg/source"
)

// ErrIngestionFailed wraps any failure between reading the source and
// committing the chunks. The document is never partially persisted.
var ErrIngestionFailed = errors.New("document ingestion failed")

type IIngestionService interface {
	// Ingest splits the source text, embeds every chunk in one batch
	// and persists document plus chunks atomically.
	Ingest(ctx context.Context, req *dto.IngestDocumentRequest, src source.ContentSource) (*dto.IngestDocumentResponse, error)
	Show(ctx context.Context, id int64) (*dto.ShowDocumentResponse, error)
	List(ctx context.Context) ([]*dto.ShowDocumentResponse, error)
	Delete(ctx context.Context, id int64) (*dto.DeleteDocumentResponse, error)
}

type ingestionService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
	publisherService  IPublisherService
	chunkSize         int
	chunkOverlap      int
	log               logger.ILogger
}

func NewIngestionService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
	publisherService IPublisherService,
	chunkSize int,
	chunkOverlap int,
	log logger.ILogger,
) IIngestionService {
	return &ingestionService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		publisherService:  publisherService,
		chunkSize:         chunkSize,
		chunkOverlap:      chunkOverlap,
		log:               log,
	}
}

func (s *ingestionService) Ingest(ctx context.Context, req *dto.IngestDocumentRequest, src source.ContentSource) (*dto.IngestDocumentResponse, error) {
	content, err := src.Text(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: read source %s: %v", ErrIngestionFailed, src.Name(), err)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: source %s produced no text", ErrIngestionFailed, src.Name())
	}

	chunks := splitter.Split(content, s.chunkSize, s.chunkOverlap)

	// one batch call for the whole document; a single failure aborts
	// the ingestion before anything touches the database
	vectors, err := s.embeddingProvider.Encode(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("%w: embed %d chunks: %v", ErrIngestionFailed, len(chunks), err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: embedder returned %d vectors for %d chunks", ErrIngestionFailed, len(vectors), len(chunks))
	}

	metadata := buildDocumentMetadata(req, src)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %v", ErrIngestionFailed, err)
	}
	defer uow.Rollback()

	document := &entity.Document{
		Title:      req.Title,
		SourceType: req.SourceType,
		SourceURL:  req.SourceURL,
		Metadata:   metadata,
		CreatedAt:  time.Now(),
	}
	if err := uow.DocumentRepository().Create(ctx, document); err != nil {
		return nil, fmt.Errorf("%w: create document: %v", ErrIngestionFailed, err)
	}

	chunkEntities := make([]*entity.DocumentChunk, 0, len(chunks))
	for i, chunkText := range chunks {
		chunkEntities = append(chunkEntities, &entity.DocumentChunk{
			DocumentId: document.Id,
			ChunkText:  chunkText,
			ChunkIndex: i,
			Embedding:  vectors[i],
			Metadata:   metadata,
			CreatedAt:  time.Now(),
		})
	}
	if err := uow.ChunkRepository().CreateBulk(ctx, chunkEntities); err != nil {
		return nil, fmt.Errorf("%w: create %d chunks: %v", ErrIngestionFailed, len(chunkEntities), err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", ErrIngestionFailed, err)
	}

	s.log.Info("IngestionService", "document ingested", map[string]interface{}{
		"document_id": document.Id,
		"title":       document.Title,
		"chunk_count": len(chunkEntities),
	})

	s.publishIngested(ctx, document, len(chunkEntities))

	return &dto.IngestDocumentResponse{
		Id:         document.Id,
		Title:      document.Title,
		ChunkCount: len(chunkEntities),
	}, nil
}

// publishIngested notifies the bus after commit. Failures only log;
// the document is already durable.
func (s *ingestionService) publishIngested(ctx context.Context, document *entity.Document, chunkCount int) {
	if s.publisherService == nil {
		return
	}

	evt := events.NewDocumentIngested(document.Id, document.Title, chunkCount)
	if err := s.publisherService.Publish(ctx, evt); err != nil {
		s.log.Warn("IngestionService", "publish ingested event failed", map[string]interface{}{
			"document_id": document.Id,
			"error":       err.Error(),
		})
	}
}

func (s *ingestionService) Show(ctx context.Context, id int64) (*dto.ShowDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, contract.ErrDocumentNotFound
	}

	chunkCount, err := uow.ChunkRepository().Count(ctx, specification.ByDocumentID{DocumentID: id})
	if err != nil {
		return nil, err
	}

	return toShowDocumentResponse(document, int(chunkCount)), nil
}

func (s *ingestionService) List(ctx context.Context) ([]*dto.ShowDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	documents, err := uow.DocumentRepository().FindAll(ctx, specification.OrderBy{Field: "id", Desc: true})
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ShowDocumentResponse, 0, len(documents))
	for _, document := range documents {
		chunkCount, err := uow.ChunkRepository().Count(ctx, specification.ByDocumentID{DocumentID: document.Id})
		if err != nil {
			return nil, err
		}
		responses = append(responses, toShowDocumentResponse(document, int(chunkCount)))
	}
	return responses, nil
}

// Delete removes the document and its chunks in one transaction.
func (s *ingestionService) Delete(ctx context.Context, id int64) (*dto.DeleteDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, contract.ErrDocumentNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChunkRepository().DeleteByDocumentID(ctx, id); err != nil {
		return nil, err
	}
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.log.Info("IngestionService", "document deleted", map[string]interface{}{
		"document_id": id,
	})
	return &dto.DeleteDocumentResponse{Id: id}, nil
}

func buildDocumentMetadata(req *dto.IngestDocumentRequest, src source.ContentSource) map[string]interface{} {
	metadata := map[string]interface{}{
		"title":  req.Title,
		"source": src.Name(),
	}
	if req.Category != "" {
		metadata["category"] = req.Category
	}
	if req.Version != "" {
		metadata["version"] = req.Version
	}
	return metadata
}

func toShowDocumentResponse(document *entity.Document, chunkCount int) *dto.ShowDocumentResponse {
	return &dto.ShowDocumentResponse{
		Id:         document.Id,
		Title:      document.Title,
		SourceType: document.SourceType,
		Metadata:   document.Metadata,
		ChunkCount: chunkCount,
		CreatedAt:  document.CreatedAt,
	}
}
