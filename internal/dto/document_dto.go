package dto

import "time"

type IngestDocumentRequest struct {
	Title      string `json:"title" validate:"required"`
	Content    string `json:"content"`
	SourceType string `json:"source_type"`
	SourceURL  string `json:"source_url"`
	Category   string `json:"category"`
	Version    string `json:"version"`
}

type IngestDocumentResponse struct {
	Id         int64  `json:"id"`
	Title      string `json:"title"`
	ChunkCount int    `json:"chunk_count"`
}

type ShowDocumentResponse struct {
	Id         int64                  `json:"id"`
	Title      string                 `json:"title"`
	SourceType string                 `json:"source_type"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	ChunkCount int                    `json:"chunk_count"`
	CreatedAt  time.Time              `json:"created_at"`
}

type DeleteDocumentResponse struct {
	Id int64 `json:"id"`
}

// PublishDocumentIngestedMessage is the payload placed on the internal
// bus after a document commits.
type PublishDocumentIngestedMessage struct {
	DocumentId int64  `json:"document_id"`
	Title      string `json:"title"`
	ChunkCount int    `json:"chunk_count"`
}
