package entity

import "time"

// DocumentChunk is a contiguous slice of a document's content, embedded
// and indexed independently. ChunkIndex is the 0-based position among
// siblings; Metadata is copied from the parent document at ingestion.
type DocumentChunk struct {
	Id         int64
	DocumentId int64
	ChunkText  string
	ChunkIndex int
	Embedding  []float32
	Metadata   map[string]interface{}
	CreatedAt  time.Time
}
