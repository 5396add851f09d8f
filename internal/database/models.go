package database

import (
	"fmt"
	"time"
)

// Document is one row of the documents table. Rows are insert-only; the
// source URL is the natural key and duplicates are rejected by the unique
// constraint.
type Document struct {
	ID        string
	SourceURL string
	Title     string
	Language  string
	Checksum  string
	CreatedAt time.Time
}

func (d *Document) Print() string {
	return fmt.Sprintf("Document_id: %s - Title: %s - URL: %s", d.ID, d.Title, d.SourceURL)
}

// Chunk is one row of the chunks table. Distance is populated by semantic
// search, Rank by keyword search; the other field stays zero.
type Chunk struct {
	ID         string
	DocumentID string
	ChunkIndex int
	Content    string
	WordCount  int
	CharCount  int
	Distance   float64
	Rank       float64
}
