package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog/log"
)

// ErrDocumentExists reports an insert for a source URL that is already
// ingested. Callers treat it as success, not failure.
var ErrDocumentExists = errors.New("document already ingested")

const uniqueViolationCode = "23505"

// ChunkInsert carries everything needed to store one chunk. ContentFolded
// feeds the generated tsvector column and must come from the same
// normalization used for queries.
type ChunkInsert struct {
	DocumentID    string
	ChunkIndex    int
	Content       string
	ContentFolded string
	WordCount     int
	CharCount     int
	Embedding     []float32
}

func (db *DB) InsertDocument(ctx context.Context, doc *Document) error {
	query := `
        INSERT INTO documents (id, source_url, title, language, checksum, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
    `

	_, err := db.Pool.Exec(ctx, query, doc.ID, doc.SourceURL, doc.Title, doc.Language, doc.Checksum)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("source_url %s: %w", doc.SourceURL, ErrDocumentExists)
		}
		return fmt.Errorf("failed to insert document: %w", err)
	}

	log.Info().Str("doc_id", doc.ID).Str("url", doc.SourceURL).Msg("Document inserted")
	return nil
}

// InsertChunks stores one batch of chunks in a single transaction. Batches
// are independent, so a failed batch can be retried without touching the
// others.
func (db *DB) InsertChunks(ctx context.Context, chunks []ChunkInsert) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO chunks (id, document_id, chunk_index, content, content_folded, word_count, char_count, embedding, created_at)
        VALUES (uuid_generate_v4(), $1, $2, $3, $4, $5, $6, $7, NOW())
    `

	for i, chunk := range chunks {
		vector := pgvector.NewVector(chunk.Embedding)

		_, err := tx.Exec(ctx, query,
			chunk.DocumentID,
			chunk.ChunkIndex,
			chunk.Content,
			chunk.ContentFolded,
			chunk.WordCount,
			chunk.CharCount,
			vector,
		)
		if err != nil {
			return fmt.Errorf("failed to insert chunk %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SemanticSearch returns the limit nearest chunks by cosine distance.
// Ties on distance break by chunk id so the ordering is deterministic.
func (db *DB) SemanticSearch(ctx context.Context, queryEmbedding []float32, limit int) ([]Chunk, error) {
	queryVector := pgvector.NewVector(queryEmbedding)

	query := `
	SELECT
	  id,
	  document_id,
	  chunk_index,
	  content,
	  embedding <=> $1 AS distance
	FROM chunks
	ORDER BY distance ASC, id ASC
	LIMIT $2`

	rows, err := db.Pool.Query(ctx, query, queryVector, limit)
	if err != nil {
		return nil, fmt.Errorf("semantic search failed: %w", err)
	}
	defer rows.Close()

	var chunks []Chunk
	for rows.Next() {
		var chunk Chunk
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.ChunkIndex, &chunk.Content, &chunk.Distance); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return chunks, nil
}

// KeywordSearch ranks chunks by ts_rank against the folded query. The caller
// folds the query with textnorm.Fold so it matches the stored tsvector.
// Chunks with no lexical overlap never appear, even below the limit.
func (db *DB) KeywordSearch(ctx context.Context, foldedQuery string, limit int) ([]Chunk, error) {
	query := `
		SELECT
			id,
			document_id,
			chunk_index,
			content,
			ts_rank(content_tsv, plainto_tsquery('simple', $1)) AS rank
		FROM chunks
		WHERE content_tsv @@ plainto_tsquery('simple', $1)
		ORDER BY rank DESC, id ASC
		LIMIT $2`

	rows, err := db.Pool.Query(ctx, query, foldedQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("keyword search failed: %w", err)
	}
	defer rows.Close()

	var chunks []Chunk
	for rows.Next() {
		var chunk Chunk
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.ChunkIndex, &chunk.Content, &chunk.Rank); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return chunks, nil
}

// TODO: Add pagination
func (db *DB) GetAllDocs(ctx context.Context) ([]Document, error) {
	query := `SELECT id, source_url, title, language, checksum, created_at FROM documents ORDER BY created_at`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch documents: %w", err)
	}
	defer rows.Close()

	var documents []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.SourceURL, &doc.Title, &doc.Language, &doc.Checksum, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		documents = append(documents, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return documents, nil
}

// DeleteDocument removes a document; its chunks go with it via the cascade.
func (db *DB) DeleteDocument(ctx context.Context, docID string) error {
	query := `DELETE FROM documents WHERE id = $1`

	result, err := db.Pool.Exec(ctx, query, docID)
	if err != nil {
		return fmt.Errorf("failed to delete document id %s: %w", docID, err)
	}

	if result.RowsAffected() == 0 {
		log.Warn().Str("doc_id", docID).Msg("Document not found")
	} else {
		log.Info().Str("doc_id", docID).Msg("Document deleted")
	}

	return nil
}

func (db *DB) CountChunks(ctx context.Context) (int64, error) {
	var count int64
	if err := db.Pool.QueryRow(ctx, `SELECT count(*) FROM chunks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return count, nil
}
