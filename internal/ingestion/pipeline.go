package ingestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/vntexthub/vietrag/internal/database"
	"github.com/vntexthub/vietrag/internal/embedding"
	"github.com/vntexthub/vietrag/internal/textnorm"
)

// Pipeline runs parse -> chunk -> embed -> store. Chunks are embedded and
// inserted in bounded batches; each batch is its own transaction, so a
// failed batch can be retried without re-running the rest.
type Pipeline struct {
	parser    *Parser
	chunker   *Chunker
	embedder  embedding.Embedder
	db        *database.DB
	batchSize int
}

func NewPipeline(parser *Parser, chunker *Chunker, embedder embedding.Embedder, db *database.DB, batchSize int) *Pipeline {
	if batchSize <= 0 {
		batchSize = 25
	}
	return &Pipeline{
		parser:    parser,
		chunker:   chunker,
		embedder:  embedder,
		db:        db,
		batchSize: batchSize,
	}
}

// IngestFile ingests one cleaned text file. A file whose source URL is
// already in the store returns database.ErrDocumentExists; callers treat
// that as already done.
func (p *Pipeline) IngestFile(ctx context.Context, filePath string) error {
	doc, err := p.parser.ParseFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to parse file: %w", err)
	}

	return p.IngestDocument(ctx, doc)
}

// IngestDocument chunks, embeds and stores a parsed document.
func (p *Pipeline) IngestDocument(ctx context.Context, doc *Document) error {
	log.Info().Str("doc_id", doc.ID).Str("title", doc.Title).Msg("Starting ingestion")

	chunks := p.chunker.ChunkText(doc.Content)
	if len(chunks) == 0 {
		log.Warn().Str("doc_id", doc.ID).Msg("Document has no usable text, skipping")
		return nil
	}
	log.Info().Int("chunk_count", len(chunks)).Msg("Document chunked")

	if err := p.db.InsertDocument(ctx, &database.Document{
		ID:        doc.ID,
		SourceURL: doc.SourceURL,
		Title:     doc.Title,
		Language:  doc.Language,
		Checksum:  doc.Checksum,
	}); err != nil {
		if errors.Is(err, database.ErrDocumentExists) {
			log.Warn().Str("url", doc.SourceURL).Msg("Document already ingested")
		}
		return err
	}

	for start := 0; start < len(chunks); start += p.batchSize {
		end := min(start+p.batchSize, len(chunks))
		batch := chunks[start:end]

		if err := p.storeBatch(ctx, doc.ID, batch); err != nil {
			return fmt.Errorf("batch starting at chunk %d failed: %w", start, err)
		}

		log.Info().Int("batch", start/p.batchSize+1).Int("chunks", len(batch)).Msg("Batch complete")
	}

	log.Info().Str("doc_id", doc.ID).Int("total_chunks", len(chunks)).Msg("Ingestion complete")
	return nil
}

func (p *Pipeline) storeBatch(ctx context.Context, documentID string, batch []Chunk) error {
	contents := make([]string, 0, len(batch))
	for _, chunk := range batch {
		contents = append(contents, chunk.Content)
	}

	embeddings, err := p.embedder.GenerateBatchEmbeddings(ctx, contents)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(embeddings) != len(batch) {
		return fmt.Errorf("embedder returned %d vectors for %d chunks", len(embeddings), len(batch))
	}

	inserts := make([]database.ChunkInsert, 0, len(batch))
	for i, chunk := range batch {
		// Fail fast on a model/schema width mismatch; nothing gets inserted.
		if err := embedding.EnsureDimension(embeddings[i], p.embedder.Dimension()); err != nil {
			return err
		}

		inserts = append(inserts, database.ChunkInsert{
			DocumentID:    documentID,
			ChunkIndex:    chunk.Index,
			Content:       chunk.Content,
			ContentFolded: textnorm.Fold(chunk.Content),
			WordCount:     chunk.WordCount,
			CharCount:     chunk.CharCount,
			Embedding:     embeddings[i],
		})
	}

	return p.db.InsertChunks(ctx, inserts)
}
