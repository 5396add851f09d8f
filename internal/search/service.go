package search

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/vntexthub/vietrag/internal/database"
	"github.com/vntexthub/vietrag/internal/embedding"
	"github.com/vntexthub/vietrag/internal/textnorm"
)

// ResultCache is an optional response cache keyed by search mode and query.
// A nil cache disables caching.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]SearchResult, bool)
	Set(ctx context.Context, key string, results []SearchResult)
}

// Config holds the fusion tunables. K is the RRF smoothing constant;
// PoolMultiplier controls how many candidates each sub-search contributes
// relative to the requested limit.
type Config struct {
	K              float64
	PoolMultiplier int
}

func DefaultConfig() Config {
	return Config{K: 60.0, PoolMultiplier: 4}
}

type Service struct {
	db       *database.DB
	embedder embedding.Embedder
	cache    ResultCache
	config   Config
}

func NewService(db *database.DB, embedder embedding.Embedder, cache ResultCache, config Config) *Service {
	if config.K <= 0 {
		config.K = 60.0
	}
	if config.PoolMultiplier < 1 {
		config.PoolMultiplier = 4
	}
	return &Service{
		db:       db,
		embedder: embedder,
		cache:    cache,
		config:   config,
	}
}

func (s *Service) SemanticSearch(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	key := cacheKey("semantic", limit, query)
	if cached, ok := s.cacheGet(ctx, key); ok {
		return cached, nil
	}

	embeddings, err := s.embedder.GenerateEmbeddings(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unable to generate query embeddings: %w", err)
	}

	chunks, err := s.db.SemanticSearch(ctx, embeddings, limit)
	if err != nil {
		return nil, fmt.Errorf("unable to run semantic search: %w", err)
	}

	var searchResults []SearchResult
	for i, chunk := range chunks {
		searchResults = append(searchResults, SearchResult{
			ChunkID:    chunk.ID,
			DocumentID: chunk.DocumentID,
			ChunkIndex: chunk.ChunkIndex,
			Content:    chunk.Content,
			Score:      distanceToScore(chunk.Distance),
			Rank:       i + 1,
			Sources:    []string{"semantic"},
		})
	}

	s.cacheSet(ctx, key, searchResults)
	return searchResults, nil
}

func (s *Service) KeywordSearch(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	// Queries fold through the same pipeline as the stored text, so both
	// sides tokenize identically.
	folded := textnorm.Fold(query)
	if strings.TrimSpace(folded) == "" {
		return nil, nil
	}

	key := cacheKey("keyword", limit, query)
	if cached, ok := s.cacheGet(ctx, key); ok {
		return cached, nil
	}

	chunks, err := s.db.KeywordSearch(ctx, folded, limit)
	if err != nil {
		return nil, fmt.Errorf("unable to run keyword search: %w", err)
	}

	var searchResults []SearchResult
	for i, chunk := range chunks {
		searchResults = append(searchResults, SearchResult{
			ChunkID:    chunk.ID,
			DocumentID: chunk.DocumentID,
			ChunkIndex: chunk.ChunkIndex,
			Content:    chunk.Content,
			Score:      chunk.Rank,
			Rank:       i + 1,
			Sources:    []string{"keyword"},
		})
	}

	s.cacheSet(ctx, key, searchResults)
	return searchResults, nil
}

// HybridSearch fuses semantic and keyword rankings with Reciprocal Rank
// Fusion. Each sub-search fetches limit*PoolMultiplier candidates so fusion
// has enough material. If one list comes back empty the result degrades to
// the other list's order; if both are empty the result is empty.
func (s *Service) HybridSearch(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	key := cacheKey("hybrid", limit, query)
	if cached, ok := s.cacheGet(ctx, key); ok {
		return cached, nil
	}

	pool := limit * s.config.PoolMultiplier

	semanticResults, err := s.SemanticSearch(ctx, query, pool)
	if err != nil {
		return nil, fmt.Errorf("semantic search failed: %w", err)
	}

	keywordResults, err := s.KeywordSearch(ctx, query, pool)
	if err != nil {
		return nil, fmt.Errorf("keyword search failed: %w", err)
	}

	fused := fuse(semanticResults, keywordResults, s.config.K, limit)

	log.Debug().
		Int("semantic", len(semanticResults)).
		Int("keyword", len(keywordResults)).
		Int("fused", len(fused)).
		Msg("Hybrid search fused")

	s.cacheSet(ctx, key, fused)
	return fused, nil
}

type fusedResult struct {
	result       SearchResult
	score        float64
	semanticRank int // math.MaxInt when absent from the semantic list
	sources      []string
}

// fuse merges two ranked lists with RRF: each occurrence at rank r
// contributes 1/(k+r), contributions sum per chunk. Only rank order matters,
// so the heterogeneous underlying scores need no normalization. Ties break
// by the better semantic rank, then by chunk id.
func fuse(semantic, keyword []SearchResult, k float64, limit int) []SearchResult {
	merged := make(map[string]*fusedResult)

	for i, result := range semantic {
		rank := i + 1
		merged[result.ChunkID] = &fusedResult{
			result:       result,
			score:        1.0 / (k + float64(rank)),
			semanticRank: rank,
			sources:      []string{"semantic"},
		}
	}

	for i, result := range keyword {
		rank := i + 1
		contribution := 1.0 / (k + float64(rank))

		if existing, ok := merged[result.ChunkID]; ok {
			existing.score += contribution
			existing.sources = append(existing.sources, "keyword")
			continue
		}
		merged[result.ChunkID] = &fusedResult{
			result:       result,
			score:        contribution,
			semanticRank: math.MaxInt,
			sources:      []string{"keyword"},
		}
	}

	scored := make([]*fusedResult, 0, len(merged))
	for _, fr := range merged {
		scored = append(scored, fr)
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if scored[i].semanticRank != scored[j].semanticRank {
			return scored[i].semanticRank < scored[j].semanticRank
		}
		return scored[i].result.ChunkID < scored[j].result.ChunkID
	})

	searchResults := []SearchResult{}
	for i := 0; i < limit && i < len(scored); i++ {
		searchResult := scored[i].result
		searchResult.Score = scored[i].score
		searchResult.Rank = i + 1
		searchResult.Sources = scored[i].sources
		searchResults = append(searchResults, searchResult)
	}

	return searchResults
}

// distanceToScore converts cosine distance (0 best, 2 worst) to a
// similarity score clamped into [0, 1].
func distanceToScore(distance float64) float64 {
	score := 1.0 - distance
	if score < 0.0 {
		return 0.0
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}

func cacheKey(method string, limit int, query string) string {
	return fmt.Sprintf("%s:%d:%s", method, limit, textnorm.Fold(query))
}

func (s *Service) cacheGet(ctx context.Context, key string) ([]SearchResult, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(ctx, key)
}

func (s *Service) cacheSet(ctx context.Context, key string, results []SearchResult) {
	if s.cache == nil {
		return
	}
	s.cache.Set(ctx, key, results)
}
