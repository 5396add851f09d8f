package search

import (
	"context"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog/log"

	"github.com/vntexthub/vietrag/internal/middleware"
)

type Handler struct {
	service      *Service
	defaultLimit int
}

func NewHandler(service *Service, defaultLimit int) *Handler {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &Handler{
		service:      service,
		defaultLimit: defaultLimit,
	}
}

// SemanticSearch handles POST /search/v1/semantic
func (h *Handler) SemanticSearch(req *restful.Request, resp *restful.Response) {
	h.handle(req, resp, "semantic", h.service.SemanticSearch)
}

// KeywordSearch handles POST /search/v1/keyword
func (h *Handler) KeywordSearch(req *restful.Request, resp *restful.Response) {
	h.handle(req, resp, "keyword", h.service.KeywordSearch)
}

// HybridSearch handles POST /search/v1/hybrid
func (h *Handler) HybridSearch(req *restful.Request, resp *restful.Response) {
	h.handle(req, resp, "hybrid", h.service.HybridSearch)
}

func (h *Handler) handle(
	req *restful.Request,
	resp *restful.Response,
	method string,
	search func(ctx context.Context, query string, limit int) ([]SearchResult, error),
) {
	var searchRequest SearchRequest
	if err := req.ReadEntity(&searchRequest); err != nil {
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	if searchRequest.Limit == 0 {
		searchRequest.Limit = h.defaultLimit
	}

	ctx := req.Request.Context()

	searchResults, err := search(ctx, searchRequest.Query, searchRequest.Limit)
	if err != nil {
		log.Error().Err(err).Str("method", method).Msg("Search failed")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	response := SearchResponse{
		Query:  searchRequest.Query,
		Result: searchResults,
		Count:  len(searchResults),
		Method: method,
	}

	resp.WriteEntity(response)
}
