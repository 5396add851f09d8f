package search

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"

	"github.com/vntexthub/vietrag/internal/middleware"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)
	ws.
		Path("/search/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	ws.Route(ws.POST("/semantic").
		To(handler.SemanticSearch).
		Doc("Vector similarity search").
		Metadata(restfulspec.KeyOpenAPITags, []string{"search"}).
		Reads(SearchRequest{}).
		Writes(SearchResponse{}).
		Returns(200, "OK", SearchResponse{}).
		Returns(400, "Bad Request", middleware.ErrorResponse{}).
		Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.Route(ws.POST("/keyword").
		To(handler.KeywordSearch).
		Doc("Full-text keyword search over folded Vietnamese text").
		Metadata(restfulspec.KeyOpenAPITags, []string{"search"}).
		Reads(SearchRequest{}).
		Writes(SearchResponse{}).
		Returns(200, "OK", SearchResponse{}).
		Returns(400, "Bad Request", middleware.ErrorResponse{}).
		Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.Route(ws.POST("/hybrid").
		To(handler.HybridSearch).
		Doc("Hybrid search with reciprocal rank fusion").
		Metadata(restfulspec.KeyOpenAPITags, []string{"search"}).
		Reads(SearchRequest{}).
		Writes(SearchResponse{}).
		Returns(200, "OK", SearchResponse{}).
		Returns(400, "Bad Request", middleware.ErrorResponse{}).
		Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}
