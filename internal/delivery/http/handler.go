package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/proteincompare/backend/internal/domain"
	"github.com/proteincompare/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searchService *usecase.SearchService
}

// NewHandler creates a new HTTP handler
func NewHandler(searchService *usecase.SearchService) *Handler {
	return &Handler{
		searchService: searchService,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "proteincompare-backend",
		"version": "1.0.0",
	})
}

// Search handles catalog search requests.
// Always responds 200 with {"results": [...]}; degraded stages yield fewer results.
func (h *Handler) Search(c *gin.Context) {
	if h.searchService == nil {
		c.JSON(http.StatusOK, domain.SearchResponse{Results: []domain.Product{}})
		return
	}

	c.JSON(http.StatusOK, h.searchService.Search(c.Request.Context(), parseSearchRequest(c)))
}

// parseSearchRequest reads query parameters. An unparseable limit becomes 0,
// which the search service replaces with its default.
func parseSearchRequest(c *gin.Context) domain.SearchRequest {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		limit = 0
	}

	return domain.SearchRequest{
		Query:    c.Query("q"),
		Type:     c.Query("type"),
		Sort:     domain.ParseSortKey(c.Query("sort")),
		External: c.Query("external") == "1",
		Limit:    limit,
	}
}
