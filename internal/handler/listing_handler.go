package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dishahq/disha/internal/pkg/response"
	"github.com/dishahq/disha/internal/service"
)

type ListingHandler struct {
	catalog *service.CatalogService
}

func NewListingHandler(catalog *service.CatalogService) *ListingHandler {
	return &ListingHandler{catalog: catalog}
}

// Status doubles as the health endpoint: it reports whether a catalog
// snapshot is loaded and how fresh it is.
func (h *ListingHandler) Status(c *gin.Context) {
	snap := h.catalog.Snapshot()
	if snap == nil {
		response.Success(c, gin.H{"service": "disha", "ready": false})
		return
	}
	response.Success(c, gin.H{
		"service":  "disha",
		"ready":    true,
		"listings": len(snap.Listings),
		"built_at": snap.BuiltAt,
	})
}

func (h *ListingHandler) List(c *gin.Context) {
	query := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	listings, total := h.catalog.ListListings(c.Request.Context(), query, offset, limit)
	response.Success(c, gin.H{
		"items": listings,
		"total": total,
	})
}

func (h *ListingHandler) Get(c *gin.Context) {
	listing, err := h.catalog.GetListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, listing)
}
