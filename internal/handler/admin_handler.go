package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dishahq/disha/internal/pkg/response"
	"github.com/dishahq/disha/internal/service"
)

// AdminHandler exposes catalog maintenance. Every route here sits
// behind JWT auth plus the admin role check.
type AdminHandler struct {
	catalog    *service.CatalogService
	embeddings *service.EmbeddingService
	importer   *service.ImportService
	syncBatch  int
}

func NewAdminHandler(catalog *service.CatalogService, embeddings *service.EmbeddingService,
	importer *service.ImportService, syncBatch int) *AdminHandler {
	return &AdminHandler{
		catalog:    catalog,
		embeddings: embeddings,
		importer:   importer,
		syncBatch:  syncBatch,
	}
}

func (h *AdminHandler) RefreshCatalog(c *gin.Context) {
	if err := h.catalog.Refresh(c.Request.Context()); err != nil {
		handleError(c, err)
		return
	}
	snap := h.catalog.Snapshot()
	response.Success(c, gin.H{
		"listings": len(snap.Listings),
		"built_at": snap.BuiltAt,
	})
}

func (h *AdminHandler) SyncEmbeddings(c *gin.Context) {
	synced, err := h.embeddings.SyncStale(c.Request.Context(), h.syncBatch)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"synced": synced})
}

func (h *AdminHandler) ImportCatalog(c *gin.Context) {
	report, err := h.importer.ImportCatalog(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	// A refresh right after import keeps the serving snapshot current
	// without waiting for the scheduled rebuild.
	if err := h.catalog.Refresh(c.Request.Context()); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, report)
}
