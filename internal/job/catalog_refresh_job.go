package job

import (
	"context"

	"github.com/dishahq/disha/internal/service"
)

// CatalogRefreshJob rebuilds the serving snapshot so listings imported
// or embedded since the last build become visible to ranking.
type CatalogRefreshJob struct {
	catalog *service.CatalogService
}

func NewCatalogRefreshJob(catalog *service.CatalogService) *CatalogRefreshJob {
	return &CatalogRefreshJob{catalog: catalog}
}

func (j *CatalogRefreshJob) Name() string {
	return "catalog_refresh"
}

func (j *CatalogRefreshJob) Run(ctx context.Context) error {
	if j.catalog == nil {
		return nil
	}
	return j.catalog.Refresh(ctx)
}
