package repo

import (
	"context"
	"database/sql"
	"strings"

	"github.com/didi/gendry/builder"

	"github.com/dishahq/disha/internal/model"
	"github.com/dishahq/disha/internal/pkg/dbutil"
	appErr "github.com/dishahq/disha/internal/pkg/errors"
)

var listingColumns = []string{"id", "title", "company", "description", "skills", "stipend", "deadline", "location", "ctime", "mtime"}

type ListingRepo struct {
	db *sql.DB
}

func NewListingRepo(db *sql.DB) *ListingRepo {
	return &ListingRepo{db: db}
}

func (r *ListingRepo) Upsert(ctx context.Context, listing *model.Listing) error {
	data := map[string]interface{}{
		"id":          listing.ID,
		"title":       listing.Title,
		"company":     listing.Company,
		"description": listing.Description,
		"skills":      listing.SkillsText,
		"stipend":     listing.StipendText,
		"deadline":    listing.DeadlineText,
		"location":    listing.LocationText,
		"ctime":       listing.Ctime,
		"mtime":       listing.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("internships", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr += ` ON CONFLICT (id) DO UPDATE SET
		title = EXCLUDED.title,
		company = EXCLUDED.company,
		description = EXCLUDED.description,
		skills = EXCLUDED.skills,
		stipend = EXCLUDED.stipend,
		deadline = EXCLUDED.deadline,
		location = EXCLUDED.location,
		mtime = EXCLUDED.mtime`
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *ListingRepo) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	where := map[string]interface{}{"id": id}
	sqlStr, args, err := builder.BuildSelect("internships", where, listingColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var listing model.Listing
	if err := scanListing(rows, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// ListAll returns the whole catalog ordered by id so the snapshot build
// is deterministic.
func (r *ListingRepo) ListAll(ctx context.Context) ([]model.Listing, error) {
	where := map[string]interface{}{"_orderby": "id asc"}
	sqlStr, args, err := builder.BuildSelect("internships", where, listingColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	listings := make([]model.Listing, 0)
	for rows.Next() {
		var listing model.Listing
		if err := scanListing(rows, &listing); err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}

// ListStale returns listings whose embedding row is missing or older
// than the listing itself.
func (r *ListingRepo) ListStale(ctx context.Context, limit int) ([]model.Listing, error) {
	query := `
		SELECT i.` + strings.Join(listingColumns, ", i.") + `
		FROM internships i
		LEFT JOIN listing_embeddings e ON i.id = e.listing_id
		WHERE e.listing_id IS NULL OR i.mtime > e.mtime
		ORDER BY i.id ASC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	listings := make([]model.Listing, 0)
	for rows.Next() {
		var listing model.Listing
		if err := scanListing(rows, &listing); err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}

func scanListing(rows *sql.Rows, listing *model.Listing) error {
	return rows.Scan(
		&listing.ID,
		&listing.Title,
		&listing.Company,
		&listing.Description,
		&listing.SkillsText,
		&listing.StipendText,
		&listing.DeadlineText,
		&listing.LocationText,
		&listing.Ctime,
		&listing.Mtime,
	)
}
