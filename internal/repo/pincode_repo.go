package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/dishahq/disha/internal/model"
	"github.com/dishahq/disha/internal/pkg/dbutil"
)

type PincodeRepo struct {
	db *sql.DB
}

func NewPincodeRepo(db *sql.DB) *PincodeRepo {
	return &PincodeRepo{db: db}
}

func (r *PincodeRepo) Upsert(ctx context.Context, item *model.Pincode) error {
	data := map[string]interface{}{
		"pincode": item.Pincode,
		"city":    item.City,
		"lat":     item.Lat,
		"lon":     item.Lon,
	}
	sqlStr, args, err := builder.BuildInsert("pincodes", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr += ` ON CONFLICT (pincode) DO UPDATE SET
		city = EXCLUDED.city,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon`
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *PincodeRepo) ListAll(ctx context.Context) ([]model.Pincode, error) {
	sqlStr, args, err := builder.BuildSelect("pincodes", nil, []string{"pincode", "city", "lat", "lon"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := make([]model.Pincode, 0)
	for rows.Next() {
		var item model.Pincode
		if err := rows.Scan(&item.Pincode, &item.City, &item.Lat, &item.Lon); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
