package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/dishahq/disha/internal/datastore"
	"github.com/dishahq/disha/internal/model"
	appErr "github.com/dishahq/disha/internal/pkg/errors"
	"github.com/dishahq/disha/internal/repo"
)

const (
	internshipsFile = "internships.csv"
	pincodesFile    = "pincodes.csv"
)

// ImportReport summarizes one catalog import run. Skipped counts rows
// that were malformed but did not abort the import.
type ImportReport struct {
	Listings int `json:"listings"`
	Pincodes int `json:"pincodes"`
	Skipped  int `json:"skipped"`
}

// ImportService loads the internship and pincode CSVs from the
// configured dataset source into the database. Bad rows are skipped
// with a warning; only unreadable files fail the run.
type ImportService struct {
	source   datastore.Source
	listings *repo.ListingRepo
	pincodes *repo.PincodeRepo
}

func NewImportService(source datastore.Source, listings *repo.ListingRepo, pincodes *repo.PincodeRepo) *ImportService {
	return &ImportService{source: source, listings: listings, pincodes: pincodes}
}

func (s *ImportService) ImportCatalog(ctx context.Context) (*ImportReport, error) {
	report := &ImportReport{}
	if err := s.importInternships(ctx, report); err != nil {
		return nil, err
	}
	if err := s.importPincodes(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ImportService) importInternships(ctx context.Context, report *ImportReport) error {
	logger := logutil.GetLogger(ctx)
	reader, err := s.source.Open(ctx, internshipsFile)
	if err != nil {
		return fmt.Errorf("open %s: %w", internshipsFile, err)
	}
	defer func() { _ = reader.Close() }()

	rows := csv.NewReader(reader)
	rows.FieldsPerRecord = -1
	header, err := rows.Read()
	if err != nil {
		return fmt.Errorf("read %s header: %w", internshipsFile, err)
	}
	cols := columnIndex(header)
	if _, ok := cols["id"]; !ok {
		return fmt.Errorf("%s: missing id column", internshipsFile)
	}

	now := time.Now().Unix()
	line := 1
	for {
		record, err := rows.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logger.Warn("skip unreadable csv row", zap.String("file", internshipsFile), zap.Int("line", line), zap.Error(err))
			report.Skipped++
			continue
		}
		listing, err := parseListingRecord(record, cols, now)
		if err != nil {
			logger.Warn("skip bad listing row", zap.Int("line", line), zap.Error(err))
			report.Skipped++
			continue
		}
		if err := s.listings.Upsert(ctx, listing); err != nil {
			return fmt.Errorf("upsert listing %s: %w", listing.ID, err)
		}
		report.Listings++
	}
	return nil
}

func (s *ImportService) importPincodes(ctx context.Context, report *ImportReport) error {
	logger := logutil.GetLogger(ctx)
	reader, err := s.source.Open(ctx, pincodesFile)
	if err != nil {
		// The pincode table is optional; ranking degrades to neutral
		// location scores without it.
		logger.Warn("pincode dataset unavailable", zap.Error(err))
		return nil
	}
	defer func() { _ = reader.Close() }()

	rows := csv.NewReader(reader)
	rows.FieldsPerRecord = -1
	header, err := rows.Read()
	if err != nil {
		return fmt.Errorf("read %s header: %w", pincodesFile, err)
	}
	cols := columnIndex(header)

	line := 1
	for {
		record, err := rows.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			report.Skipped++
			continue
		}
		entry, err := parsePincodeRecord(record, cols)
		if err != nil {
			logger.Warn("skip bad pincode row", zap.Int("line", line), zap.Error(err))
			report.Skipped++
			continue
		}
		if err := s.pincodes.Upsert(ctx, entry); err != nil {
			return fmt.Errorf("upsert pincode %s: %w", entry.Pincode, err)
		}
		report.Pincodes++
	}
	return nil
}

func parseListingRecord(record []string, cols map[string]int, now int64) (*model.Listing, error) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}
	id := field("id")
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", appErr.ErrImportBadRecord)
	}
	title := field("title")
	if title == "" {
		return nil, fmt.Errorf("%w: empty title", appErr.ErrImportBadRecord)
	}
	return &model.Listing{
		ID:           id,
		Title:        title,
		Company:      field("company"),
		Description:  field("description"),
		SkillsText:   field("skills"),
		StipendText:  field("stipend"),
		DeadlineText: field("deadline"),
		LocationText: field("location"),
		Ctime:        now,
		Mtime:        now,
	}, nil
}

func parsePincodeRecord(record []string, cols map[string]int) (*model.Pincode, error) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}
	pincode := field("pincode")
	if pincode == "" {
		return nil, fmt.Errorf("%w: empty pincode", appErr.ErrImportBadRecord)
	}
	lat, err := strconv.ParseFloat(field("lat"), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad lat", appErr.ErrImportBadRecord)
	}
	lon, err := strconv.ParseFloat(field("lon"), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad lon", appErr.ErrImportBadRecord)
	}
	return &model.Pincode{
		Pincode: pincode,
		City:    field("city"),
		Lat:     lat,
		Lon:     lon,
	}, nil
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}
