package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jengzang/memories-backend-go/internal/models"
)

// MediaRepository handles database operations for media items
type MediaRepository struct {
	db *sql.DB
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(db *sql.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

const mediaColumns = `id, path, taken_at, latitude, longitude, tz_offset_minutes,
	geo_cell, country_code, has_poi, tourism_poi, airport_poi,
	has_faces, quality, person_ids, device_model`

// GetMediaItems retrieves media items with filtering and pagination
func (r *MediaRepository) GetMediaItems(filter models.MediaItemFilter) ([]models.MediaItem, int64, error) {
	query := "SELECT " + mediaColumns + " FROM media_items"

	var conditions []string
	var args []interface{}

	if filter.StartTime > 0 {
		conditions = append(conditions, "taken_at >= ?")
		args = append(args, filter.StartTime)
	}
	if filter.EndTime > 0 {
		conditions = append(conditions, "taken_at <= ?")
		args = append(args, filter.EndTime)
	}
	if filter.WithGPS {
		conditions = append(conditions, "latitude IS NOT NULL AND longitude IS NOT NULL")
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM media_items"
	if len(conditions) > 0 {
		countQuery += " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count media items: %w", err)
	}

	filter.Page, filter.PageSize = models.NormalizePage(filter.Page, filter.PageSize)

	offset := (filter.Page - 1) * filter.PageSize
	query += " ORDER BY taken_at, id LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query media items: %w", err)
	}
	defer rows.Close()

	var items []models.MediaItem
	for rows.Next() {
		item, err := scanMediaItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, total, nil
}

// GetAllMediaItems retrieves the full media collection in chronological
// order for clustering
func (r *MediaRepository) GetAllMediaItems() ([]*models.MediaItem, error) {
	query := "SELECT " + mediaColumns + " FROM media_items ORDER BY taken_at, id"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query media items: %w", err)
	}
	defer rows.Close()

	var items []*models.MediaItem
	for rows.Next() {
		item, err := scanMediaItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}

// InsertMediaItems inserts a batch of media items in one transaction
func (r *MediaRepository) InsertMediaItems(items []models.MediaItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertQuery := `
		INSERT OR REPLACE INTO media_items (
			id, path, taken_at, latitude, longitude, tz_offset_minutes,
			geo_cell, country_code, has_poi, tourism_poi, airport_poi,
			has_faces, quality, person_ids, device_model
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	stmt, err := tx.Prepare(insertQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		var takenAt interface{}
		if item.TakenAt != nil {
			takenAt = item.TakenAt.Unix()
		}

		var personIDs interface{}
		if len(item.PersonIDs) > 0 {
			encoded, err := json.Marshal(item.PersonIDs)
			if err != nil {
				return fmt.Errorf("failed to encode person ids: %w", err)
			}
			personIDs = string(encoded)
		}

		_, err := stmt.Exec(
			item.ID, item.Path, takenAt, item.Latitude, item.Longitude, item.TZOffsetMinutes,
			nullableString(item.GeoCell), nullableString(item.CountryCode),
			item.HasPOI, item.TourismPOI, item.AirportPOI,
			item.HasFaces, item.Quality, personIDs, nullableString(item.DeviceModel),
		)
		if err != nil {
			return fmt.Errorf("failed to insert media item %d: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// scanMediaItem scans one media row
func scanMediaItem(rows *sql.Rows) (*models.MediaItem, error) {
	var item models.MediaItem
	var takenAt sql.NullInt64
	var lat, lon, quality sql.NullFloat64
	var tzOffset sql.NullInt64
	var geoCell, countryCode, personIDs, deviceModel sql.NullString

	if err := rows.Scan(
		&item.ID, &item.Path, &takenAt, &lat, &lon, &tzOffset,
		&geoCell, &countryCode, &item.HasPOI, &item.TourismPOI, &item.AirportPOI,
		&item.HasFaces, &quality, &personIDs, &deviceModel,
	); err != nil {
		return nil, fmt.Errorf("failed to scan media item: %w", err)
	}

	if takenAt.Valid {
		t := time.Unix(takenAt.Int64, 0).UTC()
		item.TakenAt = &t
	}
	if lat.Valid && lon.Valid {
		item.Latitude = &lat.Float64
		item.Longitude = &lon.Float64
	}
	if tzOffset.Valid {
		offset := int(tzOffset.Int64)
		item.TZOffsetMinutes = &offset
	}
	if geoCell.Valid {
		item.GeoCell = geoCell.String
	}
	if countryCode.Valid {
		item.CountryCode = countryCode.String
	}
	if quality.Valid {
		item.Quality = &quality.Float64
	}
	if personIDs.Valid && personIDs.String != "" {
		if err := json.Unmarshal([]byte(personIDs.String), &item.PersonIDs); err != nil {
			return nil, fmt.Errorf("failed to decode person ids: %w", err)
		}
	}
	if deviceModel.Valid {
		item.DeviceModel = deviceModel.String
	}

	return &item, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
