package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jengzang/memories-backend-go/internal/cluster"
	"github.com/jengzang/memories-backend-go/internal/database"
	"github.com/jengzang/memories-backend-go/internal/models"
)

// DraftRepository handles database operations for cluster drafts
type DraftRepository struct {
	db *sql.DB
}

// NewDraftRepository creates a new draft repository
func NewDraftRepository(db *sql.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

// GetDrafts retrieves cluster drafts with filtering and pagination
func (r *DraftRepository) GetDrafts(filter models.ClusterDraftFilter) ([]models.ClusterDraftRecord, int64, error) {
	query := `SELECT id, algorithm, centroid_lat, centroid_lon, params_json, members_json,
		member_count, created_at FROM cluster_drafts`

	var conditions []string
	var args []interface{}

	if filter.Algorithm != "" {
		conditions = append(conditions, "algorithm = ?")
		args = append(args, filter.Algorithm)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM cluster_drafts"
	if len(conditions) > 0 {
		countQuery += " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count drafts: %w", err)
	}

	filter.Page, filter.PageSize = models.NormalizePage(filter.Page, filter.PageSize)

	offset := (filter.Page - 1) * filter.PageSize
	query += " ORDER BY algorithm, id LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query drafts: %w", err)
	}
	defer rows.Close()

	var drafts []models.ClusterDraftRecord
	for rows.Next() {
		var d models.ClusterDraftRecord
		var createdAt sql.NullString
		if err := rows.Scan(&d.ID, &d.Algorithm, &d.CentroidLat, &d.CentroidLon,
			&d.ParamsJSON, &d.MembersJSON, &d.MemberCount, &createdAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan draft: %w", err)
		}
		if createdAt.Valid {
			d.CreatedAt = &createdAt.String
		}
		drafts = append(drafts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return drafts, total, nil
}

// ReplaceDrafts replaces all drafts of one algorithm in one transaction
func (r *DraftRepository) ReplaceDrafts(algorithm string, drafts []*cluster.Draft) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM cluster_drafts WHERE algorithm = ?", algorithm); err != nil {
			return fmt.Errorf("failed to clear drafts for %s: %w", algorithm, err)
		}

		insertQuery := `
			INSERT INTO cluster_drafts (
				algorithm, centroid_lat, centroid_lon, params_json, members_json, member_count
			) VALUES (?, ?, ?, ?, ?, ?)
		`

		stmt, err := tx.Prepare(insertQuery)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, d := range drafts {
			paramsJSON, err := json.Marshal(d.Params())
			if err != nil {
				return fmt.Errorf("failed to encode params: %w", err)
			}
			membersJSON, err := json.Marshal(d.Members())
			if err != nil {
				return fmt.Errorf("failed to encode members: %w", err)
			}

			centroid := d.Centroid()
			_, err = stmt.Exec(d.Algorithm(), centroid.Lat, centroid.Lon,
				string(paramsJSON), string(membersJSON), len(d.Members()))
			if err != nil {
				return fmt.Errorf("failed to insert draft: %w", err)
			}
		}

		return nil
	})
}
