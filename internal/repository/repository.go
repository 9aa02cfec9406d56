package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/xailabs/insightflow/internal/models"
)

// Repository persists completed analyses. The raw upload and extracted text
// are never written here, only the structured result and file metadata.
type Repository interface {
	Create(ctx context.Context, rec *models.AnalysisRecord) error
	GetByID(ctx context.Context, id string) (*models.AnalysisRecord, error)
	List(ctx context.Context, limit int) ([]models.AnalysisRecord, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rec *models.AnalysisRecord) error {
	resultJSON, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	query := `
		INSERT INTO analyses (id, file_name, file_type, model, tokens_used, latency_ms, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.db.ExecContext(ctx, query,
		rec.ID,
		rec.FileName,
		rec.FileType,
		rec.Model,
		rec.TokensUsed,
		rec.LatencyMs,
		string(resultJSON),
		rec.CreatedAt,
	)

	return err
}

func (r *repository) GetByID(ctx context.Context, id string) (*models.AnalysisRecord, error) {
	var rec models.AnalysisRecord
	var resultJSON string

	query := `
		SELECT id, file_name, file_type, model, tokens_used, latency_ms, result, created_at
		FROM analyses
		WHERE id = $1
	`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID,
		&rec.FileName,
		&rec.FileType,
		&rec.Model,
		&rec.TokensUsed,
		&rec.LatencyMs,
		&resultJSON,
		&rec.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(resultJSON), &rec.Result); err != nil {
		return nil, fmt.Errorf("failed to decode stored result: %w", err)
	}

	return &rec, nil
}

func (r *repository) List(ctx context.Context, limit int) ([]models.AnalysisRecord, error) {
	query := `
		SELECT id, file_name, file_type, model, tokens_used, latency_ms, result, created_at
		FROM analyses
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.AnalysisRecord
	for rows.Next() {
		var rec models.AnalysisRecord
		var resultJSON string

		if err := rows.Scan(
			&rec.ID,
			&rec.FileName,
			&rec.FileType,
			&rec.Model,
			&rec.TokensUsed,
			&rec.LatencyMs,
			&resultJSON,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(resultJSON), &rec.Result); err != nil {
			return nil, fmt.Errorf("failed to decode stored result: %w", err)
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}
