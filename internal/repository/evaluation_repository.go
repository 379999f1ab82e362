package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/godilite/review-calibration/internal/repository/models"
	"github.com/tidwall/gjson"
)

type EvaluationRepository struct {
	db *sql.DB
}

func NewEvaluationRepository(db *sql.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// GetEvaluations returns the evaluations recorded for period, or every
// evaluation when period is empty. Rows come back in insertion order.
func (s *EvaluationRepository) GetEvaluations(ctx context.Context, period string) ([]models.Evaluation, error) {
	const query = `
		SELECT
			id,
			subject_id,
			subject_name,
			rater_id,
			rater_name,
			total_score,
			period,
			dimension_scores,
			created_at
		FROM evaluations
		WHERE ? = '' OR period = ?
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, period, period)
	if err != nil {
		return nil, fmt.Errorf("query GetEvaluations: %w", err)
	}
	defer rows.Close()

	var results []models.Evaluation
	for rows.Next() {
		var (
			e          models.Evaluation
			dimensions sql.NullString
			createdAt  string
		)
		if err := rows.Scan(&e.ID, &e.SubjectID, &e.SubjectName, &e.RaterID, &e.RaterName,
			&e.TotalScore, &e.Period, &dimensions, &createdAt); err != nil {
			return nil, fmt.Errorf("scan GetEvaluations row: %w", err)
		}
		e.DimensionScores = parseDimensionScores(dimensions.String)
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			e.CreatedAt = ts
		}
		results = append(results, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate GetEvaluations: %w", err)
	}
	return results, nil
}

// ListPeriods returns the distinct reporting periods in ascending order.
func (s *EvaluationRepository) ListPeriods(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT period FROM evaluations ORDER BY period`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ListPeriods: %w", err)
	}
	defer rows.Close()

	var periods []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan ListPeriods row: %w", err)
		}
		periods = append(periods, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ListPeriods: %w", err)
	}
	return periods, nil
}

// InsertEvaluations stores rows in a single transaction.
func (s *EvaluationRepository) InsertEvaluations(ctx context.Context, evaluations []models.Evaluation) error {
	const stmt = `
		INSERT INTO evaluations
			(subject_id, subject_name, rater_id, rater_name, total_score, period, dimension_scores, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin InsertEvaluations: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	prepared, err := tx.PrepareContext(ctx, stmt)
	if err != nil {
		return fmt.Errorf("prepare InsertEvaluations: %w", err)
	}
	defer prepared.Close()

	for _, e := range evaluations {
		dimensions, err := json.Marshal(e.DimensionScores)
		if err != nil {
			return fmt.Errorf("encode dimension scores for %s: %w", e.SubjectID, err)
		}
		if e.DimensionScores == nil {
			dimensions = []byte("{}")
		}
		createdAt := e.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		if _, err := prepared.ExecContext(ctx, e.SubjectID, e.SubjectName, e.RaterID, e.RaterName,
			e.TotalScore, e.Period, string(dimensions), createdAt.UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("exec InsertEvaluations: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit InsertEvaluations: %w", err)
	}
	return nil
}

// parseDimensionScores reads a flat JSON object of numeric scores. Non-numeric
// members are skipped.
func parseDimensionScores(raw string) map[string]float64 {
	out := make(map[string]float64)
	if raw == "" || !gjson.Valid(raw) {
		return out
	}
	gjson.Parse(raw).ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.Number {
			out[key.String()] = value.Float()
		}
		return true
	})
	return out
}
