package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godilite/review-calibration/internal/repository/models"
)

func TestGetEvaluations_Errors(t *testing.T) {
	t.Run("query failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("FROM evaluations").
			WithArgs("2024-01", "2024-01").
			WillReturnError(errors.New("disk I/O error"))

		repo := NewEvaluationRepository(db)
		results, err := repo.GetEvaluations(context.Background(), "2024-01")

		assert.Nil(t, results)
		assert.ErrorContains(t, err, "query GetEvaluations")
		assert.ErrorContains(t, err, "disk I/O error")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("scan failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{"id"}).AddRow(1)
		mock.ExpectQuery("FROM evaluations").WillReturnRows(rows)

		repo := NewEvaluationRepository(db)
		_, err = repo.GetEvaluations(context.Background(), "")

		assert.ErrorContains(t, err, "scan GetEvaluations row")
	})

	t.Run("row iteration failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{
			"id", "subject_id", "subject_name", "rater_id", "rater_name",
			"total_score", "period", "dimension_scores", "created_at",
		}).
			AddRow(1, "e1", "Aiko", "mA", "Manager A", 1.2, "2024-01", "{}", "2024-01-20T10:00:00Z").
			RowError(0, errors.New("connection reset"))
		mock.ExpectQuery("FROM evaluations").WillReturnRows(rows)

		repo := NewEvaluationRepository(db)
		_, err = repo.GetEvaluations(context.Background(), "")

		assert.ErrorContains(t, err, "iterate GetEvaluations")
	})
}

func TestListPeriods_QueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT DISTINCT period").WillReturnError(errors.New("locked"))

	repo := NewEvaluationRepository(db)
	periods, err := repo.ListPeriods(context.Background())

	assert.Nil(t, periods)
	assert.ErrorContains(t, err, "query ListPeriods")
}

func TestInsertEvaluations_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO evaluations")
	prep.ExpectExec().WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	repo := NewEvaluationRepository(db)
	err = repo.InsertEvaluations(context.Background(), []models.Evaluation{
		{SubjectID: "e1", RaterID: "mA", TotalScore: 1.0, Period: "2024-01"},
	})

	assert.ErrorContains(t, err, "exec InsertEvaluations")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseDimensionScores(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want map[string]float64
	}{
		{"empty", "", map[string]float64{}},
		{"invalid json", "{not json", map[string]float64{}},
		{"numbers only", `{"performance":1.2,"behavior":0.9}`, map[string]float64{"performance": 1.2, "behavior": 0.9}},
		{"skips non numeric", `{"performance":1.2,"note":"great"}`, map[string]float64{"performance": 1.2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseDimensionScores(tc.raw))
		})
	}
}
