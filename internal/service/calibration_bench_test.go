package service

import (
	"context"
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/godilite/review-calibration/internal/repository"
	"github.com/godilite/review-calibration/internal/repository/models"
	dbbuilder "github.com/godilite/review-calibration/pkg/database"
)

func setupRealDB(tb testing.TB) *repository.EvaluationRepository {
	tb.Helper()

	db, err := dbbuilder.New(context.Background(),
		dbbuilder.WithDriver("sqlite3"),
		dbbuilder.WithDataSource(":memory:"),
		dbbuilder.WithMaxOpenConns(1),
		dbbuilder.WithSchema(repository.Schema),
	)
	if err != nil {
		tb.Fatalf("failed to create db pool via builder: %v", err)
	}
	tb.Cleanup(func() { db.Close() })

	repo := repository.NewEvaluationRepository(db)

	rows := make([]models.Evaluation, 0, 200)
	for i := 0; i < 200; i++ {
		rows = append(rows, models.Evaluation{
			SubjectID:  fmt.Sprintf("e%03d", i),
			RaterID:    fmt.Sprintf("m%02d", i%12),
			TotalScore: 0.5 + float64(i%11)/10,
			Period:     "2024-01",
		})
	}
	if err := repo.InsertEvaluations(context.Background(), rows); err != nil {
		tb.Fatalf("failed to seed db: %v", err)
	}

	return repo
}

func BenchmarkGetNormalizationReport(b *testing.B) {
	repo := setupRealDB(b)
	svc := NewCalibrationService(repo, zap.NewNop())

	b.ReportAllocs()

	for b.Loop() {
		_, _ = svc.GetNormalizationReport(context.Background(), "2024-01")
	}
}
