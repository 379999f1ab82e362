// Command seed loads a deterministic demo dataset into the evaluation store
// and drops any cached calibration responses that it invalidates.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/godilite/review-calibration/internal/app"
	"github.com/godilite/review-calibration/internal/config"
	"github.com/godilite/review-calibration/internal/repository"
	"github.com/godilite/review-calibration/internal/repository/models"
	"github.com/godilite/review-calibration/pkg/cache"
	dbbuilder "github.com/godilite/review-calibration/pkg/database"
)

type rater struct {
	id, name string
	bias     float64
}

var (
	raters = []rater{
		{"mgr-001", "Hana Sato", -0.22},
		{"mgr-002", "Marcus Webb", 0},
		{"mgr-003", "Priya Nair", 0.21},
		{"mgr-004", "Tomás Ruiz", 0.04},
	}
	subjects = []string{
		"Aiko Tanaka", "Ben Carter", "Chen Wei", "Dana Levi", "Eli Moreau", "Farah Aziz",
		"Gus Olsen", "Ines Duarte", "Jon Park", "Kira Novak", "Liam Byrne", "Mei Lin",
	}
	dimensions = []string{"performance", "behavior", "growth"}
)

// demoEvaluations spreads subjects across raters so every rater scores three
// people per period with its own bias applied.
func demoEvaluations(periods []string, now time.Time) []models.Evaluation {
	var out []models.Evaluation
	for p, period := range periods {
		for i, subject := range subjects {
			r := raters[i%len(raters)]
			base := 0.9 + float64((i*7+p*3)%5)*0.05
			total := clampScore(base + r.bias)

			dims := make(map[string]float64, len(dimensions))
			for d, name := range dimensions {
				dims[name] = clampScore(total + float64(d-1)*0.05)
			}

			out = append(out, models.Evaluation{
				SubjectID:       fmt.Sprintf("emp-%03d", i+1),
				SubjectName:     subject,
				RaterID:         r.id,
				RaterName:       r.name,
				TotalScore:      total,
				Period:          period,
				DimensionScores: dims,
				CreatedAt:       now.Add(time.Duration(len(out)) * time.Minute),
			})
		}
	}
	return out
}

func clampScore(v float64) float64 {
	return min(max(v, 0.5), 1.5)
}

func main() {
	periodsFlag := flag.String("periods", "2024-01,2024-02,2024-03", "comma-separated YYYY-MM periods to seed")
	flag.Parse()

	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	periods, err := parsePeriods(*periodsFlag)
	if err != nil {
		logger.Fatal("Invalid periods", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := dbbuilder.New(ctx,
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
		dbbuilder.WithSchema(repository.Schema),
	)
	if err != nil {
		logger.Fatal("Database init failed", zap.Error(err))
	}
	defer db.Close()

	rows := demoEvaluations(periods, time.Now().UTC())
	if err := repository.NewEvaluationRepository(db).InsertEvaluations(ctx, rows); err != nil {
		logger.Fatal("Seeding failed", zap.Error(err))
	}
	logger.Info("Seeded evaluations", zap.Int("rows", len(rows)), zap.Strings("periods", periods))

	if cfg.RedisAddr == "" {
		return
	}
	c, err := cache.New(ctx, cache.WithAddress(cfg.RedisAddr), cache.WithKeyPrefix(app.CacheKeyPrefix))
	if err != nil {
		logger.Warn("Cache unavailable, stale responses may be served until they expire", zap.Error(err))
		return
	}
	defer c.Close()

	removed, err := c.InvalidatePrefix(ctx, "grpc:")
	if err != nil {
		logger.Warn("Cache invalidation failed", zap.Error(err))
		return
	}
	logger.Info("Invalidated cached responses", zap.Int("keys", removed))
}
