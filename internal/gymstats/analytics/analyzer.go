package analytics

import (
	"context"
	"fmt"

	"github.com/2beens/ironlog/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=analytics_test

type analyticsRepo interface {
	Totals(ctx context.Context, userID int) (Totals, error)
	CardioTotals(ctx context.Context, userID int) (CardioTotals, error)
	WeeklyVolume(ctx context.Context, userID int) ([]WeeklyVolume, error)
	ExerciseProgress(ctx context.Context, userID int) ([]ProgressRow, error)
	CardioHistory(ctx context.Context, userID int) ([]CardioRow, error)
	BodyWeightTrend(ctx context.Context, userID int) ([]BodyWeightPoint, error)
	Heatmap(ctx context.Context, userID int) ([]HeatmapDay, error)
	CaloriesTimeline(ctx context.Context, userID int) ([]CaloriesPoint, error)
}

type Analyzer struct {
	repo analyticsRepo
}

func NewAnalyzer(repo analyticsRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

// Overview runs every analytics query for the user, one after another, and shapes
// the results. The queries share no transaction, each sees its own snapshot.
func (a *Analyzer) Overview(ctx context.Context, userID int) (_ *Overview, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.analytics.overview")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	ov := &Overview{}

	if ov.Totals, err = a.repo.Totals(ctx, userID); err != nil {
		return nil, fmt.Errorf("totals: %w", err)
	}
	if ov.CardioTotals, err = a.repo.CardioTotals(ctx, userID); err != nil {
		return nil, fmt.Errorf("cardio totals: %w", err)
	}
	if ov.WeeklyVolume, err = a.repo.WeeklyVolume(ctx, userID); err != nil {
		return nil, fmt.Errorf("weekly volume: %w", err)
	}

	progressRows, err := a.repo.ExerciseProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("exercise progress: %w", err)
	}
	ov.ExerciseProgress = groupProgress(progressRows)

	cardioRows, err := a.repo.CardioHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cardio history: %w", err)
	}
	ov.CardioByActivity = groupCardio(cardioRows)

	if ov.BodyWeightTrend, err = a.repo.BodyWeightTrend(ctx, userID); err != nil {
		return nil, fmt.Errorf("body weight trend: %w", err)
	}
	if ov.Heatmap, err = a.repo.Heatmap(ctx, userID); err != nil {
		return nil, fmt.Errorf("heatmap: %w", err)
	}
	if ov.CaloriesTimeline, err = a.repo.CaloriesTimeline(ctx, userID); err != nil {
		return nil, fmt.Errorf("calories timeline: %w", err)
	}

	ov.WeeklyVolume = emptyIfNil(ov.WeeklyVolume)
	ov.BodyWeightTrend = emptyIfNil(ov.BodyWeightTrend)
	ov.Heatmap = emptyIfNil(ov.Heatmap)
	ov.CaloriesTimeline = emptyIfNil(ov.CaloriesTimeline)

	return ov, nil
}
