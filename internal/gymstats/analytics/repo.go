package analytics

import (
	"context"

	"github.com/2beens/ironlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const (
	weeklyVolumeDays     = 84
	bodyWeightDays       = 90
	heatmapDays          = 180
	caloriesTimelineDays = 30
)

// Repo holds the analytics queries. Each one is a single read scoped to one user.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Totals counts sessions, sets, volume and calories with independent sub-selects,
// joining sets to sessions would repeat a session's calories once per set.
func (r *Repo) Totals(ctx context.Context, userID int) (_ Totals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.totals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	var t Totals
	err = r.db.QueryRow(
		ctx,
		`SELECT
				(SELECT COUNT(*) FROM workout_session WHERE user_id = $1),
				(SELECT COUNT(*)
					FROM workout_set ws JOIN workout_session s ON s.id = ws.session_id
					WHERE s.user_id = $1),
				(SELECT COALESCE(SUM(ws.reps * COALESCE(ws.weight_kg, 0)), 0)
					FROM workout_set ws JOIN workout_session s ON s.id = ws.session_id
					WHERE s.user_id = $1),
				(SELECT COALESCE(SUM(calories_burned), 0) FROM workout_session WHERE user_id = $1);`,
		userID,
	).Scan(&t.TotalSessions, &t.TotalSets, &t.TotalVolume, &t.TotalCalories)

	return t, err
}

func (r *Repo) CardioTotals(ctx context.Context, userID int) (_ CardioTotals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.cardioTotals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	var t CardioTotals
	err = r.db.QueryRow(
		ctx,
		`SELECT COALESCE(SUM(distance_km), 0), COALESCE(SUM(duration_min), 0), COUNT(*)
			FROM cardio_log
			WHERE user_id = $1;`,
		userID,
	).Scan(&t.TotalDistance, &t.TotalDuration, &t.TotalCardio)

	return t, err
}

// WeeklyVolume sums volume per ISO week over the last 12 weeks, keyed like 2024-W07.
func (r *Repo) WeeklyVolume(ctx context.Context, userID int) (_ []WeeklyVolume, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.weeklyVolume")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT to_char(s.session_date, 'IYYY-"W"IW') AS week,
				COALESCE(SUM(ws.reps * COALESCE(ws.weight_kg, 0)), 0) AS volume
			FROM workout_session s
			LEFT JOIN workout_set ws ON ws.session_id = s.id
			WHERE s.user_id = $1 AND s.session_date >= CURRENT_DATE - $2::int
			GROUP BY week
			ORDER BY week;`,
		userID, weeklyVolumeDays,
	)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (WeeklyVolume, error) {
		var wv WeeklyVolume
		err := row.Scan(&wv.Week, &wv.Volume)
		return wv, err
	})
}

// ExerciseProgress returns the heaviest weight and most reps per exercise and session
// date, ordered by exercise name then date. Sets without weight are skipped.
func (r *Repo) ExerciseProgress(ctx context.Context, userID int) (_ []ProgressRow, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.exerciseProgress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT e.name, e.muscle_group, s.session_date,
				MAX(ws.weight_kg), COALESCE(MAX(ws.reps), 0)
			FROM workout_set ws
			JOIN exercise e ON e.id = ws.exercise_id
			JOIN workout_session s ON s.id = ws.session_id
			WHERE s.user_id = $1 AND ws.weight_kg IS NOT NULL
			GROUP BY e.id, e.name, e.muscle_group, s.session_date
			ORDER BY e.name, s.session_date;`,
		userID,
	)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (ProgressRow, error) {
		var pr ProgressRow
		err := row.Scan(&pr.Name, &pr.Muscle, &pr.Point.Date.Time, &pr.Point.MaxWeight, &pr.Point.MaxReps)
		return pr, err
	})
}

// CardioHistory returns every cardio entry ordered by activity, session date and log time.
func (r *Repo) CardioHistory(ctx context.Context, userID int) (_ []CardioRow, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.cardioHistory")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT c.activity_type, s.session_date,
				c.distance_km, c.duration_min, c.avg_pace_min_km, c.avg_heart_rate
			FROM cardio_log c
			JOIN workout_session s ON s.id = c.session_id
			WHERE c.user_id = $1
			ORDER BY c.activity_type, s.session_date, c.logged_at;`,
		userID,
	)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (CardioRow, error) {
		var cr CardioRow
		err := row.Scan(
			&cr.Activity, &cr.Point.Date.Time,
			&cr.Point.DistanceKm, &cr.Point.DurationMin, &cr.Point.AvgPaceMinKm, &cr.Point.AvgHeartRate,
		)
		return cr, err
	})
}

func (r *Repo) BodyWeightTrend(ctx context.Context, userID int) (_ []BodyWeightPoint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.bodyWeightTrend")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT logged_at, weight_kg
			FROM body_weight
			WHERE user_id = $1 AND logged_at >= CURRENT_DATE - $2::int
			ORDER BY logged_at, id;`,
		userID, bodyWeightDays,
	)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (BodyWeightPoint, error) {
		var p BodyWeightPoint
		err := row.Scan(&p.Date.Time, &p.WeightKg)
		return p, err
	})
}

// Heatmap counts sessions per date over the last 180 days.
func (r *Repo) Heatmap(ctx context.Context, userID int) (_ []HeatmapDay, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.heatmap")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT session_date, COUNT(*)
			FROM workout_session
			WHERE user_id = $1 AND session_date >= CURRENT_DATE - $2::int
			GROUP BY session_date
			ORDER BY session_date;`,
		userID, heatmapDays,
	)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (HeatmapDay, error) {
		var d HeatmapDay
		err := row.Scan(&d.Date.Time, &d.Count)
		return d, err
	})
}

// CaloriesTimeline lists sessions of the last 30 days that have calories recorded.
func (r *Repo) CaloriesTimeline(ctx context.Context, userID int) (_ []CaloriesPoint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analytics.caloriesTimeline")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT session_date, calories_burned
			FROM workout_session
			WHERE user_id = $1 AND calories_burned IS NOT NULL
				AND session_date >= CURRENT_DATE - $2::int
			ORDER BY session_date, id;`,
		userID, caloriesTimelineDays,
	)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (CaloriesPoint, error) {
		var p CaloriesPoint
		err := row.Scan(&p.Date.Time, &p.Calories)
		return p, err
	})
}
