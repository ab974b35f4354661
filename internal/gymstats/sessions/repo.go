package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/ironlog/internal/telemetry/tracing"
	"github.com/2beens/ironlog/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrSessionNotFound  = fmt.Errorf("%w: session not found", pkg.ErrNotFound)
	ErrSessionForbidden = fmt.Errorf("%w: session belongs to another user", pkg.ErrForbidden)
	ErrSetNotFound      = fmt.Errorf("%w: set not found", pkg.ErrNotFound)
	ErrCardioNotFound   = fmt.Errorf("%w: cardio entry not found", pkg.ErrNotFound)
	ErrUnknownExercise  = fmt.Errorf("%w: exercise not found", pkg.ErrValidation)
)

const sessionColumns = `s.id, s.user_id, s.session_date, s.started_at, s.ended_at, s.calories_burned, s.notes`

const cardioColumns = `id, session_id, user_id, activity_type, distance_km, duration_min,
	avg_pace_min_km, avg_heart_rate, elevation_gain_m, notes, logged_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanSession(row pgx.Row, s *Session, extra ...any) error {
	var endedAt *time.Time
	dest := append([]any{
		&s.ID, &s.UserID, &s.SessionDate.Time, &s.StartedAt.Time, &endedAt, &s.CaloriesBurned, &s.Notes,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	if endedAt != nil {
		s.EndedAt = &pkg.Timestamp{Time: *endedAt}
	}
	return nil
}

func scanCardio(row pgx.Row) (Cardio, error) {
	var c Cardio
	err := row.Scan(
		&c.ID, &c.SessionID, &c.UserID, &c.ActivityType, &c.DistanceKm, &c.DurationMin,
		&c.AvgPaceMinKm, &c.AvgHeartRate, &c.ElevationGainM, &c.Notes, &c.LoggedAt.Time,
	)
	return c, err
}

// List returns the newest sessions first. Sets and cardio are counted in separate
// subqueries so one never multiplies the other.
func (r *Repo) List(ctx context.Context, userID, limit int) (_ []Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+sessionColumns+`,
				(SELECT COUNT(*) FROM workout_set ws WHERE ws.session_id = s.id),
				(SELECT COUNT(*) FROM cardio_log c WHERE c.session_id = s.id),
				(SELECT COALESCE(SUM(ws.reps * COALESCE(ws.weight_kg, 0)), 0)
					FROM workout_set ws WHERE ws.session_id = s.id)
			FROM workout_session s
			WHERE s.user_id = $1
			ORDER BY s.session_date DESC, s.id DESC
			LIMIT $2;`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]Summary, 0)
	for rows.Next() {
		var sum Summary
		if err := scanSession(rows, &sum.Session, &sum.TotalSets, &sum.TotalCardio, &sum.TotalVolume); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		list = append(list, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// Create starts a session now, dated today unless the request names a date.
func (r *Repo) Create(ctx context.Context, userID int, req NewSessionRequest) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	var date *time.Time
	if req.Date != nil {
		date = &req.Date.Time
	}

	var s Session
	err = scanSession(r.db.QueryRow(
		ctx,
		`INSERT INTO workout_session AS s (user_id, session_date, notes)
			VALUES ($1, COALESCE($2::date, CURRENT_DATE), $3)
			RETURNING `+sessionColumns+`;`,
		userID, date, req.Notes,
	), &s)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// Get returns the session with its sets and cardio entries. Sessions of other users
// are reported as not found.
func (r *Repo) Get(ctx context.Context, userID, sessionID int) (_ *Detail, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.Int("session.id", sessionID))

	detail := &Detail{
		Sets:   make([]Set, 0),
		Cardio: make([]Cardio, 0),
	}
	err = scanSession(r.db.QueryRow(
		ctx,
		`SELECT `+sessionColumns+` FROM workout_session s WHERE s.id = $1 AND s.user_id = $2;`,
		sessionID, userID,
	), &detail.Session)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	setRows, err := r.db.Query(
		ctx,
		`SELECT ws.id, ws.session_id, ws.exercise_id, e.name, e.muscle_group, ws.set_number,
				ws.reps, ws.weight_kg, ws.rest_seconds, ws.rpe, ws.notes, ws.logged_at
			FROM workout_set ws
			JOIN exercise e ON e.id = ws.exercise_id
			WHERE ws.session_id = $1
			ORDER BY ws.exercise_id, ws.set_number, ws.id;`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query sets: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var st Set
		if err := setRows.Scan(
			&st.ID, &st.SessionID, &st.ExerciseID, &st.ExerciseName, &st.MuscleGroup, &st.SetNumber,
			&st.Reps, &st.WeightKg, &st.RestSeconds, &st.RPE, &st.Notes, &st.LoggedAt.Time,
		); err != nil {
			return nil, fmt.Errorf("set rows scan: %w", err)
		}
		detail.Sets = append(detail.Sets, st)
	}
	if err := setRows.Err(); err != nil {
		return nil, err
	}

	cardioRows, err := r.db.Query(
		ctx,
		`SELECT `+cardioColumns+` FROM cardio_log WHERE session_id = $1 ORDER BY logged_at, id;`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query cardio: %w", err)
	}
	defer cardioRows.Close()

	for cardioRows.Next() {
		c, err := scanCardio(cardioRows)
		if err != nil {
			return nil, fmt.Errorf("cardio rows scan: %w", err)
		}
		detail.Cardio = append(detail.Cardio, c)
	}
	if err := cardioRows.Err(); err != nil {
		return nil, err
	}

	return detail, nil
}

// End marks the session finished now and stores the burned calories. Calling it again
// overwrites both.
func (r *Repo) End(ctx context.Context, userID, sessionID int, calories *int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.end")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.Int("session.id", sessionID))

	var s Session
	err = scanSession(r.db.QueryRow(
		ctx,
		`UPDATE workout_session AS s
			SET ended_at = LOCALTIMESTAMP, calories_burned = $3
			WHERE s.id = $1 AND s.user_id = $2
			RETURNING `+sessionColumns+`;`,
		sessionID, userID, calories,
	), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return &s, nil
}

// LogSet adds a set to one of the user's sessions. The exercise must be global
// or owned by the same user.
func (r *Repo) LogSet(ctx context.Context, userID int, req NewSetRequest) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.logSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.Int("session.id", req.SessionID))

	var id int
	err = r.db.QueryRow(
		ctx,
		`INSERT INTO workout_set (session_id, exercise_id, set_number, reps, weight_kg, rest_seconds, rpe, notes)
			SELECT $1::int, $2::int, $3::int, $4::int, $5::float8, $6::int, $7::float8, $8::varchar
			WHERE EXISTS (SELECT 1 FROM workout_session s WHERE s.id = $1 AND s.user_id = $9)
				AND EXISTS (SELECT 1 FROM exercise e WHERE e.id = $2 AND (e.is_global OR e.user_id = $9))
			RETURNING id;`,
		req.SessionID, req.ExerciseID, req.SetNumber, req.Reps, req.WeightKg, req.RestSeconds, req.RPE, req.Notes,
		userID,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	owned, err := r.sessionOwned(ctx, userID, req.SessionID)
	if err != nil {
		return 0, err
	}
	if !owned {
		return 0, ErrSessionForbidden
	}
	return 0, ErrUnknownExercise
}

func (r *Repo) sessionOwned(ctx context.Context, userID, sessionID int) (bool, error) {
	var owned bool
	err := r.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM workout_session WHERE id = $1 AND user_id = $2);`,
		sessionID, userID,
	).Scan(&owned)
	return owned, err
}

// DeleteSet removes a set if its session belongs to the user.
func (r *Repo) DeleteSet(ctx context.Context, userID, setID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.deleteSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.Int("set.id", setID))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout_set ws
			USING workout_session s
			WHERE ws.id = $1 AND ws.session_id = s.id AND s.user_id = $2;`,
		setID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSetNotFound
	}

	return nil
}

// LogCardio adds a cardio entry to one of the user's sessions. The pace is derived
// here and the owner is copied from the session row.
func (r *Repo) LogCardio(ctx context.Context, userID int, req NewCardioRequest) (_ *Cardio, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.logCardio")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.Int("session.id", req.SessionID))

	activity := req.ActivityType
	if activity == "" {
		activity = DefaultCardioActivity
	}

	c, err := scanCardio(r.db.QueryRow(
		ctx,
		`INSERT INTO cardio_log (session_id, user_id, activity_type, distance_km, duration_min,
				avg_pace_min_km, avg_heart_rate, elevation_gain_m, notes)
			SELECT s.id, s.user_id, $3::varchar, $4::float8, $5::float8, $6::float8, $7::int, $8::float8, $9::varchar
			FROM workout_session s
			WHERE s.id = $1 AND s.user_id = $2
			RETURNING `+cardioColumns+`;`,
		req.SessionID, userID, activity, req.DistanceKm, req.DurationMin,
		AveragePace(req.DistanceKm, req.DurationMin), req.AvgHeartRate, req.ElevationGainM, req.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionForbidden
		}
		return nil, err
	}

	return &c, nil
}

// DeleteCardio removes a cardio entry owned by the user.
func (r *Repo) DeleteCardio(ctx context.Context, userID, cardioID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.deleteCardio")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.Int("cardio.id", cardioID))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM cardio_log WHERE id = $1 AND user_id = $2;`,
		cardioID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCardioNotFound
	}

	return nil
}
