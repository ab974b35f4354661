package exercises

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/ironlog/internal/telemetry/tracing"
	"github.com/2beens/ironlog/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrExerciseExists = fmt.Errorf("%w: exercise with this name already exists", pkg.ErrConflict)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// ListVisible returns the global catalog together with the user's own exercises.
func (r *Repo) ListVisible(ctx context.Context, userID int) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.listVisible")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, muscle_group, equipment, user_id, is_global
			FROM exercise
			WHERE is_global OR user_id = $1
			ORDER BY name, id;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]Exercise, 0)
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.Equipment, &e.UserID, &e.IsGlobal); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		exercises = append(exercises, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return exercises, nil
}

// Add creates a user owned exercise. A name already visible to the user, global or own,
// is rejected with ErrExerciseExists and nothing is inserted.
func (r *Repo) Add(ctx context.Context, userID int, req NewExerciseRequest) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	var id int
	err = r.db.QueryRow(
		ctx,
		`INSERT INTO exercise (user_id, name, muscle_group, equipment, is_global)
			SELECT $1::int, $2::varchar, $3::varchar, $4::varchar, FALSE
			WHERE NOT EXISTS (
				SELECT 1 FROM exercise e
				WHERE e.name = $2 AND (e.is_global OR e.user_id = $1)
			)
			RETURNING id;`,
		userID, req.Name, req.MuscleGroup, req.Equipment,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pkg.IsUniqueViolationError(err) {
			return nil, ErrExerciseExists
		}
		return nil, err
	}

	return &Exercise{
		ID:          id,
		Name:        req.Name,
		MuscleGroup: req.MuscleGroup,
		Equipment:   req.Equipment,
		UserID:      &userID,
		IsGlobal:    false,
	}, nil
}
