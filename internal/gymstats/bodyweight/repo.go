package bodyweight

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/ironlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanEntry(row pgx.Row) (Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.UserID, &e.LoggedAt.Time, &e.WeightKg, &e.Notes)
	return e, err
}

// ListRecent returns the newest entries first.
func (r *Repo) ListRecent(ctx context.Context, userID, limit int) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodyweight.listRecent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, logged_at, weight_kg, notes
			FROM body_weight
			WHERE user_id = $1
			ORDER BY logged_at DESC, id DESC
			LIMIT $2;`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// Add stores a measurement, dated today unless the request names a date.
func (r *Repo) Add(ctx context.Context, userID int, req NewEntryRequest) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodyweight.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	var date *time.Time
	if req.Date != nil {
		date = &req.Date.Time
	}

	e, err := scanEntry(r.db.QueryRow(
		ctx,
		`INSERT INTO body_weight (user_id, logged_at, weight_kg, notes)
			VALUES ($1, COALESCE($2::date, CURRENT_DATE), $3, $4)
			RETURNING id, user_id, logged_at, weight_kg, notes;`,
		userID, date, req.WeightKg, req.Notes,
	))
	if err != nil {
		return nil, err
	}

	return &e, nil
}
