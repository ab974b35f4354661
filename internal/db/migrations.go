package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// held while a migration runs, so two instances starting together do not race
const migrationsLockID = 7_260_401

type Migration struct {
	Version int
	Name    string
	SQL     string
}

type AppliedMigration struct {
	Version   int
	Name      string
	AppliedAt time.Time
}

// Migrations are applied in order and never edited once released.
// Every statement is additive, running them over an older schema keeps existing rows.
var Migrations = []Migration{
	{
		Version: 1,
		Name:    "base_tables",
		SQL: `
CREATE TABLE IF NOT EXISTS app_user
(
    id            SERIAL PRIMARY KEY,
    username      VARCHAR NOT NULL UNIQUE,
    email         VARCHAR NOT NULL UNIQUE,
    password_hash VARCHAR NOT NULL,
    created_at    TIMESTAMP WITHOUT TIME ZONE NOT NULL DEFAULT LOCALTIMESTAMP
);

CREATE TABLE IF NOT EXISTS body_weight
(
    id        SERIAL PRIMARY KEY,
    user_id   INTEGER NOT NULL REFERENCES app_user (id) ON DELETE CASCADE,
    logged_at DATE NOT NULL DEFAULT CURRENT_DATE,
    weight_kg DOUBLE PRECISION NOT NULL,
    notes     VARCHAR NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS ix_body_weight_user_logged_at ON body_weight (user_id, logged_at);

CREATE TABLE IF NOT EXISTS exercise
(
    id           SERIAL PRIMARY KEY,
    user_id      INTEGER REFERENCES app_user (id) ON DELETE CASCADE,
    name         VARCHAR NOT NULL,
    muscle_group VARCHAR NOT NULL DEFAULT '',
    equipment    VARCHAR NOT NULL DEFAULT '',
    is_global    BOOLEAN NOT NULL DEFAULT FALSE,
    CONSTRAINT ck_exercise_owner CHECK (is_global = (user_id IS NULL))
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_exercise_global_name ON exercise (name) WHERE is_global;
CREATE UNIQUE INDEX IF NOT EXISTS ux_exercise_user_name ON exercise (user_id, name) WHERE NOT is_global;

CREATE TABLE IF NOT EXISTS workout_session
(
    id           SERIAL PRIMARY KEY,
    user_id      INTEGER NOT NULL REFERENCES app_user (id) ON DELETE CASCADE,
    session_date DATE NOT NULL DEFAULT CURRENT_DATE,
    started_at   TIMESTAMP WITHOUT TIME ZONE NOT NULL DEFAULT LOCALTIMESTAMP,
    ended_at     TIMESTAMP WITHOUT TIME ZONE,
    notes        VARCHAR NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS ix_workout_session_user_date ON workout_session (user_id, session_date);

CREATE TABLE IF NOT EXISTS workout_set
(
    id           SERIAL PRIMARY KEY,
    session_id   INTEGER NOT NULL REFERENCES workout_session (id) ON DELETE CASCADE,
    exercise_id  INTEGER NOT NULL REFERENCES exercise (id),
    set_number   INTEGER NOT NULL,
    reps         INTEGER,
    weight_kg    DOUBLE PRECISION,
    rest_seconds INTEGER,
    rpe          DOUBLE PRECISION,
    notes        VARCHAR NOT NULL DEFAULT '',
    logged_at    TIMESTAMP WITHOUT TIME ZONE NOT NULL DEFAULT LOCALTIMESTAMP
);
CREATE INDEX IF NOT EXISTS ix_workout_set_session ON workout_set (session_id);
`,
	},
	{
		Version: 2,
		Name:    "session_calories",
		SQL:     `ALTER TABLE workout_session ADD COLUMN IF NOT EXISTS calories_burned INTEGER;`,
	},
	{
		Version: 3,
		Name:    "cardio_log",
		SQL: `
CREATE TABLE IF NOT EXISTS cardio_log
(
    id               SERIAL PRIMARY KEY,
    session_id       INTEGER NOT NULL REFERENCES workout_session (id) ON DELETE CASCADE,
    user_id          INTEGER NOT NULL REFERENCES app_user (id) ON DELETE CASCADE,
    activity_type    VARCHAR NOT NULL DEFAULT 'running',
    distance_km      DOUBLE PRECISION,
    duration_min     DOUBLE PRECISION,
    avg_pace_min_km  DOUBLE PRECISION,
    avg_heart_rate   INTEGER,
    elevation_gain_m DOUBLE PRECISION,
    notes            VARCHAR NOT NULL DEFAULT '',
    logged_at        TIMESTAMP WITHOUT TIME ZONE NOT NULL DEFAULT LOCALTIMESTAMP
);
CREATE INDEX IF NOT EXISTS ix_cardio_log_session ON cardio_log (session_id);
CREATE INDEX IF NOT EXISTS ix_cardio_log_user ON cardio_log (user_id);
`,
	},
	{
		Version: 4,
		Name:    "seed_global_exercises",
		SQL:     seedGlobalExercisesSQL(),
	},
}

// Migrate applies all pending migrations, each one in its own transaction.
func Migrate(ctx context.Context, pool *pgxpool.Pool) (applied []Migration, err error) {
	if err := ensureMigrationsTable(ctx, pool); err != nil {
		return nil, err
	}

	for _, m := range Migrations {
		ran, err := runMigration(ctx, pool, m)
		if err != nil {
			return applied, fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
		if ran {
			log.Infof("applied migration %d: %s", m.Version, m.Name)
			applied = append(applied, m)
		}
	}

	return applied, nil
}

// AppliedMigrations lists the migrations recorded in schema_migrations.
func AppliedMigrations(ctx context.Context, pool *pgxpool.Pool) ([]AppliedMigration, error) {
	if err := ensureMigrationsTable(ctx, pool); err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, `SELECT version, name, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	defer rows.Close()

	var applied []AppliedMigration
	for rows.Next() {
		var am AppliedMigration
		if err := rows.Scan(&am.Version, &am.Name, &am.AppliedAt); err != nil {
			return nil, fmt.Errorf("scan applied migration: %w", err)
		}
		applied = append(applied, am)
	}

	return applied, rows.Err()
}

// PendingMigrations returns the known migrations not present in applied, in order.
func PendingMigrations(applied []AppliedMigration) []Migration {
	done := make(map[int]bool, len(applied))
	for _, am := range applied {
		done[am.Version] = true
	}

	var pending []Migration
	for _, m := range Migrations {
		if !done[m.Version] {
			pending = append(pending, m)
		}
	}
	return pending
}

func ensureMigrationsTable(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations
(
    version    INTEGER PRIMARY KEY,
    name       VARCHAR NOT NULL,
    applied_at TIMESTAMP WITHOUT TIME ZONE NOT NULL DEFAULT LOCALTIMESTAMP
);`)
	if err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}
	return nil
}

func runMigration(ctx context.Context, pool *pgxpool.Pool, m Migration) (ran bool, err error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil || !ran {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				log.Errorf("rollback migration %d: %s", m.Version, rbErr)
			}
		}
	}()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, migrationsLockID); err != nil {
		return false, fmt.Errorf("acquire migrations lock: %w", err)
	}

	var alreadyApplied bool
	if err := tx.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`,
		m.Version,
	).Scan(&alreadyApplied); err != nil {
		return false, fmt.Errorf("check applied: %w", err)
	}
	if alreadyApplied {
		return false, nil
	}

	// no arguments, pgx sends it over the simple protocol so it may hold many statements
	if _, err := tx.Exec(ctx, m.SQL); err != nil {
		return false, fmt.Errorf("exec: %w", err)
	}

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
		m.Version, m.Name,
	); err != nil {
		return false, fmt.Errorf("record version: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}

	return true, nil
}
