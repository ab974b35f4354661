package sessions

import (
	"fmt"
	"strings"

	"github.com/2beens/ironlog/pkg"
)

const (
	DefaultListLimit      = 40
	DefaultCardioActivity = "running"

	otherActivity = "other"
)

var knownActivities = map[string]bool{
	"running":  true,
	"walking":  true,
	"cycling":  true,
	"rowing":   true,
	"swimming": true,
}

// ActivityMetricLabel maps a free-form activity type onto the fixed set used as a
// metric label; anything unknown is "other".
func ActivityMetricLabel(activity string) string {
	activity = strings.ToLower(strings.TrimSpace(activity))
	if knownActivities[activity] {
		return activity
	}
	return otherActivity
}

type Session struct {
	ID             int            `json:"id"`
	UserID         int            `json:"user_id"`
	SessionDate    pkg.Date       `json:"session_date"`
	StartedAt      pkg.Timestamp  `json:"started_at"`
	EndedAt        *pkg.Timestamp `json:"ended_at"`
	CaloriesBurned *int           `json:"calories_burned"`
	Notes          string         `json:"notes"`
}

// Summary is a session row annotated with its set and cardio counts
// and the lifted volume (reps x kg, missing weight counts as 0).
type Summary struct {
	Session
	TotalSets   int     `json:"total_sets"`
	TotalCardio int     `json:"total_cardio"`
	TotalVolume float64 `json:"total_volume"`
}

type Set struct {
	ID           int           `json:"id"`
	SessionID    int           `json:"session_id"`
	ExerciseID   int           `json:"exercise_id"`
	ExerciseName string        `json:"exercise_name"`
	MuscleGroup  string        `json:"muscle_group"`
	SetNumber    int           `json:"set_number"`
	Reps         *int          `json:"reps"`
	WeightKg     *float64      `json:"weight_kg"`
	RestSeconds  *int          `json:"rest_seconds"`
	RPE          *float64      `json:"rpe"`
	Notes        string        `json:"notes"`
	LoggedAt     pkg.Timestamp `json:"logged_at"`
}

type Cardio struct {
	ID             int           `json:"id"`
	SessionID      int           `json:"session_id"`
	UserID         int           `json:"user_id"`
	ActivityType   string        `json:"activity_type"`
	DistanceKm     *float64      `json:"distance_km"`
	DurationMin    *float64      `json:"duration_min"`
	AvgPaceMinKm   *float64      `json:"avg_pace_min_km"`
	AvgHeartRate   *int          `json:"avg_heart_rate"`
	ElevationGainM *float64      `json:"elevation_gain_m"`
	Notes          string        `json:"notes"`
	LoggedAt       pkg.Timestamp `json:"logged_at"`
}

type Detail struct {
	Session
	Sets   []Set    `json:"sets"`
	Cardio []Cardio `json:"cardio"`
}

type NewSessionRequest struct {
	Date  *pkg.Date `json:"date"`
	Notes string    `json:"notes"`
}

func (r *NewSessionRequest) Validate() error {
	r.Notes = strings.TrimSpace(r.Notes)
	return nil
}

type EndSessionRequest struct {
	CaloriesBurned *int `json:"calories_burned"`
}

func (r *EndSessionRequest) Validate() error {
	if r.CaloriesBurned != nil && *r.CaloriesBurned < 0 {
		return fmt.Errorf("%w: calories_burned must not be negative", pkg.ErrValidation)
	}
	return nil
}

type NewSetRequest struct {
	SessionID   int      `json:"session_id"`
	ExerciseID  int      `json:"exercise_id"`
	SetNumber   int      `json:"set_number"`
	Reps        *int     `json:"reps"`
	WeightKg    *float64 `json:"weight_kg"`
	RestSeconds *int     `json:"rest_seconds"`
	RPE         *float64 `json:"rpe"`
	Notes       string   `json:"notes"`
}

func (r *NewSetRequest) Validate() error {
	switch {
	case r.SessionID <= 0:
		return fmt.Errorf("%w: session_id is required", pkg.ErrValidation)
	case r.ExerciseID <= 0:
		return fmt.Errorf("%w: exercise_id is required", pkg.ErrValidation)
	case r.SetNumber <= 0:
		return fmt.Errorf("%w: set_number is required", pkg.ErrValidation)
	}
	if err := nonNegative("reps", r.Reps); err != nil {
		return err
	}
	if err := nonNegative("weight_kg", r.WeightKg); err != nil {
		return err
	}
	if err := nonNegative("rest_seconds", r.RestSeconds); err != nil {
		return err
	}
	if err := nonNegative("rpe", r.RPE); err != nil {
		return err
	}
	r.Notes = strings.TrimSpace(r.Notes)
	return nil
}

// NewCardioRequest has no pace field, pace is always derived from distance and duration.
type NewCardioRequest struct {
	SessionID      int      `json:"session_id"`
	ActivityType   string   `json:"activity_type"`
	DistanceKm     *float64 `json:"distance_km"`
	DurationMin    *float64 `json:"duration_min"`
	AvgHeartRate   *int     `json:"avg_heart_rate"`
	ElevationGainM *float64 `json:"elevation_gain_m"`
	Notes          string   `json:"notes"`
}

func (r *NewCardioRequest) Validate() error {
	if r.SessionID <= 0 {
		return fmt.Errorf("%w: session_id is required", pkg.ErrValidation)
	}
	if err := nonNegative("distance_km", r.DistanceKm); err != nil {
		return err
	}
	if err := nonNegative("duration_min", r.DurationMin); err != nil {
		return err
	}
	if err := nonNegative("avg_heart_rate", r.AvgHeartRate); err != nil {
		return err
	}
	if err := nonNegative("elevation_gain_m", r.ElevationGainM); err != nil {
		return err
	}
	r.ActivityType = strings.TrimSpace(r.ActivityType)
	if r.ActivityType == "" {
		r.ActivityType = DefaultCardioActivity
	}
	r.Notes = strings.TrimSpace(r.Notes)
	return nil
}

type CreatedResponse struct {
	ID int `json:"id"`
}

type DeletedResponse struct {
	DeletedID int `json:"deleted_id"`
}

func nonNegative[T int | float64](field string, v *T) error {
	if v != nil && *v < 0 {
		return fmt.Errorf("%w: %s must not be negative", pkg.ErrValidation, field)
	}
	return nil
}
