package analytics

import "github.com/2beens/ironlog/pkg"

type Totals struct {
	TotalSessions int     `json:"total_sessions"`
	TotalSets     int     `json:"total_sets"`
	TotalVolume   float64 `json:"total_volume"`
	TotalCalories int     `json:"total_calories"`
}

type CardioTotals struct {
	TotalDistance float64 `json:"total_distance"`
	TotalDuration float64 `json:"total_duration"`
	TotalCardio   int     `json:"total_cardio"`
}

type WeeklyVolume struct {
	Week   string  `json:"week"`
	Volume float64 `json:"volume"`
}

type ProgressPoint struct {
	Date      pkg.Date `json:"date"`
	MaxWeight float64  `json:"max_weight"`
	MaxReps   int      `json:"max_reps"`
}

type ExerciseProgress struct {
	Muscle string          `json:"muscle"`
	Data   []ProgressPoint `json:"data"`
}

type CardioPoint struct {
	Date         pkg.Date `json:"date"`
	DistanceKm   *float64 `json:"distance_km"`
	DurationMin  *float64 `json:"duration_min"`
	AvgPaceMinKm *float64 `json:"avg_pace_min_km"`
	AvgHeartRate *int     `json:"avg_heart_rate"`
}

type BodyWeightPoint struct {
	Date     pkg.Date `json:"date"`
	WeightKg float64  `json:"weight_kg"`
}

type HeatmapDay struct {
	Date  pkg.Date `json:"date"`
	Count int      `json:"count"`
}

type CaloriesPoint struct {
	Date     pkg.Date `json:"date"`
	Calories int      `json:"calories"`
}

// ProgressRow is one (exercise, date) aggregate as returned by the database.
type ProgressRow struct {
	Name   string
	Muscle string
	Point  ProgressPoint
}

// CardioRow is one cardio entry as returned by the database.
type CardioRow struct {
	Activity string
	Point    CardioPoint
}

// Overview is the composite analytics document for one user.
type Overview struct {
	Totals           Totals                      `json:"totals"`
	CardioTotals     CardioTotals                `json:"cardio_totals"`
	WeeklyVolume     []WeeklyVolume              `json:"weekly_volume"`
	ExerciseProgress map[string]ExerciseProgress `json:"exercise_progress"`
	CardioByActivity map[string][]CardioPoint    `json:"cardio_by_activity"`
	BodyWeightTrend  []BodyWeightPoint           `json:"bw_trend"`
	Heatmap          []HeatmapDay                `json:"heatmap"`
	CaloriesTimeline []CaloriesPoint             `json:"calories_timeline"`
}

// groupProgress folds rows ordered by name then date into one series per exercise.
func groupProgress(rows []ProgressRow) map[string]ExerciseProgress {
	progress := make(map[string]ExerciseProgress)
	for _, r := range rows {
		ep, ok := progress[r.Name]
		if !ok {
			ep = ExerciseProgress{Muscle: r.Muscle, Data: make([]ProgressPoint, 0)}
		}
		ep.Data = append(ep.Data, r.Point)
		progress[r.Name] = ep
	}
	return progress
}

// groupCardio folds rows ordered by activity then date into one series per activity.
func groupCardio(rows []CardioRow) map[string][]CardioPoint {
	byActivity := make(map[string][]CardioPoint)
	for _, r := range rows {
		byActivity[r.Activity] = append(byActivity[r.Activity], r.Point)
	}
	return byActivity
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return make([]T, 0)
	}
	return s
}
