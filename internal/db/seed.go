package db

import (
	"fmt"
	"strings"
)

type GlobalExercise struct {
	Name        string
	MuscleGroup string
	Equipment   string
}

// GlobalExercises is the shared catalog every user sees next to their own exercises.
var GlobalExercises = []GlobalExercise{
	{Name: "Bench Press", MuscleGroup: "Chest", Equipment: "Barbell"},
	{Name: "Squat", MuscleGroup: "Legs", Equipment: "Barbell"},
	{Name: "Deadlift", MuscleGroup: "Back", Equipment: "Barbell"},
	{Name: "Overhead Press", MuscleGroup: "Shoulders", Equipment: "Barbell"},
	{Name: "Barbell Row", MuscleGroup: "Back", Equipment: "Barbell"},
	{Name: "Pull Up", MuscleGroup: "Back", Equipment: "Bodyweight"},
	{Name: "Dumbbell Curl", MuscleGroup: "Biceps", Equipment: "Dumbbell"},
	{Name: "Tricep Pushdown", MuscleGroup: "Triceps", Equipment: "Cable"},
	{Name: "Leg Press", MuscleGroup: "Legs", Equipment: "Machine"},
	{Name: "Lat Pulldown", MuscleGroup: "Back", Equipment: "Cable"},
	{Name: "Incline Press", MuscleGroup: "Chest", Equipment: "Dumbbell"},
	{Name: "Romanian Deadlift", MuscleGroup: "Hamstrings", Equipment: "Barbell"},
	{Name: "Face Pull", MuscleGroup: "Shoulders", Equipment: "Cable"},
	{Name: "Dumbbell Row", MuscleGroup: "Back", Equipment: "Dumbbell"},
	{Name: "Cable Fly", MuscleGroup: "Chest", Equipment: "Cable"},
}

func seedGlobalExercisesSQL() string {
	values := make([]string, 0, len(GlobalExercises))
	for _, e := range GlobalExercises {
		values = append(values, fmt.Sprintf(
			"(%s, %s, %s, TRUE)",
			quoteLiteral(e.Name), quoteLiteral(e.MuscleGroup), quoteLiteral(e.Equipment),
		))
	}

	return "INSERT INTO exercise (name, muscle_group, equipment, is_global) VALUES\n    " +
		strings.Join(values, ",\n    ") +
		"\nON CONFLICT (name) WHERE is_global DO NOTHING;"
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
