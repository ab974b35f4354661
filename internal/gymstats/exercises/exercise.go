package exercises

import (
	"fmt"
	"strings"

	"github.com/2beens/ironlog/pkg"
)

type Exercise struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group"`
	Equipment   string `json:"equipment"`
	UserID      *int   `json:"user_id"`
	IsGlobal    bool   `json:"is_global"`
}

type NewExerciseRequest struct {
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group"`
	Equipment   string `json:"equipment"`
}

func (r *NewExerciseRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.MuscleGroup = strings.TrimSpace(r.MuscleGroup)
	r.Equipment = strings.TrimSpace(r.Equipment)
	if r.Name == "" {
		return fmt.Errorf("%w: exercise name is required", pkg.ErrValidation)
	}
	return nil
}
