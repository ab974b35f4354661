package bodyweight

import (
	"fmt"
	"strings"

	"github.com/2beens/ironlog/pkg"
)

const DefaultListLimit = 30

type Entry struct {
	ID       int      `json:"id"`
	UserID   int      `json:"user_id"`
	LoggedAt pkg.Date `json:"logged_at"`
	WeightKg float64  `json:"weight_kg"`
	Notes    string   `json:"notes"`
}

type NewEntryRequest struct {
	Date     *pkg.Date `json:"date"`
	WeightKg *float64  `json:"weight_kg"`
	Notes    string    `json:"notes"`
}

func (r *NewEntryRequest) Validate() error {
	if r.WeightKg == nil || *r.WeightKg == 0 {
		return fmt.Errorf("%w: weight_kg is required", pkg.ErrValidation)
	}
	if *r.WeightKg < 0 {
		return fmt.Errorf("%w: weight_kg must be positive", pkg.ErrValidation)
	}
	r.Notes = strings.TrimSpace(r.Notes)
	return nil
}
