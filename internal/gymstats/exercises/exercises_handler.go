package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/2beens/ironlog/internal/auth"
	"github.com/2beens/ironlog/internal/telemetry/tracing"
	"github.com/2beens/ironlog/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=exercises_mocks_test.go -package=exercises_test

type exercisesRepo interface {
	ListVisible(ctx context.Context, userID int) ([]Exercise, error)
	Add(ctx context.Context, userID int, req NewExerciseRequest) (*Exercise, error)
}

type Handler struct {
	repo exercisesRepo
}

func NewHandler(repo exercisesRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	exercises, err := handler.repo.ListVisible(ctx, userID)
	if err != nil {
		log.Errorf("list exercises for user %d: %s", userID, err)
		pkg.WriteErrorResponse(w, err)
		return
	}

	pkg.WriteJSON(w, exercises, http.StatusOK)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.add")
	defer span.End()

	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	var req NewExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new exercise, unmarshal json params: %s", err)
		pkg.WriteErrorResponse(w, fmt.Errorf("%w: invalid json body", pkg.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	added, err := handler.repo.Add(ctx, userID, req)
	if err != nil {
		if !errors.Is(err, pkg.ErrConflict) {
			log.Errorf("failed to add new exercise [%s]: %s", req.Name, err)
		}
		pkg.WriteErrorResponse(w, err)
		return
	}

	log.Debugf("new exercise added: [%s] [%s]: %d", added.MuscleGroup, added.Name, added.ID)
	pkg.WriteJSON(w, added, http.StatusCreated)
}
