package bodyweight

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/2beens/ironlog/internal/auth"
	"github.com/2beens/ironlog/internal/telemetry/metrics"
	"github.com/2beens/ironlog/internal/telemetry/tracing"
	"github.com/2beens/ironlog/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=bodyweight_test

type bodyWeightRepo interface {
	ListRecent(ctx context.Context, userID, limit int) ([]Entry, error)
	Add(ctx context.Context, userID int, req NewEntryRequest) (*Entry, error)
}

type Handler struct {
	repo           bodyWeightRepo
	metricsManager *metrics.Manager
}

func NewHandler(repo bodyWeightRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodyweight.list")
	defer span.End()

	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	entries, err := handler.repo.ListRecent(ctx, userID, DefaultListLimit)
	if err != nil {
		log.Errorf("list body weight for user %d: %s", userID, err)
		pkg.WriteErrorResponse(w, err)
		return
	}

	pkg.WriteJSON(w, entries, http.StatusOK)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodyweight.add")
	defer span.End()

	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	var req NewEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new body weight, unmarshal json params: %s", err)
		pkg.WriteErrorResponse(w, fmt.Errorf("%w: invalid json body", pkg.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	entry, err := handler.repo.Add(ctx, userID, req)
	if err != nil {
		log.Errorf("add body weight for user %d: %s", userID, err)
		pkg.WriteErrorResponse(w, err)
		return
	}

	handler.metricsManager.CounterBodyWeightLogged.Inc()
	pkg.WriteJSON(w, entry, http.StatusCreated)
}
