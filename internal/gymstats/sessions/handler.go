package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/2beens/ironlog/internal/auth"
	"github.com/2beens/ironlog/internal/telemetry/metrics"
	"github.com/2beens/ironlog/internal/telemetry/tracing"
	"github.com/2beens/ironlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=sessions_test

type sessionsRepo interface {
	List(ctx context.Context, userID, limit int) ([]Summary, error)
	Create(ctx context.Context, userID int, req NewSessionRequest) (*Session, error)
	Get(ctx context.Context, userID, sessionID int) (*Detail, error)
	End(ctx context.Context, userID, sessionID int, calories *int) (*Session, error)
	LogSet(ctx context.Context, userID int, req NewSetRequest) (int, error)
	DeleteSet(ctx context.Context, userID, setID int) error
	LogCardio(ctx context.Context, userID int, req NewCardioRequest) (*Cardio, error)
	DeleteCardio(ctx context.Context, userID, cardioID int) error
}

type Handler struct {
	repo           sessionsRepo
	metricsManager *metrics.Manager
}

func NewHandler(repo sessionsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

var errInvalidBody = fmt.Errorf("%w: invalid json body", pkg.ErrValidation)

// decodeBody decodes an optional JSON body, an empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		log.Tracef("decode request body: %s", err)
		return errInvalidBody
	}
	return nil
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id", pkg.ErrValidation)
	}
	return id, nil
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.list")
	defer span.End()

	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	list, err := handler.repo.List(ctx, userID, DefaultListLimit)
	if err != nil {
		log.Errorf("list sessions for user %d: %s", userID, err)
		pkg.WriteErrorResponse(w, err)
		return
	}

	pkg.WriteJSON(w, list, http.StatusOK)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.create")
	defer span.End()

	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	var req NewSessionRequest
	if err := decodeBody(r, &req); err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	session, err := handler.repo.Create(ctx, userID, req)
	if err != nil {
		log.Errorf("create session for user %d: %s", userID, err)
		pkg.WriteErrorResponse(w, err)
		return
	}

	handler.metricsManager.CounterSessionsStarted.Inc()
	log.Debugf("session %d started by user %d", session.ID, userID)
	pkg.WriteJSON(w, session, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.get")
	defer span.End()

	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}
	sessionID, err := pathID(r)
	if err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}
	span.SetAttributes(attribute.Int("session.id", sessionID))

	detail, err := handler.repo.Get(ctx, userID, sessionID)
	if err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	pkg.WriteJSON(w, detail, http.StatusOK)
}

func (handler *Handler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.end")
	defer span.End()

	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}
	sessionID, err := pathID(r)
	if err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	var req EndSessionRequest
	if err := decodeBody(r, &req); err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	session, err := handler.repo.End(ctx, userID, sessionID, req.CaloriesBurned)
	if err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	handler.metricsManager.CounterSessionsEnded.Inc()
	pkg.WriteJSON(w, session, http.StatusOK)
}

func (handler *Handler) HandleLogSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.logSet")
	defer span.End()

	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	var req NewSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new set, unmarshal json params: %s", err)
		pkg.WriteErrorResponse(w, errInvalidBody)
		return
	}
	if err := req.Validate(); err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	id, err := handler.repo.LogSet(ctx, userID, req)
	if err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	handler.metricsManager.CounterSetsLogged.Inc()
	pkg.WriteJSON(w, CreatedResponse{ID: id}, http.StatusCreated)
}

func (handler *Handler) HandleDeleteSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.deleteSet")
	defer span.End()

	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}
	setID, err := pathID(r)
	if err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	if err := handler.repo.DeleteSet(ctx, userID, setID); err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	pkg.WriteJSON(w, DeletedResponse{DeletedID: setID}, http.StatusOK)
}

func (handler *Handler) HandleLogCardio(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.logCardio")
	defer span.End()

	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	var req NewCardioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new cardio, unmarshal json params: %s", err)
		pkg.WriteErrorResponse(w, errInvalidBody)
		return
	}
	if err := req.Validate(); err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	cardio, err := handler.repo.LogCardio(ctx, userID, req)
	if err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	handler.metricsManager.CounterCardioLogged.WithLabelValues(ActivityMetricLabel(cardio.ActivityType)).Inc()
	pkg.WriteJSON(w, cardio, http.StatusCreated)
}

func (handler *Handler) HandleDeleteCardio(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.deleteCardio")
	defer span.End()

	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}
	cardioID, err := pathID(r)
	if err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	if err := handler.repo.DeleteCardio(ctx, userID, cardioID); err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	pkg.WriteJSON(w, DeletedResponse{DeletedID: cardioID}, http.StatusOK)
}
