package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/2beens/ironlog/internal/auth"
	"github.com/2beens/ironlog/internal/middleware"
	"github.com/2beens/ironlog/internal/telemetry/metrics"
	"github.com/2beens/ironlog/internal/telemetry/tracing"
	"github.com/2beens/ironlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=users_test

type usersRepo interface {
	Add(ctx context.Context, user User) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int) (*User, error)
}

type sessionStore interface {
	Login(ctx context.Context, userID int) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
}

type tokenCache interface {
	Forget(token string)
}

var errWrongCredentials = fmt.Errorf("%w: wrong credentials", pkg.ErrUnauthorized)

type Handler struct {
	repo           usersRepo
	sessions       sessionStore
	tokenCache     tokenCache
	metricsManager *metrics.Manager
}

func NewHandler(
	repo usersRepo,
	sessions sessionStore,
	tokenCache tokenCache,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:           repo,
		sessions:       sessions,
		tokenCache:     tokenCache,
		metricsManager: metricsManager,
	}
}

func (h *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	allowedPerMin int,
) {
	// registered before the /a subrouter, which would otherwise swallow it
	mainRouter.HandleFunc("/a/me", h.HandleMe).Methods("GET", "OPTIONS").Name("me")

	accountsRouter := mainRouter.PathPrefix("/a").Subrouter()
	accountsRouter.HandleFunc("/signup", h.HandleSignup).Methods("POST", "OPTIONS").Name("signup")
	accountsRouter.HandleFunc("/login", h.HandleLogin).Methods("POST", "OPTIONS").Name("login")
	accountsRouter.HandleFunc("/logout", h.HandleLogout).Methods("GET", "POST", "OPTIONS").Name("logout")

	// rate limit the accounts endpoints to prevent password guessing
	accountsRouter.Use(middleware.RateLimit(rateLimiter, "accounts", allowedPerMin, h.metricsManager))
}

func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "usersHandler.signup")
	defer span.End()

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("signup, unmarshal json params: %s", err)
		pkg.WriteErrorResponse(w, fmt.Errorf("%w: invalid json body", pkg.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	passwordHash, err := pkg.HashPassword(req.Password)
	if err != nil {
		log.Errorf("signup, hash password: %s", err)
		pkg.WriteErrorResponse(w, err)
		return
	}

	user, err := h.repo.Add(ctx, User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		log.Debugf("signup for [%s] failed: %s", req.Username, err)
		pkg.WriteErrorResponse(w, err)
		return
	}

	span.SetAttributes(attribute.Int("user.id", user.ID))
	h.metricsManager.CounterSignups.Inc()
	log.Printf("new user signed up: %d [%s]", user.ID, user.Username)

	h.startSession(ctx, w, r, user, http.StatusCreated)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "usersHandler.login")
	defer span.End()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("login, unmarshal json params: %s", err)
		pkg.WriteErrorResponse(w, fmt.Errorf("%w: invalid json body", pkg.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	user, err := h.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			pkg.WriteErrorResponse(w, err)
			return
		}
		log.Tracef("[username] failed login attempt for user: %s", req.Username)
		h.metricsManager.CounterLogins.WithLabelValues("failed").Inc()
		pkg.WriteErrorResponse(w, errWrongCredentials)
		return
	}

	if !pkg.CheckPasswordHash(req.Password, user.PasswordHash) {
		log.Tracef("[password] failed login attempt for user: %s", req.Username)
		h.metricsManager.CounterLogins.WithLabelValues("failed").Inc()
		pkg.WriteErrorResponse(w, errWrongCredentials)
		return
	}

	span.SetAttributes(attribute.Int("user.id", user.ID))
	h.metricsManager.CounterLogins.WithLabelValues("ok").Inc()
	h.startSession(ctx, w, r, user, http.StatusOK)
}

func (h *Handler) startSession(ctx context.Context, w http.ResponseWriter, r *http.Request, user *User, status int) {
	token, err := h.sessions.Login(ctx, user.ID)
	if err != nil {
		log.Errorf("login failed, generate token error: %s", err)
		pkg.WriteErrorResponse(w, err)
		return
	}

	http.SetCookie(w, auth.SessionCookie(token, r.TLS != nil))
	pkg.WriteJSON(w, LoginResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
	}, status)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "usersHandler.logout")
	defer span.End()

	token := auth.TokenFromRequest(r)
	if token != "" {
		h.tokenCache.Forget(token)
	}

	loggedOut, err := h.sessions.Logout(ctx, token)
	if err != nil {
		log.Errorf("logout failed: %s", err)
		pkg.WriteErrorResponse(w, err)
		return
	}

	http.SetCookie(w, auth.ExpiredSessionCookie())
	pkg.WriteJSON(w, LogoutResponse{LoggedOut: loggedOut}, http.StatusOK)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "usersHandler.me")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteErrorResponse(w, pkg.ErrUnauthorized)
		return
	}

	user, err := h.repo.GetByID(ctx, userID)
	if err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	pkg.WriteJSON(w, user, http.StatusOK)
}
