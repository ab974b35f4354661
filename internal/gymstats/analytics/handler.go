package analytics

import (
	"context"
	"net/http"

	"github.com/2beens/ironlog/internal/auth"
	"github.com/2beens/ironlog/internal/telemetry/tracing"
	"github.com/2beens/ironlog/pkg"

	log "github.com/sirupsen/logrus"
)

type overviewProvider interface {
	Overview(ctx context.Context, userID int) (*Overview, error)
}

type Handler struct {
	analyzer overviewProvider
}

func NewHandler(analyzer overviewProvider) *Handler {
	return &Handler{
		analyzer: analyzer,
	}
}

func (handler *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.overview")
	defer span.End()

	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		pkg.WriteErrorResponse(w, err)
		return
	}

	overview, err := handler.analyzer.Overview(ctx, userID)
	if err != nil {
		log.Errorf("analytics overview for user %d: %s", userID, err)
		pkg.WriteErrorResponse(w, err)
		return
	}

	pkg.WriteJSON(w, overview, http.StatusOK)
}
