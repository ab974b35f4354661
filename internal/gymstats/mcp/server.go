package mcp

import (
	"net/http"

	"github.com/2beens/ironlog/internal/auth"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewServer builds an MCP server whose tools all read the data of the given user:
// schema, analytics overview, sessions, a single session and body weight.
func NewServer(service contextService, userID int) *mcp.Server {
	h := NewHandler(service, userID)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "ironlog",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_ironlog_schema",
		Description: "Returns the DB schema of the IronLog workout tables (exercise, workout_session, workout_set, cardio_log, body_weight): columns, types, nullable, default.",
	}, h.GetSchemaTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_analytics_overview",
		Description: "Returns the analytics overview: totals, weekly volume, per-exercise progression, cardio by activity, body weight trend, activity heatmap and calories timeline.",
	}, h.GetAnalyticsOverviewTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_sessions",
		Description: "Returns the most recent workout sessions with set count, cardio count and lifted volume. Optional: limit (max 40).",
	}, h.ListSessionsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_session",
		Description: "Returns one workout session with all its sets and cardio entries. Arg: session_id.",
	}, h.GetSessionTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_body_weight",
		Description: "Returns the most recent body weight entries. Optional: limit (max 30).",
	}, h.ListBodyWeightTool())

	return s
}

// NewHTTPHandler serves MCP over streamable HTTP. A new MCP session gets a server bound
// to the user that the auth middleware put in the request context, and only that user
// can use the session afterwards.
func NewHTTPHandler(service contextService) http.Handler {
	h := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			log.Warnf("mcp: no user in request context [%s]", r.URL.Path)
			return nil
		}
		return NewServer(service, userID)
	}, nil)

	return otelhttp.NewHandler(newSessionOwners().guard(h), "mcp")
}
