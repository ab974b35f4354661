package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/2beens/ironlog/internal/gymstats/analytics"
	"github.com/2beens/ironlog/internal/gymstats/bodyweight"
	"github.com/2beens/ironlog/internal/gymstats/sessions"
)

type overviewProvider interface {
	Overview(ctx context.Context, userID int) (*analytics.Overview, error)
}

type sessionsReader interface {
	List(ctx context.Context, userID, limit int) ([]sessions.Summary, error)
	Get(ctx context.Context, userID, sessionID int) (*sessions.Detail, error)
}

type bodyWeightReader interface {
	ListRecent(ctx context.Context, userID, limit int) ([]bodyweight.Entry, error)
}

// contextService is what the tool handlers read from. Every call is scoped to one user.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	Overview(ctx context.Context, userID int) (*analytics.Overview, error)
	ListSessions(ctx context.Context, userID, limit int) ([]sessions.Summary, error)
	GetSession(ctx context.Context, userID, sessionID int) (*sessions.Detail, error)
	ListBodyWeight(ctx context.Context, userID, limit int) ([]bodyweight.Entry, error)
}

// ContextService holds the read side of the IronLog repos used by the MCP tools.
type ContextService struct {
	schema     SchemaRepo
	analyzer   overviewProvider
	sessions   sessionsReader
	bodyWeight bodyWeightReader
}

func NewContextService(
	schemaRepo SchemaRepo,
	analyzer overviewProvider,
	sessionsRepo sessionsReader,
	bodyWeightRepo bodyWeightReader,
) *ContextService {
	return &ContextService{
		schema:     schemaRepo,
		analyzer:   analyzer,
		sessions:   sessionsRepo,
		bodyWeight: bodyWeightRepo,
	}
}

// GetSchema returns the columns of the IronLog tables formatted as markdown.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.schema.GetIronlogColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatSchema(cols), nil
}

func formatSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# IronLog DB Schema\n\nNo IronLog tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}

	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# IronLog DB Schema\n\n")
	b.WriteString("Tables: " + strings.Join(tableOrder, ", ") + " (schema: public).\n\n")

	for _, tableName := range tableOrder {
		b.WriteString("## ")
		b.WriteString(tableName)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|--------|\n")
		for _, c := range byTable[tableName] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def)
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}

func (s *ContextService) Overview(ctx context.Context, userID int) (*analytics.Overview, error) {
	return s.analyzer.Overview(ctx, userID)
}

// ListSessions returns the most recent sessions, limit is clamped to the API default.
func (s *ContextService) ListSessions(ctx context.Context, userID, limit int) ([]sessions.Summary, error) {
	return s.sessions.List(ctx, userID, clampLimit(limit, sessions.DefaultListLimit))
}

func (s *ContextService) GetSession(ctx context.Context, userID, sessionID int) (*sessions.Detail, error) {
	return s.sessions.Get(ctx, userID, sessionID)
}

// ListBodyWeight returns the most recent body weight entries, limit is clamped to the API default.
func (s *ContextService) ListBodyWeight(ctx context.Context, userID, limit int) ([]bodyweight.Entry, error) {
	return s.bodyWeight.ListRecent(ctx, userID, clampLimit(limit, bodyweight.DefaultListLimit))
}

func clampLimit(limit, max int) int {
	if limit <= 0 || limit > max {
		return max
	}
	return limit
}
