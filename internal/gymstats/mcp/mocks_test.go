package mcp

import (
	"context"
	"sync"

	"github.com/2beens/ironlog/internal/gymstats/analytics"
	"github.com/2beens/ironlog/internal/gymstats/bodyweight"
	"github.com/2beens/ironlog/internal/gymstats/sessions"
)

// mockSchemaRepo implements SchemaRepo for service tests.
type mockSchemaRepo struct {
	cols []SchemaColumn
	err  error
}

func (m *mockSchemaRepo) GetIronlogColumns(ctx context.Context) ([]SchemaColumn, error) {
	return m.cols, m.err
}

// mockReaders implements overviewProvider, sessionsReader and bodyWeightReader,
// remembering the user and limit of the last call.
type mockReaders struct {
	overview    *analytics.Overview
	overviewErr error
	list        []sessions.Summary
	listErr     error
	detail      *sessions.Detail
	detailErr   error
	entries     []bodyweight.Entry
	entriesErr  error

	mu            sync.Mutex
	lastUserID    int
	lastLimit     int
	lastSessionID int
}

func (m *mockReaders) userSeen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastUserID
}

func (m *mockReaders) resetUserSeen() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUserID = 0
}

func (m *mockReaders) Overview(ctx context.Context, userID int) (*analytics.Overview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUserID = userID
	return m.overview, m.overviewErr
}

func (m *mockReaders) List(ctx context.Context, userID, limit int) ([]sessions.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUserID, m.lastLimit = userID, limit
	return m.list, m.listErr
}

func (m *mockReaders) Get(ctx context.Context, userID, sessionID int) (*sessions.Detail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUserID, m.lastSessionID = userID, sessionID
	return m.detail, m.detailErr
}

func (m *mockReaders) ListRecent(ctx context.Context, userID, limit int) ([]bodyweight.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUserID, m.lastLimit = userID, limit
	return m.entries, m.entriesErr
}

func newTestService(schema *mockSchemaRepo, readers *mockReaders) *ContextService {
	return NewContextService(schema, readers, readers, readers)
}

func strPtr(s string) *string {
	return &s
}
