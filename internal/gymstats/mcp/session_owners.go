package mcp

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/2beens/ironlog/internal/auth"
	"github.com/2beens/ironlog/pkg"

	log "github.com/sirupsen/logrus"
)

const sessionIDHeader = "Mcp-Session-Id"

var errSessionNotFound = fmt.Errorf("%w: mcp session not found", pkg.ErrNotFound)

// sessionOwners remembers which user opened each MCP session, and only lets
// that user reach it again.
type sessionOwners struct {
	mutex  sync.RWMutex
	owners map[string]int
}

func newSessionOwners() *sessionOwners {
	return &sessionOwners{
		owners: make(map[string]int),
	}
}

func (so *sessionOwners) owner(sessionID string) (int, bool) {
	so.mutex.RLock()
	defer so.mutex.RUnlock()
	userID, ok := so.owners[sessionID]
	return userID, ok
}

func (so *sessionOwners) set(sessionID string, userID int) {
	so.mutex.Lock()
	defer so.mutex.Unlock()
	so.owners[sessionID] = userID
}

func (so *sessionOwners) forget(sessionID string) {
	so.mutex.Lock()
	defer so.mutex.Unlock()
	delete(so.owners, sessionID)
}

// guard answers 404 for unknown sessions and for sessions opened by another user.
// New sessions are recorded when the response headers are written.
func (so *sessionOwners) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.RequireUserID(r.Context())
		if err != nil {
			pkg.WriteErrorResponse(w, err)
			return
		}

		sessionID := r.Header.Get(sessionIDHeader)
		if sessionID == "" {
			next.ServeHTTP(&ownerRecorder{ResponseWriter: w, owners: so, userID: userID}, r)
			return
		}

		owner, known := so.owner(sessionID)
		if !known || owner != userID {
			if known {
				log.Warnf("mcp: user %d tried session of user %d", userID, owner)
			}
			pkg.WriteErrorResponse(w, errSessionNotFound)
			return
		}

		next.ServeHTTP(w, r)

		if r.Method == http.MethodDelete {
			so.forget(sessionID)
		}
	})
}

// ownerRecorder records the session id the handler assigns, when the headers are written.
type ownerRecorder struct {
	http.ResponseWriter
	owners      *sessionOwners
	userID      int
	wroteHeader bool
}

func (rec *ownerRecorder) WriteHeader(statusCode int) {
	if !rec.wroteHeader {
		rec.wroteHeader = true
		if sessionID := rec.Header().Get(sessionIDHeader); sessionID != "" && statusCode < 300 {
			rec.owners.set(sessionID, rec.userID)
		}
	}
	rec.ResponseWriter.WriteHeader(statusCode)
}

func (rec *ownerRecorder) Write(b []byte) (int, error) {
	if !rec.wroteHeader {
		rec.WriteHeader(http.StatusOK)
	}
	return rec.ResponseWriter.Write(b)
}

func (rec *ownerRecorder) Flush() {
	if !rec.wroteHeader {
		rec.WriteHeader(http.StatusOK)
	}
	if f, ok := rec.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rec *ownerRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}
