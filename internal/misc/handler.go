package misc

import (
	"net/http"
	"runtime"

	"github.com/2beens/ironlog/pkg"

	"github.com/gorilla/mux"
)

type Handler struct {
	versionInfo string
}

type VersionResponse struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
}

func NewHandler(versionInfo string) *Handler {
	if versionInfo == "" {
		versionInfo = "dev"
	}
	return &Handler{
		versionInfo: versionInfo,
	}
}

// SetupRoutes registers the unauthenticated liveness and version endpoints.
func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET", "OPTIONS").Name("version")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, VersionResponse{
		Version:   handler.versionInfo,
		GoVersion: runtime.Version(),
	}, http.StatusOK)
}
