package handlers

import (
	"net/http"
	"time"

	"github.com/betterdayenergy/esign-service/internal/adapters/http/dto"
)

// InfoHandler serves the root service-info endpoint.
type InfoHandler struct {
	service string
	version string
}

// NewInfoHandler creates a new InfoHandler for the given service name and
// version.
func NewInfoHandler(service, version string) *InfoHandler {
	return &InfoHandler{service: service, version: version}
}

// Info handles GET /.
func (h *InfoHandler) Info(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dto.ServiceInfoResponse{
		Service:   h.service,
		Version:   h.version,
		Status:    statusOK,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
