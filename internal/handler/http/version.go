package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

// getServerVersion answers with the plain version string, or with the version
// and build metadata when the client asks for JSON.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	serverVersion := h.services.AppInfoService.GetAppVersion(ctx)

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		utils.WriteJSON(w, models.VersionResponse{
			Version: serverVersion,
			Build:   h.services.AppInfoService.GetBuildInfo(ctx),
		}, http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, serverVersion)
}
