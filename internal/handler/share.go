package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetShareLink handles GET /plans/{ownerID}/{planID}/share.
// The link encodes both ids; anyone holding it can view the plan read-only.
func (s *Server) GetShareLink(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	planID := chi.URLParam(r, "planID")

	writeJSON(w, http.StatusOK, map[string]string{
		"link": s.share.EncodeShareLink(planID, ownerID),
	})
}

// GetShareQR handles GET /plans/{ownerID}/{planID}/share/qr, returning the
// share link as a scannable PNG.
func (s *Server) GetShareQR(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	planID := chi.URLParam(r, "planID")

	png, err := s.share.ShareQR(planID, ownerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// DecodeShareToken handles POST /share/decode, resolving a scanned or opened
// share URI back into its (plan, owner) pair.
func (s *Server) DecodeShareToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		URI string `json:"uri"`
	}
	if err := decodeJSON(r, &body); err != nil {
		requestError(w, "malformed request body")
		return
	}

	planID, ownerID, err := s.share.DecodeShareToken(body.URI)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"plan_id":  planID,
		"owner_id": ownerID,
	})
}
