package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JoseExp44/StockWebApp/app"
	"github.com/JoseExp44/StockWebApp/domain/chart"
	"github.com/JoseExp44/StockWebApp/internal/errors"
)

// sessionResponse answers session creation: the session ID plus the
// bootstrap data the form needs
type sessionResponse struct {
	SessionID string `json:"sessionId"`
	app.Bootstrap
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Code: errors.GetCode(err), Message: err.Error()})
}

// handleIndex renders the chart page
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	if err := a.templates.ExecuteTemplate(w, "index.html", nil); err != nil {
		a.log.Error("rendering index: %v", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// handleCreateSession opens a chart session and returns the bootstrap
// payload: available tickers and the default 30-day window.
func (a *App) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	boot, err := a.catalog.Startup(r.Context())
	if err != nil {
		a.log.Error("bootstrap query failed: %v", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	session := a.sessions.Create()
	session.Chart.SetListener(func(snap chart.Snapshot) {
		a.hub.Broadcast(session.ID, snap)
	})

	writeJSON(w, http.StatusOK, sessionResponse{SessionID: session.ID, Bootstrap: boot})
}

func (a *App) session(w http.ResponseWriter, r *http.Request) (*app.Session, bool) {
	id := chi.URLParam(r, "id")
	session, ok := a.sessions.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Code: "SESSION_NOT_FOUND", Message: "unknown session"})
		return nil, false
	}
	return session, true
}

// handleSeries applies an input change: validates the range and kicks
// off a full chart refresh. An invalid range answers 400 and leaves the
// chart untouched.
func (a *App) handleSeries(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}

	var inputs chart.Inputs
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		writeError(w, http.StatusBadRequest, errors.InvalidInput("malformed request body"))
		return
	}
	if inputs.Ticker == "" {
		writeError(w, http.StatusBadRequest, errors.InvalidInput("ticker is required"))
		return
	}

	if err := session.Chart.Refresh(inputs); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "requested"})
}

// handleStatToggle flips one overlay. The dataset change arrives via
// the snapshot stream once the provider answers (or immediately for a
// toggle-off).
func (a *App) handleStatToggle(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}

	kind, err := chart.ParseOverlayKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.InvalidInput(err.Error()))
		return
	}

	session.Chart.Toggle(kind)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "toggled"})
}

// handleSessionState returns the current snapshot for one session
func (a *App) handleSessionState(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, session.Chart.Snapshot())
}
