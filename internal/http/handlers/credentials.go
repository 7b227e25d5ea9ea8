package handlers

import (
	"encoding/json"
	"net/http"
)

type credentialSelectRequest struct {
	APIKey string `json:"api_key"`
}

func (a *App) CredentialsStatus(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"selected": a.Creds.Selected(r.Context())})
}

func (a *App) CredentialsSelect(w http.ResponseWriter, r *http.Request) {
	var req credentialSelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := a.Creds.Select(req.APIKey); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"selected": true})
}
