// Package http mirrors the tool surface over plain REST endpoints, one
// endpoint per tool, plus a health probe. Handlers forward to the server
// package and translate classified errors into the shared error envelope.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/adstack/meta-ads-agent/internal/api"
	"github.com/adstack/meta-ads-agent/internal/apierr"
	"github.com/adstack/meta-ads-agent/internal/server"
)

// HTTPHandler wraps the server and provides HTTP handlers
type HTTPHandler struct {
	srv *server.Server
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(srv *server.Server) *HTTPHandler {
	return &HTTPHandler{srv: srv}
}

func decodeBody[T any](r *http.Request) (T, error) {
	var payload T
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		return payload, err
	}
	return payload, nil
}

func (h *HTTPHandler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.srv.Logger.Error("encode response failed", "error", err)
	}
}

// writeError maps a classified error onto an HTTP status and the shared
// envelope.
func (h *HTTPHandler) writeError(w http.ResponseWriter, err error) {
	resp := api.ErrorResponse{Error: err.Error()}
	status := http.StatusBadGateway

	var cerr *apierr.Error
	if errors.As(err, &cerr) {
		resp.Kind = string(cerr.Kind)
		if cerr.Diag != nil {
			resp.Code = cerr.Diag.Code
			resp.Hint = cerr.Diag.Hint
		}
		switch cerr.Kind {
		case apierr.KindValidation:
			status = http.StatusBadRequest
		case apierr.KindInvalidCredentials:
			status = http.StatusUnauthorized
		case apierr.KindRateLimit:
			status = http.StatusTooManyRequests
		}
	}
	h.writeJSON(w, status, resp)
}

func (h *HTTPHandler) badRequest(w http.ResponseWriter, message string) {
	h.writeJSON(w, http.StatusBadRequest, api.ErrorResponse{
		Error: message,
		Kind:  string(apierr.KindValidation),
	})
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func listOptionsFromQuery(r *http.Request) api.ListOptions {
	opts := api.ListOptions{}
	q := r.URL.Query()
	if limit := q.Get("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			opts.Limit = n
		}
	}
	if statuses, ok := q["effective_status"]; ok {
		opts.EffectiveStatus = statuses
	}
	return opts
}

// Campaign endpoints

func (h *HTTPHandler) CreateCampaignHandler(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	cfg, err := decodeBody[api.CampaignConfig](r)
	if err != nil {
		h.badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	res, err := h.srv.CreateCampaign(r.Context(), cfg)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, res)
}

func (h *HTTPHandler) GetCampaignHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := h.srv.GetCampaign(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *HTTPHandler) GetCampaignsHandler(w http.ResponseWriter, r *http.Request) {
	records := h.srv.GetCampaigns(r.Context(), listOptionsFromQuery(r))
	h.writeJSON(w, http.StatusOK, map[string]any{"data": records})
}

func (h *HTTPHandler) UpdateCampaignHandler(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	upd, err := decodeBody[api.CampaignUpdate](r)
	if err != nil {
		h.badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	rec, err := h.srv.UpdateCampaign(r.Context(), r.URL.Query().Get("id"), upd)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *HTTPHandler) PauseCampaignHandler(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	ok := h.srv.PauseCampaign(r.Context(), r.URL.Query().Get("id"))
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": ok})
}

// Ad set endpoints

func (h *HTTPHandler) CreateAdSetHandler(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	cfg, err := decodeBody[api.AdSetConfig](r)
	if err != nil {
		h.badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	res, err := h.srv.CreateAdSet(r.Context(), cfg)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, res)
}

func (h *HTTPHandler) GetAdSetHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := h.srv.GetAdSet(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *HTTPHandler) GetAdSetsHandler(w http.ResponseWriter, r *http.Request) {
	records := h.srv.GetAdSets(r.Context(), r.URL.Query().Get("campaign_id"), listOptionsFromQuery(r))
	h.writeJSON(w, http.StatusOK, map[string]any{"data": records})
}

func (h *HTTPHandler) UpdateAdSetHandler(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	upd, err := decodeBody[api.AdSetUpdate](r)
	if err != nil {
		h.badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	rec, err := h.srv.UpdateAdSet(r.Context(), r.URL.Query().Get("id"), upd)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *HTTPHandler) PauseAdSetHandler(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	ok := h.srv.PauseAdSet(r.Context(), r.URL.Query().Get("id"))
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": ok})
}

// Ad endpoints

func (h *HTTPHandler) CreateAdHandler(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	cfg, err := decodeBody[api.AdConfig](r)
	if err != nil {
		h.badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	res, err := h.srv.CreateAd(r.Context(), cfg)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, res)
}

func (h *HTTPHandler) GetAdHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := h.srv.GetAd(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *HTTPHandler) GetAdsHandler(w http.ResponseWriter, r *http.Request) {
	records := h.srv.GetAds(r.Context(), r.URL.Query().Get("adset_id"), listOptionsFromQuery(r))
	h.writeJSON(w, http.StatusOK, map[string]any{"data": records})
}

func (h *HTTPHandler) UpdateAdHandler(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	upd, err := decodeBody[api.AdUpdate](r)
	if err != nil {
		h.badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	rec, err := h.srv.UpdateAd(r.Context(), r.URL.Query().Get("id"), upd)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *HTTPHandler) PauseAdHandler(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	ok := h.srv.PauseAd(r.Context(), r.URL.Query().Get("id"))
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": ok})
}

// Creative endpoints

func (h *HTTPHandler) CreateAdCreativeHandler(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	cfg, err := decodeBody[api.CreativeConfig](r)
	if err != nil {
		h.badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	res, err := h.srv.CreateAdCreative(r.Context(), cfg)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, res)
}

func (h *HTTPHandler) GetAdCreativeHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := h.srv.GetAdCreative(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

// Account endpoints

func (h *HTTPHandler) GetAdAccountsHandler(w http.ResponseWriter, r *http.Request) {
	records := h.srv.GetAdAccounts(r.Context(), listOptionsFromQuery(r))
	h.writeJSON(w, http.StatusOK, map[string]any{"data": records})
}

func (h *HTTPHandler) GetAdAccountHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := h.srv.GetAdAccount(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *HTTPHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"agent":   "Meta Ads Agent",
		"account": "act_" + h.srv.AccountID,
	})
}
