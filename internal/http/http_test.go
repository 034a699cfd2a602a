package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adstack/meta-ads-agent/internal/graph"
	"github.com/adstack/meta-ads-agent/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedGraph struct {
	respond func(method, path string, params graph.Params) (map[string]any, error)
}

func (s *scriptedGraph) Get(_ context.Context, path string, params graph.Params) (map[string]any, error) {
	return s.respond("GET", path, params)
}

func (s *scriptedGraph) Post(_ context.Context, path string, params graph.Params) (map[string]any, error) {
	return s.respond("POST", path, params)
}

func newTestHandler(respond func(method, path string, params graph.Params) (map[string]any, error)) *HTTPHandler {
	return NewHTTPHandler(&server.Server{
		Graph:     &scriptedGraph{respond: respond},
		AccountID: "1",
		Logger:    slog.New(slog.DiscardHandler),
	})
}

func TestCreateCampaignHandlerValidationError(t *testing.T) {
	h := newTestHandler(func(string, string, graph.Params) (map[string]any, error) {
		t.Fatal("no network call expected")
		return nil, nil
	})

	body := `{"name":"","objective":"REACH","specialAdCategories":[]}`
	req := httptest.NewRequest(http.MethodPost, "/create_campaign", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateCampaignHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestCreateCampaignHandlerSuccess(t *testing.T) {
	h := newTestHandler(func(method, _ string, _ graph.Params) (map[string]any, error) {
		if method == "POST" {
			return map[string]any{"id": "999"}, nil
		}
		return map[string]any{"id": "999", "name": "Test"}, nil
	})

	body := `{"name":"Test","objective":"REACH","specialAdCategories":[]}`
	req := httptest.NewRequest(http.MethodPost, "/create_campaign", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateCampaignHandler(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"999"`)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestCreateCampaignHandlerRejectsUnknownFields(t *testing.T) {
	h := newTestHandler(func(string, string, graph.Params) (map[string]any, error) {
		t.Fatal("no network call expected")
		return nil, nil
	})

	req := httptest.NewRequest(http.MethodPost, "/create_campaign", strings.NewReader(`{"nope":1}`))
	rec := httptest.NewRecorder()

	h.CreateCampaignHandler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCampaignHandlerMethodNotAllowed(t *testing.T) {
	h := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/create_campaign", nil)
	rec := httptest.NewRecorder()

	h.CreateCampaignHandler(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGetCampaignsHandlerDegrades(t *testing.T) {
	h := newTestHandler(func(string, string, graph.Params) (map[string]any, error) {
		return nil, &graph.Error{Message: "boom", HTTPStatus: 500}
	})

	req := httptest.NewRequest(http.MethodGet, "/get_campaigns", nil)
	rec := httptest.NewRecorder()

	h.GetCampaignsHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestHealthHandler(t *testing.T) {
	h := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.HealthHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "act_1")
}
