package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/adstack/meta-ads-agent/internal/api"
	"github.com/adstack/meta-ads-agent/internal/graph"
	"github.com/adstack/meta-ads-agent/internal/server"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
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

func newTestHandler(respond func(method, path string, params graph.Params) (map[string]any, error)) *MCPHandler {
	return NewMCPHandler(&server.Server{
		Graph:     &scriptedGraph{respond: respond},
		AccountID: "1",
		Logger:    slog.New(slog.DiscardHandler),
	})
}

func TestHandleCreateCampaign(t *testing.T) {
	h := newTestHandler(func(method, _ string, _ graph.Params) (map[string]any, error) {
		if method == "POST" {
			return map[string]any{"id": "999"}, nil
		}
		return map[string]any{"id": "999", "name": "Launch"}, nil
	})

	result, out, err := h.HandleCreateCampaign(context.Background(), nil, api.CampaignConfig{
		Name:                "Launch",
		Objective:           "OUTCOME_TRAFFIC",
		SpecialAdCategories: []string{},
	})
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.True(t, out.Success)
	assert.Equal(t, "999", out.ID)
	assert.Equal(t, "Launch", out.Data["name"])
}

func TestHandleCreateCampaignValidationEnvelope(t *testing.T) {
	h := newTestHandler(func(string, string, graph.Params) (map[string]any, error) {
		t.Fatal("no network call expected")
		return nil, nil
	})

	result, _, err := h.HandleCreateCampaign(context.Background(), nil, api.CampaignConfig{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	require.Len(t, result.Content, 1)
	text := result.Content[0].(*sdk.TextContent).Text

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Kind)
	assert.Contains(t, resp.Error, "Error: create campaign:")
}

func TestHandleGetCampaignsNeverErrors(t *testing.T) {
	h := newTestHandler(func(string, string, graph.Params) (map[string]any, error) {
		return nil, &graph.Error{Message: "backend down", HTTPStatus: 500}
	})

	result, out, err := h.HandleGetCampaigns(context.Background(), nil, api.ListOptions{})
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Empty(t, out.Data)
	assert.NotNil(t, out.Data)
}

func TestHandlePauseCampaign(t *testing.T) {
	h := newTestHandler(func(method, path string, params graph.Params) (map[string]any, error) {
		return map[string]any{"success": true}, nil
	})

	result, out, err := h.HandlePauseCampaign(context.Background(), nil, campaignIDInput{CampaignID: "c_1"})
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.True(t, out.Success)
}

func TestHandleUpdateAdSparseEmbedding(t *testing.T) {
	var posted graph.Params
	h := newTestHandler(func(method, path string, params graph.Params) (map[string]any, error) {
		if method == "POST" {
			posted = params
			return map[string]any{"success": true}, nil
		}
		return map[string]any{"id": "a_7", "name": "Renamed"}, nil
	})

	name := "Renamed"
	_, out, err := h.HandleUpdateAd(context.Background(), nil, updateAdInput{
		AdID:     "a_7",
		AdUpdate: api.AdUpdate{Name: &name},
	})
	require.NoError(t, err)
	assert.Equal(t, graph.Params{"name": "Renamed"}, posted)
	assert.Equal(t, "Renamed", out.Data["name"])
}
