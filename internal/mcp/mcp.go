// Package mcp exposes the entity operations as MCP tools. Handlers only
// unwrap arguments and wrap results; all behavior lives in the server
// package.
package mcp

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/adstack/meta-ads-agent/internal/api"
	"github.com/adstack/meta-ads-agent/internal/apierr"
	"github.com/adstack/meta-ads-agent/internal/server"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPHandler wraps the server and provides MCP tool handlers
type MCPHandler struct {
	srv *server.Server
}

// NewMCPHandler creates a new MCP handler
func NewMCPHandler(srv *server.Server) *MCPHandler {
	return &MCPHandler{srv: srv}
}

type recordResponse struct {
	Data api.Record `json:"data"`
}

type listResponse struct {
	Data []api.Record `json:"data"`
}

type pauseResponse struct {
	Success bool `json:"success"`
}

type campaignIDInput struct {
	CampaignID string `json:"campaignId"`
}

type adSetIDInput struct {
	AdSetID string `json:"adSetId"`
}

type adIDInput struct {
	AdID string `json:"adId"`
}

type creativeIDInput struct {
	CreativeID string `json:"creativeId"`
}

type accountIDInput struct {
	AccountID string `json:"accountId,omitempty"`
}

type updateCampaignInput struct {
	CampaignID string `json:"campaignId"`
	api.CampaignUpdate
}

type updateAdSetInput struct {
	AdSetID string `json:"adSetId"`
	api.AdSetUpdate
}

type updateAdInput struct {
	AdID string `json:"adId"`
	api.AdUpdate
}

type listAdSetsInput struct {
	CampaignID string `json:"campaignId,omitempty"`
	api.ListOptions
}

type listAdsInput struct {
	AdSetID string `json:"adSetId,omitempty"`
	api.ListOptions
}

// errorResult serializes a classified error into the tool error envelope.
func (h *MCPHandler) errorResult(err error) (*sdk.CallToolResult, error) {
	resp := api.ErrorResponse{Error: "Error: " + err.Error()}
	var cerr *apierr.Error
	if errors.As(err, &cerr) {
		resp.Kind = string(cerr.Kind)
		if cerr.Diag != nil {
			resp.Code = cerr.Diag.Code
			resp.Hint = cerr.Diag.Hint
		}
	}
	data, mErr := json.Marshal(resp)
	if mErr != nil {
		return nil, mErr
	}
	return &sdk.CallToolResult{
		IsError: true,
		Content: []sdk.Content{
			&sdk.TextContent{Text: string(data)},
		},
	}, nil
}

// Campaign tools

func (h *MCPHandler) HandleCreateCampaign(ctx context.Context, _ *sdk.CallToolRequest, input api.CampaignConfig) (*sdk.CallToolResult, api.CreateResult, error) {
	res, err := h.srv.CreateCampaign(ctx, input)
	if err != nil {
		result, buildErr := h.errorResult(err)
		return result, api.CreateResult{}, buildErr
	}
	return nil, *res, nil
}

func (h *MCPHandler) HandleGetCampaign(ctx context.Context, _ *sdk.CallToolRequest, input campaignIDInput) (*sdk.CallToolResult, recordResponse, error) {
	rec, err := h.srv.GetCampaign(ctx, input.CampaignID)
	if err != nil {
		result, buildErr := h.errorResult(err)
		return result, recordResponse{}, buildErr
	}
	return nil, recordResponse{Data: rec}, nil
}

func (h *MCPHandler) HandleGetCampaigns(ctx context.Context, _ *sdk.CallToolRequest, input api.ListOptions) (*sdk.CallToolResult, listResponse, error) {
	return nil, listResponse{Data: h.srv.GetCampaigns(ctx, input)}, nil
}

func (h *MCPHandler) HandleUpdateCampaign(ctx context.Context, _ *sdk.CallToolRequest, input updateCampaignInput) (*sdk.CallToolResult, recordResponse, error) {
	rec, err := h.srv.UpdateCampaign(ctx, input.CampaignID, input.CampaignUpdate)
	if err != nil {
		result, buildErr := h.errorResult(err)
		return result, recordResponse{}, buildErr
	}
	return nil, recordResponse{Data: rec}, nil
}

func (h *MCPHandler) HandlePauseCampaign(ctx context.Context, _ *sdk.CallToolRequest, input campaignIDInput) (*sdk.CallToolResult, pauseResponse, error) {
	return nil, pauseResponse{Success: h.srv.PauseCampaign(ctx, input.CampaignID)}, nil
}

// Ad set tools

func (h *MCPHandler) HandleCreateAdSet(ctx context.Context, _ *sdk.CallToolRequest, input api.AdSetConfig) (*sdk.CallToolResult, api.CreateResult, error) {
	res, err := h.srv.CreateAdSet(ctx, input)
	if err != nil {
		result, buildErr := h.errorResult(err)
		return result, api.CreateResult{}, buildErr
	}
	return nil, *res, nil
}

func (h *MCPHandler) HandleGetAdSet(ctx context.Context, _ *sdk.CallToolRequest, input adSetIDInput) (*sdk.CallToolResult, recordResponse, error) {
	rec, err := h.srv.GetAdSet(ctx, input.AdSetID)
	if err != nil {
		result, buildErr := h.errorResult(err)
		return result, recordResponse{}, buildErr
	}
	return nil, recordResponse{Data: rec}, nil
}

func (h *MCPHandler) HandleGetAdSets(ctx context.Context, _ *sdk.CallToolRequest, input listAdSetsInput) (*sdk.CallToolResult, listResponse, error) {
	return nil, listResponse{Data: h.srv.GetAdSets(ctx, input.CampaignID, input.ListOptions)}, nil
}

func (h *MCPHandler) HandleUpdateAdSet(ctx context.Context, _ *sdk.CallToolRequest, input updateAdSetInput) (*sdk.CallToolResult, recordResponse, error) {
	rec, err := h.srv.UpdateAdSet(ctx, input.AdSetID, input.AdSetUpdate)
	if err != nil {
		result, buildErr := h.errorResult(err)
		return result, recordResponse{}, buildErr
	}
	return nil, recordResponse{Data: rec}, nil
}

func (h *MCPHandler) HandlePauseAdSet(ctx context.Context, _ *sdk.CallToolRequest, input adSetIDInput) (*sdk.CallToolResult, pauseResponse, error) {
	return nil, pauseResponse{Success: h.srv.PauseAdSet(ctx, input.AdSetID)}, nil
}

// Ad tools

func (h *MCPHandler) HandleCreateAd(ctx context.Context, _ *sdk.CallToolRequest, input api.AdConfig) (*sdk.CallToolResult, api.CreateResult, error) {
	res, err := h.srv.CreateAd(ctx, input)
	if err != nil {
		result, buildErr := h.errorResult(err)
		return result, api.CreateResult{}, buildErr
	}
	return nil, *res, nil
}

func (h *MCPHandler) HandleGetAd(ctx context.Context, _ *sdk.CallToolRequest, input adIDInput) (*sdk.CallToolResult, recordResponse, error) {
	rec, err := h.srv.GetAd(ctx, input.AdID)
	if err != nil {
		result, buildErr := h.errorResult(err)
		return result, recordResponse{}, buildErr
	}
	return nil, recordResponse{Data: rec}, nil
}

func (h *MCPHandler) HandleGetAds(ctx context.Context, _ *sdk.CallToolRequest, input listAdsInput) (*sdk.CallToolResult, listResponse, error) {
	return nil, listResponse{Data: h.srv.GetAds(ctx, input.AdSetID, input.ListOptions)}, nil
}

func (h *MCPHandler) HandleUpdateAd(ctx context.Context, _ *sdk.CallToolRequest, input updateAdInput) (*sdk.CallToolResult, recordResponse, error) {
	rec, err := h.srv.UpdateAd(ctx, input.AdID, input.AdUpdate)
	if err != nil {
		result, buildErr := h.errorResult(err)
		return result, recordResponse{}, buildErr
	}
	return nil, recordResponse{Data: rec}, nil
}

func (h *MCPHandler) HandlePauseAd(ctx context.Context, _ *sdk.CallToolRequest, input adIDInput) (*sdk.CallToolResult, pauseResponse, error) {
	return nil, pauseResponse{Success: h.srv.PauseAd(ctx, input.AdID)}, nil
}

// Creative tools

func (h *MCPHandler) HandleCreateAdCreative(ctx context.Context, _ *sdk.CallToolRequest, input api.CreativeConfig) (*sdk.CallToolResult, api.CreateResult, error) {
	res, err := h.srv.CreateAdCreative(ctx, input)
	if err != nil {
		result, buildErr := h.errorResult(err)
		return result, api.CreateResult{}, buildErr
	}
	return nil, *res, nil
}

func (h *MCPHandler) HandleGetAdCreative(ctx context.Context, _ *sdk.CallToolRequest, input creativeIDInput) (*sdk.CallToolResult, recordResponse, error) {
	rec, err := h.srv.GetAdCreative(ctx, input.CreativeID)
	if err != nil {
		result, buildErr := h.errorResult(err)
		return result, recordResponse{}, buildErr
	}
	return nil, recordResponse{Data: rec}, nil
}

// Account tools

func (h *MCPHandler) HandleGetAdAccounts(ctx context.Context, _ *sdk.CallToolRequest, input api.ListOptions) (*sdk.CallToolResult, listResponse, error) {
	return nil, listResponse{Data: h.srv.GetAdAccounts(ctx, input)}, nil
}

func (h *MCPHandler) HandleGetAdAccount(ctx context.Context, _ *sdk.CallToolRequest, input accountIDInput) (*sdk.CallToolResult, recordResponse, error) {
	rec, err := h.srv.GetAdAccount(ctx, input.AccountID)
	if err != nil {
		result, buildErr := h.errorResult(err)
		return result, recordResponse{}, buildErr
	}
	return nil, recordResponse{Data: rec}, nil
}

// RegisterTools registers all MCP tools with the server
func (h *MCPHandler) RegisterTools(mcpServer *sdk.Server) {
	sdk.AddTool(mcpServer, &sdk.Tool{
		Name:        "create_campaign",
		Description: "Create a new campaign in the configured ad account (created paused unless a status is given)",
	}, h.HandleCreateCampaign)

	sdk.AddTool(mcpServer, &sdk.Tool{
		Name:        "get_campaign",
		Description: "Get a campaign by id",
	}, h.HandleGetCampaign)

	sdk.AddTool(mcpServer, &sdk.Tool{
		Name:        "get_campaigns",
		Description: "List campaigns in the configured ad account",
	}, h.HandleGetCampaigns)

	sdk.AddTool(mcpServer, &sdk.Tool{
		Name:        "update_campaign",
		Description: "Update fields of an existing campaign and return the fresh record",
	}, h.HandleUpdateCampaign)

	sdk.AddTool(mcpServer, &sdk.Tool{
		Name:        "pause_campaign",
		Description: "Pause a campaign",
	}, h.HandlePauseCampaign)

	sdk.AddTool(mcpServer, &sdk.Tool{
		Name:        "create_ad_set",
		Description: "Create a new ad set under a campaign",
	}, h.HandleCreateAdSet)

	sdk.AddTool(mcpServer, &sdk.Tool{
		Name:        "get_ad_set",
		Description: "Get an ad set by id",
	}, h.HandleGetAdSet)

	sdk.AddTool(mcpServer, &sdk.Tool{
		Name:        "get_ad_sets",
		Description: "List ad sets under a campaign or the whole ad account",
	}, h.HandleGetAdSets)

	sdk.AddTool(mcpServer, &sdk.Tool{
		Name:        "update_ad_set",
		Description: "Update fields of an existing ad set and return the fresh record",
	}, h.HandleUpdateAdSet)

	sdk.AddTool(mcpServer, &sdk.Tool{
		Name:        "pause_ad_set",
		Description: "Pause an ad set",
	}, h.HandlePauseAdSet)

	sdk.AddTool(mcpServer, &sdk.Tool{
		Name:        "create_ad",
		Description: "Create a new ad, either referencing an existing creative or creating one from a spec first",
	}, h.HandleCreateAd)

	sdk.AddTool(mcpServer, &sdk.Tool{
		Name:        "get_ad",
		Description: "Get an ad by id",
	}, h.HandleGetAd)

	sdk.AddTool(mcpServer, &sdk.Tool{
		Name:        "get_ads",
		Description: "List ads under an ad set or the whole ad account",
	}, h.HandleGetAds)

	sdk.AddTool(mcpServer, &sdk.Tool{
		Name:        "update_ad",
		Description: "Update fields of an existing ad and return the fresh record",
	}, h.HandleUpdateAd)

	sdk.AddTool(mcpServer, &sdk.Tool{
		Name:        "pause_ad",
		Description: "Pause an ad",
	}, h.HandlePauseAd)

	sdk.AddTool(mcpServer, &sdk.Tool{
		Name:        "create_ad_creative",
		Description: "Create an ad creative from a spec",
	}, h.HandleCreateAdCreative)

	sdk.AddTool(mcpServer, &sdk.Tool{
		Name:        "get_ad_creative",
		Description: "Get an ad creative by id",
	}, h.HandleGetAdCreative)

	sdk.AddTool(mcpServer, &sdk.Tool{
		Name:        "get_ad_accounts",
		Description: "List ad accounts reachable with the configured token",
	}, h.HandleGetAdAccounts)

	sdk.AddTool(mcpServer, &sdk.Tool{
		Name:        "get_ad_account",
		Description: "Get ad account details (defaults to the configured account)",
	}, h.HandleGetAdAccount)
}
