package server

import (
	"context"

	"github.com/adstack/meta-ads-agent/internal/api"
	"github.com/adstack/meta-ads-agent/internal/apierr"
	"github.com/adstack/meta-ads-agent/internal/graph"
	"github.com/adstack/meta-ads-agent/internal/naming"
)

// CreateCampaign validates the configuration, creates the campaign and
// returns the freshly fetched record.
func (s *Server) CreateCampaign(ctx context.Context, cfg api.CampaignConfig) (*api.CreateResult, error) {
	const op = "create campaign"

	if err := requireField(cfg.Name, "name"); err != nil {
		return nil, apierr.Classify(op, err)
	}
	if err := requireField(cfg.Objective, "objective"); err != nil {
		return nil, apierr.Classify(op, err)
	}
	if err := validateBudget(cfg.DailyBudget, cfg.LifetimeBudget, cfg.StopTime, "stopTime"); err != nil {
		return nil, apierr.Classify(op, err)
	}

	// The API rejects a missing category list outright, so an absent list is
	// submitted as empty.
	categories := cfg.SpecialAdCategories
	if categories == nil {
		categories = []string{}
	}

	params := graph.Params{
		"name":                  cfg.Name,
		"objective":             cfg.Objective,
		"status":                defaultStatus(cfg.Status),
		"special_ad_categories": categories,
	}
	if cfg.DailyBudget != nil {
		params["daily_budget"] = *cfg.DailyBudget
	}
	if cfg.LifetimeBudget != nil {
		params["lifetime_budget"] = *cfg.LifetimeBudget
	}
	if cfg.SpendCap != nil {
		params["spend_cap"] = *cfg.SpendCap
	}
	if cfg.BuyingType != "" {
		params["buying_type"] = cfg.BuyingType
	}
	if cfg.BidStrategy != "" {
		params["bid_strategy"] = cfg.BidStrategy
	}
	if cfg.StartTime != "" {
		params["start_time"] = cfg.StartTime
	}
	if cfg.StopTime != "" {
		params["stop_time"] = cfg.StopTime
	}
	if cfg.PromotedObject != nil {
		params["promoted_object"] = naming.MapToSnake(cfg.PromotedObject)
	}

	return s.createThenFetch(ctx, op, s.actPath("campaigns"), params, campaignFields)
}

// GetCampaign fetches a single campaign by id.
func (s *Server) GetCampaign(ctx context.Context, id string) (api.Record, error) {
	const op = "get campaign"
	if err := requireField(id, "campaignId"); err != nil {
		return nil, apierr.Classify(op, err)
	}
	return s.fetchOne(ctx, op, id, campaignFields)
}

// GetCampaigns lists campaigns in the configured ad account. Failures
// degrade to an empty slice.
func (s *Server) GetCampaigns(ctx context.Context, opts api.ListOptions) []api.Record {
	return s.fetchMany(ctx, "get campaigns", s.actPath("campaigns"), campaignFields, opts)
}

// UpdateCampaign submits only the fields present in the update, then returns
// the post-mutation snapshot.
func (s *Server) UpdateCampaign(ctx context.Context, id string, upd api.CampaignUpdate) (api.Record, error) {
	const op = "update campaign"
	if err := requireField(id, "campaignId"); err != nil {
		return nil, apierr.Classify(op, err)
	}

	// Updates only check mutual exclusivity; the stop time may already be
	// set on the remote record.
	if upd.DailyBudget != nil && upd.LifetimeBudget != nil {
		return nil, apierr.Classify(op, apierr.Validation("dailyBudget and lifetimeBudget are mutually exclusive"))
	}

	params := graph.Params{}
	if upd.Name != nil {
		params["name"] = *upd.Name
	}
	if upd.Status != nil {
		params["status"] = *upd.Status
	}
	if upd.DailyBudget != nil {
		params["daily_budget"] = *upd.DailyBudget
	}
	if upd.LifetimeBudget != nil {
		params["lifetime_budget"] = *upd.LifetimeBudget
	}
	if upd.SpendCap != nil {
		params["spend_cap"] = *upd.SpendCap
	}
	if upd.BidStrategy != nil {
		params["bid_strategy"] = *upd.BidStrategy
	}
	if upd.StopTime != nil {
		params["stop_time"] = *upd.StopTime
	}
	if upd.SpecialAdCategories != nil {
		params["special_ad_categories"] = upd.SpecialAdCategories
	}

	return s.mutateThenFetch(ctx, op, id, params, campaignFields)
}

// PauseCampaign pauses a campaign, reporting success as a bool.
func (s *Server) PauseCampaign(ctx context.Context, id string) bool {
	return s.pause(ctx, "pause campaign", id)
}
