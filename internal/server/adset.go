package server

import (
	"context"

	"github.com/adstack/meta-ads-agent/internal/api"
	"github.com/adstack/meta-ads-agent/internal/apierr"
	"github.com/adstack/meta-ads-agent/internal/graph"
	"github.com/adstack/meta-ads-agent/internal/naming"
)

// CreateAdSet validates the configuration, creates the ad set and returns
// the freshly fetched record. The targeting spec arrives in camelCase and is
// converted to the API's snake_case keys structurally.
func (s *Server) CreateAdSet(ctx context.Context, cfg api.AdSetConfig) (*api.CreateResult, error) {
	const op = "create ad set"

	if err := requireField(cfg.Name, "name"); err != nil {
		return nil, apierr.Classify(op, err)
	}
	if err := requireField(cfg.CampaignID, "campaignId"); err != nil {
		return nil, apierr.Classify(op, err)
	}
	if len(cfg.Targeting) == 0 {
		return nil, apierr.Classify(op, apierr.Validation("targeting is required"))
	}
	if err := validateBudget(cfg.DailyBudget, cfg.LifetimeBudget, cfg.EndTime, "endTime"); err != nil {
		return nil, apierr.Classify(op, err)
	}

	params := graph.Params{
		"name":        cfg.Name,
		"campaign_id": cfg.CampaignID,
		"status":      defaultStatus(cfg.Status),
		"targeting":   naming.MapToSnake(cfg.Targeting),
	}
	if cfg.DailyBudget != nil {
		params["daily_budget"] = *cfg.DailyBudget
	}
	if cfg.LifetimeBudget != nil {
		params["lifetime_budget"] = *cfg.LifetimeBudget
	}
	if cfg.BidAmount != nil {
		params["bid_amount"] = *cfg.BidAmount
	}
	if cfg.BillingEvent != "" {
		params["billing_event"] = cfg.BillingEvent
	}
	if cfg.OptimizationGoal != "" {
		params["optimization_goal"] = cfg.OptimizationGoal
	}
	if cfg.StartTime != "" {
		params["start_time"] = cfg.StartTime
	}
	if cfg.EndTime != "" {
		params["end_time"] = cfg.EndTime
	}
	if cfg.PromotedObject != nil {
		params["promoted_object"] = naming.MapToSnake(cfg.PromotedObject)
	}
	if len(cfg.AdSchedules) > 0 {
		schedules := make([]any, len(cfg.AdSchedules))
		for i, sched := range cfg.AdSchedules {
			schedules[i] = naming.MapToSnake(sched)
		}
		params["adset_schedule"] = schedules
	}

	return s.createThenFetch(ctx, op, s.actPath("adsets"), params, adSetFields)
}

// GetAdSet fetches a single ad set by id.
func (s *Server) GetAdSet(ctx context.Context, id string) (api.Record, error) {
	const op = "get ad set"
	if err := requireField(id, "adSetId"); err != nil {
		return nil, apierr.Classify(op, err)
	}
	return s.fetchOne(ctx, op, id, adSetFields)
}

// GetAdSets lists ad sets under a campaign, or under the whole account when
// campaignID is empty. Failures degrade to an empty slice.
func (s *Server) GetAdSets(ctx context.Context, campaignID string, opts api.ListOptions) []api.Record {
	path := s.actPath("adsets")
	if campaignID != "" {
		path = campaignID + "/adsets"
	}
	return s.fetchMany(ctx, "get ad sets", path, adSetFields, opts)
}

// UpdateAdSet submits only the fields present in the update, then returns
// the post-mutation snapshot.
func (s *Server) UpdateAdSet(ctx context.Context, id string, upd api.AdSetUpdate) (api.Record, error) {
	const op = "update ad set"
	if err := requireField(id, "adSetId"); err != nil {
		return nil, apierr.Classify(op, err)
	}
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
	if upd.BidAmount != nil {
		params["bid_amount"] = *upd.BidAmount
	}
	if upd.OptimizationGoal != nil {
		params["optimization_goal"] = *upd.OptimizationGoal
	}
	if upd.EndTime != nil {
		params["end_time"] = *upd.EndTime
	}
	if upd.Targeting != nil {
		params["targeting"] = naming.MapToSnake(upd.Targeting)
	}

	return s.mutateThenFetch(ctx, op, id, params, adSetFields)
}

// PauseAdSet pauses an ad set, reporting success as a bool.
func (s *Server) PauseAdSet(ctx context.Context, id string) bool {
	return s.pause(ctx, "pause ad set", id)
}
