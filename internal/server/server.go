// Package server implements the entity operations behind the tool surface:
// create / get / list / update / pause for campaigns, ad sets and ads, plus
// ad creatives and read-only ad accounts. Every operation maps to one Graph
// API round trip, except create (create then fetch) and ad creation
// (creative then ad, strictly sequential).
package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/adstack/meta-ads-agent/internal/api"
	"github.com/adstack/meta-ads-agent/internal/apierr"
	"github.com/adstack/meta-ads-agent/internal/graph"
)

// Field allowlists requested per entity kind. These are fixed, explicit
// sets: downstream consumers depend on exactly these keys being present.
const (
	campaignFields = "id,name,objective,status,effective_status,special_ad_categories," +
		"daily_budget,lifetime_budget,budget_remaining,spend_cap,buying_type,bid_strategy," +
		"promoted_object,start_time,stop_time,created_time,updated_time"

	adSetFields = "id,name,status,effective_status,campaign_id,daily_budget,lifetime_budget," +
		"budget_remaining,bid_amount,billing_event,optimization_goal,targeting,promoted_object," +
		"start_time,end_time,created_time,updated_time"

	adFields = "id,name,status,effective_status,adset_id,campaign_id,creative,tracking_specs," +
		"created_time,updated_time"

	creativeFields = "id,name,title,body,link_url,image_url,call_to_action_type," +
		"object_story_spec,status"

	accountFields = "id,account_id,name,account_status,currency,amount_spent,balance," +
		"spend_cap,timezone_name,business_name"
)

// Server binds the transport and the configured ad account to every entity
// operation. It is immutable after construction and safe to share across
// concurrent calls.
type Server struct {
	Graph     graph.Caller
	AccountID string
	Logger    *slog.Logger
}

// New validates credentials and constructs the server. Missing token or
// account id fails immediately, before any network call.
func New(accessToken, accountID, baseURL string, logger *slog.Logger) (*Server, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, apierr.InvalidCredentials("missing Meta access token")
	}
	if strings.TrimSpace(accountID) == "" {
		return nil, apierr.InvalidCredentials("missing Meta ad account id")
	}
	return &Server{
		Graph:     graph.NewClient(baseURL, accessToken, logger),
		AccountID: strings.TrimPrefix(accountID, "act_"),
		Logger:    logger,
	}, nil
}

// actPath builds an ad-account-scoped resource path.
func (s *Server) actPath(resource string) string {
	return "act_" + s.AccountID + "/" + resource
}

// createThenFetch issues the create call, then immediately fetches the full
// record for the new id. The bare create acknowledgment is never returned:
// the fetched record is the authoritative snapshot. If the follow-up fetch
// fails the entity exists remotely but the caller sees a failure; there is
// no rollback.
func (s *Server) createThenFetch(ctx context.Context, op, path string, params graph.Params, fields string) (*api.CreateResult, error) {
	resp, err := s.Graph.Post(ctx, path, params)
	if err != nil {
		return nil, apierr.Classify(op, err)
	}
	id, _ := resp["id"].(string)
	if id == "" {
		return nil, apierr.Classify(op, fmt.Errorf("create response missing id"))
	}
	record, err := s.Graph.Get(ctx, id, graph.Params{"fields": fields})
	if err != nil {
		return nil, apierr.Classify(op, err)
	}
	return &api.CreateResult{Success: true, ID: id, Data: record}, nil
}

// fetchOne gets a single record by id with a fixed field list.
func (s *Server) fetchOne(ctx context.Context, op, id, fields string) (api.Record, error) {
	record, err := s.Graph.Get(ctx, id, graph.Params{"fields": fields})
	if err != nil {
		return nil, apierr.Classify(op, err)
	}
	return record, nil
}

// fetchMany gets a collection. Unlike every other operation it degrades on
// failure: remote errors and an absent data array both yield an empty slice,
// since an empty collection is a valid outcome in list-then-branch usage.
func (s *Server) fetchMany(ctx context.Context, op, path, fields string, opts api.ListOptions) []api.Record {
	params := graph.Params{"fields": fields}
	if opts.Limit > 0 {
		params["limit"] = opts.Limit
	}
	if len(opts.EffectiveStatus) > 0 {
		statuses := make([]any, len(opts.EffectiveStatus))
		for i, st := range opts.EffectiveStatus {
			statuses[i] = st
		}
		params["effective_status"] = statuses
	}
	resp, err := s.Graph.Get(ctx, path, params)
	if err != nil {
		s.Logger.Warn("list operation degraded to empty result", "operation", op, "error", err)
		return []api.Record{}
	}
	return extractData(resp)
}

func extractData(resp map[string]any) []api.Record {
	raw, ok := resp["data"].([]any)
	if !ok {
		return []api.Record{}
	}
	records := make([]api.Record, 0, len(raw))
	for _, item := range raw {
		if rec, ok := item.(map[string]any); ok {
			records = append(records, rec)
		}
	}
	return records
}

// mutateThenFetch submits a sparse mutation, discards the acknowledgment and
// returns a fresh snapshot of the record.
func (s *Server) mutateThenFetch(ctx context.Context, op, id string, params graph.Params, fields string) (api.Record, error) {
	if len(params) == 0 {
		return nil, apierr.Classify(op, apierr.Validation("no fields to update"))
	}
	if _, err := s.Graph.Post(ctx, id, params); err != nil {
		return nil, apierr.Classify(op, err)
	}
	return s.fetchOne(ctx, op, id, fields)
}

// pause sets status=PAUSED and reports success as a bool. A failing pause
// resolves to false rather than an error.
func (s *Server) pause(ctx context.Context, op, id string) bool {
	if _, err := s.Graph.Post(ctx, id, graph.Params{"status": "PAUSED"}); err != nil {
		s.Logger.Warn("pause degraded to false", "operation", op, "id", id, "error", err)
		return false
	}
	return true
}

// defaultStatus applies the PAUSED-by-default creation policy: entities only
// go live through an explicit status or a later update.
func defaultStatus(status string) string {
	if status == "" {
		return "PAUSED"
	}
	return status
}
