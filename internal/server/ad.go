package server

import (
	"context"
	"fmt"

	"github.com/adstack/meta-ads-agent/internal/api"
	"github.com/adstack/meta-ads-agent/internal/apierr"
	"github.com/adstack/meta-ads-agent/internal/graph"
)

// CreateAd validates the configuration and creates the ad. When a full
// creative spec is supplied it is created first as its own resource; the
// resulting creative id is then referenced by the ad. The two calls are
// strictly sequential and not transactional: a creative created here is not
// cleaned up if the subsequent ad creation fails.
func (s *Server) CreateAd(ctx context.Context, cfg api.AdConfig) (*api.CreateResult, error) {
	const op = "create ad"

	if err := requireField(cfg.Name, "name"); err != nil {
		return nil, apierr.Classify(op, err)
	}
	if err := requireField(cfg.AdSetID, "adSetId"); err != nil {
		return nil, apierr.Classify(op, err)
	}
	if cfg.CreativeID == "" && cfg.Creative == nil {
		return nil, apierr.Classify(op, apierr.Validation("one of creativeId or creative is required"))
	}
	if cfg.CreativeID != "" && cfg.Creative != nil {
		return nil, apierr.Classify(op, apierr.Validation("creativeId and creative are mutually exclusive"))
	}

	creativeID := cfg.CreativeID
	if cfg.Creative != nil {
		if err := validateCreative(*cfg.Creative); err != nil {
			return nil, apierr.Classify(op, err)
		}
		resp, err := s.Graph.Post(ctx, s.actPath("adcreatives"), creativeParams(*cfg.Creative))
		if err != nil {
			return nil, apierr.Classify("create ad creative", err)
		}
		id, _ := resp["id"].(string)
		if id == "" {
			return nil, apierr.Classify("create ad creative", fmt.Errorf("create response missing id"))
		}
		creativeID = id
	}

	params := graph.Params{
		"name":     cfg.Name,
		"adset_id": cfg.AdSetID,
		"status":   defaultStatus(cfg.Status),
		"creative": map[string]any{"creative_id": creativeID},
	}
	if len(cfg.TrackingSpecs) > 0 {
		specs := make([]any, len(cfg.TrackingSpecs))
		for i, spec := range cfg.TrackingSpecs {
			specs[i] = spec
		}
		params["tracking_specs"] = specs
	}

	return s.createThenFetch(ctx, op, s.actPath("ads"), params, adFields)
}

// GetAd fetches a single ad by id.
func (s *Server) GetAd(ctx context.Context, id string) (api.Record, error) {
	const op = "get ad"
	if err := requireField(id, "adId"); err != nil {
		return nil, apierr.Classify(op, err)
	}
	return s.fetchOne(ctx, op, id, adFields)
}

// GetAds lists ads under an ad set, or under the whole account when adSetID
// is empty. Failures degrade to an empty slice.
func (s *Server) GetAds(ctx context.Context, adSetID string, opts api.ListOptions) []api.Record {
	path := s.actPath("ads")
	if adSetID != "" {
		path = adSetID + "/ads"
	}
	return s.fetchMany(ctx, "get ads", path, adFields, opts)
}

// UpdateAd submits only the fields present in the update, then returns the
// post-mutation snapshot.
func (s *Server) UpdateAd(ctx context.Context, id string, upd api.AdUpdate) (api.Record, error) {
	const op = "update ad"
	if err := requireField(id, "adId"); err != nil {
		return nil, apierr.Classify(op, err)
	}

	params := graph.Params{}
	if upd.Name != nil {
		params["name"] = *upd.Name
	}
	if upd.Status != nil {
		params["status"] = *upd.Status
	}
	if upd.CreativeID != nil {
		params["creative"] = map[string]any{"creative_id": *upd.CreativeID}
	}
	if len(upd.TrackingSpecs) > 0 {
		specs := make([]any, len(upd.TrackingSpecs))
		for i, spec := range upd.TrackingSpecs {
			specs[i] = spec
		}
		params["tracking_specs"] = specs
	}

	return s.mutateThenFetch(ctx, op, id, params, adFields)
}

// PauseAd pauses an ad, reporting success as a bool.
func (s *Server) PauseAd(ctx context.Context, id string) bool {
	return s.pause(ctx, "pause ad", id)
}
