package server

import (
	"context"

	"github.com/adstack/meta-ads-agent/internal/api"
	"github.com/adstack/meta-ads-agent/internal/apierr"
	"github.com/adstack/meta-ads-agent/internal/graph"
	"github.com/adstack/meta-ads-agent/internal/naming"
)

func validateCreative(cfg api.CreativeConfig) error {
	if err := requireField(cfg.Title, "title"); err != nil {
		return err
	}
	if err := requireField(cfg.Body, "body"); err != nil {
		return err
	}
	return requireField(cfg.LinkURL, "linkUrl")
}

// creativeParams shapes a creative spec into request parameters. The
// object-story-spec is free-form camelCase and converted structurally.
func creativeParams(cfg api.CreativeConfig) graph.Params {
	params := graph.Params{
		"title":    cfg.Title,
		"body":     cfg.Body,
		"link_url": cfg.LinkURL,
	}
	if cfg.Name != "" {
		params["name"] = cfg.Name
	}
	if cfg.ImageURL != "" {
		params["image_url"] = cfg.ImageURL
	}
	if cfg.CallToActionType != "" {
		params["call_to_action_type"] = cfg.CallToActionType
	}
	if cfg.ObjectStorySpec != nil {
		spec := naming.MapToSnake(cfg.ObjectStorySpec)
		if cfg.PageID != "" {
			if _, ok := spec["page_id"]; !ok {
				spec["page_id"] = cfg.PageID
			}
		}
		params["object_story_spec"] = spec
	} else if cfg.PageID != "" {
		params["object_story_spec"] = map[string]any{
			"page_id": cfg.PageID,
			"link_data": map[string]any{
				"link":    cfg.LinkURL,
				"message": cfg.Body,
				"name":    cfg.Title,
			},
		}
	}
	return params
}

// CreateAdCreative validates the spec, creates the creative and returns the
// freshly fetched record.
func (s *Server) CreateAdCreative(ctx context.Context, cfg api.CreativeConfig) (*api.CreateResult, error) {
	const op = "create ad creative"
	if err := validateCreative(cfg); err != nil {
		return nil, apierr.Classify(op, err)
	}
	return s.createThenFetch(ctx, op, s.actPath("adcreatives"), creativeParams(cfg), creativeFields)
}

// GetAdCreative fetches a single creative by id.
func (s *Server) GetAdCreative(ctx context.Context, id string) (api.Record, error) {
	const op = "get ad creative"
	if err := requireField(id, "creativeId"); err != nil {
		return nil, apierr.Classify(op, err)
	}
	return s.fetchOne(ctx, op, id, creativeFields)
}
