package server

import (
	"context"
	"errors"
	"testing"

	"github.com/adstack/meta-ads-agent/internal/api"
	"github.com/adstack/meta-ads-agent/internal/apierr"
	"github.com/adstack/meta-ads-agent/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAdSetConvertsTargeting(t *testing.T) {
	fake := &fakeGraph{respond: func(method, _ string, _ graph.Params) (map[string]any, error) {
		if method == "POST" {
			return map[string]any{"id": "as_1"}, nil
		}
		return map[string]any{"id": "as_1"}, nil
	}}
	srv := newTestServer(fake)

	_, err := srv.CreateAdSet(context.Background(), api.AdSetConfig{
		Name:        "Set",
		CampaignID:  "c_1",
		DailyBudget: int64ptr(5000),
		Targeting: map[string]any{
			"geoLocations":         map[string]any{"countries": []any{"US"}},
			"ageMin":               18,
			"flexibleSpec":         []any{map[string]any{"interests": []any{map[string]any{"id": "6003"}}}},
			"excludedGeoLocations": map[string]any{"regions": []any{}},
		},
	})
	require.NoError(t, err)

	targeting, ok := fake.Calls[0].Params["targeting"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, targeting, "geo_locations")
	assert.Contains(t, targeting, "age_min")
	assert.Contains(t, targeting, "flexible_spec")
	assert.Contains(t, targeting, "excluded_geo_locations")

	// Array containers survive; only map elements inside are renamed.
	flexible, ok := targeting["flexible_spec"].([]any)
	require.True(t, ok)
	assert.Contains(t, flexible[0], "interests")
}

func TestCreateAdSetRequiresTargetingAndParent(t *testing.T) {
	fake := &fakeGraph{respond: func(string, string, graph.Params) (map[string]any, error) {
		t.Fatal("no network call expected")
		return nil, nil
	}}
	srv := newTestServer(fake)

	var cerr *apierr.Error

	_, err := srv.CreateAdSet(context.Background(), api.AdSetConfig{
		Name:      "Set",
		Targeting: map[string]any{"ageMin": 18},
	})
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, apierr.KindValidation, cerr.Kind)

	_, err = srv.CreateAdSet(context.Background(), api.AdSetConfig{
		Name:       "Set",
		CampaignID: "c_1",
	})
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, apierr.KindValidation, cerr.Kind)
	assert.Empty(t, fake.Calls)
}

func TestCreateAdSetLifetimeBudgetNeedsEndTime(t *testing.T) {
	fake := &fakeGraph{respond: func(string, string, graph.Params) (map[string]any, error) {
		t.Fatal("no network call expected")
		return nil, nil
	}}
	srv := newTestServer(fake)

	_, err := srv.CreateAdSet(context.Background(), api.AdSetConfig{
		Name:           "Set",
		CampaignID:     "c_1",
		Targeting:      map[string]any{"ageMin": 18},
		LifetimeBudget: int64ptr(100000),
	})
	var cerr *apierr.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, apierr.KindValidation, cerr.Kind)
}

func TestGetAdSetsScope(t *testing.T) {
	fake := &fakeGraph{respond: func(string, string, graph.Params) (map[string]any, error) {
		return map[string]any{"data": []any{}}, nil
	}}
	srv := newTestServer(fake)

	srv.GetAdSets(context.Background(), "c_9", api.ListOptions{})
	assert.Equal(t, "c_9/adsets", fake.Calls[0].Path)

	srv.GetAdSets(context.Background(), "", api.ListOptions{})
	assert.Equal(t, "act_1/adsets", fake.Calls[1].Path)
}

func TestGetAdAccountPrefix(t *testing.T) {
	fake := &fakeGraph{respond: func(string, string, graph.Params) (map[string]any, error) {
		return map[string]any{"id": "act_42"}, nil
	}}
	srv := newTestServer(fake)

	_, err := srv.GetAdAccount(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "act_42", fake.Calls[0].Path)

	// Empty id falls back to the configured account.
	_, err = srv.GetAdAccount(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "act_1", fake.Calls[1].Path)
}

func TestGetAdAccountsDegrades(t *testing.T) {
	fake := &fakeGraph{respond: func(string, string, graph.Params) (map[string]any, error) {
		return nil, errors.New("token expired")
	}}
	srv := newTestServer(fake)
	assert.Empty(t, srv.GetAdAccounts(context.Background(), api.ListOptions{}))
}
