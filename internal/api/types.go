// Package api defines the tool-facing request and response shapes. Inbound
// configuration uses camelCase field names (the tool caller convention);
// records fetched from the Marketing API are returned with their native
// snake_case keys, largely unmodified.
package api

// Record is a raw entity snapshot as fetched from the Marketing API.
type Record = map[string]any

// CreateResult is returned by every create operation: the remote-assigned id
// plus the full record fetched immediately after creation.
type CreateResult struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Data    Record `json:"data"`
}

// ListOptions narrows get-many operations.
type ListOptions struct {
	Limit           int      `json:"limit,omitempty"`
	EffectiveStatus []string `json:"effectiveStatus,omitempty"`
}

// CampaignConfig is the creation payload for a campaign. Budgets are
// integers in the smallest currency unit. Daily and lifetime budgets are
// mutually exclusive; a lifetime budget requires StopTime.
type CampaignConfig struct {
	Name                string         `json:"name"`
	Objective           string         `json:"objective"`
	Status              string         `json:"status,omitempty"`
	SpecialAdCategories []string       `json:"specialAdCategories"`
	DailyBudget         *int64         `json:"dailyBudget,omitempty"`
	LifetimeBudget      *int64         `json:"lifetimeBudget,omitempty"`
	SpendCap            *int64         `json:"spendCap,omitempty"`
	BuyingType          string         `json:"buyingType,omitempty"`
	BidStrategy         string         `json:"bidStrategy,omitempty"`
	StartTime           string         `json:"startTime,omitempty"`
	StopTime            string         `json:"stopTime,omitempty"`
	PromotedObject      map[string]any `json:"promotedObject,omitempty"`
}

// CampaignUpdate carries only the fields the caller wants changed; nil
// fields are never written to the remote record.
type CampaignUpdate struct {
	Name                *string  `json:"name,omitempty"`
	Status              *string  `json:"status,omitempty"`
	DailyBudget         *int64   `json:"dailyBudget,omitempty"`
	LifetimeBudget      *int64   `json:"lifetimeBudget,omitempty"`
	SpendCap            *int64   `json:"spendCap,omitempty"`
	BidStrategy         *string  `json:"bidStrategy,omitempty"`
	StopTime            *string  `json:"stopTime,omitempty"`
	SpecialAdCategories []string `json:"specialAdCategories,omitempty"`
}

// AdSetConfig is the creation payload for an ad set. Targeting is a
// free-form camelCase structure converted to snake_case before submission.
type AdSetConfig struct {
	Name             string           `json:"name"`
	CampaignID       string           `json:"campaignId"`
	Status           string           `json:"status,omitempty"`
	DailyBudget      *int64           `json:"dailyBudget,omitempty"`
	LifetimeBudget   *int64           `json:"lifetimeBudget,omitempty"`
	BidAmount        *int64           `json:"bidAmount,omitempty"`
	BillingEvent     string           `json:"billingEvent,omitempty"`
	OptimizationGoal string           `json:"optimizationGoal,omitempty"`
	StartTime        string           `json:"startTime,omitempty"`
	EndTime          string           `json:"endTime,omitempty"`
	Targeting        map[string]any   `json:"targeting"`
	PromotedObject   map[string]any   `json:"promotedObject,omitempty"`
	AdSchedules      []map[string]any `json:"adSchedules,omitempty"`
}

// AdSetUpdate carries only the fields the caller wants changed.
type AdSetUpdate struct {
	Name             *string        `json:"name,omitempty"`
	Status           *string        `json:"status,omitempty"`
	DailyBudget      *int64         `json:"dailyBudget,omitempty"`
	LifetimeBudget   *int64         `json:"lifetimeBudget,omitempty"`
	BidAmount        *int64         `json:"bidAmount,omitempty"`
	OptimizationGoal *string        `json:"optimizationGoal,omitempty"`
	EndTime          *string        `json:"endTime,omitempty"`
	Targeting        map[string]any `json:"targeting,omitempty"`
}

// CreativeConfig is the creation payload for an ad creative. ObjectStorySpec
// is free-form camelCase, converted to snake_case before submission.
type CreativeConfig struct {
	Name             string         `json:"name,omitempty"`
	Title            string         `json:"title"`
	Body             string         `json:"body"`
	LinkURL          string         `json:"linkUrl"`
	ImageURL         string         `json:"imageUrl,omitempty"`
	PageID           string         `json:"pageId,omitempty"`
	CallToActionType string         `json:"callToActionType,omitempty"`
	ObjectStorySpec  map[string]any `json:"objectStorySpec,omitempty"`
}

// AdConfig is the creation payload for an ad. Exactly one of CreativeID and
// Creative must be set: an existing creative reference, or a full creative
// spec created first and consumed by the ad.
type AdConfig struct {
	Name          string           `json:"name"`
	AdSetID       string           `json:"adSetId"`
	Status        string           `json:"status,omitempty"`
	CreativeID    string           `json:"creativeId,omitempty"`
	Creative      *CreativeConfig  `json:"creative,omitempty"`
	TrackingSpecs []map[string]any `json:"trackingSpecs,omitempty"`
}

// AdUpdate carries only the fields the caller wants changed.
type AdUpdate struct {
	Name          *string          `json:"name,omitempty"`
	Status        *string          `json:"status,omitempty"`
	CreativeID    *string          `json:"creativeId,omitempty"`
	TrackingSpecs []map[string]any `json:"trackingSpecs,omitempty"`
}

// ErrorResponse is the uniform error envelope surfaced to tool callers and
// HTTP clients.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Code  int    `json:"code,omitempty"`
	Hint  string `json:"hint,omitempty"`
}
