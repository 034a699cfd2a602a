package server

import (
	"context"
	"strings"

	"github.com/adstack/meta-ads-agent/internal/api"
)

// GetAdAccounts lists the ad accounts reachable with the configured token.
// Accounts are read-only: they are enumerated, never created. Failures
// degrade to an empty slice.
func (s *Server) GetAdAccounts(ctx context.Context, opts api.ListOptions) []api.Record {
	return s.fetchMany(ctx, "get ad accounts", "me/adaccounts", accountFields, opts)
}

// GetAdAccount fetches a single ad account. An empty id falls back to the
// configured account. Bare numeric ids are accepted and prefixed.
func (s *Server) GetAdAccount(ctx context.Context, id string) (api.Record, error) {
	const op = "get ad account"
	if id == "" {
		id = s.AccountID
	}
	if !strings.HasPrefix(id, "act_") {
		id = "act_" + id
	}
	return s.fetchOne(ctx, op, id, accountFields)
}
