package auth

import (
	"sync"
)

// APIKeyStore manages API keys and their associated principals
type APIKeyStore struct {
	mu   sync.RWMutex
	keys map[string]*Principal
}

// NewAPIKeyStore creates a new API key store
func NewAPIKeyStore() *APIKeyStore {
	return &APIKeyStore{
		keys: make(map[string]*Principal),
	}
}

// AddKey adds an API key with its associated principal
func (s *APIKeyStore) AddKey(apiKey string, principal *Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[apiKey] = principal
}

// GetPrincipal retrieves a principal by API key
func (s *APIKeyStore) GetPrincipal(apiKey string) (*Principal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	principal, ok := s.keys[apiKey]
	return principal, ok
}

// RemoveKey removes an API key
func (s *APIKeyStore) RemoveKey(apiKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, apiKey)
}

// FullAccessPrincipal builds a principal with read/write access to every
// resource the agent manages.
func FullAccessPrincipal(id string) *Principal {
	return &Principal{
		PrincipalID: id,
		Permissions: map[string][]Permission{
			"campaigns": {PermissionRead, PermissionWrite},
			"adsets":    {PermissionRead, PermissionWrite},
			"ads":       {PermissionRead, PermissionWrite},
			"creatives": {PermissionRead, PermissionWrite},
			"accounts":  {PermissionRead},
		},
	}
}

// ReadOnlyPrincipal builds a principal limited to read operations.
func ReadOnlyPrincipal(id string) *Principal {
	return &Principal{
		PrincipalID: id,
		Permissions: map[string][]Permission{
			"campaigns": {PermissionRead},
			"adsets":    {PermissionRead},
			"ads":       {PermissionRead},
			"creatives": {PermissionRead},
			"accounts":  {PermissionRead},
		},
	}
}
