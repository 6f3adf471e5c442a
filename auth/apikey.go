package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
)

// APIKeyHeader carries static admin keys.
const APIKeyHeader = "X-API-Key"

// APIKeyInfo describes one registered key. Only the hash is kept.
type APIKeyInfo struct {
	KeyHash   string
	Principal string
	Roles     []string
}

// APIKeyStore looks keys up by hash.
type APIKeyStore interface {
	// Lookup returns nil when no key has that hash.
	Lookup(ctx context.Context, keyHash string) (*APIKeyInfo, error)
}

// APIKeyAuthenticator validates the X-API-Key header.
type APIKeyAuthenticator struct {
	store APIKeyStore
}

// NewAPIKeyAuthenticator creates an authenticator backed by store.
func NewAPIKeyAuthenticator(store APIKeyStore) *APIKeyAuthenticator {
	return &APIKeyAuthenticator{store: store}
}

// Name returns "api_key".
func (a *APIKeyAuthenticator) Name() string { return "api_key" }

// Supports reports whether an API key header is present.
func (a *APIKeyAuthenticator) Supports(req *Request) bool {
	return req.Header(APIKeyHeader) != ""
}

// Authenticate looks the hashed key up in the store.
func (a *APIKeyAuthenticator) Authenticate(ctx context.Context, req *Request) (*Result, error) {
	key := strings.TrimSpace(req.Header(APIKeyHeader))
	if key == "" {
		return Failure(ErrMissingCredentials, MethodAPIKey), nil
	}

	info, err := a.store.Lookup(ctx, HashAPIKey(key))
	if err != nil {
		return nil, err
	}
	if info == nil {
		return Failure(ErrInvalidCredentials, MethodAPIKey), nil
	}

	return Success(&Identity{
		Principal: info.Principal,
		Roles:     info.Roles,
		Method:    MethodAPIKey,
		Claims:    map[string]any{"key_hash": info.KeyHash[:8]},
	}), nil
}

// HashAPIKey returns the SHA-256 hex digest used as the store key.
func HashAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// MemoryAPIKeyStore is an in-memory APIKeyStore.
type MemoryAPIKeyStore struct {
	mu   sync.RWMutex
	keys map[string]*APIKeyInfo
}

// NewMemoryAPIKeyStore creates an empty store.
func NewMemoryAPIKeyStore() *MemoryAPIKeyStore {
	return &MemoryAPIKeyStore{keys: make(map[string]*APIKeyInfo)}
}

// Lookup retrieves a key by its hash.
func (s *MemoryAPIKeyStore) Lookup(_ context.Context, keyHash string) (*APIKeyInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keys[keyHash], nil
}

// Add registers a plaintext key for principal.
func (s *MemoryAPIKeyStore) Add(key, principal string, roles ...string) {
	info := &APIKeyInfo{KeyHash: HashAPIKey(key), Principal: principal, Roles: roles}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[info.KeyHash] = info
}

// Len returns the number of registered keys.
func (s *MemoryAPIKeyStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// ParseAPIKeys loads a comma-separated list of "key:principal:role" triples.
func ParseAPIKeys(list string) (*MemoryAPIKeyStore, error) {
	store := NewMemoryAPIKeyStore()
	for entry := range strings.SplitSeq(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return nil, fmt.Errorf("%w: want key:principal:role", ErrInvalidAPIKeyEntry)
		}
		store.Add(parts[0], parts[1], parts[2])
	}
	return store, nil
}

var (
	_ Authenticator = (*APIKeyAuthenticator)(nil)
	_ APIKeyStore   = (*MemoryAPIKeyStore)(nil)
)
