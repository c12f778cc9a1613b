package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// CredentialStore holds API principals and their bcrypt password hashes.
// The service ships with a single seeded principal; the store keeps the
// lookup behind an interface-shaped API so a database-backed store can
// replace it without touching the handlers.
type CredentialStore struct {
	hashes map[string]string
}

// NewCredentialStore creates a store with the given username/hash pairs
func NewCredentialStore(hashes map[string]string) *CredentialStore {
	store := &CredentialStore{hashes: make(map[string]string, len(hashes))}
	for username, hash := range hashes {
		store.hashes[username] = hash
	}
	return store
}

// Authenticate verifies a username/password pair against the stored hash.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *CredentialStore) Authenticate(username, password string) bool {
	hash, ok := s.hashes[username]
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashPassword produces a bcrypt hash suitable for the credential store
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
