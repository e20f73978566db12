package client

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
)

var (
	sessionBucketName = []byte("session")
	tokenKey          = []byte("token")
)

// TokenStore persists the bearer token in a single slot: overwritten on
// login, cleared on logout. Nothing else is stored client-side.
type TokenStore struct {
	db *bolt.DB
}

func OpenTokenStore(path string) (*TokenStore, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &TokenStore{db: db}, nil
}

func (s *TokenStore) Save(token string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucketName).Put(tokenKey, []byte(token))
	})
}

// Load returns the stored token, or "" when no session exists.
func (s *TokenStore) Load() (string, error) {
	var token string
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(sessionBucketName).Get(tokenKey)
		if raw != nil {
			token = string(raw)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *TokenStore) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucketName).Delete(tokenKey)
	})
}

func (s *TokenStore) Close() error {
	return s.db.Close()
}
