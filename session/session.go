// Package session persists the signed-in user's bearer token and profile.
// It is a cache of server-issued identity, never a source of truth.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jrsteele09/afterschool-portal/internal/config"
	"github.com/jrsteele09/afterschool-portal/storage"
	"github.com/rs/zerolog/log"
)

// Session is the client-held record of the authenticated user.
type Session struct {
	Token string `json:"-"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// HasToken reports whether a bearer token is attached.
func (s Session) HasToken() bool {
	return s.Token != ""
}

// Store keeps one Session under two fixed keys: the raw token and the
// JSON-encoded user record.
type Store struct {
	kv       storage.Store
	tokenKey string
	userKey  string
}

func NewStore(kv storage.Store, tokenKey, userKey string) *Store {
	return &Store{
		kv:       kv,
		tokenKey: tokenKey,
		userKey:  userKey,
	}
}

// NewStoreFromConfig uses the storage keys from cfg.
func NewStoreFromConfig(kv storage.Store, cfg config.ClientConfig) *Store {
	return NewStore(kv, cfg.GetTokenKey(), cfg.GetUserKey())
}

// Save replaces any existing session. When the user record cannot be
// written the store is left without a session.
func (s *Store) Save(ctx context.Context, token, role, name, email string) error {
	user, err := json.Marshal(Session{Role: role, Name: name, Email: email})
	if err != nil {
		return fmt.Errorf("[session Save] marshal user: %w", err)
	}
	if err := s.kv.Set(ctx, s.tokenKey, token); err != nil {
		return fmt.Errorf("[session Save] store token: %w", err)
	}
	if err := s.kv.Set(ctx, s.userKey, string(user)); err != nil {
		// The new token must not sit next to the previous user's record.
		if clearErr := s.Clear(ctx); clearErr != nil {
			log.Err(clearErr).Msg("Failed to drop partially saved session")
		}
		return fmt.Errorf("[session Save] store user: %w", err)
	}
	return nil
}

// Load returns the stored session. ok is false when no user record exists.
// A user record that is not JSON is read as a bare role string, the format
// older clients wrote.
func (s *Store) Load(ctx context.Context) (sess Session, ok bool, err error) {
	raw, found, err := s.kv.Get(ctx, s.userKey)
	if err != nil {
		return Session{}, false, fmt.Errorf("[session Load] read user: %w", err)
	}
	if !found || raw == "" {
		return Session{}, false, nil
	}

	if jsonErr := json.Unmarshal([]byte(raw), &sess); jsonErr != nil {
		sess = Session{Role: raw}
	}

	token, _, err := s.Token(ctx)
	if err != nil {
		return Session{}, false, err
	}
	sess.Token = token
	return sess, true, nil
}

// Token returns the raw bearer token.
func (s *Store) Token(ctx context.Context) (string, bool, error) {
	token, found, err := s.kv.Get(ctx, s.tokenKey)
	if err != nil {
		return "", false, fmt.Errorf("[session Token] read token: %w", err)
	}
	if !found || token == "" {
		return "", false, nil
	}
	return token, true, nil
}

// Clear removes the token and the user record. Clearing twice is harmless.
func (s *Store) Clear(ctx context.Context) error {
	return errors.Join(
		wrapRemove(s.kv.Remove(ctx, s.tokenKey), "token"),
		wrapRemove(s.kv.Remove(ctx, s.userKey), "user"),
	)
}

func wrapRemove(err error, what string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("[session Clear] remove %s: %w", what, err)
}
