package writer

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Session is a write identity confirmed at startup. It never changes after
// OpenSession returns; a server without one refuses every write.
type Session struct {
	api        API
	username   string
	verifiedAt time.Time
}

// OpenSession probes the identity behind api once and returns the session.
func OpenSession(ctx context.Context, api API) (*Session, error) {
	name, err := probe(ctx, api)
	if err != nil {
		return nil, err
	}
	return &Session{api: api, username: name, verifiedAt: time.Now()}, nil
}

// Username returns the account the session acts as.
func (s *Session) Username() string {
	return s.username
}

// VerifiedAt returns when the identity was confirmed at startup.
func (s *Session) VerifiedAt() time.Time {
	return s.verifiedAt
}

// Verify repeats the identity probe. Write tools call it before every action.
func (s *Session) Verify(ctx context.Context) error {
	_, err := probe(ctx, s.api)
	return err
}

func probe(ctx context.Context, api API) (string, error) {
	name, err := api.Me(ctx)
	if err != nil {
		return "", fmt.Errorf("identity probe failed: %w", err)
	}
	if name == "" {
		return "", errors.New("identity probe returned no username")
	}
	return name, nil
}
