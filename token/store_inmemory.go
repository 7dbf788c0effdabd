package token

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const tokenGenerationLength = 32

var _ Store = (*InMemoryStore)(nil)

// InMemoryStore is a thread-safe in-memory implementation of the Store
// interface. Pairs are indexed by access token, by refresh token and by
// principal+client; all three indexes move together under one lock, so a
// losing racer on Rotate observes a clean InvalidRefreshTokenErr and never a
// half-rotated pair.
type InMemoryStore struct {
	mu        sync.Mutex
	byAccess  map[string]*Pair
	byRefresh map[string]*Pair
	current   map[string]*Pair // principal+client -> the live pair
	accessTTL time.Duration
	nowTime   func() time.Time
}

type InMemoryStoreOption func(*InMemoryStore)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) InMemoryStoreOption {
	return func(s *InMemoryStore) {
		s.nowTime = nowFunc
	}
}

func NewInMemoryStore(accessTTL time.Duration, options ...InMemoryStoreOption) *InMemoryStore {
	s := &InMemoryStore{
		byAccess:  make(map[string]*Pair),
		byRefresh: make(map[string]*Pair),
		current:   make(map[string]*Pair),
		accessTTL: accessTTL,
		nowTime:   time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) IssueInitial(principal, clientID string) (*Pair, error) {
	access, err := generateToken()
	if err != nil {
		return nil, errors.Wrap(err, "[IssueInitial] access token")
	}
	refresh, err := generateToken()
	if err != nil {
		return nil, errors.Wrap(err, "[IssueInitial] refresh token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(principal, clientID, access, refresh), nil
}

func (s *InMemoryStore) ValidateAccess(accessToken string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pair, ok := s.byAccess[accessToken]
	if !ok {
		return "", InvalidTokenErr
	}
	if s.nowTime().Sub(pair.IssuedAt) > s.accessTTL {
		return "", InvalidTokenErr
	}
	return pair.Principal, nil
}

func (s *InMemoryStore) RotateByRefresh(refreshToken, clientID string) (*Pair, error) {
	access, err := generateToken()
	if err != nil {
		return nil, errors.Wrap(err, "[RotateByRefresh] access token")
	}
	refresh, err := generateToken()
	if err != nil {
		return nil, errors.Wrap(err, "[RotateByRefresh] refresh token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.byRefresh[refreshToken]
	if !ok || old.ClientID != clientID {
		return nil, InvalidRefreshTokenErr
	}
	return s.issueLocked(old.Principal, old.ClientID, access, refresh), nil
}

// issueLocked installs a new pair, evicting whichever pair was current for
// the principal+client. Caller holds s.mu.
func (s *InMemoryStore) issueLocked(principal, clientID, access, refresh string) *Pair {
	key := principal + "\x00" + clientID
	if old, ok := s.current[key]; ok {
		delete(s.byAccess, old.AccessToken)
		delete(s.byRefresh, old.RefreshToken)
	}

	pair := &Pair{
		AccessToken:  access,
		RefreshToken: refresh,
		Principal:    principal,
		ClientID:     clientID,
		IssuedAt:     s.nowTime(),
		ExpiresIn:    int64(s.accessTTL / time.Second),
	}
	s.byAccess[pair.AccessToken] = pair
	s.byRefresh[pair.RefreshToken] = pair
	s.current[key] = pair

	c := *pair
	return &c
}

func generateToken() (string, error) {
	bytes := make([]byte, tokenGenerationLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
