package codes

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const codeGenerationLength = 32

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface.
type InMemoryRepo struct {
	mu      sync.Mutex
	codes   map[string]*Record
	ttl     time.Duration
	nowTime func() time.Time
}

type InMemoryRepoOption func(*InMemoryRepo)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) InMemoryRepoOption {
	return func(r *InMemoryRepo) {
		r.nowTime = nowFunc
	}
}

// NewInMemoryRepo creates a code repository. Codes not redeemed within ttl
// behave exactly like unknown codes.
func NewInMemoryRepo(ttl time.Duration, options ...InMemoryRepoOption) *InMemoryRepo {
	r := &InMemoryRepo{
		codes:   make(map[string]*Record),
		ttl:     ttl,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *InMemoryRepo) Issue(principal, clientID, redirectURI, state string) (string, error) {
	bytes := make([]byte, codeGenerationLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", errors.Wrap(err, "[Issue] rand.Read")
	}
	code := base64.RawURLEncoding.EncodeToString(bytes)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.codes[code] = &Record{
		Code:        code,
		Principal:   principal,
		ClientID:    clientID,
		RedirectURI: redirectURI,
		State:       state,
		IssuedAt:    r.nowTime(),
	}
	return code, nil
}

func (r *InMemoryRepo) Redeem(code string) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.codes[code]
	if !ok {
		return nil, CodeNotFoundErr
	}
	delete(r.codes, code)
	if r.ttl > 0 && r.nowTime().Sub(record.IssuedAt) > r.ttl {
		return nil, CodeNotFoundErr
	}
	c := *record
	return &c, nil
}
