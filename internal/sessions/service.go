package sessions

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/padkit/helipad/internal/models"
	"github.com/padkit/helipad/pkg/logger"
)

// Authenticator is satisfied by users.Service.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

// Service caches successful authentications in front of an Authenticator.
// Keys are an HMAC of the credential under a per-process secret, so the
// store never holds anything a password can be recovered from.
type Service struct {
	repo   Repository
	next   Authenticator
	ttl    time.Duration
	secret []byte
}

func NewService(r Repository, next Authenticator, ttl time.Duration) (*Service, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	return &Service{repo: r, next: next, ttl: ttl, secret: secret}, nil
}

func (s *Service) key(email, password string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(strings.ToLower(strings.TrimSpace(email))))
	mac.Write([]byte{0})
	mac.Write([]byte(password))
	return hex.EncodeToString(mac.Sum(nil))
}

// Authenticate returns the cached account when the credential was verified
// within the TTL, and otherwise asks the wrapped Authenticator. Store errors
// fall through to the slow path.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	k := s.key(email, password)
	sess, err := s.repo.GetByKey(ctx, k)
	if err != nil {
		logger.Warnf("sessions: lookup failed: %v", err)
	} else if sess != nil {
		return &models.User{Email: sess.Email}, nil
	}

	u, err := s.next.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if err := s.repo.Create(ctx, &Session{Key: k, Email: u.Email, CreatedAt: now, ExpiresAt: now.Add(s.ttl)}); err != nil {
		logger.Warnf("sessions: store failed: %v", err)
	}
	return u, nil
}

// Forget drops the cached entry for a credential.
func (s *Service) Forget(ctx context.Context, email, password string) error {
	return s.repo.DeleteByKey(ctx, s.key(email, password))
}
