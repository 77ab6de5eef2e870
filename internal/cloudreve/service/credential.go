package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ablecats/filestream/internal/cloudreve/domain"
	"github.com/ablecats/filestream/internal/config"
	apperrors "github.com/ablecats/filestream/internal/errors"
)

// renewalKey collapses all concurrent renewals into one in-flight call.
const renewalKey = "credential"

// CredentialStore owns the cached credential token for the remote storage
// service. It is constructed once at service start and shared; all renewal
// paths are serialized through a single-flight group so concurrent requests
// that observe a near-expired token trigger exactly one login or refresh.
type CredentialStore struct {
	client   *Client
	cfg      *config.Config
	password string
	logger   *slog.Logger

	mu     sync.Mutex
	token  *domain.Token
	flight singleflight.Group

	// now is a test seam for time-dependent renewal decisions.
	now func() time.Time
}

// NewCredentialStore creates a credential store. The password is resolved
// separately (it may have been decrypted from config) rather than read from
// config directly.
func NewCredentialStore(
	client *Client,
	cfg *config.Config,
	password string,
	logger *slog.Logger,
) *CredentialStore {
	return &CredentialStore{
		client:   client,
		cfg:      cfg,
		password: password,
		logger:   logger,
		now:      time.Now,
	}
}

// Login authenticates with email and password and replaces the cached token
// wholesale. Fails with ErrConfig when credentials or the API base are unset
// and with ErrAuth on a rejected login or a response without an access token.
func (s *CredentialStore) Login(ctx context.Context) (*domain.Token, error) {
	if s.cfg.CloudreveAPIURL == "" {
		return nil, apperrors.Wrap(apperrors.ErrConfig, "CLOUDREVE_API_URL is empty")
	}
	if s.cfg.CloudreveEmail == "" || s.password == "" {
		return nil, apperrors.Wrap(apperrors.ErrConfig, "CLOUDREVE_EMAIL or password is empty")
	}

	body := map[string]string{
		"email":    s.cfg.CloudreveEmail,
		"password": s.password,
	}
	envelope, err := s.client.PostJSON(ctx, s.endpoint("/api/v4/session/token"), body, nil)
	if err != nil {
		return nil, err
	}
	if !envelope.Ok(s.cfg.CloudreveSuccessCode) {
		return nil, apperrors.Wrapf(
			apperrors.ErrAuth,
			"login rejected: code=%d msg=%s", envelope.Code, envelope.Msg,
		)
	}

	token, err := envelope.ExtractToken()
	if err != nil {
		return nil, err
	}

	s.store(token)
	s.logger.Info("remote storage login succeeded")
	return token, nil
}

// Refresh renews the session using the cached refresh token. Without a cached
// refresh token, or when the service rejects the refresh, it falls back to a
// full login instead of raising. A successful refresh that omits a refresh
// token keeps the previous one.
func (s *CredentialStore) Refresh(ctx context.Context) (*domain.Token, error) {
	prev := s.snapshot()
	if prev == nil || prev.RefreshToken == "" {
		return s.Login(ctx)
	}

	body := map[string]string{"refresh_token": prev.RefreshToken}
	envelope, err := s.client.PostJSON(ctx, s.endpoint("/api/v4/session/token/refresh"), body, nil)
	if err != nil {
		return nil, err
	}
	if !envelope.Ok(s.cfg.CloudreveSuccessCode) {
		s.logger.Warn("token refresh rejected, falling back to login",
			slog.Int("code", envelope.Code),
			slog.String("msg", envelope.Msg),
		)
		return s.Login(ctx)
	}

	token, err := envelope.ExtractToken()
	if err != nil {
		return nil, err
	}
	if token.RefreshToken == "" {
		token.RefreshToken = prev.RefreshToken
	}

	s.store(token)
	s.logger.Info("remote storage token refreshed")
	return token, nil
}

// EnsureValid returns a token that is valid at call time, renewing it when it
// is within the configured skew of expiry. A renewal attempt through the
// refresh token that fails for any reason is followed by a full login.
// Concurrent callers share one in-flight renewal.
func (s *CredentialStore) EnsureValid(ctx context.Context) (*domain.Token, error) {
	if token := s.snapshot(); token != nil && !token.NeedsRefresh(s.now(), s.cfg.CloudreveTokenSkew) {
		return token, nil
	}

	v, err, _ := s.flight.Do(renewalKey, func() (any, error) {
		// Re-check: another caller may have renewed while we waited.
		token := s.snapshot()
		now := s.now()
		if token != nil && !token.NeedsRefresh(now, s.cfg.CloudreveTokenSkew) {
			return token, nil
		}
		if token == nil {
			return s.Login(ctx)
		}
		if token.RefreshUsable(now) {
			renewed, err := s.Refresh(ctx)
			if err == nil {
				return renewed, nil
			}
			s.logger.Warn("token refresh failed, falling back to login", slog.Any("error", err))
		}
		return s.Login(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Token), nil
}

// AccessToken ensures validity and returns the current access token string.
func (s *CredentialStore) AccessToken(ctx context.Context) (string, error) {
	token, err := s.EnsureValid(ctx)
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

// Invalidate clears the cached token, forcing the next caller to log in again.
func (s *CredentialStore) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
}

// snapshot returns the cached token, or nil when unset.
func (s *CredentialStore) snapshot() *domain.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// store replaces the cached token. Tokens without an access token are never
// cached; ExtractToken upholds that before store is reached.
func (s *CredentialStore) store(token *domain.Token) {
	if token == nil || token.AccessToken == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// endpoint joins the API base with a path, tolerating a trailing slash on the
// configured base.
func (s *CredentialStore) endpoint(path string) string {
	return strings.TrimRight(s.cfg.CloudreveAPIURL, "/") + path
}
