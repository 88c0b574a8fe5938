package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/bloggyhq/bloggy/internal/domain/entity"
	repo "github.com/bloggyhq/bloggy/internal/domain/repository"
	"github.com/bloggyhq/bloggy/pkg/helpers"
)

const (
	oauthStateTTL   = 10 * time.Minute
	oauthStatePref  = "oauth:github:state:"
	tempPasswordLen = 10 // bytes, hex-encoded to 20 characters
)

var (
	// ErrBadOAuthState is returned when the callback state is unknown or reused.
	ErrBadOAuthState = errors.New("invalid oauth state")
	// ErrNoVerifiedEmail is returned when the provider exposes no usable email.
	ErrNoVerifiedEmail = errors.New("no verified email on provider account")
)

// Identity is the per-login resolved identity threaded from the provider
// callback to token issuance. It carries the reliable email fetched from the
// provider's emails endpoint, not the one on the profile payload.
type Identity struct {
	FirstName string
	LastName  string
	Email     string
	Avatar    string
}

// GithubService drives the OAuth handshake with GitHub and auto-provisions
// local accounts on first login.
type GithubService struct {
	OAuth    *oauth2.Config
	Repo     repo.UserRepository
	Notifier Notifier
	Redis    *redis.Client
	Logger   *logrus.Logger

	// APIBaseURL and HTTPClient are replaceable in tests.
	APIBaseURL string
	HTTPClient *http.Client
}

func NewGithubService(oauthCfg *oauth2.Config, r repo.UserRepository, n Notifier, rdb *redis.Client, logger *logrus.Logger) *GithubService {
	return &GithubService{
		OAuth:      oauthCfg,
		Repo:       r,
		Notifier:   n,
		Redis:      rdb,
		Logger:     logger,
		APIBaseURL: "https://api.github.com",
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthCodeURL creates a one-time state value and returns the provider
// redirect URL for it.
func (s *GithubService) AuthCodeURL(ctx context.Context) (string, error) {
	state, err := helpers.RandomHex(16)
	if err != nil {
		return "", err
	}
	if s.Redis != nil {
		if err := s.Redis.Set(ctx, oauthStatePref+state, "1", oauthStateTTL).Err(); err != nil {
			return "", err
		}
	}
	return s.OAuth.AuthCodeURL(state), nil
}

// consumeState checks and invalidates a callback state value.
func (s *GithubService) consumeState(ctx context.Context, state string) error {
	if state == "" {
		return ErrBadOAuthState
	}
	if s.Redis == nil {
		return nil
	}
	n, err := s.Redis.Del(ctx, oauthStatePref+state).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBadOAuthState
	}
	return nil
}

type githubProfile struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func (s *GithubService) apiGet(ctx context.Context, accessToken, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.APIBaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	res, err := s.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("github api %s: status %d", path, res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// resolveEmail asks the emails endpoint for a reliable address; the profile
// payload's email field is null for users with private emails.
func (s *GithubService) resolveEmail(ctx context.Context, accessToken string) (string, error) {
	var emails []githubEmail
	if err := s.apiGet(ctx, accessToken, "/user/emails", &emails); err != nil {
		return "", err
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	if len(emails) > 0 && emails[0].Email != "" {
		return emails[0].Email, nil
	}
	return "", ErrNoVerifiedEmail
}

// splitDisplayName takes the first two whitespace-separated tokens as
// first/last name.
func splitDisplayName(name, fallback string) (string, string) {
	parts := strings.Fields(name)
	switch {
	case len(parts) >= 2:
		return parts[0], parts[1]
	case len(parts) == 1:
		return parts[0], ""
	default:
		return fallback, ""
	}
}

// HandleCallback exchanges the authorization code, resolves the verified
// email, provisions a local account on first login, and returns the identity
// to put in the session token.
func (s *GithubService) HandleCallback(ctx context.Context, state, code string) (*Identity, error) {
	if err := s.consumeState(ctx, state); err != nil {
		return nil, err
	}

	tok, err := s.OAuth.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	var profile githubProfile
	if err := s.apiGet(ctx, tok.AccessToken, "/user", &profile); err != nil {
		return nil, err
	}
	email, err := s.resolveEmail(ctx, tok.AccessToken)
	if err != nil {
		return nil, err
	}

	first, last := splitDisplayName(profile.Name, profile.Login)
	ident := &Identity{FirstName: first, LastName: last, Email: email, Avatar: profile.AvatarURL}

	existing, err := s.Repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		ident.FirstName = existing.FirstName
		ident.LastName = existing.LastName
		ident.Avatar = existing.Avatar
		return ident, nil
	}

	if err := s.provision(ctx, ident); err != nil {
		return nil, err
	}
	return ident, nil
}

// provision creates a local account with a random temporary password and
// mails the plaintext password so the user can later log in without GitHub.
func (s *GithubService) provision(ctx context.Context, ident *Identity) error {
	tempPassword, err := helpers.RandomHex(tempPasswordLen)
	if err != nil {
		return err
	}
	hash, err := helpers.HashPassword(tempPassword)
	if err != nil {
		return err
	}
	u := &entity.User{
		FirstName:    ident.FirstName,
		LastName:     ident.LastName,
		Email:        ident.Email,
		PasswordHash: hash,
		Avatar:       ident.Avatar,
		DateOfBirth:  "01/01/2000", // placeholder until the user sets it
	}
	if err := s.Repo.Insert(ctx, u); err != nil {
		return err
	}
	s.Notifier.SendWelcome(ctx, ident.Email, ident.FirstName+" "+ident.LastName, tempPassword)
	return nil
}
