package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/bloggyhq/bloggy/internal/domain/entity"
	repo "github.com/bloggyhq/bloggy/internal/domain/repository"
	"github.com/bloggyhq/bloggy/pkg/helpers"
)

// AuthService validates credentials and issues session tokens.
type AuthService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(r repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: r, JWT: jwt, Logger: logger}
}

// Login checks the password against the stored hash and returns a signed
// session token carrying the user's identity. A missing user surfaces as
// repository.ErrNotFound; a wrong password as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	u, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if !helpers.VerifyPassword(u.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}
	token, _, err := s.JWT.Generate(u.FirstName, u.LastName, u.Email, u.Avatar)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", email).Error("token generation failed")
		}
		return "", nil, err
	}
	return token, u, nil
}

// IssueToken signs a session token for an already-resolved identity
// (used by the OAuth callback).
func (s *AuthService) IssueToken(firstName, lastName, email, avatar string) (string, error) {
	token, _, err := s.JWT.Generate(firstName, lastName, email, avatar)
	return token, err
}
