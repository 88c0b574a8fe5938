package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/bloggyhq/bloggy/internal/domain/entity"
	repo "github.com/bloggyhq/bloggy/internal/domain/repository"
	"github.com/bloggyhq/bloggy/pkg/helpers"
)

var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserService owns signup and user CRUD.
type UserService struct {
	Repo     repo.UserRepository
	Notifier Notifier
	Logger   *logrus.Logger
}

func NewUserService(r repo.UserRepository, n Notifier, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, Notifier: n, Logger: logger}
}

type CreateUserInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	Avatar      string
	DateOfBirth string
}

// Create hashes the password, persists the user, and sends the welcome email.
// Duplicate emails are rejected with ErrEmailTaken before any insert.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	existing, err := s.Repo.FindByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		Avatar:       in.Avatar,
		DateOfBirth:  in.DateOfBirth,
	}
	if err := s.Repo.Insert(ctx, u); err != nil {
		return nil, err
	}

	s.Notifier.SendWelcome(ctx, u.Email, u.FullName(), "")
	return u, nil
}

func (s *UserService) List(ctx context.Context, filter map[string]string) ([]entity.User, error) {
	return s.Repo.Find(ctx, filter)
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *UserService) SearchByFirstName(ctx context.Context, query string) ([]entity.User, error) {
	return s.Repo.FindByFirstName(ctx, query)
}

// Update applies a partial update; only the provided fields change.
func (s *UserService) Update(ctx context.Context, id string, fields map[string]any) (*entity.User, error) {
	return s.Repo.Update(ctx, id, fields)
}

// UpdateAvatar stores a new avatar URL on the user.
func (s *UserService) UpdateAvatar(ctx context.Context, id string, avatarURL string) (*entity.User, error) {
	return s.Repo.Update(ctx, id, map[string]any{"avatar": avatarURL})
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
