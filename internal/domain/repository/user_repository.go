package repository

import (
	"context"
	"errors"

	"github.com/bloggyhq/bloggy/internal/domain/entity"
)

// ErrNotFound is returned when an id or lookup has no matching record.
var ErrNotFound = errors.New("not found")

// UserRepository defines the interface for user-related document store operations.
// Filter maps a field name to a case-insensitive substring; fields are AND-composed.
type UserRepository interface {
	Find(ctx context.Context, filter map[string]string) ([]entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByFirstName(ctx context.Context, query string) ([]entity.User, error)
	Insert(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, id string, fields map[string]any) (*entity.User, error)
	Delete(ctx context.Context, id string) error
}
