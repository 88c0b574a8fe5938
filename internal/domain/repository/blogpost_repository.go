package repository

import (
	"context"

	"github.com/bloggyhq/bloggy/internal/domain/entity"
)

// BlogPostRepository defines the interface for blog post document store operations.
// Comment mutations target the embedded comments array of the parent document.
type BlogPostRepository interface {
	Find(ctx context.Context, filter map[string]string) ([]entity.BlogPost, error)
	FindByID(ctx context.Context, id string) (*entity.BlogPost, error)
	FindByAuthorName(ctx context.Context, query string) ([]entity.BlogPost, error)
	Insert(ctx context.Context, p *entity.BlogPost) error
	Update(ctx context.Context, id string, fields map[string]any) (*entity.BlogPost, error)
	Delete(ctx context.Context, id string) error
	PushComment(ctx context.Context, id string, comment entity.Comment) error
	PullComment(ctx context.Context, id string, commentID string) error
}
