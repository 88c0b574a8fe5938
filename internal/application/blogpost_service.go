package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/bloggyhq/bloggy/internal/domain/entity"
	repo "github.com/bloggyhq/bloggy/internal/domain/repository"
	"github.com/bloggyhq/bloggy/pkg/helpers"
)

// commentIDBytes gives 24 hex characters; collisions within one post's
// comment list are negligible.
const commentIDBytes = 12

// BlogPostService owns blog post CRUD and embedded comment mutation.
type BlogPostService struct {
	Repo     repo.BlogPostRepository
	Notifier Notifier
	Logger   *logrus.Logger
}

func NewBlogPostService(r repo.BlogPostRepository, n Notifier, logger *logrus.Logger) *BlogPostService {
	return &BlogPostService{Repo: r, Notifier: n, Logger: logger}
}

type CreateBlogPostInput struct {
	Category      string
	Title         string
	Cover         string
	ReadTimeValue int
	ReadTimeUnit  string
	AuthorName    string
	AuthorEmail   string
	Content       string
}

// Create persists a new post and notifies the author by email.
func (s *BlogPostService) Create(ctx context.Context, in CreateBlogPostInput) (*entity.BlogPost, error) {
	if in.ReadTimeValue <= 0 {
		in.ReadTimeValue = 3
	}
	if in.ReadTimeUnit == "" {
		in.ReadTimeUnit = "min"
	}
	p := &entity.BlogPost{
		Category: in.Category,
		Title:    in.Title,
		Cover:    in.Cover,
		ReadTime: entity.ReadTime{Value: in.ReadTimeValue, Unit: in.ReadTimeUnit},
		Author:   entity.Author{Name: in.AuthorName},
		Content:  in.Content,
		Comments: []entity.Comment{},
	}
	if err := s.Repo.Insert(ctx, p); err != nil {
		return nil, err
	}

	if in.AuthorEmail != "" {
		s.Notifier.SendPostPublished(ctx, in.AuthorEmail, in.AuthorName)
	}
	return p, nil
}

func (s *BlogPostService) List(ctx context.Context, filter map[string]string) ([]entity.BlogPost, error) {
	return s.Repo.Find(ctx, filter)
}

func (s *BlogPostService) Get(ctx context.Context, id string) (*entity.BlogPost, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *BlogPostService) SearchByAuthor(ctx context.Context, query string) ([]entity.BlogPost, error) {
	return s.Repo.FindByAuthorName(ctx, query)
}

// Update applies a partial update; only the provided fields change. A body
// with no recognized fields reads the post back unchanged instead of sending
// the store an empty update.
func (s *BlogPostService) Update(ctx context.Context, id string, fields map[string]any) (*entity.BlogPost, error) {
	if len(fields) == 0 {
		return s.Repo.FindByID(ctx, id)
	}
	return s.Repo.Update(ctx, id, fields)
}

// UpdateCover stores a new cover URL on the post.
func (s *BlogPostService) UpdateCover(ctx context.Context, id string, coverURL string) (*entity.BlogPost, error) {
	return s.Repo.Update(ctx, id, map[string]any{"cover": coverURL})
}

func (s *BlogPostService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// Comments returns the embedded comment list of a post.
func (s *BlogPostService) Comments(ctx context.Context, id string) ([]entity.Comment, error) {
	p, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.Comments, nil
}

type AddCommentInput struct {
	AuthorName   string
	AuthorAvatar string
	Content      string
}

// AddComment appends one comment with a fresh random id.
func (s *BlogPostService) AddComment(ctx context.Context, id string, in AddCommentInput) (*entity.Comment, error) {
	cid, err := helpers.RandomHex(commentIDBytes)
	if err != nil {
		return nil, err
	}
	cm := entity.Comment{
		CommentID:    cid,
		AuthorName:   in.AuthorName,
		AuthorAvatar: in.AuthorAvatar,
		Content:      in.Content,
	}
	if err := s.Repo.PushComment(ctx, id, cm); err != nil {
		return nil, err
	}
	return &cm, nil
}

// RemoveComment pulls the matching comment from the post. A commentId that is
// not in the list is a no-op, not an error: the post is re-saved unchanged.
func (s *BlogPostService) RemoveComment(ctx context.Context, id, commentID string) error {
	return s.Repo.PullComment(ctx, id, commentID)
}
