package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bloggyhq/bloggy/internal/domain/entity"
	"github.com/bloggyhq/bloggy/internal/domain/repository"
)

const blogPostsCollection = "blogposts"

type BlogPostRepository struct {
	coll *mongo.Collection
}

func NewBlogPostRepository(db *mongo.Database) *BlogPostRepository {
	return &BlogPostRepository{coll: db.Collection(blogPostsCollection)}
}

func (r *BlogPostRepository) Find(ctx context.Context, filter map[string]string) ([]entity.BlogPost, error) {
	cur, err := r.coll.Find(ctx, substringFilter(filter))
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	posts := []entity.BlogPost{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *BlogPostRepository) FindByID(ctx context.Context, id string) (*entity.BlogPost, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	p := &entity.BlogPost{}
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *BlogPostRepository) FindByAuthorName(ctx context.Context, query string) ([]entity.BlogPost, error) {
	return r.Find(ctx, map[string]string{"author.name": query})
}

func (r *BlogPostRepository) Insert(ctx context.Context, p *entity.BlogPost) error {
	if p.Comments == nil {
		p.Comments = []entity.Comment{}
	}
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (r *BlogPostRepository) Update(ctx context.Context, id string, fields map[string]any) (*entity.BlogPost, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	// an empty $set is a server error, not a no-op
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	p := &entity.BlogPost{}
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *BlogPostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// PushComment appends one comment atomically; concurrent appends to the same
// post cannot overwrite each other.
func (r *BlogPostRepository) PushComment(ctx context.Context, id string, comment entity.Comment) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// PullComment removes the comment with the given id. Pulling a commentId that
// is not present leaves the document unchanged and is not an error.
func (r *BlogPostRepository) PullComment(ctx context.Context, id string, commentID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$pull": bson.M{"comments": bson.M{"commentId": commentID}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.BlogPostRepository = (*BlogPostRepository)(nil)
