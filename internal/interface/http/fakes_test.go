package handlers

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bloggyhq/bloggy/internal/application"
	"github.com/bloggyhq/bloggy/internal/domain/entity"
	repo "github.com/bloggyhq/bloggy/internal/domain/repository"
	"github.com/bloggyhq/bloggy/internal/interface/middleware"
	"github.com/bloggyhq/bloggy/pkg/helpers"
	"github.com/bloggyhq/bloggy/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// memUserRepo is an in-memory UserRepository with the same substring filter
// semantics as the document store.
type memUserRepo struct {
	mu    sync.Mutex
	users []entity.User
}

func (r *memUserRepo) matches(u *entity.User, filter map[string]string) bool {
	for field, v := range filter {
		var fv string
		switch field {
		case "firstName":
			fv = u.FirstName
		case "lastName":
			fv = u.LastName
		case "email":
			fv = u.Email
		}
		if !containsFold(fv, v) {
			return false
		}
	}
	return true
}

func (r *memUserRepo) Find(ctx context.Context, filter map[string]string) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.User{}
	for i := range r.users {
		if r.matches(&r.users[i], filter) {
			out = append(out, r.users[i])
		}
	}
	return out, nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID.Hex() == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memUserRepo) FindByFirstName(ctx context.Context, query string) ([]entity.User, error) {
	return r.Find(ctx, map[string]string{"firstName": query})
}

func (r *memUserRepo) Insert(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	r.users = append(r.users, *u)
	return nil
}

func (r *memUserRepo) Update(ctx context.Context, id string, fields map[string]any) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID.Hex() != id {
			continue
		}
		u := &r.users[i]
		for k, v := range fields {
			s, _ := v.(string)
			switch k {
			case "firstName":
				u.FirstName = s
			case "lastName":
				u.LastName = s
			case "email":
				u.Email = s
			case "avatar":
				u.Avatar = s
			case "dateOfBirth":
				u.DateOfBirth = s
			}
		}
		u.UpdatedAt = time.Now().UTC()
		cp := *u
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (r *memUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID.Hex() == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

// memPostRepo is an in-memory BlogPostRepository.
type memPostRepo struct {
	mu    sync.Mutex
	posts []entity.BlogPost
}

func (r *memPostRepo) matches(p *entity.BlogPost, filter map[string]string) bool {
	for field, v := range filter {
		var fv string
		switch field {
		case "title":
			fv = p.Title
		case "category":
			fv = p.Category
		case "content":
			fv = p.Content
		case "author.name":
			fv = p.Author.Name
		}
		if !containsFold(fv, v) {
			return false
		}
	}
	return true
}

func (r *memPostRepo) Find(ctx context.Context, filter map[string]string) ([]entity.BlogPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.BlogPost{}
	for i := range r.posts {
		if r.matches(&r.posts[i], filter) {
			out = append(out, r.posts[i])
		}
	}
	return out, nil
}

func (r *memPostRepo) FindByID(ctx context.Context, id string) (*entity.BlogPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.posts {
		if r.posts[i].ID.Hex() == id {
			p := r.posts[i]
			return &p, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memPostRepo) FindByAuthorName(ctx context.Context, query string) ([]entity.BlogPost, error) {
	return r.Find(ctx, map[string]string{"author.name": query})
}

func (r *memPostRepo) Insert(ctx context.Context, p *entity.BlogPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = primitive.NewObjectID()
	if p.Comments == nil {
		p.Comments = []entity.Comment{}
	}
	r.posts = append(r.posts, *p)
	return nil
}

func (r *memPostRepo) Update(ctx context.Context, id string, fields map[string]any) (*entity.BlogPost, error) {
	// the real store rejects an update whose $set document is empty
	if len(fields) == 0 {
		return nil, errors.New("'$set' is empty. You must specify at least one field")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.posts {
		if r.posts[i].ID.Hex() != id {
			continue
		}
		p := &r.posts[i]
		for k, v := range fields {
			s, _ := v.(string)
			switch k {
			case "title":
				p.Title = s
			case "category":
				p.Category = s
			case "content":
				p.Content = s
			case "cover":
				p.Cover = s
			}
		}
		cp := *p
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (r *memPostRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.posts {
		if r.posts[i].ID.Hex() == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (r *memPostRepo) PushComment(ctx context.Context, id string, comment entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.posts {
		if r.posts[i].ID.Hex() == id {
			r.posts[i].Comments = append(r.posts[i].Comments, comment)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (r *memPostRepo) PullComment(ctx context.Context, id string, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.posts {
		if r.posts[i].ID.Hex() != id {
			continue
		}
		cs := r.posts[i].Comments
		for j := range cs {
			if cs[j].CommentID == commentID {
				r.posts[i].Comments = append(cs[:j], cs[j+1:]...)
				return nil
			}
		}
		return nil
	}
	return repo.ErrNotFound
}

var (
	_ repo.UserRepository     = (*memUserRepo)(nil)
	_ repo.BlogPostRepository = (*memPostRepo)(nil)
)

// recordingNotifier captures outgoing notifications instead of enqueuing them.
type recordingNotifier struct {
	mu        sync.Mutex
	welcomes  []string
	published []string
}

func (n *recordingNotifier) SendWelcome(ctx context.Context, to, name, tempPassword string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.welcomes = append(n.welcomes, to)
}

func (n *recordingNotifier) SendPostPublished(ctx context.Context, to, name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.published = append(n.published, to)
}

// testEnv bundles the in-memory backends behind a fully routed engine.
type testEnv struct {
	Engine   *gin.Engine
	Users    *memUserRepo
	Posts    *memPostRepo
	Notifier *recordingNotifier
	JWT      *helpers.JWTManager
	Uploads  *application.UploadService
}

func newTestEnv(uploadDir string) *testEnv {
	logger := testLogger()
	users := &memUserRepo{}
	posts := &memPostRepo{}
	notifier := &recordingNotifier{}
	jwt := &helpers.JWTManager{Secret: []byte("test-secret"), TTL: time.Hour}
	uploads := application.NewUploadService(nil, "", uploadDir, "http://localhost:3030")

	userSvc := application.NewUserService(users, notifier, logger)
	postSvc := application.NewBlogPostService(posts, notifier, logger)
	authSvc := application.NewAuthService(users, jwt, logger)

	userH := NewUserHandler(userSvc, uploads, logger)
	postH := NewBlogPostHandler(postSvc, uploads, logger)
	loginH := NewLoginHandler(authSvc, logger)

	auth := middleware.Auth(jwt)

	e := gin.New()
	e.POST("/login", loginH.Login)

	e.GET("/getUsers", auth, userH.List)
	e.GET("/getUsers/:id", userH.Get)
	e.GET("/getUsers/ByName/:query", userH.SearchByName)
	e.POST("/createUser", userH.Create)
	e.PATCH("/updateUser/:id", userH.Update)
	e.PATCH("/updateUser/:id/avatar", userH.UpdateAvatar)
	e.DELETE("/deleteUser/:id", userH.Delete)

	e.GET("/blogPosts", auth, postH.List)
	e.GET("/blogPosts/:id", auth, postH.Get)
	e.GET("/blogPosts/ByName/:query", auth, postH.SearchByAuthor)
	e.POST("/addBlogPost", auth, postH.Create)
	e.PATCH("/updateBlogPost/:id", auth, postH.Update)
	e.PATCH("/updateBlogPost/:id/cover", postH.UpdateCover)
	e.DELETE("/deleteBlogPost/:id", auth, postH.Delete)
	e.GET("/blogPosts/:id/comments", auth, postH.Comments)
	e.POST("/blogPosts/:id/addComment", auth, postH.AddComment)
	e.DELETE("/blogPosts/:id/comment/:commentId", auth, postH.RemoveComment)
	e.POST("/blogPosts/uploadImg", postH.UploadLocal)
	e.POST("/blogPosts/cloudUploadImg", postH.UploadRemote)

	return &testEnv{Engine: e, Users: users, Posts: posts, Notifier: notifier, JWT: jwt, Uploads: uploads}
}

// token returns a valid session token for requests to protected routes.
func (env *testEnv) token() string {
	t, _, err := env.JWT.Generate("Test", "User", "test@example.com", "")
	if err != nil {
		panic(err)
	}
	return t
}

// seedUser inserts a user with the given credentials and returns it.
func (env *testEnv) seedUser(firstName, lastName, email, password string) *entity.User {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		panic(err)
	}
	u := &entity.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		DateOfBirth:  "01/01/1990",
	}
	if err := env.Users.Insert(context.Background(), u); err != nil {
		panic(err)
	}
	return u
}

// seedPost inserts a post and returns it.
func (env *testEnv) seedPost(title, category, authorName, content string) *entity.BlogPost {
	p := &entity.BlogPost{
		Title:    title,
		Category: category,
		Author:   entity.Author{Name: authorName},
		ReadTime: entity.ReadTime{Value: 3, Unit: "min"},
		Content:  content,
		Comments: []entity.Comment{},
	}
	if err := env.Posts.Insert(context.Background(), p); err != nil {
		panic(err)
	}
	return p
}
