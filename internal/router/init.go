package router

import (
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"

	"github.com/bloggyhq/bloggy/internal/application"
	"github.com/bloggyhq/bloggy/internal/container"
	"github.com/bloggyhq/bloggy/internal/infrastructure/mongodb"
	handlers "github.com/bloggyhq/bloggy/internal/interface/http"
	"github.com/bloggyhq/bloggy/internal/router/modules"
)

// InitModules builds all services from the container singletons and registers
// the feature modules with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	db := container.GetMongo()

	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewBlogPostRepository(db)

	notifier := application.NewQueueNotifier(container.GetRabbitPub(), logger, cfg.FrontendURL, cfg.MailSendEnabled)
	uploads := application.NewUploadService(container.GetGCS(), cfg.GCSBucket, cfg.UploadDir, cfg.PublicBaseURL)

	userSvc := application.NewUserService(userRepo, notifier, logger)
	postSvc := application.NewBlogPostService(postRepo, notifier, logger)
	authSvc := application.NewAuthService(userRepo, container.GetJWT(), logger)

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.GithubClientID,
		ClientSecret: cfg.GithubClientSecret,
		RedirectURL:  cfg.GithubCallbackURL,
		Scopes:       []string{"user:email"},
		Endpoint:     githuboauth.Endpoint,
	}
	githubSvc := application.NewGithubService(oauthCfg, userRepo, notifier, container.GetRedis(), logger)

	r.Add(modules.NewAuthModule(
		handlers.NewLoginHandler(authSvc, logger),
		handlers.NewGithubHandler(githubSvc, authSvc, cfg.FrontendURL, logger),
	))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, uploads, logger), container.GetJWT()))
	r.Add(modules.NewBlogModule(handlers.NewBlogPostHandler(postSvc, uploads, logger), container.GetJWT()))
}
