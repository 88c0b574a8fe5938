package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/bloggyhq/bloggy/internal/interface/http"
)

// AuthModule wires credential login and the GitHub OAuth flow.
type AuthModule struct {
	Login  *handlers.LoginHandler
	Github *handlers.GithubHandler
}

func NewAuthModule(login *handlers.LoginHandler, github *handlers.GithubHandler) *AuthModule {
	return &AuthModule{Login: login, Github: github}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/login", m.Login.Login)

	rg.GET("/auth/github", m.Github.Authorize)
	rg.GET("/auth/github/callback", m.Github.Callback)
	rg.GET("/success", m.Github.Success)
}
