package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bloggyhq/bloggy/internal/application"
)

// GithubHandler drives the browser-facing OAuth flow. Failures redirect back
// to the root instead of returning JSON, since the caller is a navigating
// browser, not an API client.
type GithubHandler struct {
	Svc         *application.GithubService
	Auth        *application.AuthService
	FrontendURL string
	Logger      *logrus.Logger
}

func NewGithubHandler(svc *application.GithubService, auth *application.AuthService, frontendURL string, logger *logrus.Logger) *GithubHandler {
	return &GithubHandler{Svc: svc, Auth: auth, FrontendURL: frontendURL, Logger: logger}
}

// Authorize sends the browser to the provider consent screen.
func (h *GithubHandler) Authorize(c *gin.Context) {
	url, err := h.Svc.AuthCodeURL(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("oauth state generation failed")
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.Redirect(http.StatusFound, url)
}

// Callback finishes the handshake and forwards the browser to the frontend
// success page with a freshly signed session token.
func (h *GithubHandler) Callback(c *gin.Context) {
	ident, err := h.Svc.HandleCallback(c.Request.Context(), c.Query("state"), c.Query("code"))
	if err != nil {
		h.Logger.WithError(err).Warn("oauth callback failed")
		c.Redirect(http.StatusFound, "/")
		return
	}

	token, err := h.Auth.IssueToken(ident.FirstName, ident.LastName, ident.Email, ident.Avatar)
	if err != nil {
		h.Logger.WithError(err).Error("token generation failed")
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.Redirect(http.StatusFound, h.FrontendURL+"/success?token="+token)
}

// Success hands the browser over to the frontend home page.
func (h *GithubHandler) Success(c *gin.Context) {
	c.Redirect(http.StatusFound, h.FrontendURL+"/home")
}
