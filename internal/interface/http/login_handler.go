package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bloggyhq/bloggy/internal/application"
	repo "github.com/bloggyhq/bloggy/internal/domain/repository"
	"github.com/bloggyhq/bloggy/pkg/response"
	"github.com/bloggyhq/bloggy/pkg/validation"
)

type LoginHandler struct {
	Auth   *application.AuthService
	Logger *logrus.Logger
}

func NewLoginHandler(auth *application.AuthService, logger *logrus.Logger) *LoginHandler {
	return &LoginHandler{Auth: auth, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for a session token. The token is returned both
// in the body and in the Authorization response header.
func (h *LoginHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validation.ToDetails(err))
		return
	}

	token, _, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			response.Message(c, http.StatusNotFound, "User not found")
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Message(c, http.StatusUnauthorized, "Unauthorized")
		default:
			h.Logger.WithError(err).Error("login failed")
			response.InternalError(c)
		}
		return
	}

	c.Header("Authorization", token)
	c.JSON(http.StatusOK, response.Login{
		StatusCode: http.StatusOK,
		Message:    "Login successful",
		Token:      token,
	})
}
