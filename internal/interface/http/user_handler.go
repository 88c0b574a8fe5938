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

// userFilterFields are the query keys getUsers accepts as substring filters.
var userFilterFields = []string{"firstName", "lastName", "email"}

type UserHandler struct {
	Svc     *application.UserService
	Uploads *application.UploadService
	Logger  *logrus.Logger
}

func NewUserHandler(svc *application.UserService, uploads *application.UploadService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Uploads: uploads, Logger: logger}
}

type createUserRequest struct {
	FirstName   string `form:"firstName" json:"firstName" binding:"required"`
	LastName    string `form:"lastName" json:"lastName" binding:"required"`
	Email       string `form:"email" json:"email" binding:"required,email"`
	Password    string `form:"password" json:"password" binding:"required,pwd"`
	DateOfBirth string `form:"dateOfBirth" json:"dateOfBirth" binding:"required"`
}

// filterFromQuery builds a field->substring filter from the allowed query keys.
func filterFromQuery(c *gin.Context, allowed []string) map[string]string {
	filter := map[string]string{}
	for _, f := range allowed {
		if v := c.Query(f); v != "" {
			filter[f] = v
		}
	}
	return filter
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context(), filterFromQuery(c, userFilterFields))
	if err != nil {
		h.Logger.WithError(err).Error("list users failed")
		response.InternalError(c)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Message(c, http.StatusNotFound, "The requested user does not exist")
			return
		}
		h.Logger.WithError(err).Error("get user failed")
		response.InternalError(c)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) SearchByName(c *gin.Context) {
	users, err := h.Svc.SearchByFirstName(c.Request.Context(), c.Param("query"))
	if err != nil {
		h.Logger.WithError(err).Error("search users failed")
		response.InternalError(c)
		return
	}
	if len(users) == 0 {
		response.Message(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ValidationFailed(c, validation.ToDetails(err))
		return
	}

	avatarURL := ""
	if fh, err := c.FormFile("avatar"); err == nil {
		url, err := h.Uploads.Store(c.Request.Context(), fh, "avatar", application.UserImgFolder)
		if err != nil {
			h.Logger.WithError(err).Error("avatar upload failed")
			response.InternalError(c)
			return
		}
		avatarURL = url
	}

	u, err := h.Svc.Create(c.Request.Context(), application.CreateUserInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		Avatar:      avatarURL,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Message(c, http.StatusConflict, "Conflict. User already exists.")
			return
		}
		h.Logger.WithError(err).Error("create user failed")
		response.InternalError(c)
		return
	}
	response.Payload(c, http.StatusCreated, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationFailed(c, validation.ToDetails(err))
		return
	}
	fields := map[string]any{}
	for _, f := range []string{"firstName", "lastName", "email", "avatar", "dateOfBirth"} {
		if v, ok := body[f]; ok {
			fields[f] = v
		}
	}

	u, err := h.Svc.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Message(c, http.StatusNotFound, "User not found")
			return
		}
		h.Logger.WithError(err).Error("update user failed")
		response.InternalError(c)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.ValidationFailed(c, map[string]string{"avatar": "is required"})
		return
	}
	url, err := h.Uploads.Store(c.Request.Context(), fh, "avatar", application.UserImgFolder)
	if err != nil {
		h.Logger.WithError(err).Error("avatar upload failed")
		response.InternalError(c)
		return
	}

	u, err := h.Svc.UpdateAvatar(c.Request.Context(), c.Param("id"), url)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Message(c, http.StatusNotFound, "User not found")
			return
		}
		h.Logger.WithError(err).Error("update avatar failed")
		response.InternalError(c)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Message(c, http.StatusNotFound, "User not found")
			return
		}
		h.Logger.WithError(err).Error("delete user failed")
		response.InternalError(c)
		return
	}
	c.String(http.StatusOK, "User with %s successfully removed", id)
}
