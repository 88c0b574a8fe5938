package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bloggyhq/bloggy/internal/application"
	repo "github.com/bloggyhq/bloggy/internal/domain/repository"
	"github.com/bloggyhq/bloggy/pkg/response"
	"github.com/bloggyhq/bloggy/pkg/validation"
)

// blogFilterFields are the query keys GET /blogPosts accepts as substring
// filters. "author" matches against the embedded author name.
var blogFilterFields = []string{"title", "category", "content", "author"}

type BlogPostHandler struct {
	Svc     *application.BlogPostService
	Uploads *application.UploadService
	Logger  *logrus.Logger
}

func NewBlogPostHandler(svc *application.BlogPostService, uploads *application.UploadService, logger *logrus.Logger) *BlogPostHandler {
	return &BlogPostHandler{Svc: svc, Uploads: uploads, Logger: logger}
}

func (h *BlogPostHandler) List(c *gin.Context) {
	filter := filterFromQuery(c, blogFilterFields)
	if v, ok := filter["author"]; ok {
		delete(filter, "author")
		filter["author.name"] = v
	}
	posts, err := h.Svc.List(c.Request.Context(), filter)
	if err != nil {
		h.Logger.WithError(err).Error("list posts failed")
		response.InternalError(c)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *BlogPostHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Message(c, http.StatusNotFound, "This post was not found")
			return
		}
		h.Logger.WithError(err).Error("get post failed")
		response.InternalError(c)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *BlogPostHandler) SearchByAuthor(c *gin.Context) {
	posts, err := h.Svc.SearchByAuthor(c.Request.Context(), c.Param("query"))
	if err != nil {
		h.Logger.WithError(err).Error("search posts failed")
		response.InternalError(c)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Create handles the multipart form posted by the editor. The form nests
// composite values with bracket keys: readTime[value], readTime[unit],
// author[name], author[email].
func (h *BlogPostHandler) Create(c *gin.Context) {
	title := c.PostForm("title")
	content := c.PostForm("content")
	authorName := c.PostForm("author[name]")
	coverFile, coverErr := c.FormFile("cover")

	details := map[string]string{}
	if title == "" {
		details["title"] = "is required"
	}
	if content == "" {
		details["content"] = "is required"
	}
	if authorName == "" {
		details["author.name"] = "is required"
	}
	if coverErr != nil {
		details["cover"] = "is required"
	}
	if len(details) > 0 {
		response.ValidationFailed(c, details)
		return
	}

	readTimeValue, _ := strconv.Atoi(c.PostForm("readTime[value]"))

	coverURL, err := h.Uploads.Store(c.Request.Context(), coverFile, "cover", application.BlogImgFolder)
	if err != nil {
		h.Logger.WithError(err).Error("cover upload failed")
		response.InternalError(c)
		return
	}

	p, err := h.Svc.Create(c.Request.Context(), application.CreateBlogPostInput{
		Category:      c.PostForm("category"),
		Title:         title,
		Cover:         coverURL,
		ReadTimeValue: readTimeValue,
		ReadTimeUnit:  c.PostForm("readTime[unit]"),
		AuthorName:    authorName,
		AuthorEmail:   c.PostForm("author[email]"),
		Content:       content,
	})
	if err != nil {
		h.Logger.WithError(err).Error("create post failed")
		response.InternalError(c)
		return
	}
	response.Payload(c, http.StatusCreated, p)
}

func (h *BlogPostHandler) Update(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationFailed(c, validation.ToDetails(err))
		return
	}
	fields := map[string]any{}
	for _, f := range []string{"category", "title", "cover", "readTime", "author", "content"} {
		if v, ok := body[f]; ok {
			fields[f] = v
		}
	}

	p, err := h.Svc.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Message(c, http.StatusNotFound, "This post was not found")
			return
		}
		h.Logger.WithError(err).Error("update post failed")
		response.InternalError(c)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *BlogPostHandler) UpdateCover(c *gin.Context) {
	fh, err := c.FormFile("cover")
	if err != nil {
		response.ValidationFailed(c, map[string]string{"cover": "is required"})
		return
	}
	url, err := h.Uploads.Store(c.Request.Context(), fh, "cover", application.BlogImgFolder)
	if err != nil {
		h.Logger.WithError(err).Error("cover upload failed")
		response.InternalError(c)
		return
	}

	p, err := h.Svc.UpdateCover(c.Request.Context(), c.Param("id"), url)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Message(c, http.StatusNotFound, "This post was not found")
			return
		}
		h.Logger.WithError(err).Error("update cover failed")
		response.InternalError(c)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *BlogPostHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.String(http.StatusNotFound, "The post was not found")
			return
		}
		h.Logger.WithError(err).Error("delete post failed")
		response.InternalError(c)
		return
	}
	response.Message(c, http.StatusOK, "Post with id "+id+" succesfully deleted")
}

func (h *BlogPostHandler) Comments(c *gin.Context) {
	comments, err := h.Svc.Comments(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Message(c, http.StatusNotFound, "This post was not found.")
			return
		}
		h.Logger.WithError(err).Error("list comments failed")
		response.InternalError(c)
		return
	}
	c.JSON(http.StatusOK, comments)
}

type addCommentRequest struct {
	AuthorName   string `json:"commentAuthorName" binding:"required"`
	AuthorAvatar string `json:"commentAuthorAvatar"`
	Content      string `json:"content" binding:"required"`
}

func (h *BlogPostHandler) AddComment(c *gin.Context) {
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validation.ToDetails(err))
		return
	}

	_, err := h.Svc.AddComment(c.Request.Context(), c.Param("id"), application.AddCommentInput{
		AuthorName:   req.AuthorName,
		AuthorAvatar: req.AuthorAvatar,
		Content:      req.Content,
	})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Message(c, http.StatusNotFound, "This post was not found.")
			return
		}
		h.Logger.WithError(err).Error("add comment failed")
		response.InternalError(c)
		return
	}
	response.Message(c, http.StatusOK, "Comment added successfully.")
}

// RemoveComment always answers 200 when the post exists; a commentId that is
// not in the list leaves the post unchanged.
func (h *BlogPostHandler) RemoveComment(c *gin.Context) {
	if err := h.Svc.RemoveComment(c.Request.Context(), c.Param("id"), c.Param("commentId")); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.String(http.StatusNotFound, "The post was not found")
			return
		}
		h.Logger.WithError(err).Error("remove comment failed")
		response.InternalError(c)
		return
	}
	response.Message(c, http.StatusOK, "Comment deleted successfully.")
}

// UploadLocal stores an editor image on local disk and returns its URL.
func (h *BlogPostHandler) UploadLocal(c *gin.Context) {
	fh, err := c.FormFile("uploadImg")
	if err != nil {
		response.ValidationFailed(c, map[string]string{"uploadImg": "is required"})
		return
	}
	url, err := h.Uploads.Local(fh, "uploadImg")
	if err != nil {
		h.Logger.WithError(err).Error("image upload failed")
		response.Message(c, http.StatusInternalServerError, "File Upload Error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"source": url})
}

// UploadRemote stores an editor image in the object store and returns its URL.
func (h *BlogPostHandler) UploadRemote(c *gin.Context) {
	fh, err := c.FormFile("uploadImg")
	if err != nil {
		response.ValidationFailed(c, map[string]string{"uploadImg": "is required"})
		return
	}
	url, err := h.Uploads.Store(c.Request.Context(), fh, "uploadImg", application.BlogImgFolder)
	if err != nil {
		if errors.Is(err, application.ErrBadImageFormat) {
			response.ValidationFailed(c, map[string]string{"uploadImg": "must be png, jpg or jpeg"})
			return
		}
		h.Logger.WithError(err).Error("image upload failed")
		response.Message(c, http.StatusInternalServerError, "File Upload Error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"source": url})
}
