package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/bloggyhq/bloggy/internal/interface/http"
	"github.com/bloggyhq/bloggy/internal/interface/middleware"
	"github.com/bloggyhq/bloggy/pkg/helpers"
)

// BlogModule wires blog post and comment routes. Reading and mutating posts
// requires a session token; cover replacement and editor image uploads are
// public so the frontend editor can call them before login state is resolved.
type BlogModule struct {
	Handler *handlers.BlogPostHandler
	JWT     *helpers.JWTManager
}

func NewBlogModule(h *handlers.BlogPostHandler, jwt *helpers.JWTManager) *BlogModule {
	return &BlogModule{Handler: h, JWT: jwt}
}

func (m *BlogModule) Register(rg *gin.RouterGroup) {
	auth := middleware.Auth(m.JWT)

	rg.GET("/blogPosts", auth, m.Handler.List)
	rg.GET("/blogPosts/:id", auth, m.Handler.Get)
	rg.GET("/blogPosts/ByName/:query", auth, m.Handler.SearchByAuthor)
	rg.POST("/addBlogPost", auth, m.Handler.Create)
	rg.PATCH("/updateBlogPost/:id", auth, m.Handler.Update)
	rg.PATCH("/updateBlogPost/:id/cover", m.Handler.UpdateCover)
	rg.DELETE("/deleteBlogPost/:id", auth, m.Handler.Delete)

	rg.GET("/blogPosts/:id/comments", auth, m.Handler.Comments)
	rg.POST("/blogPosts/:id/addComment", auth, m.Handler.AddComment)
	rg.DELETE("/blogPosts/:id/comment/:commentId", auth, m.Handler.RemoveComment)

	rg.POST("/blogPosts/uploadImg", m.Handler.UploadLocal)
	rg.POST("/blogPosts/cloudUploadImg", m.Handler.UploadRemote)
}
