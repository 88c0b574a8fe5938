package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/bloggyhq/bloggy/internal/interface/http"
	"github.com/bloggyhq/bloggy/internal/interface/middleware"
	"github.com/bloggyhq/bloggy/pkg/helpers"
)

// UserModule wires the user CRUD routes.
// Only the full listing is token-protected; the rest of the surface is public.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := middleware.Auth(m.JWT)

	rg.GET("/getUsers", auth, m.Handler.List)
	rg.GET("/getUsers/:id", m.Handler.Get)
	rg.GET("/getUsers/ByName/:query", m.Handler.SearchByName)
	rg.POST("/createUser", m.Handler.Create)
	rg.PATCH("/updateUser/:id", m.Handler.Update)
	rg.PATCH("/updateUser/:id/avatar", m.Handler.UpdateAvatar)
	rg.DELETE("/deleteUser/:id", m.Handler.Delete)
}
