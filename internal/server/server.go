package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/code1379/bookmark/internal/api/controller"
	"github.com/code1379/bookmark/internal/middleware"
)

// Server assembles the gin engine and route table.
type Server struct {
	engine *gin.Engine
}

// New builds the HTTP server. sessionGate guards every route that needs
// an authenticated user.
func New(
	authController *controller.AuthController,
	bookmarkController *controller.BookmarkController,
	categoryController *controller.CategoryController,
	sessionGate gin.HandlerFunc,
) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	api.POST("/auth/register", authController.Register)
	api.POST("/auth/login", authController.Login)
	api.POST("/auth/logout", authController.Logout)

	authed := api.Group("", sessionGate)
	authed.GET("/bookmarks", bookmarkController.List)
	authed.POST("/bookmarks", bookmarkController.Create)
	authed.PATCH("/bookmarks/:id", bookmarkController.Update)
	authed.DELETE("/bookmarks/:id", bookmarkController.Delete)
	authed.GET("/categories", categoryController.List)
	authed.POST("/categories", categoryController.Create)
	authed.PATCH("/categories/:id", categoryController.Rename)
	authed.DELETE("/categories/:id", categoryController.Delete)

	return &Server{engine: engine}
}

// Engine exposes the underlying handler for net/http.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
