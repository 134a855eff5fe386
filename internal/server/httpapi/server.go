// Package httpapi is the HTTP transport for the bookmark service. It binds
// request bodies, resolves the caller's identity from bearer tokens and
// translates service errors into status codes. All business rules live in
// the services package.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/natekim416/tuckserver/internal/logging"
	"github.com/natekim416/tuckserver/internal/server/services"
)

// Server holds the handler dependencies and builds the gin router.
type Server struct {
	users      *services.UserService
	folders    *services.FolderService
	bookmarks  *services.BookmarkService
	classifier services.Classifier
	secretKey  []byte
	log        logging.Logger
}

// NewServer constructs the HTTP transport over the given services.
func NewServer(users *services.UserService, folders *services.FolderService, bookmarks *services.BookmarkService, classifier services.Classifier, secretKey []byte, log logging.Logger) *Server {
	return &Server{
		users:      users,
		folders:    folders,
		bookmarks:  bookmarks,
		classifier: classifier,
		secretKey:  secretKey,
		log:        log,
	}
}

// InitRoutes wires up the route table. Everything under /api plus /me
// requires an authenticated identity; /auth is open.
func (s *Server) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	auth := router.Group("/auth")
	{
		auth.POST("/register", s.register)
		auth.POST("/login", s.login)
	}

	router.GET("/me", s.authenticate(), s.requireIdentity(), s.me)

	api := router.Group("/api", s.authenticate(), s.requireIdentity())
	{
		api.POST("/smart-sort", s.smartSort)

		api.GET("/bookmarks", s.listBookmarks)
		api.POST("/bookmarks/smart-save", s.smartSaveBookmark)
		api.DELETE("/bookmarks/:bookmarkID", s.deleteBookmark)

		api.GET("/folders", s.listFolders)
		api.POST("/folders", s.createFolder)
		api.PATCH("/folders/:folderID", s.updateFolder)
		api.DELETE("/folders/:folderID", s.deleteFolder)
		api.GET("/folders/:folderID/bookmarks", s.listFolderBookmarks)
	}

	return router
}

type errorResponse struct {
	Message string `json:"message"`
}

func newErrorResponse(c *gin.Context, statusCode int, errMessage string) {
	c.AbortWithStatusJSON(statusCode, errorResponse{Message: errMessage})
}

type statusResponse struct {
	Status string `json:"status"`
}

func newOKResponse(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse{Status: "ok"})
}
