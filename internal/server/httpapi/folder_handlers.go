package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/natekim416/tuckserver/internal/common"
)

type createFolderRequest struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

type updateFolderRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// GET /api/folders
func (s *Server) listFolders(c *gin.Context) {
	log := s.log.With("op", "httpapi.listFolders")

	folders, err := s.folders.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		log.Error(c.Request.Context(), "failed to list folders", "error", err)
		newErrorResponse(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusOK, folders)
}

// POST /api/folders
func (s *Server) createFolder(c *gin.Context) {
	log := s.log.With("op", "httpapi.createFolder")

	var req createFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := s.folders.Create(c.Request.Context(), currentUserID(c), req.Name, req.Color)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			newErrorResponse(c, http.StatusConflict, "folder already exists")
			return
		}
		log.Error(c.Request.Context(), "failed to create folder", "error", err)
		newErrorResponse(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusCreated, folder)
}

// PATCH /api/folders/:folderID
func (s *Server) updateFolder(c *gin.Context) {
	log := s.log.With("op", "httpapi.updateFolder")

	var req updateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := s.folders.Update(c.Request.Context(), currentUserID(c), c.Param("folderID"), req.Name, req.Color)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrorForbidden):
			newErrorResponse(c, http.StatusNotFound, "folder not found")
		case errors.Is(err, common.ErrorConflict):
			newErrorResponse(c, http.StatusConflict, "folder already exists")
		default:
			log.Error(c.Request.Context(), "failed to update folder", "error", err)
			newErrorResponse(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	c.JSON(http.StatusOK, folder)
}

// DELETE /api/folders/:folderID
func (s *Server) deleteFolder(c *gin.Context) {
	log := s.log.With("op", "httpapi.deleteFolder")

	err := s.folders.Delete(c.Request.Context(), currentUserID(c), c.Param("folderID"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorForbidden) {
			newErrorResponse(c, http.StatusNotFound, "folder not found")
			return
		}
		log.Error(c.Request.Context(), "failed to delete folder", "error", err)
		newErrorResponse(c, http.StatusInternalServerError, "internal error")
		return
	}

	newOKResponse(c)
}

// GET /api/folders/:folderID/bookmarks
func (s *Server) listFolderBookmarks(c *gin.Context) {
	log := s.log.With("op", "httpapi.listFolderBookmarks")

	items, err := s.folders.ListBookmarks(c.Request.Context(), currentUserID(c), c.Param("folderID"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorForbidden) {
			newErrorResponse(c, http.StatusNotFound, "folder not found")
			return
		}
		log.Error(c.Request.Context(), "failed to list folder bookmarks", "error", err)
		newErrorResponse(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusOK, items)
}
