package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/natekim416/tuckserver/internal/common"
)

type smartSaveRequest struct {
	URL   string  `json:"url"`
	Title *string `json:"title"`
	Notes *string `json:"notes"`
}

type smartSortRequest struct {
	Text         string `json:"text"`
	UserExamples string `json:"userExamples"`
}

// POST /api/smart-sort
//
// Classifies free text without persisting anything. The caller can supply
// their own examples; otherwise their existing folder names are passed
// along so the provider prefers reusing them.
func (s *Server) smartSort(c *gin.Context) {
	log := s.log.With("op", "httpapi.smartSort")

	var req smartSortRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	examples := req.UserExamples
	if examples == "" {
		var err error
		examples, err = s.folders.NameExamples(c.Request.Context(), currentUserID(c))
		if err != nil {
			log.Error(c.Request.Context(), "failed to list folders", "error", err)
			newErrorResponse(c, http.StatusInternalServerError, "internal error")
			return
		}
	}

	result, err := s.classifier.Classify(c.Request.Context(), req.Text, examples)
	if err != nil {
		log.Error(c.Request.Context(), "classification failed", "error", err)
		newErrorResponse(c, http.StatusBadGateway, "classification unavailable")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GET /api/bookmarks
func (s *Server) listBookmarks(c *gin.Context) {
	log := s.log.With("op", "httpapi.listBookmarks")

	items, err := s.bookmarks.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		log.Error(c.Request.Context(), "failed to list bookmarks", "error", err)
		newErrorResponse(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusOK, items)
}

// POST /api/bookmarks
//
// The smart-save flow: classify first, then file. Nothing is persisted when
// classification fails, so 502 here means the store is untouched.
func (s *Server) smartSaveBookmark(c *gin.Context) {
	log := s.log.With("op", "httpapi.smartSaveBookmark")

	var req smartSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := s.bookmarks.SmartSave(c.Request.Context(), currentUserID(c), req.URL, req.Title, req.Notes)
	if err != nil {
		if errors.Is(err, common.ErrUpstreamUnavailable) || errors.Is(err, common.ErrUpstreamBadResponse) {
			log.Error(c.Request.Context(), "classification failed", "error", err)
			newErrorResponse(c, http.StatusBadGateway, "classification unavailable")
			return
		}
		log.Error(c.Request.Context(), "failed to save bookmark", "error", err)
		newErrorResponse(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// DELETE /api/bookmarks/:bookmarkID
func (s *Server) deleteBookmark(c *gin.Context) {
	log := s.log.With("op", "httpapi.deleteBookmark")

	err := s.bookmarks.Delete(c.Request.Context(), currentUserID(c), c.Param("bookmarkID"))
	if err != nil {
		// A bookmark the caller does not own answers exactly like one that
		// does not exist, so the route does not leak other users' ids.
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorForbidden) {
			newErrorResponse(c, http.StatusNotFound, "bookmark not found")
			return
		}
		log.Error(c.Request.Context(), "failed to delete bookmark", "error", err)
		newErrorResponse(c, http.StatusInternalServerError, "internal error")
		return
	}

	newOKResponse(c)
}
