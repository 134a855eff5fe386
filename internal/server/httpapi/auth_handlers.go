package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/natekim416/tuckserver/internal/common"
	"github.com/natekim416/tuckserver/internal/server/models"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User  models.PublicUser `json:"user"`
	Token string            `json:"token"`
}

// POST /auth/register
func (s *Server) register(c *gin.Context) {
	log := s.log.With("op", "httpapi.register")

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := s.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			newErrorResponse(c, http.StatusBadRequest, "invalid email or password")
		case errors.Is(err, common.ErrorConflict):
			newErrorResponse(c, http.StatusConflict, "email already registered")
		default:
			log.Error(c.Request.Context(), "failed to register user", "error", err)
			newErrorResponse(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	c.JSON(http.StatusCreated, sessionResponse{User: user.AsPublic(), Token: token})
}

// POST /auth/login
func (s *Server) login(c *gin.Context) {
	log := s.log.With("op", "httpapi.login")

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			// Same answer for unknown email and wrong password.
			newErrorResponse(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		log.Error(c.Request.Context(), "failed to log user in", "error", err)
		newErrorResponse(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusOK, sessionResponse{User: user.AsPublic(), Token: token})
}

// GET /me
func (s *Server) me(c *gin.Context) {
	log := s.log.With("op", "httpapi.me")

	user, err := s.users.FindByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		log.Error(c.Request.Context(), "failed to load current user", "error", err)
		newErrorResponse(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusOK, user.AsPublic())
}
