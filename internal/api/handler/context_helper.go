package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ray8844/saida-de-campo/pkg/response"
)

// MustGetUserID extracts the caller id set by the auth middleware. It writes
// a 401 and returns false when the id is missing; callers return at once.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, response.CodeUnauthorized, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, response.CodeUnauthorized, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetRole extracts the caller role.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, response.CodeUnauthorized, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, response.CodeUnauthorized, "not authenticated")
		return "", false
	}
	return s, true
}

// bindFailed answers a request whose body or query could not be bound.
func bindFailed(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, response.CodePayloadTooLarge, "request body too large")
		return
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "invalid request parameters", err.Error())
}

// pathID returns the :id path parameter. Ids are UUIDs, so anything else
// cannot name a stored record and is answered with a 404 here.
func pathID(c *gin.Context, resource string) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.NotFound(c, response.CodeNotFound, resource+" not found")
		return "", false
	}
	return id, true
}
