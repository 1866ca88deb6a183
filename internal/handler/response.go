package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/videotube/internal/domain"
	"github.com/prperemyshlev/videotube/internal/dto"
)

func respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, dto.NewApiResponse(status, data, message))
}

// fail writes the error envelope for err and aborts the chain.
// The error is attached to the context so the logging middleware can record it.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	status := domain.StatusCode(err)
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(status, domain.PublicMessage(err), domain.ErrorDetails(err)))
}

func badRequest(c *gin.Context, err error) {
	fail(c, domain.Validation("invalid request", err.Error()))
}

// bindJSON binds the body into req and writes a 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, err)
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		badRequest(c, err)
		return false
	}
	return true
}

func ok(c *gin.Context, data any, message string) {
	respond(c, http.StatusOK, data, message)
}
