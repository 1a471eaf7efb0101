// Package response writes JSON bodies in the shapes API clients expect:
// payloads are returned bare and failures as {"detail": "..."}.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spycat-agency/service-mission/internal/common/domain"
)

const internalErrorMessage = "Internal server error"

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// Message responds 200 with {"message": msg}.
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func BadRequest(c *gin.Context, detail string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": detail})
}

// Error maps err to a status code. Domain errors expose their message;
// anything else is recorded on the gin context for the request logger and
// answered with a generic 500.
func Error(c *gin.Context, err error) {
	var de *domain.DomainError
	if errors.As(err, &de) {
		if status := StatusFor(de); status != http.StatusInternalServerError {
			c.AbortWithStatusJSON(status, gin.H{"detail": de.Message})
			return
		}
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": internalErrorMessage})
}

// StatusFor returns the HTTP status Error would use for err.
func StatusFor(err error) int {
	kind, ok := domain.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindValidation, domain.KindConflict:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
