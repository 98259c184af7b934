// internal/interfaces/http/handlers/respond.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alibix/storefront-api/internal/pkg/errs"
)

// respondError maps a domain error to its HTTP status and JSON shape
func respondError(c *gin.Context, err error) {
	e := errs.From(err)
	c.JSON(e.HTTPStatus(), gin.H{
		"error": e.Message,
		"code":  e.Code,
	})
}

// respondBindError reports a malformed or incomplete request body
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request data",
		"code":    errs.CodeValidation,
		"details": err.Error(),
	})
}
