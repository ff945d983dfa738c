// Package httpx holds the response envelope and the request-scoped HTTP
// middleware shared by every route.
package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/apperr"
	"storefront/query"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success    bool              `json:"success"`
	Data       any               `json:"data,omitempty"`
	Error      string            `json:"error,omitempty"`
	Count      *int              `json:"count,omitempty"`
	Pagination *query.Pagination `json:"pagination,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// Collection responds with a list payload plus its count and, when the
// caller paginated, the next/prev descriptors.
func Collection(c *gin.Context, data any, count int, p *query.Pagination) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Count: &count, Pagination: p})
}

// Fail maps the error taxonomy onto HTTP statuses and writes the failure
// envelope.
func Fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), Envelope{Success: false, Error: apperr.Message(err)})
}

// Abort is Fail for middleware: it also stops the handler chain.
func Abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), Envelope{Success: false, Error: apperr.Message(err)})
}

func statusFor(err error) int {
	switch apperr.Code(err) {
	case apperr.EINVALID:
		return http.StatusBadRequest
	case apperr.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case apperr.EFORBIDDEN:
		return http.StatusForbidden
	case apperr.ENOTFOUND:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
