package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes env with its code as HTTP status.
func JSON(c *gin.Context, env *Envelope) {
	c.JSON(env.Code, env)
}

func writeSuccess(c *gin.Context, code int, v interface{}) {
	env, err := Success(code, v)
	if err != nil {
		GeneralError(c, err.Error())
		return
	}
	JSON(c, env)
}

// Object responds 200 with v as data.
func Object(c *gin.Context, v interface{}) {
	writeSuccess(c, http.StatusOK, v)
}

// Paginated responds 200 with the page items as data and the paginator
// fields as pagination.
func Paginated(c *gin.Context, v interface{}) {
	env, err := Page(v)
	if err != nil {
		GeneralError(c, err.Error())
		return
	}
	JSON(c, env)
}

// Created responds 201 with the created record.
func Created(c *gin.Context, v interface{}) {
	writeSuccess(c, http.StatusCreated, v)
}

// Updated responds 200 with the updated record.
func Updated(c *gin.Context, v interface{}) {
	writeSuccess(c, http.StatusOK, v)
}

// Deleted responds 200 without data.
func Deleted(c *gin.Context) {
	JSON(c, &Envelope{Success: true, Code: http.StatusOK})
}

// NotFound responds 404.
func NotFound(c *gin.Context) {
	JSON(c, Failure(http.StatusNotFound, MessageNotFound))
}

// RouteNotFound responds 404 for unmatched routes. It is meant for gin's NoRoute.
func RouteNotFound(c *gin.Context) {
	JSON(c, Failure(http.StatusNotFound, MessageNotFound))
}

// NotImplemented responds 501 for operations a resource does not allow.
func NotImplemented(c *gin.Context) {
	JSON(c, Failure(http.StatusNotImplemented, MessageNotImplemented))
}

// Unauthorized responds 401.
func Unauthorized(c *gin.Context) {
	JSON(c, Failure(http.StatusUnauthorized, MessageUnauthorized))
}

// ValidationError responds 400 with the error bag.
func ValidationError(c *gin.Context, errs ValidationErrors) {
	env := Failure(http.StatusBadRequest, MessageValidationError)
	env.Errors = errs
	JSON(c, env)
}

// GeneralError responds 500 with message.
func GeneralError(c *gin.Context, message string) {
	JSON(c, Failure(http.StatusInternalServerError, message))
}
