package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InvalidBookIDError is raised when a book is requested by an id that is not
// in the store.
type InvalidBookIDError struct {
	ID uint
}

func (e *InvalidBookIDError) Error() string {
	return fmt.Sprintf("Invalid book Id:%d", e.ID)
}

// ErrorView is the model for the "error" template.
type ErrorView struct {
	Status     int
	StatusText string
	Message    string
}

// ErrorPageMiddleware renders the error page for any error a handler
// recorded with c.Error without writing a response itself.
//
//   - *InvalidBookIDError: 404 with the error message
//   - gin.ErrorTypeBind:    400
//   - anything else:        500, details only in the log
func ErrorPageMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		last := c.Errors.Last()
		status, message := classifyError(last)

		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(last.Err))
		} else {
			logger.Debug("request rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Int("status", status),
				zap.Error(last.Err))
		}

		c.HTML(status, TemplateError, ErrorView{
			Status:     status,
			StatusText: http.StatusText(status),
			Message:    message,
		})
	}
}

func classifyError(err *gin.Error) (int, string) {
	var invalidID *InvalidBookIDError
	if errors.As(err.Err, &invalidID) {
		return http.StatusNotFound, invalidID.Error()
	}
	if err.IsType(gin.ErrorTypeBind) {
		return http.StatusBadRequest, http.StatusText(http.StatusBadRequest)
	}
	return http.StatusInternalServerError, "Something went wrong while handling your request."
}

// abortWithError records err for ErrorPageMiddleware and stops the chain.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// abortWithBindError records a malformed-request error.
func abortWithBindError(c *gin.Context, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
	c.Abort()
}
