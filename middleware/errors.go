package middleware

import (
	"net/http"

	"qna-board/helper"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorHandler renders the error page for failures handlers report through
// c.Error. Handlers that already wrote a response are left alone.
func ErrorHandler(log *logrus.Logger, httpHelper *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		status := httpHelper.GetStatusCode(err)

		entry := log.WithError(err).WithField("path", c.Request.URL.Path)
		if status >= http.StatusInternalServerError {
			entry.Error("unhandled error")
		} else {
			entry.Warn("request error")
		}

		if c.Writer.Written() {
			return
		}

		message := http.StatusText(status)
		if status < http.StatusInternalServerError {
			message = err.Error()
		}
		c.HTML(status, "error", gin.H{
			"title":   http.StatusText(status),
			"status":  status,
			"message": message,
		})
	}
}

// Recovery turns a panic into the 500 error page.
func Recovery(log *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.WithField("panic", recovered).WithField("path", c.Request.URL.Path).Error("recovered from panic")
		c.HTML(http.StatusInternalServerError, "error", gin.H{
			"title":   http.StatusText(http.StatusInternalServerError),
			"status":  http.StatusInternalServerError,
			"message": http.StatusText(http.StatusInternalServerError),
		})
		c.Abort()
	})
}
