package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	resp "go-gin-gorm-blog/internal/transport/http/response"
)

// MaxBodyBytes caps the request body. Reads past n fail and, if nothing was
// written yet, the request ends with 413.
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
		if c.Writer.Written() {
			return
		}
		for _, e := range c.Errors {
			var tooLarge *http.MaxBytesError
			if errors.As(e.Err, &tooLarge) {
				resp.Abort(c, resp.CodeTooLarge, "")
				return
			}
		}
	}
}
