package daemon

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// quietPaths are polled by tooling and only logged at trace level.
var quietPaths = map[string]bool{
	"/metrics": true,
	"/version": true,
}

// ginLogger logs one line per request through logger.
func ginLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Handlers may rewrite the path, so capture it first.
		path := c.Request.URL.Path
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		size := c.Writer.Size()
		if size < 0 {
			size = 0
		}

		entry := logger.WithFields(logrus.Fields{
			"statusCode": statusCode,
			"latency":    latency.Round(time.Microsecond).String(),
			"method":     c.Request.Method,
			"path":       path,
			"dataLength": size,
			"requestID":  c.GetString(requestIDKey),
		})

		switch {
		case len(c.Errors) > 0 && statusCode >= http.StatusInternalServerError:
			entry.Error(c.Errors.ByType(gin.ErrorTypePrivate).String())
		case len(c.Errors) > 0 || statusCode >= http.StatusBadRequest:
			entry.Warnf("%s %s %d", c.Request.Method, path, statusCode)
		case quietPaths[path]:
			entry.Tracef("%s %s %d", c.Request.Method, path, statusCode)
		default:
			entry.Debugf("%s %s %d", c.Request.Method, path, statusCode)
		}
	}
}
