package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ray8844/saida-de-campo/pkg/metrics"
)

// Metrics records every request by route template and status.
func Metrics(recorder metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		recorder.RecordRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
