package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	logger "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Logger"
)

const (
	RequestIDHeader  = "X-Request-ID"
	requestLoggerKey = "request_logger"
)

// RequestLogger tags every request with an id and writes one access log line per request
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		reqLog := log.WithRequestID(requestID)
		c.Set(requestLoggerKey, reqLog)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := reqLog.Logger.Info()
		switch {
		case status >= 500:
			event = reqLog.Logger.Error()
		case status >= 400:
			event = reqLog.Logger.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// GetLogger returns the request scoped logger, or fallback outside RequestLogger
func GetLogger(c *gin.Context, fallback *logger.Logger) *logger.Logger {
	if value, ok := c.Get(requestLoggerKey); ok {
		if l, ok := value.(*logger.Logger); ok {
			return l
		}
	}
	return fallback
}
