package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	config "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Config"
	logger "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newLoggedRouter(buf *bytes.Buffer) *gin.Engine {
	log := logger.NewLoggerWithWriter(&config.LoggingConfig{Format: "json"}, buf)
	router := gin.New()
	router.Use(RequestLogger(log))
	router.GET("/ok", func(c *gin.Context) {
		GetLogger(c, nil).Info("handler")
		c.Status(http.StatusOK)
	})
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	return router
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestRequestLogger_GeneratesID(t *testing.T) {
	var buf bytes.Buffer
	router := newLoggedRouter(&buf)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	entry := lastLine(t, &buf)
	assert.Equal(t, id, entry["request_id"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/ok", entry["path"])
	assert.EqualValues(t, 200, entry["status"])
	assert.Equal(t, "info", entry["level"])

	// the handler logged through the request scoped logger
	assert.Contains(t, buf.String(), `"message":"handler"`)
}

func TestRequestLogger_KeepsIncomingID(t *testing.T) {
	var buf bytes.Buffer
	router := newLoggedRouter(&buf)

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	entry := lastLine(t, &buf)
	assert.Equal(t, "abc-123", entry["request_id"])
	assert.Equal(t, "warn", entry["level"])
}

func TestGetLogger_Fallback(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	fallback := logger.NewNopLogger()
	assert.Same(t, fallback, GetLogger(c, fallback))
}
