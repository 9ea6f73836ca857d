package observability

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/config"
)

func TestNewLogger_Levels(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "debug"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger(config.LoggerConfig{Level: "nonsense"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/login", "GET", 200, 2*time.Millisecond)
	m.RecordRequest("/login", "GET", 200, 4*time.Millisecond)
	m.RecordError("/app/home", "GET", "UPSTREAM_FAILED")

	s := m.Snapshot()
	assert.Equal(t, int64(2), s.Requests)
	assert.Equal(t, int64(2), s.ByRoute["GET /login|200"])
	assert.Equal(t, int64(1), s.Errors["GET /app/home|UPSTREAM_FAILED"])
	assert.InDelta(t, 3.0, s.AverageLatencyMs, 0.01)

	var nilMetrics *Metrics
	nilMetrics.RecordRequest("/", "GET", 200, time.Millisecond)
	assert.Empty(t, nilMetrics.Snapshot().ByRoute)
}

func TestRequestLogger_AssignsRequestID(t *testing.T) {
	m := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), m))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString(RequestIDFromContext(c))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	id := resp.Header.Get(RequestIDHeader)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/ping", nil)
	fixed := uuid.NewString()
	req.Header.Set(RequestIDHeader, fixed)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fixed, resp.Header.Get(RequestIDHeader))

	assert.Equal(t, int64(2), m.Snapshot().ByRoute["GET /ping|200"])
}
