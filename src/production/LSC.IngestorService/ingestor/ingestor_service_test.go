package ingestor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	config "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Config"
	"gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.IngestorService/client"
	logger "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Logger"
)

type recordingSubmitter struct {
	mu       sync.Mutex
	received []client.LoadDataRequest
	fail     map[string]error
}

func (s *recordingSubmitter) SubmitReading(_ context.Context, r client.LoadDataRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[r.ID]; err != nil {
		return err
	}
	s.received = append(s.received, r)
	return nil
}

func (s *recordingSubmitter) ids() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.received))
	for _, r := range s.received {
		out = append(out, r.ID)
	}
	return out
}

type published struct {
	topic   string
	payload map[string]interface{}
}

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []published
}

func (p *recordingPublisher) publish(topic string, payload []byte) {
	var body map[string]interface{}
	_ = json.Unmarshal(payload, &body)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, published{topic: topic, payload: body})
}

func (p *recordingPublisher) all() []published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]published(nil), p.msgs...)
}

func testConfig(size int, window time.Duration) *config.IngestorConfig {
	return &config.IngestorConfig{
		MQTT: config.MQTTConfig{
			Topic:      "collars/+/readings",
			ErrorTopic: "ingestor/errors",
		},
		Batch:             config.BatchConfig{Size: size, Window: window},
		ApiRequestTimeout: time.Second,
	}
}

func newTestIngestor(cfg *config.IngestorConfig, sub Submitter) (*Ingestor, *recordingPublisher) {
	ing := New(cfg, sub, logger.NewNopLogger())
	pub := &recordingPublisher{}
	ing.publish = pub.publish
	return ing, pub
}

const validPayload = `{"lat":-1.28,"lon":36.82,"temperature":24.5,"humidity":60,"wind":3,"clouds":20,"condition":"Clear","thi":70.1,"activity":0.75,"welfare":"Good"}`

func TestHardwareIDFromTopic(t *testing.T) {
	id, err := hardwareIDFromTopic("collars/+/readings", "collars/A1B2/readings")
	require.NoError(t, err)
	assert.Equal(t, "A1B2", id)

	for _, topic := range []string{"collars/A1B2", "collars//readings", "herd/A1B2/readings", "collars/A1B2/readings/extra"} {
		_, err := hardwareIDFromTopic("collars/+/readings", topic)
		assert.Error(t, err, topic)
	}

	_, err = hardwareIDFromTopic("collars/all/readings", "collars/all/readings")
	assert.ErrorContains(t, err, "no '+' wildcard")
}

func TestDecodePayload(t *testing.T) {
	req, err := decodePayload("A1B2", []byte(validPayload))
	require.NoError(t, err)
	assert.Equal(t, "A1B2", req.ID)
	assert.Equal(t, -1.28, req.Lat)
	assert.Equal(t, "0.75", req.Activity)
	assert.Equal(t, "Good", req.Welfare)

	req, err = decodePayload("A1B2", []byte(`{"lat":0,"lon":0,"temperature":0,"humidity":0,"activity":"12"}`))
	require.NoError(t, err)
	assert.Equal(t, "12", req.Activity)
	assert.Zero(t, req.Lat)

	_, err = decodePayload("A1B2", []byte(`{"lat":1,"lon":2}`))
	assert.ErrorContains(t, err, "missing fields: temperature, humidity, activity")

	_, err = decodePayload("A1B2", []byte(`{"lat":1,"lon":2,"temperature":1,"humidity":1,"activity":true}`))
	assert.Error(t, err)

	_, err = decodePayload("A1B2", []byte(`not json`))
	assert.ErrorContains(t, err, "invalid JSON payload")
}

func TestSubscriptionTopic(t *testing.T) {
	cfg := testConfig(1, time.Second)
	ing := New(cfg, &recordingSubmitter{}, logger.NewNopLogger())
	assert.Equal(t, "collars/+/readings", ing.SubscriptionTopic())

	cfg.MQTT.SharedGroup = "ingestors"
	assert.Equal(t, "$share/ingestors/collars/+/readings", ing.SubscriptionTopic())
}

func TestBatchWriter_FlushesOnSize(t *testing.T) {
	sub := &recordingSubmitter{}
	ing, _ := newTestIngestor(testConfig(2, time.Hour), sub)
	ing.startWriter(context.Background())

	ing.handleMessage("collars/A/readings", []byte(validPayload))
	ing.handleMessage("collars/B/readings", []byte(validPayload))

	assert.Eventually(t, func() bool { return len(sub.ids()) == 2 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"A", "B"}, sub.ids())

	ing.Stop()
}

func TestBatchWriter_FlushesOnWindow(t *testing.T) {
	sub := &recordingSubmitter{}
	ing, _ := newTestIngestor(testConfig(100, 20*time.Millisecond), sub)
	ing.startWriter(context.Background())
	defer ing.Stop()

	ing.handleMessage("collars/A/readings", []byte(validPayload))

	assert.Eventually(t, func() bool { return len(sub.ids()) == 1 }, time.Second, 10*time.Millisecond)
}

func TestStop_FlushesPendingAndDropsLateMessages(t *testing.T) {
	sub := &recordingSubmitter{}
	ing, _ := newTestIngestor(testConfig(100, time.Hour), sub)
	ing.startWriter(context.Background())

	ing.handleMessage("collars/A/readings", []byte(validPayload))
	ing.Stop()
	assert.Equal(t, []string{"A"}, sub.ids())

	ing.handleMessage("collars/B/readings", []byte(validPayload))
	ing.Stop()
	assert.Equal(t, []string{"A"}, sub.ids())
}

func TestCanceledContext_StillFlushes(t *testing.T) {
	sub := &recordingSubmitter{}
	ing, _ := newTestIngestor(testConfig(100, time.Hour), sub)
	ctx, cancel := context.WithCancel(context.Background())

	ing.handleMessage("collars/A/readings", []byte(validPayload))
	ing.startWriter(ctx)
	// let the writer pick the reading up before cancellation
	assert.Eventually(t, func() bool { return len(ing.msgCh) == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	ing.wg.Wait()

	assert.Equal(t, []string{"A"}, sub.ids())
}

func TestInvalidMessages_PublishErrors(t *testing.T) {
	sub := &recordingSubmitter{}
	ing, pub := newTestIngestor(testConfig(1, time.Hour), sub)

	ing.handleMessage("collars/A/status", []byte(validPayload))
	ing.handleMessage("collars/B/readings", []byte(`{"lat":1}`))

	msgs := pub.all()
	require.Len(t, msgs, 2)
	assert.Equal(t, "ingestor/errors/unknown", msgs[0].topic)
	assert.Equal(t, "invalid_topic", msgs[0].payload["error_type"])
	assert.Equal(t, "ingestor/errors/B", msgs[1].topic)
	assert.Equal(t, "invalid_payload", msgs[1].payload["error_type"])
	assert.Equal(t, "B", msgs[1].payload["hardware_id"])
	assert.Empty(t, ing.msgCh)
}

func TestSubmitFailures_PublishErrorsAndContinue(t *testing.T) {
	sub := &recordingSubmitter{fail: map[string]error{
		"GONE": &client.StatusError{StatusCode: http.StatusNotFound, Message: "Device not found."},
		"DOWN": errors.New("connection refused"),
	}}
	ing, pub := newTestIngestor(testConfig(3, time.Hour), sub)
	ing.startWriter(context.Background())

	ing.handleMessage("collars/GONE/readings", []byte(validPayload))
	ing.handleMessage("collars/DOWN/readings", []byte(validPayload))
	ing.handleMessage("collars/OK/readings", []byte(validPayload))
	ing.Stop()

	assert.Equal(t, []string{"OK"}, sub.ids())
	msgs := pub.all()
	require.Len(t, msgs, 2)
	assert.Equal(t, "ingestor/errors/GONE", msgs[0].topic)
	assert.Equal(t, "device_not_found", msgs[0].payload["error_type"])
	assert.Equal(t, "ingestor/errors/DOWN", msgs[1].topic)
	assert.Equal(t, "api_unavailable", msgs[1].payload["error_type"])
}

func TestErrorType(t *testing.T) {
	assert.Equal(t, "invalid_reading", errorType(&client.StatusError{StatusCode: http.StatusBadRequest}))
	assert.Equal(t, "rate_limited", errorType(&client.StatusError{StatusCode: http.StatusTooManyRequests}))
	assert.Equal(t, "create_reading_error", errorType(&client.StatusError{StatusCode: http.StatusInternalServerError}))
}

func TestNotConnectedWithoutBroker(t *testing.T) {
	ing := New(testConfig(1, time.Second), &recordingSubmitter{}, logger.NewNopLogger())
	assert.False(t, ing.IsConnected())
	// publishing without a broker is a no-op
	ing.publishError("A", "invalid_payload", "bad")
}

type stateFunc func() bool

func (f stateFunc) IsConnected() bool { return f() }

type healthFunc func(ctx context.Context) error

func (f healthFunc) Health(ctx context.Context) error { return f(ctx) }

func TestHealthRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		connected bool
		apiErr    error
		code      int
		status    string
	}{
		{"healthy", true, nil, http.StatusOK, "healthy"},
		{"broker down", false, nil, http.StatusServiceUnavailable, "unhealthy"},
		{"api down", true, errors.New("refused"), http.StatusServiceUnavailable, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewHealthRouter(
				stateFunc(func() bool { return tt.connected }),
				healthFunc(func(context.Context) error { return tt.apiErr }),
			)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.code, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body["status"])
			assert.Contains(t, body, "services")
		})
	}
}
