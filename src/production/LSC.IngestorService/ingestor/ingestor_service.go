package ingestor

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	config "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Config"
	"gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.IngestorService/client"
	logger "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Logger"
)

const queueSize = 4096

// Submitter forwards one decoded reading to the API service
type Submitter interface {
	SubmitReading(ctx context.Context, reading client.LoadDataRequest) error
}

type queuedReading struct {
	request    client.LoadDataRequest
	receivedAt time.Time
}

type Ingestor struct {
	cfg        *config.IngestorConfig
	api        Submitter
	mqttClient mqtt.Client
	msgCh      chan queuedReading
	wg         sync.WaitGroup
	logger     *logger.Logger

	// the queue is closed under mu so late MQTT callbacks never send on a closed channel
	mu     sync.RWMutex
	closed bool

	publish func(topic string, payload []byte)
}

func New(cfg *config.IngestorConfig, api Submitter, log *logger.Logger) *Ingestor {
	i := &Ingestor{
		cfg:    cfg,
		api:    api,
		msgCh:  make(chan queuedReading, queueSize),
		logger: log.WithComponent("ingestor"),
	}
	i.publish = i.mqttPublish
	return i
}

// SubscriptionTopic is the readings topic, prefixed with $share when a shared group is set
func (i *Ingestor) SubscriptionTopic() string {
	if i.cfg.MQTT.SharedGroup != "" {
		return fmt.Sprintf("$share/%s/%s", i.cfg.MQTT.SharedGroup, i.cfg.MQTT.Topic)
	}
	return i.cfg.MQTT.Topic
}

func (i *Ingestor) Start(ctx context.Context) error {
	opts := mqtt.NewClientOptions().
		AddBroker(i.cfg.GetMQTTBrokerURL()).
		SetClientID(i.cfg.MQTT.ClientID).
		SetOrderMatters(false).
		SetKeepAlive(i.cfg.MQTT.KeepAlive).
		SetPingTimeout(i.cfg.MQTT.PingTimeout).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetCleanSession(false)

	if i.cfg.MQTT.BrokerUser != "" {
		opts.SetUsername(i.cfg.MQTT.BrokerUser)
		opts.SetPassword(i.cfg.MQTT.BrokerPass)
	}

	if i.cfg.MQTT.UseTLS {
		tlsCfg, err := tlsConfig(i.cfg.MQTT.CACertPath)
		if err != nil {
			return err
		}
		opts.SetTLSConfig(tlsCfg)
	}

	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		i.logger.Logger.Error().Err(err).Msg("MQTT connection lost")
	}
	opts.OnConnect = func(c mqtt.Client) {
		topic := i.SubscriptionTopic()
		i.logger.Logger.Info().Str("topic", topic).Msg("MQTT connected, subscribing to topic")
		if token := c.Subscribe(topic, 1, i.onMessage); token.Wait() && token.Error() != nil {
			i.logger.Logger.Error().Err(token.Error()).Str("topic", topic).Msg("Failed to subscribe to MQTT topic")
		}
	}

	i.mqttClient = mqtt.NewClient(opts)
	if tk := i.mqttClient.Connect(); tk.Wait() && tk.Error() != nil {
		return tk.Error()
	}

	i.startWriter(ctx)
	return nil
}

func (i *Ingestor) startWriter(ctx context.Context) {
	i.wg.Add(1)
	go func() {
		defer i.wg.Done()
		i.batchWriter(ctx)
	}()
}

// Stop disconnects from the broker and flushes whatever is still queued
func (i *Ingestor) Stop() {
	if i.mqttClient != nil && i.mqttClient.IsConnected() {
		i.mqttClient.Disconnect(500)
	}

	i.mu.Lock()
	if !i.closed {
		i.closed = true
		close(i.msgCh)
	}
	i.mu.Unlock()

	i.wg.Wait()
}

func (i *Ingestor) IsConnected() bool {
	return i.mqttClient != nil && i.mqttClient.IsConnected()
}

func (i *Ingestor) onMessage(_ mqtt.Client, m mqtt.Message) {
	i.handleMessage(m.Topic(), m.Payload())
}

func (i *Ingestor) handleMessage(topic string, payload []byte) {
	i.logger.Logger.Debug().Str("topic", topic).Str("payload", string(payload)).Msg("Received MQTT message")

	hardwareID, err := hardwareIDFromTopic(i.cfg.MQTT.Topic, topic)
	if err != nil {
		i.logger.Logger.Warn().Err(err).Str("topic", topic).Msg("Invalid topic format")
		i.publishError("unknown", "invalid_topic", err.Error())
		return
	}

	request, err := decodePayload(hardwareID, payload)
	if err != nil {
		i.logger.Logger.Warn().Err(err).Str("hardware_id", hardwareID).Msg("Invalid reading payload")
		i.publishError(hardwareID, "invalid_payload", err.Error())
		return
	}

	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.closed {
		i.logger.Logger.Warn().Str("hardware_id", hardwareID).Msg("Dropping reading received after shutdown")
		return
	}
	i.logger.Logger.Debug().Str("hardware_id", hardwareID).Msg("Queuing reading")
	i.msgCh <- queuedReading{request: request, receivedAt: time.Now().UTC()}
}

func (i *Ingestor) batchWriter(ctx context.Context) {
	batch := make([]queuedReading, 0, i.cfg.Batch.Size)
	timer := time.NewTimer(i.cfg.Batch.Window)
	defer timer.Stop()

	flush := func(ctx context.Context) {
		if len(batch) == 0 {
			return
		}
		i.logger.Logger.Info().Int("batch_size", len(batch)).Msg("Flushing batch to API Service")

		submitted := 0
		for _, queued := range batch {
			if err := i.submit(ctx, queued.request); err != nil {
				i.logger.Logger.Error().Err(err).Str("hardware_id", queued.request.ID).Msg("Error submitting reading via API")
				i.publishError(queued.request.ID, errorType(err), err.Error())
				continue
			}
			submitted++
		}

		i.logger.Logger.Info().Int("count", submitted).Int("failed", len(batch)-submitted).Msg("Processed readings")
		batch = batch[:0]
	}

	for {
		select {
		case <-ctx.Done():
			// drain with a context that outlives the canceled one
			flush(context.WithoutCancel(ctx))
			return
		case rd, ok := <-i.msgCh:
			if !ok {
				flush(context.WithoutCancel(ctx))
				return
			}
			batch = append(batch, rd)
			if len(batch) >= i.cfg.Batch.Size {
				flush(ctx)
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(i.cfg.Batch.Window)
			}
		case <-timer.C:
			flush(ctx)
			timer.Reset(i.cfg.Batch.Window)
		}
	}
}

func (i *Ingestor) submit(ctx context.Context, request client.LoadDataRequest) error {
	timeout := i.cfg.ApiRequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return i.api.SubmitReading(ctx, request)
}

func errorType(err error) string {
	var statusErr *client.StatusError
	if !errors.As(err, &statusErr) {
		return "api_unavailable"
	}
	switch statusErr.StatusCode {
	case http.StatusNotFound:
		return "device_not_found"
	case http.StatusBadRequest:
		return "invalid_reading"
	case http.StatusTooManyRequests:
		return "rate_limited"
	default:
		return "create_reading_error"
	}
}

func tlsConfig(caFile string) (*tls.Config, error) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if caFile == "" {
		return cfg, nil
	}
	ca, err := os.ReadFile(caFile)
	if err != nil {
		return nil, err
	}
	cp := x509.NewCertPool()
	if !cp.AppendCertsFromPEM(ca) {
		return nil, fmt.Errorf("bad CA file")
	}
	cfg.RootCAs = cp
	return cfg, nil
}

// publishError sends feedback to <error topic>/<hardware id> for the collar
func (i *Ingestor) publishError(hardwareID, errType, message string) {
	payload, err := json.Marshal(map[string]interface{}{
		"error_type":  errType,
		"message":     message,
		"hardware_id": hardwareID,
		"timestamp":   time.Now().UTC(),
	})
	if err != nil {
		i.logger.Logger.Error().Err(err).Msg("Failed to marshal error payload")
		return
	}
	i.publish(fmt.Sprintf("%s/%s", i.cfg.MQTT.ErrorTopic, hardwareID), payload)
}

func (i *Ingestor) mqttPublish(topic string, payload []byte) {
	if !i.IsConnected() {
		return
	}
	token := i.mqttClient.Publish(topic, 1, false, payload)
	if token.Wait() && token.Error() != nil {
		i.logger.Logger.Error().Err(token.Error()).Str("topic", topic).Msg("Failed to publish error")
		return
	}
	i.logger.Logger.Info().Str("topic", topic).Msg("Published error")
}
