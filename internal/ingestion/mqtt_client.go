package ingestion

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ecoduino/greenhouse-backend/internal/logger"
	pkgmqtt "github.com/ecoduino/greenhouse-backend/pkg/mqtt"
)

// MQTTIngestionConfig describes the telemetry topic and MQTT connection
// parameters.
type MQTTIngestionConfig struct {
	ClientConfig   *pkgmqtt.Config
	TelemetryTopic string
	QoS            byte
}

// MQTTIngestionClient wires MQTT messages into the ingestion processor.
type MQTTIngestionClient struct {
	cfg       *MQTTIngestionConfig
	client    *pkgmqtt.Client
	processor *Processor

	mu            sync.Mutex
	started       bool
	subscriptions []string
}

// NewMQTTIngestionClient builds a new MQTT client for ingestion.
func NewMQTTIngestionClient(cfg *MQTTIngestionConfig, processor *Processor) (*MQTTIngestionClient, error) {
	if cfg == nil || cfg.ClientConfig == nil {
		return nil, errors.New("mqtt ingestion config is not configured")
	}
	if cfg.TelemetryTopic == "" {
		return nil, errors.New("telemetry topic is required")
	}
	if processor == nil {
		return nil, errors.New("processor is required")
	}

	return &MQTTIngestionClient{
		cfg:       cfg,
		client:    pkgmqtt.NewClient(cfg.ClientConfig),
		processor: processor,
	}, nil
}

// Start establishes the MQTT connection and subscribes to the telemetry topic.
func (c *MQTTIngestionClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}

	if err := c.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	if err := c.client.Subscribe(c.cfg.TelemetryTopic, c.cfg.QoS, c.handleTelemetryMessage); err != nil {
		c.client.Disconnect()
		return fmt.Errorf("subscribe failed for topic %s: %w", c.cfg.TelemetryTopic, err)
	}
	c.subscriptions = append(c.subscriptions, c.cfg.TelemetryTopic)

	logger.Info("Listening for MQTT telemetry", zap.String("topic", c.cfg.TelemetryTopic))

	c.started = true
	return nil
}

// Stop unsubscribes and disconnects from the broker.
func (c *MQTTIngestionClient) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return
	}

	if len(c.subscriptions) > 0 {
		if err := c.client.Unsubscribe(c.subscriptions...); err != nil {
			logger.Warn("Failed to unsubscribe from MQTT topics", zap.Error(err))
		}
	}

	c.client.Disconnect()
	c.started = false
	c.subscriptions = nil
}

// handleTelemetryMessage decodes a telemetry payload and hands it to the
// processor.
func (c *MQTTIngestionClient) handleTelemetryMessage(_ string, payload []byte) {
	msg, err := ParseTelemetry(payload)
	if err != nil {
		logger.Warn("Invalid telemetry payload", zap.Error(err))
		return
	}

	c.processor.Enqueue(msg)
}
