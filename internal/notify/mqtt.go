// Package notify fans activity entries out to an MQTT broker.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
)

const (
	DefaultTopic   = "staffpad/activity"
	connectTimeout = 10 * time.Second
)

// Publisher publishes each activity entry as JSON at QoS 0.
type Publisher struct {
	client mqtt.Client
	topic  string
	logger zerolog.Logger
}

// NewPublisher connects to broker and returns a ready publisher.
func NewPublisher(broker, clientID, topic string, logger zerolog.Logger) (*Publisher, error) {
	if topic == "" {
		topic = DefaultTopic
	}
	logger = logger.With().Str("component", "mqtt").Str("topic", topic).Logger()

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			logger.Warn().Err(err).Msg("mqtt connection lost")
		})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("failed to connect to mqtt broker %s: timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to mqtt broker %s: %w", broker, err)
	}

	logger.Info().Str("broker", broker).Msg("MQTT publisher connected")
	return newPublisher(client, topic, logger), nil
}

func newPublisher(client mqtt.Client, topic string, logger zerolog.Logger) *Publisher {
	return &Publisher{client: client, topic: topic, logger: logger}
}

// Topic returns the topic an entry is published to: the base topic plus the
// lower-cased log type, e.g. staffpad/activity/nfc.
func (p *Publisher) Topic(entry models.ActivityLogEntry) string {
	return strings.TrimRight(p.topic, "/") + "/" + strings.ToLower(string(entry.Type))
}

func (p *Publisher) PublishActivity(ctx context.Context, entry models.ActivityLogEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal activity entry: %w", err)
	}

	token := p.client.Publish(p.Topic(entry), 0, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish activity entry %s: %w", entry.ID, err)
	}
	return nil
}

// Close disconnects, giving in-flight publishes up to 250ms.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
