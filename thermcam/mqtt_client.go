package thermcam

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// NewMQTTClient connects to the configured broker. Publishing is
// best-effort: a down broker should never stall the frame loop, so QoS
// stays at 0 for the image stream.
func NewMQTTClient(cfg Config) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientID)
	opts.SetKeepAlive(10 * time.Second)
	opts.SetPingTimeout(2 * time.Second)
	opts.SetAutoReconnect(true)

	c := mqtt.NewClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", cfg.MQTTBroker, token.Error())
	}
	return c, nil
}

// PublishImage publishes already-encoded JPEG bytes as base64. The
// capture loop encodes each frame once and shares the bytes between the
// HTTP stream and the broker.
func PublishImage(client mqtt.Client, topic string, jpegBytes []byte) {
	b64bytes := make([]byte, base64.StdEncoding.EncodedLen(len(jpegBytes)))
	base64.StdEncoding.Encode(b64bytes, jpegBytes)
	client.Publish(topic, 0, false, b64bytes)
}

// PublishFrameStats publishes the per-frame temperature stats as JSON.
func PublishFrameStats(client mqtt.Client, topic string, msg FrameStatsMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	client.Publish(topic, 0, false, payload)
	return nil
}
