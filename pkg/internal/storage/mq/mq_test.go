package mq_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/genomeinsight/pkg/configs"
	"github.com/yeisme/genomeinsight/pkg/internal/storage/mq"
)

func TestGoChannelRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mq.New(ctx, configs.MQConfig{
		Type:      configs.MQTypeGoChannel,
		GoChannel: configs.MQGoChannelConfig{OutputBuffer: 4},
	}, mq.Options{Metrics: true, Registerer: prometheus.NewRegistry()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	assert.Equal(t, configs.MQTypeGoChannel, client.Kind())

	ch, err := client.Subscribe(ctx, "test.topic")
	require.NoError(t, err)

	require.NoError(t, client.Publish(ctx, "test.topic", message.NewMessage(watermill.NewUUID(), []byte("ping"))))

	select {
	case msg := <-ch:
		assert.Equal(t, "ping", string(msg.Payload))
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("message not delivered")
	}

	require.NoError(t, client.Close())
	require.NoError(t, client.Close())
}

func TestUnsupportedType(t *testing.T) {
	_, err := mq.New(context.Background(), configs.MQConfig{Type: "kafka"}, mq.Options{})
	assert.Error(t, err)
}

func TestNilClientPublish(t *testing.T) {
	var client *mq.Client

	assert.Error(t, client.Publish(context.Background(), "x"))
}

func TestLoggerAdapter(t *testing.T) {
	var buf bytes.Buffer

	l := zerolog.New(&buf).Level(zerolog.TraceLevel)
	adapter := mq.NewLoggerAdapter(&l).With(watermill.LogFields{"component": "test"})

	adapter.Error("publish failed", errors.New("boom"), watermill.LogFields{"topic": "t"})
	adapter.Info("ready", nil)

	out := buf.String()
	assert.Contains(t, out, `"component":"test"`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"topic":"t"`)
	assert.Contains(t, out, "ready")
}
