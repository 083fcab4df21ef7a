package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/genomeinsight/pkg/queue"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	uploaded := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	payload := queue.FileUploadedPayload{
		FileID:           "01J00000000000000000000000",
		StoredFilename:   "20250304T050607Z_x_sample.vcf",
		OriginalFilename: "sample.vcf",
		FileSize:         50,
		FileType:         "variant_call",
		UploadedAt:       uploaded,
	}

	msg, err := queue.NewWatermillMessage(queue.TopicFileUploaded, payload,
		queue.WithTraceID("trace-1"), queue.WithProducer("genomeinsight"))
	require.NoError(t, err)

	assert.Equal(t, queue.TopicFileUploaded, msg.Metadata.Get("topic"))
	assert.Equal(t, "trace-1", msg.Metadata.Get("trace_id"))
	assert.Equal(t, queue.PayloadVersionV1, msg.Metadata.Get("version"))

	env, err := queue.ParseFileUploaded(msg)
	require.NoError(t, err)
	assert.Equal(t, queue.TopicFileUploaded, env.Header.Topic)
	assert.Equal(t, "genomeinsight", env.Header.Producer)
	assert.Equal(t, payload.FileID, env.Payload.FileID)
	assert.True(t, uploaded.Equal(env.Payload.UploadedAt))
}

func TestPublishFileUploaded(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ps := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 1}, watermill.NopLogger{})
	t.Cleanup(func() { _ = ps.Close() })

	ch, err := ps.Subscribe(ctx, queue.TopicFileUploaded)
	require.NoError(t, err)

	require.NoError(t, queue.PublishFileUploaded(ps, queue.FileUploadedPayload{FileID: "abc"}))

	select {
	case m := <-ch:
		env, err := queue.ParseFileUploaded(m)
		require.NoError(t, err)
		assert.Equal(t, "abc", env.Payload.FileID)
		m.Ack()
	case <-ctx.Done():
		t.Fatal("event not delivered")
	}
}
