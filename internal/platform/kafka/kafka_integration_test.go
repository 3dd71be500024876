//go:build integration

package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"provider-registry/pkg/platform/audit/outbox"
	"provider-registry/pkg/testutil/containers"
)

func TestProducerPublishesWithHeaders(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	redpanda := containers.GetManager().GetRedpanda(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	const topic = "provider-registry.audit.test"
	client, err := NewClient(redpanda.Brokers, topic)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, EnsureTopic(ctx, client, topic, 1, 1))
	require.NoError(t, EnsureTopic(ctx, client, topic, 1, 1), "existing topic is not an error")

	producer := NewProducer(client, topic)
	require.NoError(t, producer.Health(ctx))
	require.NoError(t, producer.Publish(ctx, []outbox.Message{
		{ID: "outbox-1", Key: "provider-1", EventType: "provider_registered", Payload: []byte(`{"n":1}`)},
		{ID: "outbox-2", Key: "provider-1", EventType: "provider_updated", Payload: []byte(`{"n":2}`)},
	}))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(redpanda.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	var records []*kgo.Record
	for len(records) < 2 {
		fetches := consumer.PollFetches(ctx)
		require.NoError(t, ctx.Err())
		fetches.EachRecord(func(r *kgo.Record) {
			records = append(records, r)
		})
	}

	assert.Equal(t, "provider-1", string(records[0].Key))
	assert.Equal(t, `{"n":1}`, string(records[0].Value))
	assert.Equal(t, `{"n":2}`, string(records[1].Value))
	headers := map[string]string{}
	for _, h := range records[1].Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "provider_updated", headers[headerEventType])
	assert.Equal(t, "outbox-2", headers[headerOutboxID])
}
